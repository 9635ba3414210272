package connector

import (
	"context"
	"database/sql"
)

// EngineType is the registry tag of a database engine, e.g. "sqlite".
type EngineType string

// Engine is the capability a connector drives. Implementations are not
// safe for concurrent use.
type Engine interface {
	// Connect opens the backend named by dsn. Failures are ConnectionErrors.
	Connect(ctx context.Context, dsn string) error
	// Disconnect closes the backend. It is a no-op when not connected.
	Disconnect() error
	IsConnected() bool
	Type() EngineType
}

// DBProvider is implemented by engines backed by database/sql.
type DBProvider interface {
	// DB returns the open handle, or nil when disconnected.
	DB() *sql.DB
}
