// Package postgres registers the "postgres" engine on the pgx database/sql
// driver. The DSN is a postgres:// URL or a key=value string.
//
//	import _ "paramkit/internal/connector/postgres"
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"paramkit/internal/connector"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Tag is the registry tag of this engine.
const Tag connector.EngineType = "postgres"

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

func init() {
	connector.Register(Tag, func(logger *slog.Logger) connector.Engine { return New(logger) })
}

// New creates an unconnected engine.
func New(logger *slog.Logger) *connector.SQLEngine {
	return connector.NewSQLEngine(Tag, "pgx", logger, configure)
}

func configure(_ context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return nil
}
