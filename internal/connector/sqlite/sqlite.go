// Package sqlite registers the "sqlite" engine, an embedded SQL engine on
// the pure Go modernc.org/sqlite driver.
//
//	import _ "paramkit/internal/connector/sqlite"
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"paramkit/internal/connector"

	_ "modernc.org/sqlite"
)

// Tag is the registry tag of this engine.
const Tag connector.EngineType = "sqlite"

// Pragmas run on every new handle.
var Pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

func init() {
	connector.Register(Tag, func(logger *slog.Logger) connector.Engine { return New(logger) })
}

// New creates an unconnected engine. The DSN is a file path or ":memory:".
func New(logger *slog.Logger) *connector.SQLEngine {
	return connector.NewSQLEngine(Tag, "sqlite", logger, configure)
}

func configure(ctx context.Context, db *sql.DB) error {
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	return connector.Statements(Pragmas...)(ctx, db)
}
