// Package sqlite3 registers the "sqlite3" engine on the cgo
// github.com/mattn/go-sqlite3 driver.
//
//	import _ "paramkit/internal/connector/sqlite3"
package sqlite3

import (
	"context"
	"database/sql"
	"log/slog"

	"paramkit/internal/connector"

	_ "github.com/mattn/go-sqlite3"
)

// Tag is the registry tag of this engine.
const Tag connector.EngineType = "sqlite3"

func init() {
	connector.Register(Tag, func(logger *slog.Logger) connector.Engine { return New(logger) })
}

// New creates an unconnected engine. The DSN is a file path, ":memory:",
// or a file: URI with driver options such as _journal_mode.
func New(logger *slog.Logger) *connector.SQLEngine {
	return connector.NewSQLEngine(Tag, "sqlite3", logger, configure)
}

func configure(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(1)
	return connector.Statements(
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	)(ctx, db)
}
