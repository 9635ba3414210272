package connector

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"paramkit/internal/domain"
)

// InitFunc prepares a freshly opened handle: pool limits, pragmas and the like.
type InitFunc func(ctx context.Context, db *sql.DB) error

// Statements returns an InitFunc that executes stmts in order.
func Statements(stmts ...string) InitFunc {
	return func(ctx context.Context, db *sql.DB) error {
		for _, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute %q: %w", stmt, err)
			}
		}
		return nil
	}
}

// SQLEngine is an Engine over a database/sql driver. Concrete engines
// construct one with their driver name and init hook.
type SQLEngine struct {
	tag    EngineType
	driver string
	init   InitFunc
	logger *slog.Logger
	db     *sql.DB
}

// NewSQLEngine creates an unconnected engine for driver. init may be nil.
func NewSQLEngine(tag EngineType, driver string, logger *slog.Logger, init InitFunc) *SQLEngine {
	return &SQLEngine{
		tag:    tag,
		driver: driver,
		init:   init,
		logger: orDiscard(logger).With("engine", string(tag)),
	}
}

// Connect opens dsn, pings it and runs the init hook. A connected engine
// is closed first.
func (e *SQLEngine) Connect(ctx context.Context, dsn string) error {
	if e.db != nil {
		if err := e.Disconnect(); err != nil {
			return err
		}
	}

	e.logger.Debug("opening database", slog.String("driver", e.driver))

	db, err := sql.Open(e.driver, dsn)
	if err != nil {
		return domain.ConnectionError(string(e.tag), "failed to open database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return domain.ConnectionError(string(e.tag), "failed to ping database", err)
	}

	if e.init != nil {
		if err := e.init(ctx, db); err != nil {
			_ = db.Close()
			return domain.ConnectionError(string(e.tag), "failed to initialize database", err)
		}
	}

	e.db = db
	return nil
}

// Disconnect closes the database connection.
func (e *SQLEngine) Disconnect() error {
	if e.db == nil {
		return nil
	}
	e.logger.Debug("closing database connection")
	db := e.db
	e.db = nil
	if err := db.Close(); err != nil {
		return domain.ConnectionError(string(e.tag), "failed to close database", err)
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (e *SQLEngine) IsConnected() bool {
	return e.db != nil
}

func (e *SQLEngine) Type() EngineType { return e.tag }

// DB returns the open handle, or nil when disconnected.
func (e *SQLEngine) DB() *sql.DB { return e.db }
