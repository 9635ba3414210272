package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"paramkit/internal/connector"
	"paramkit/internal/domain"
	"paramkit/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Repository implements repository.Repository using SQLite
type Repository struct {
	db    *sql.DB
	clock domain.Clock
}

var _ repository.Repository = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for updated_at. The default is the system clock.
func WithClock(c domain.Clock) Option {
	return func(r *Repository) {
		r.clock = c
	}
}

// New creates a repository on a connected connector and migrates the schema.
// The connector keeps ownership of the handle.
func New(ctx context.Context, conn *connector.Connector, opts ...Option) (*Repository, error) {
	if !conn.IsConnected() {
		return nil, domain.ConnectionError("repository", "connector is not connected", nil)
	}
	p, ok := conn.Engine().(connector.DBProvider)
	if !ok || p.DB() == nil {
		return nil, domain.ConnectionError("repository", fmt.Sprintf("engine %q does not expose a SQL handle", conn.Type()), nil)
	}

	repo := &Repository{db: p.DB(), clock: domain.SystemClock{}}
	for _, opt := range opts {
		opt(repo)
	}
	if err := repo.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

func (r *Repository) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, r.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Save upserts every field of rec under key and prunes fields rec no longer declares.
func (r *Repository) Save(ctx context.Context, key string, rec domain.Record) error {
	name := rec.RecordName()
	if name == "" || key == "" {
		return fmt.Errorf("record name and key are required")
	}

	fields := rec.Fields()
	now := formatTime(r.clock.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO params (record, key, field, value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (record, key, field) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare field statement: %w", err)
	}
	defer stmt.Close()

	names := make([]any, 0, len(fields)+2)
	names = append(names, name, key)
	for _, f := range fields {
		value, err := encodeValue(f.Value)
		if err != nil {
			return fmt.Errorf("failed to encode field %s: %w", f.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, name, key, f.Name, value, now); err != nil {
			return fmt.Errorf("failed to save field %s: %w", f.Name, err)
		}
		names = append(names, f.Name)
	}

	//nolint:gosec // only placeholders are interpolated
	prune := fmt.Sprintf(`DELETE FROM params WHERE record = ? AND key = ? AND field NOT IN (%s)`, placeholders(len(fields)))
	if len(fields) == 0 {
		prune = `DELETE FROM params WHERE record = ? AND key = ?`
	}
	if _, err := tx.ExecContext(ctx, prune, names...); err != nil {
		return fmt.Errorf("failed to prune fields: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Load assigns the stored fields of key to rec. A field that is stored but
// not declared by rec is a type mismatch.
func (r *Repository) Load(ctx context.Context, key string, rec domain.Record) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT field, value FROM params
		WHERE record = ? AND key = ?
	`, rec.RecordName(), key)
	if err != nil {
		return fmt.Errorf("failed to query record: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return fmt.Errorf("failed to scan field: %w", err)
		}
		stored[field] = value
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating fields: %w", err)
	}
	if len(stored) == 0 {
		return repository.ErrNotFound
	}

	declared := make(map[string]bool)
	for _, f := range rec.Fields() {
		declared[f.Name] = true
	}
	for field := range stored {
		if !declared[field] {
			return domain.TypeMismatchError(rec.RecordName(), fmt.Sprintf("unknown stored field %q", field))
		}
	}

	for _, f := range rec.Fields() {
		value, ok := stored[f.Name]
		if !ok {
			continue
		}
		if err := decodeValue(f.Value, value); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// Delete removes every field stored for recordName and key.
func (r *Repository) Delete(ctx context.Context, key, recordName string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM params WHERE record = ? AND key = ?`, recordName, key)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted fields: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Keys lists the stored keys of recordName in ascending order.
func (r *Repository) Keys(ctx context.Context, recordName string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT key FROM params WHERE record = ? ORDER BY key
	`, recordName)
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}
	return keys, nil
}

// UpdatedAt returns when the record stored under key was last saved.
func (r *Repository) UpdatedAt(ctx context.Context, key, recordName string) (time.Time, error) {
	var ts sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(updated_at) FROM params WHERE record = ? AND key = ?
	`, recordName, key).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query updated_at: %w", err)
	}
	t := parseTime(nullToString(ts))
	if t == nil {
		return time.Time{}, repository.ErrNotFound
	}
	return *t, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
