package repository

import (
	"context"
	"errors"

	"paramkit/internal/domain"
)

// ErrNotFound is returned when no record is stored under a key.
var ErrNotFound = errors.New("record not found")

// Repository persists records field by field. Records are addressed by
// their RecordName and a caller chosen key.
type Repository interface {
	// Save stores every field of rec under key, replacing a prior version.
	Save(ctx context.Context, key string, rec domain.Record) error

	// Load assigns the stored fields to rec. Stored text is validated
	// again by each field's Assign.
	Load(ctx context.Context, key string, rec domain.Record) error

	// Delete removes the record stored under recordName and key.
	Delete(ctx context.Context, key, recordName string) error

	// Keys lists the keys stored for recordName in ascending order.
	Keys(ctx context.Context, recordName string) ([]string, error)
}
