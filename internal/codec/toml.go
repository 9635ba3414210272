package codec

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"paramkit/internal/domain"
)

// TOMLCodec handles TOML import/export. The record is a table named after it.
type TOMLCodec struct{}

// NewTOMLCodec creates a new TOML codec
func NewTOMLCodec() *TOMLCodec {
	return &TOMLCodec{}
}

// Format returns the codec format identifier
func (c *TOMLCodec) Format() string {
	return "toml"
}

// Decode assigns the record fields found in a TOML document
func (c *TOMLCodec) Decode(r io.Reader, rec domain.Record) error {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	fields, err := recordFields(rec, doc)
	if err != nil {
		return err
	}
	return domain.DecodeFields(rec, fields)
}

// Encode writes rec as a TOML table
func (c *TOMLCodec) Encode(w io.Writer, rec domain.Record) error {
	values := domain.FieldValues(rec)
	for name, v := range values {
		if items, ok := v.([]string); ok && items == nil {
			values[name] = []string{}
		}
	}

	doc := map[string]any{rec.RecordName(): values}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}

	return nil
}
