package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"paramkit/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Decode assigns the record fields found in a JSON document
func (c *JSONCodec) Decode(r io.Reader, rec domain.Record) error {
	var doc map[string]any
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields, err := recordFields(rec, doc)
	if err != nil {
		return err
	}
	return domain.DecodeFields(rec, fields)
}

// Encode writes rec as an indented JSON document
func (c *JSONCodec) Encode(w io.Writer, rec domain.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	doc := map[string]any{rec.RecordName(): domain.FieldValues(rec)}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
