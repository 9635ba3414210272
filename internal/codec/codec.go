package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"paramkit/internal/domain"
)

// Codec reads and writes a single record as a document of the form
// {recordName: {field: value, ...}}.
type Codec interface {
	Encode(w io.Writer, rec domain.Record) error
	Decode(r io.Reader, rec domain.Record) error
	Format() string
}

var codecs = map[string]Codec{
	"yaml": NewYAMLCodec(),
	"yml":  NewYAMLCodec(),
	"json": NewJSONCodec(),
	"toml": NewTOMLCodec(),
}

// ForFormat returns the codec registered for name, case-insensitively.
func ForFormat(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(Formats(), ", "))
	}
	return c, nil
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// recordFields extracts the field map stored under rec's name from a
// generic decoded document.
func recordFields(rec domain.Record, doc map[string]any) (map[string]any, error) {
	if len(doc) != 1 {
		return nil, domain.TypeMismatchError(rec.RecordName(), fmt.Sprintf("expected a single top-level record, got %d", len(doc)))
	}
	for name, body := range doc {
		if name != rec.RecordName() {
			return nil, domain.TypeMismatchError(rec.RecordName(), fmt.Sprintf("document holds record %q", name))
		}
		fields, ok := body.(map[string]any)
		if !ok {
			return nil, domain.TypeMismatchError(rec.RecordName(), "expected a mapping of fields")
		}
		return fields, nil
	}
	return nil, nil
}
