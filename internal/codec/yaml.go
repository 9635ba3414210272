package codec

import (
	"fmt"
	"io"

	"paramkit/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Decode assigns the record fields found in a YAML document. Values are
// assigned from their node text, so quoting is never required.
func (c *YAMLCodec) Decode(r io.Reader, rec domain.Record) error {
	var doc yaml.Node
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode || len(root.Content) != 2 {
		return domain.TypeMismatchError(rec.RecordName(), "expected a single top-level record")
	}
	if name := root.Content[0].Value; name != rec.RecordName() {
		return domain.TypeMismatchError(rec.RecordName(), fmt.Sprintf("document holds record %q", name))
	}

	return domain.DecodeRecord(rec, root.Content[1])
}

// Encode writes rec as a YAML document with two-space indentation
func (c *YAMLCodec) Encode(w io.Writer, rec domain.Record) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rec.RecordName()},
		domain.EncodeRecord(rec),
	)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
