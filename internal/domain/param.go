package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Param is a leaf value of a record. Assign parses and validates text,
// String renders the canonical text form.
type Param interface {
	ParamType() string
	String() string
	Assign(text string) error
}

// ListParam is a Param holding an ordered collection that may also be
// assigned element by element.
type ListParam interface {
	Param
	Items() []string
	AssignItems(items []string) error
}

// Field is a named leaf of a record.
type Field struct {
	Name  string
	Value Param
}

// Record is a named group of fields, serialized as {RecordName: {field: value}}.
type Record interface {
	RecordName() string
	Fields() []Field
}

// AssignNode populates p from a YAML node. Scalars assign their text;
// sequences are accepted by ListParam only. Any other node kind is a type mismatch.
func AssignNode(p Param, node *yaml.Node) error {
	node = resolveNode(node)
	if node == nil {
		return TypeMismatchError(p.ParamType(), "missing node")
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return p.Assign("")
		}
		return p.Assign(node.Value)
	case yaml.SequenceNode:
		lp, ok := p.(ListParam)
		if !ok {
			return TypeMismatchError(p.ParamType(), "sequence given for a scalar value")
		}
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveNode(item)
			if item == nil || item.Kind != yaml.ScalarNode {
				return TypeMismatchError(p.ParamType(), "sequence elements must be scalars")
			}
			items = append(items, item.Value)
		}
		return lp.AssignItems(items)
	case yaml.MappingNode:
		return TypeMismatchError(p.ParamType(), "mapping given for a leaf value")
	}
	return TypeMismatchError(p.ParamType(), "unsupported node kind")
}

// AssignValue populates p from a generic decoded value as produced by
// encoding/json or a TOML decoder.
func AssignValue(p Param, v any) error {
	if items, ok := v.([]any); ok {
		lp, ok := p.(ListParam)
		if !ok {
			return TypeMismatchError(p.ParamType(), "array given for a scalar value")
		}
		texts := make([]string, 0, len(items))
		for _, item := range items {
			text, err := scalarText(p, item)
			if err != nil {
				return err
			}
			texts = append(texts, text)
		}
		return lp.AssignItems(texts)
	}

	text, err := scalarText(p, v)
	if err != nil {
		return err
	}
	return p.Assign(text)
}

func scalarText(p Param, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if t != float64(int64(t)) {
			return "", TypeMismatchError(p.ParamType(), "fractional number given")
		}
		return strconv.FormatInt(int64(t), 10), nil
	case json.Number:
		return t.String(), nil
	}
	return "", TypeMismatchError(p.ParamType(), fmt.Sprintf("unsupported value of type %T", v))
}

// DecodeRecord assigns every entry of a mapping node to the matching field of rec.
// Unknown field names are a type mismatch. Decoding stops at the first failure.
func DecodeRecord(rec Record, node *yaml.Node) error {
	node = resolveNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return TypeMismatchError(rec.RecordName(), "expected a mapping of fields")
	}

	fields := fieldIndex(rec)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		p, ok := fields[name]
		if !ok {
			return TypeMismatchError(rec.RecordName(), fmt.Sprintf("unknown field %q", name))
		}
		if err := AssignNode(p, node.Content[i+1]); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

// DecodeFields is DecodeRecord for generic decoded maps.
func DecodeFields(rec Record, values map[string]any) error {
	fields := fieldIndex(rec)
	for name := range values {
		if _, ok := fields[name]; !ok {
			return TypeMismatchError(rec.RecordName(), fmt.Sprintf("unknown field %q", name))
		}
	}
	// Field order keeps failures deterministic.
	for _, f := range rec.Fields() {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		if err := AssignValue(f.Value, v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// EncodeRecord renders rec's fields as a YAML mapping node in field order.
// List fields become sequences.
func EncodeRecord(rec Record) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range rec.Fields() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
		m.Content = append(m.Content, key, valueNode(f.Value))
	}
	return m
}

// FieldValues renders rec as a generic map; list fields become []string.
func FieldValues(rec Record) map[string]any {
	out := make(map[string]any, len(rec.Fields()))
	for _, f := range rec.Fields() {
		if lp, ok := f.Value.(ListParam); ok {
			out[f.Name] = lp.Items()
			continue
		}
		out[f.Name] = f.Value.String()
	}
	return out
}

func valueNode(p Param) *yaml.Node {
	if lp, ok := p.(ListParam); ok {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range lp.Items() {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
		}
		return seq
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.String()}
}

func fieldIndex(rec Record) map[string]Param {
	idx := make(map[string]Param)
	for _, f := range rec.Fields() {
		idx[f.Name] = f.Value
	}
	return idx
}

func resolveNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) == 1:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}
