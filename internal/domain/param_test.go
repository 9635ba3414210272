package domain

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

const hostDoc = `
id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
address: 10.0.0.5/24
mac: 02:00:00:00:00:01
ports: [22, "1000:2000"]
enabled: "down"
last_seen: 2024-03-15T10:30:00
`

func decodeHostDoc(t *testing.T, doc string) (*Host, error) {
	t.Helper()
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		t.Fatalf("failed to parse yaml: %v", err)
	}
	h := &Host{}
	return h, DecodeRecord(h, &node)
}

func TestDecodeRecord(t *testing.T) {
	h, err := decodeHostDoc(t, hostDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.ID.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("unexpected id %s", h.ID)
	}
	if h.Address.String() != "10.0.0.5/24" || h.Address.Family() != FamilyIPv4 {
		t.Errorf("unexpected address %s", h.Address)
	}
	if h.MAC.String() != "02:00:00:00:00:01" {
		t.Errorf("unexpected mac %s", h.MAC)
	}
	if h.Ports.String() != "[22,1000:2000]" {
		t.Errorf("unexpected ports %s", h.Ports.String())
	}
	if h.Enabled != BoolDown {
		t.Errorf("expected down, got %s", h.Enabled)
	}
	if h.LastSeen.String() != "2024-03-15T10:30:00" {
		t.Errorf("unexpected last_seen %s", h.LastSeen)
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind error
	}{
		{"unknown field", "hostname: web01\n", ErrTypeMismatch},
		{"mapping for a leaf", "address:\n  v4: 10.0.0.1\n", ErrTypeMismatch},
		{"sequence for a scalar", "mac: [a, b]\n", ErrTypeMismatch},
		{"nested sequence in a list", "ports: [[22]]\n", ErrTypeMismatch},
		{"bad value", "address: 10.0.0.300\n", ErrRange},
		{"bad format", "mac: nope\n", ErrFormat},
		{"not a mapping", "- a\n- b\n", ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeHostDoc(t, tt.doc)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}

	t.Run("error names the field", func(t *testing.T) {
		_, err := decodeHostDoc(t, "mac: nope\n")
		var pe *ParamError
		if !errors.As(err, &pe) || pe.Param != "mac" {
			t.Errorf("expected a mac ParamError, got %v", err)
		}
	})
}

func TestEncodeRecord(t *testing.T) {
	src, err := decodeHostDoc(t, hostDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := yaml.Marshal(EncodeRecord(src))
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	dst, err := decodeHostDoc(t, string(out))
	if err != nil {
		t.Fatalf("failed to decode encoded record: %v\n%s", err, out)
	}
	for i, f := range src.Fields() {
		if got := dst.Fields()[i].Value.String(); got != f.Value.String() {
			t.Errorf("field %s: expected %s, got %s", f.Name, f.Value.String(), got)
		}
	}

	node := EncodeRecord(src)
	if node.Content[0].Value != "id" || node.Content[6].Value != "ports" {
		t.Error("expected fields in declaration order")
	}
	if node.Content[7].Kind != yaml.SequenceNode {
		t.Error("expected ports encoded as a sequence")
	}
}

func TestAssignValue(t *testing.T) {
	t.Run("array to list", func(t *testing.T) {
		var l PortList
		if err := AssignValue(&l, []any{float64(80), "1000:2000"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.String() != "[80,1000:2000]" {
			t.Errorf("expected [80,1000:2000], got %s", l.String())
		}
	})

	t.Run("bool to boolean code", func(t *testing.T) {
		var b BooleanCode
		_ = b.Assign("off")
		if err := AssignValue(&b, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.IsTrue() {
			t.Errorf("expected true, got %s", b)
		}
	})

	t.Run("integer to port", func(t *testing.T) {
		var p PortValue
		if err := AssignValue(&p, int64(443)); err != nil || p.String() != "443" {
			t.Errorf("expected 443, got %s (%v)", p, err)
		}
	})

	t.Run("fractional number rejected", func(t *testing.T) {
		var p PortValue
		if err := AssignValue(&p, 1.5); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected type mismatch, got %v", err)
		}
	})

	t.Run("array to scalar rejected", func(t *testing.T) {
		var m MacAddressValue
		if err := AssignValue(&m, []any{"a"}); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected type mismatch, got %v", err)
		}
	})

	t.Run("map rejected", func(t *testing.T) {
		var m MacAddressValue
		if err := AssignValue(&m, map[string]any{"a": "b"}); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected type mismatch, got %v", err)
		}
	})
}

func TestDecodeFields(t *testing.T) {
	h := &Host{}
	err := DecodeFields(h, map[string]any{
		"address": "::1",
		"ports":   []any{"22"},
		"enabled": "UP",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Address.String() != "::1" || h.Ports.String() != "22" || h.Enabled != BoolUp {
		t.Errorf("unexpected host %v", FieldValues(h))
	}

	if err := DecodeFields(h, map[string]any{"bogus": 1}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}

	values := FieldValues(h)
	if ports, ok := values["ports"].([]string); !ok || len(ports) != 1 {
		t.Errorf("expected ports as []string, got %#v", values["ports"])
	}
	if values["enabled"] != "up" {
		t.Errorf("expected enabled up, got %v", values["enabled"])
	}
}

func TestHost(t *testing.T) {
	h := NewHost()
	if h.ID.IsNil() || !h.Enabled.IsTrue() {
		t.Fatal("expected a fresh enabled host")
	}
	if h.RecordName() != "host" {
		t.Errorf("expected record name host, got %s", h.RecordName())
	}

	clock := FixedClock{T: time.Date(2024, 2, 29, 23, 59, 58, 0, time.UTC)}
	h.Touch(clock)
	if h.LastSeen.String() != "2024-02-29T23:59:58" {
		t.Errorf("unexpected last_seen %s", h.LastSeen)
	}

	_ = h.Ports.Assign("[22,8000:8100]")
	if !h.Listens(8080) || h.Listens(80) {
		t.Error("unexpected Listens result")
	}
	h.Enabled.Disable()
	if h.Listens(22) {
		t.Error("expected disabled host not to listen")
	}
}
