package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestUniqueIdentifier(t *testing.T) {
	t.Run("generated on construction", func(t *testing.T) {
		id := NewUniqueIdentifier()
		if id.IsNil() {
			t.Error("expected a non-nil identifier")
		}
		if len(id.String()) != 36 {
			t.Errorf("expected 36 characters, got %d", len(id.String()))
		}
	})

	t.Run("regenerate changes the value", func(t *testing.T) {
		id := NewUniqueIdentifier()
		before := id.String()
		id.Regenerate()
		if id.String() == before {
			t.Error("expected a different identifier after Regenerate")
		}
	})

	t.Run("zero value is nil", func(t *testing.T) {
		var id UniqueIdentifier
		if !id.IsNil() || id.String() != "00000000-0000-0000-0000-000000000000" {
			t.Errorf("expected nil uuid, got %s", id)
		}
	})

	t.Run("canonical text round trips in lowercase", func(t *testing.T) {
		var id UniqueIdentifier
		if err := id.Assign("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
			t.Errorf("expected lowercase form, got %s", id)
		}
	})

	for _, input := range []string{
		"{6ba7b810-9dad-11d1-80b4-00c04fd430c8}",
		"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"6ba7b8109dad11d180b400c04fd430c8",
		"6ba7b810-9dad-11d1-80b4-00c04fd430cz",
		"6ba7b810x9dad-11d1-80b4-00c04fd430c8",
		"",
	} {
		t.Run("rejects "+input, func(t *testing.T) {
			id := NewUniqueIdentifier()
			before := id.String()
			if err := id.Assign(input); !errors.Is(err, ErrFormat) {
				t.Errorf("expected format error, got %v", err)
			}
			if id.String() != before {
				t.Error("expected prior value to be kept")
			}
		})
	}
}

func TestMacAddressValue(t *testing.T) {
	t.Run("default is all zero", func(t *testing.T) {
		var m MacAddressValue
		if m.String() != "00:00:00:00:00:00" || !m.IsZero() {
			t.Errorf("expected all-zero default, got %s", m)
		}
	})

	t.Run("accepts mixed case", func(t *testing.T) {
		var m MacAddressValue
		if err := m.Assign("AA:bb:01:23:45:6F"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.String() != "aa:bb:01:23:45:6f" {
			t.Errorf("expected aa:bb:01:23:45:6f, got %s", m)
		}
		if m.Octets()[0] != 0xaa {
			t.Errorf("expected first octet 0xaa, got %x", m.Octets()[0])
		}
	})

	for _, input := range []string{
		"aa:bb:cc:dd:ee",
		"aa:bb:cc:dd:ee:ff:00",
		"aa-bb-cc-dd-ee-ff",
		"a:bb:cc:dd:ee:ff",
		"aaa:bb:cc:dd:ee:ff",
		"gg:bb:cc:dd:ee:ff",
		"",
	} {
		t.Run("rejects "+input, func(t *testing.T) {
			var m MacAddressValue
			_ = m.Assign("02:00:00:00:00:01")
			err := m.Assign(input)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected format error, got %v", err)
			}
			if m.String() != "02:00:00:00:00:01" {
				t.Errorf("expected prior value, got %s", m)
			}
		})
	}
}

func TestParamErrorKinds(t *testing.T) {
	t.Run("sentinels match by kind", func(t *testing.T) {
		err := RangeError("ipv4", "300.0.0.1", "octet 300 exceeds 255")
		if !errors.Is(err, ErrRange) {
			t.Error("expected ErrRange to match")
		}
		if errors.Is(err, ErrFormat) {
			t.Error("expected ErrFormat not to match")
		}
		if KindOf(err) != KindRange {
			t.Errorf("expected kind range, got %s", KindOf(err))
		}
	})

	t.Run("wrapped errors keep their kind", func(t *testing.T) {
		err := errors.Join(errors.New("context"), TypeMismatchError("host", "unknown field"))
		if !errors.Is(err, ErrTypeMismatch) {
			t.Error("expected ErrTypeMismatch through join")
		}
	})

	t.Run("connection error unwraps cause", func(t *testing.T) {
		cause := errors.New("no such file")
		err := ConnectionError("connector", "connect failed", cause)
		if !errors.Is(err, ErrConnection) || !errors.Is(err, cause) {
			t.Error("expected both kind and cause to match")
		}
	})

	t.Run("message names kind param and input", func(t *testing.T) {
		msg := FormatError("mac", "zz", "bad octet").Error()
		for _, part := range []string{"[format]", "mac", `"zz"`, "bad octet"} {
			if !strings.Contains(msg, part) {
				t.Errorf("expected %q in %q", part, msg)
			}
		}
	})
}
