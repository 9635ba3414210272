package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAddressRange(t *testing.T) {
	t.Run("negated IPv4 range", func(t *testing.T) {
		r, err := NewAddressRange("!10.0.0.1:10.0.0.9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Negated {
			t.Error("expected negated")
		}
		if r.From.String() != "10.0.0.1" || r.To.String() != "10.0.0.9" {
			t.Errorf("unexpected endpoints %s and %s", r.From, r.To)
		}
		if r.String() != "!10.0.0.1:10.0.0.9" {
			t.Errorf("expected !10.0.0.1:10.0.0.9, got %s", r)
		}
	})

	t.Run("bracketed IPv6 range", func(t *testing.T) {
		r, err := NewAddressRange("[2001:db8::1]:[2001:db8::ff]")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.From.Family() != FamilyIPv6 || r.To.String() != "2001:db8::ff" {
			t.Errorf("unexpected endpoints %s and %s", r.From, r.To)
		}
		if r.String() != "[2001:db8::1]:[2001:db8::ff]" {
			t.Errorf("expected bracketed rendering, got %s", r)
		}
		again, err := NewAddressRange(r.String())
		if err != nil || again != r {
			t.Errorf("expected stable re-parse, got %s (%v)", again, err)
		}
	})

	t.Run("unbracketed IPv6 with a single valid split", func(t *testing.T) {
		r, err := NewAddressRange("::1:::2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.From.String() != "::1" || r.To.String() != "::2" {
			t.Errorf("expected ::1 to ::2, got %s to %s", r.From, r.To)
		}
	})

	errTests := []struct {
		input string
		kind  error
	}{
		{"10.0.0.1", ErrFormat},
		{"10.0.0.1:", ErrFormat},
		{"!:10.0.0.1", ErrFormat},
		{"10.0.0.1:300.0.0.1", ErrRange},
		{"[2001:db8::1:[2001:db8::2]", ErrFormat},
		{"2001:db8::1:2001:db8::2", ErrFormat},
	}
	for _, tt := range errTests {
		t.Run("rejects "+tt.input, func(t *testing.T) {
			r, _ := NewAddressRange("10.1.1.1:10.1.1.2")
			err := r.Assign(tt.input)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
			if r.String() != "10.1.1.1:10.1.1.2" {
				t.Errorf("expected prior value, got %s", r)
			}
		})
	}

	t.Run("covers", func(t *testing.T) {
		r, _ := NewAddressRange("10.0.0.1:10.0.0.9")
		if !r.Covers("10.0.0.5") || !r.Covers("10.0.0.9") {
			t.Error("expected inner addresses covered")
		}
		if r.Covers("10.0.0.10") || r.Covers("::1") {
			t.Error("expected outer and foreign addresses not covered")
		}
		r.Negated = true
		if r.Covers("10.0.0.5") || !r.Covers("10.0.0.10") {
			t.Error("expected negation to invert coverage")
		}
		if r.Covers("::1") {
			t.Error("expected other family never covered")
		}
	})
}

func TestAddressListRendering(t *testing.T) {
	var l AddressList
	if l.String() != "" {
		t.Errorf("expected empty rendering, got %q", l.String())
	}

	if _, err := l.Add("10.0.0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.String() != "10.0.0.1" {
		t.Errorf("expected bare element, got %s", l.String())
	}

	_, _ = l.Add("10.0.0.2")
	if l.String() != "[10.0.0.1,10.0.0.2]" {
		t.Errorf("expected [10.0.0.1,10.0.0.2], got %s", l.String())
	}

	l.SetBrackets('{', '}')
	if l.String() != "{10.0.0.1,10.0.0.2}" {
		t.Errorf("expected custom brackets, got %s", l.String())
	}
	if l.Brackets().Open != '{' {
		t.Errorf("expected open bracket {, got %q", l.Brackets().Open)
	}
}

func TestAddressListKeys(t *testing.T) {
	var l AddressList
	_, _ = l.Add("192.168.0.1")
	_, _ = l.Add("3232235521")
	_, _ = l.Add("2001:db8::1")
	if l.Len() != 2 {
		t.Fatalf("expected duplicate key to collapse, got %d elements", l.Len())
	}
	if l.Elements()[1].Family() != FamilyIPv6 {
		t.Error("expected insertion order kept")
	}

	if !l.Remove("2001:DB8:0::1") {
		t.Error("expected canonicalized remove to succeed")
	}
	if l.Remove("10.9.9.9") {
		t.Error("expected remove of missing element to fail")
	}
	if l.String() != "192.168.0.1" {
		t.Errorf("expected 192.168.0.1, got %s", l.String())
	}
}

func TestAddressListAssign(t *testing.T) {
	var l AddressList
	if err := l.Assign("[10.0.0.0/8, ::1]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", l.Len())
	}

	if err := l.Assign("[10.0.0.1,bogus]"); err == nil {
		t.Fatal("expected error for bad element")
	}
	if l.String() != "[10.0.0.0/8,::1]" {
		t.Errorf("expected list unchanged, got %s", l.String())
	}

	if err := l.Assign("[10.0.0.1"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected format error for unterminated list, got %v", err)
	}
	if err := l.Assign("10.0.0.1,,10.0.0.2"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected format error for empty element, got %v", err)
	}

	if err := l.Assign(""); err != nil || l.Len() != 0 {
		t.Errorf("expected empty text to clear, got %d elements (%v)", l.Len(), err)
	}
}

func TestAddressListNetworkAvailability(t *testing.T) {
	var l AddressList
	_ = l.Assign("[10.0.0.0/8,2001:db8::/32]")

	tests := []struct {
		ip       string
		expected bool
	}{
		{"10.200.0.1", true},
		{"2001:db8::55", true},
		{"192.168.0.1", false},
		{"2001:db9::1", false},
	}
	for _, tt := range tests {
		if got := l.NetworkAvailability(tt.ip); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.ip, tt.expected, got)
		}
	}

	var empty AddressList
	if empty.NetworkAvailability("10.0.0.1") {
		t.Error("expected empty list to contain nothing")
	}
}

func TestPolymorphicAddressList(t *testing.T) {
	var l PolymorphicAddressList
	_, _ = l.Add("10.0.0.1")
	_, _ = l.Add("::1")
	_, _ = l.Add("10.0.0.1")
	if l.String() != "[10.0.0.1,::1]" {
		t.Errorf("expected [10.0.0.1,::1], got %s", l.String())
	}
	if _, err := l.Add(""); !errors.Is(err, ErrFormat) {
		t.Errorf("expected format error for empty element, got %v", err)
	}
	if !l.NetworkAvailability("::1") {
		t.Error("expected ::1 to be available")
	}
	if l.Elements()[0].Family() != FamilyIPv4 {
		t.Error("expected first element IPv4")
	}
	if !l.Remove("::1") || l.Len() != 1 {
		t.Error("expected remove to succeed")
	}
}

func TestListSerialization(t *testing.T) {
	type holder struct {
		Targets AddressList `yaml:"targets" json:"targets"`
		Ports   PortList    `yaml:"ports" json:"ports"`
	}

	t.Run("yaml sequence", func(t *testing.T) {
		var h holder
		_ = h.Targets.Assign("[10.0.0.1,10.0.0.2]")
		_ = h.Ports.Assign("80")

		out, err := yaml.Marshal(&h)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		var back holder
		if err := yaml.Unmarshal(out, &back); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if back.Targets.String() != "[10.0.0.1,10.0.0.2]" || back.Ports.String() != "80" {
			t.Errorf("unexpected round trip %s %s", back.Targets.String(), back.Ports.String())
		}
	})

	t.Run("yaml scalar list text", func(t *testing.T) {
		var h holder
		if err := yaml.Unmarshal([]byte("targets: \"[10.0.0.1,::1]\"\nports: 443\n"), &h); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if h.Targets.Len() != 2 || h.Ports.String() != "443" {
			t.Errorf("unexpected values %s %s", h.Targets.String(), h.Ports.String())
		}
	})

	t.Run("yaml mapping is a type mismatch", func(t *testing.T) {
		var h holder
		err := yaml.Unmarshal([]byte("targets:\n  a: b\n"), &h)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected type mismatch, got %v", err)
		}
	})

	t.Run("json array", func(t *testing.T) {
		var h holder
		_ = h.Targets.Assign("[10.0.0.1,10.0.0.2]")
		out, err := json.Marshal(&h)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if string(out) != `{"targets":["10.0.0.1","10.0.0.2"],"ports":[]}` {
			t.Errorf("unexpected json %s", out)
		}

		var back holder
		if err := json.Unmarshal([]byte(`{"targets":"10.0.0.9","ports":["22","1000:2000"]}`), &back); err != nil {
			t.Fatalf("failed to unmarshal: %v", err)
		}
		if back.Targets.String() != "10.0.0.9" || back.Ports.Len() != 2 {
			t.Errorf("unexpected values %s %s", back.Targets.String(), back.Ports.String())
		}
	})
}
