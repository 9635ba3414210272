package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const macParam = "mac"

// MacAddressValue is a 48-bit hardware address. The zero value is 00:00:00:00:00:00.
type MacAddressValue struct {
	octets [6]byte
}

func (MacAddressValue) ParamType() string { return macParam }

// Octets returns the six address bytes.
func (m MacAddressValue) Octets() [6]byte { return m.octets }

// String renders six lowercase two-digit hex octets joined by colons.
func (m MacAddressValue) String() string {
	o := m.octets
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", o[0], o[1], o[2], o[3], o[4], o[5])
}

// Assign requires exactly six colon-separated octets of two hex digits each.
func (m *MacAddressValue) Assign(text string) error {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 6 {
		return FormatError(macParam, text, fmt.Sprintf("expected 6 octets, got %d", len(parts)))
	}
	var octets [6]byte
	for i, p := range parts {
		if len(p) != 2 || !isHexDigits(p) {
			return FormatError(macParam, text, fmt.Sprintf("octet %d is not two hex digits", i+1))
		}
		v, _ := strconv.ParseUint(p, 16, 8)
		octets[i] = byte(v)
	}
	m.octets = octets
	return nil
}

// IsZero reports whether all octets are zero.
func (m MacAddressValue) IsZero() bool { return m.octets == [6]byte{} }

func (m MacAddressValue) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MacAddressValue) UnmarshalText(text []byte) error { return m.Assign(string(text)) }

func (m MacAddressValue) MarshalYAML() (any, error) { return m.String(), nil }

func (m *MacAddressValue) UnmarshalYAML(node *yaml.Node) error { return AssignNode(m, node) }
