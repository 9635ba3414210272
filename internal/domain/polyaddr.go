package domain

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const polyAddressParam = "address"

// PolymorphicAddress holds either an IPv4Value or an IPv6Value, chosen by
// the shape of the last assigned literal. The zero value is unassigned and
// its accessors return empty defaults.
type PolymorphicAddress struct {
	family Family
	v4     IPv4Value
	v6     IPv6Value
}

// NewPolymorphicAddress parses text into a new PolymorphicAddress.
func NewPolymorphicAddress(text string) (PolymorphicAddress, error) {
	var p PolymorphicAddress
	err := p.Assign(text)
	return p, err
}

func (PolymorphicAddress) ParamType() string { return polyAddressParam }

// Family returns FamilyNone until an address is assigned.
func (p PolymorphicAddress) Family() Family { return p.family }

func (p PolymorphicAddress) IsAssigned() bool { return p.family != FamilyNone }

// Assign replaces the held address. Text containing ':' is parsed as IPv6,
// anything else as IPv4. Empty text clears the value.
func (p *PolymorphicAddress) Assign(text string) error {
	s := strings.TrimSpace(text)
	if s == "" {
		*p = PolymorphicAddress{}
		return nil
	}
	if strings.Contains(s, ":") {
		v, err := ParseIPv6(s)
		if err != nil {
			return err
		}
		*p = PolymorphicAddress{family: FamilyIPv6, v6: v}
		return nil
	}
	v, err := ParseIPv4(s)
	if err != nil {
		return err
	}
	*p = PolymorphicAddress{family: FamilyIPv4, v4: v}
	return nil
}

// AssignAddress copies a concrete address; nil clears the value.
func (p *PolymorphicAddress) AssignAddress(a AddressValue) {
	switch v := a.(type) {
	case *IPv4Value:
		*p = PolymorphicAddress{family: FamilyIPv4, v4: *v}
	case *IPv6Value:
		*p = PolymorphicAddress{family: FamilyIPv6, v6: *v}
	default:
		*p = PolymorphicAddress{}
	}
}

// Value returns the held address, or nil when unassigned. The returned
// pointer aliases p.
func (p *PolymorphicAddress) Value() AddressValue {
	switch p.family {
	case FamilyIPv4:
		return &p.v4
	case FamilyIPv6:
		return &p.v6
	}
	return nil
}

// IPv4 returns the held IPv4 value and whether the family is IPv4.
func (p PolymorphicAddress) IPv4() (IPv4Value, bool) { return p.v4, p.family == FamilyIPv4 }

// IPv6 returns the held IPv6 value and whether the family is IPv6.
func (p PolymorphicAddress) IPv6() (IPv6Value, bool) { return p.v6, p.family == FamilyIPv6 }

func (p PolymorphicAddress) String() string {
	switch p.family {
	case FamilyIPv4:
		return p.v4.String()
	case FamilyIPv6:
		return p.v6.String()
	}
	return ""
}

func (p PolymorphicAddress) Address() string {
	switch p.family {
	case FamilyIPv4:
		return p.v4.Address()
	case FamilyIPv6:
		return p.v6.Address()
	}
	return ""
}

func (p PolymorphicAddress) Version() int {
	switch p.family {
	case FamilyIPv4:
		return 4
	case FamilyIPv6:
		return 6
	}
	return 0
}

func (p PolymorphicAddress) PrefixBits() int {
	switch p.family {
	case FamilyIPv4:
		return p.v4.PrefixBits()
	case FamilyIPv6:
		return p.v6.PrefixBits()
	}
	return 0
}

func (p PolymorphicAddress) HasPrefix() bool {
	switch p.family {
	case FamilyIPv4:
		return p.v4.HasPrefix()
	case FamilyIPv6:
		return p.v6.HasPrefix()
	}
	return false
}

func (p PolymorphicAddress) Part(i int) int {
	switch p.family {
	case FamilyIPv4:
		return p.v4.Part(i)
	case FamilyIPv6:
		return p.v6.Part(i)
	}
	return 0
}

func (p PolymorphicAddress) Network() string {
	switch p.family {
	case FamilyIPv4:
		return p.v4.Network()
	case FamilyIPv6:
		return p.v6.Network()
	}
	return ""
}

func (p PolymorphicAddress) NetworkContains(candidate string) bool {
	switch p.family {
	case FamilyIPv4:
		return p.v4.NetworkContains(candidate)
	case FamilyIPv6:
		return p.v6.NetworkContains(candidate)
	}
	return false
}

// compare orders two addresses of the same family numerically.
// ok is false when the families differ or either side is unassigned.
func (p PolymorphicAddress) compare(o PolymorphicAddress) (c int, ok bool) {
	if p.family != o.family {
		return 0, false
	}
	switch p.family {
	case FamilyIPv4:
		a, b := p.v4.AddressCompact(), o.v4.AddressCompact()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case FamilyIPv6:
		return p.v6.compare(o.v6), true
	}
	return 0, false
}

func (p PolymorphicAddress) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PolymorphicAddress) UnmarshalText(text []byte) error { return p.Assign(string(text)) }

func (p PolymorphicAddress) MarshalYAML() (any, error) { return p.String(), nil }

func (p *PolymorphicAddress) UnmarshalYAML(node *yaml.Node) error { return AssignNode(p, node) }
