package domain

import "strings"

// Family identifies the address family of an AddressValue.
type Family int

const (
	FamilyNone Family = iota
	FamilyIPv4
	FamilyIPv6
)

// String returns "inet", "inet6", or "" for FamilyNone.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "inet"
	case FamilyIPv6:
		return "inet6"
	}
	return ""
}

// AddressValue is implemented by *IPv4Value and *IPv6Value only.
type AddressValue interface {
	Param

	Family() Family
	// Version returns 4 or 6.
	Version() int
	// Address renders the address without its prefix.
	Address() string
	// PrefixBits returns the prefix length, the full width when none was given.
	PrefixBits() int
	HasPrefix() bool
	// Part returns the i-th octet (IPv4) or hextet (IPv6), 0 when i is out of range.
	Part(i int) int
	Parts() []int
	// Network renders the address with host bits cleared.
	Network() string
	// NetworkContains reports whether candidate falls in this address's network.
	// Unparseable or other-family candidates are not contained.
	NetworkContains(candidate string) bool

	address()
}

// ParseAddress parses text as IPv6 when it contains ':' and as IPv4 otherwise.
func ParseAddress(text string) (AddressValue, error) {
	if strings.Contains(text, ":") {
		v, err := ParseIPv6(text)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	v, err := ParseIPv4(text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
