package domain

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const addressRangeParam = "address_range"

// AddressRange is an inclusive span of addresses, optionally negated.
// Text form is ["!"] from ":" to, with IPv6 endpoints written in brackets
// so the separator stays unambiguous.
type AddressRange struct {
	From    PolymorphicAddress
	To      PolymorphicAddress
	Negated bool
}

// NewAddressRange parses text into a new AddressRange.
func NewAddressRange(text string) (AddressRange, error) {
	var r AddressRange
	err := r.Assign(text)
	return r, err
}

func (AddressRange) ParamType() string { return addressRangeParam }

func (r AddressRange) String() string {
	if !r.From.IsAssigned() && !r.To.IsAssigned() {
		return ""
	}
	prefix := ""
	if r.Negated {
		prefix = "!"
	}
	return prefix + rangeEndpoint(r.From) + ":" + rangeEndpoint(r.To)
}

func rangeEndpoint(p PolymorphicAddress) string {
	if p.Family() == FamilyIPv6 {
		return "[" + p.String() + "]"
	}
	return p.String()
}

// Assign parses ["!"] from ":" to. Without brackets, IPv6 endpoints are
// split at the only ':' position where both halves parse. Empty text clears
// the range.
func (r *AddressRange) Assign(text string) error {
	s := strings.TrimSpace(text)
	if s == "" {
		*r = AddressRange{}
		return nil
	}

	negated := false
	if strings.HasPrefix(s, "!") {
		negated = true
		s = strings.TrimSpace(s[1:])
	}

	from, to, err := splitRange(text, s)
	if err != nil {
		return err
	}
	var next AddressRange
	if err := next.From.Assign(from); err != nil {
		return err
	}
	if err := next.To.Assign(to); err != nil {
		return err
	}
	next.Negated = negated
	*r = next
	return nil
}

func splitRange(input, s string) (string, string, error) {
	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return "", "", FormatError(addressRangeParam, input, "unterminated '['")
		}
		rest := s[end+1:]
		if !strings.HasPrefix(rest, ":") {
			return "", "", FormatError(addressRangeParam, input, "expected ':' after bracketed address")
		}
		return nonEmptyEndpoints(input, s[1:end], unbracket(rest[1:]))
	}

	if strings.HasSuffix(s, "]") {
		i := strings.LastIndex(s, ":[")
		if i < 0 {
			return "", "", FormatError(addressRangeParam, input, "unmatched ']'")
		}
		return nonEmptyEndpoints(input, s[:i], s[i+2:len(s)-1])
	}

	switch strings.Count(s, ":") {
	case 0:
		return "", "", FormatError(addressRangeParam, input, "expected from:to")
	case 1:
		from, to, _ := strings.Cut(s, ":")
		return nonEmptyEndpoints(input, from, to)
	}

	// Unbracketed IPv6: accept the split only if exactly one position works.
	var from, to string
	matches := 0
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		var a, b PolymorphicAddress
		if s[:i] == "" || s[i+1:] == "" {
			continue
		}
		if a.Assign(s[:i]) == nil && b.Assign(s[i+1:]) == nil {
			from, to = s[:i], s[i+1:]
			matches++
		}
	}
	switch matches {
	case 0:
		return "", "", FormatError(addressRangeParam, input, "no valid from:to split")
	case 1:
		return from, to, nil
	}
	return "", "", FormatError(addressRangeParam, input, "ambiguous IPv6 range, bracket the endpoints")
}

func unbracket(s string) string {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1]
	}
	return s
}

func nonEmptyEndpoints(input, from, to string) (string, string, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return "", "", FormatError(addressRangeParam, input, "both endpoints are required")
	}
	return from, to, nil
}

// Covers reports whether candidate lies between From and To inclusive,
// inverted when the range is negated. Candidates of another family than the
// endpoints are never covered.
func (r AddressRange) Covers(candidate string) bool {
	c, err := NewPolymorphicAddress(candidate)
	if err != nil || !c.IsAssigned() {
		return false
	}
	lo, ok := c.compare(r.From)
	if !ok {
		return false
	}
	hi, ok := c.compare(r.To)
	if !ok {
		return false
	}
	in := lo >= 0 && hi <= 0
	return in != r.Negated
}

func (r AddressRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *AddressRange) UnmarshalText(text []byte) error { return r.Assign(string(text)) }

func (r AddressRange) MarshalYAML() (any, error) { return r.String(), nil }

func (r *AddressRange) UnmarshalYAML(node *yaml.Node) error { return AssignNode(r, node) }
