package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const ipv6Param = "ipv6"

// IPv6Value is an IPv6 address with an optional prefix length.
// The zero value is :: with no prefix.
type IPv6Value struct {
	groups    [8]uint16
	prefix    int
	hasPrefix bool
}

// ParseIPv6 parses full or "::"-compressed hextet notation, optionally
// followed by "/" and a prefix length 0-128. Dotted IPv4 tails are refused;
// use AssignIPv4 to embed an IPv4 address.
func ParseIPv6(text string) (IPv6Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return IPv6Value{}, FormatError(ipv6Param, text, "empty address")
	}

	addrPart, prefixPart, hasPrefix := strings.Cut(s, "/")
	groups, err := parseIPv6Groups(text, addrPart)
	if err != nil {
		return IPv6Value{}, err
	}

	v := IPv6Value{groups: groups}
	if hasPrefix {
		n, err := parseDecimal(ipv6Param, text, prefixPart, 128)
		if err != nil {
			return IPv6Value{}, err
		}
		v.prefix, v.hasPrefix = int(n), true
	}
	return v, nil
}

func parseIPv6Groups(input, s string) ([8]uint16, error) {
	var groups [8]uint16
	if s == "" {
		return groups, FormatError(ipv6Param, input, "empty address")
	}
	if strings.Contains(s, ".") {
		return groups, FormatError(ipv6Param, input, "embedded IPv4 notation is not accepted")
	}

	head, tail, compressed := strings.Cut(s, "::")
	if compressed && strings.Contains(tail, "::") {
		return groups, FormatError(ipv6Param, input, "more than one \"::\"")
	}

	hs, err := parseHextets(input, head)
	if err != nil {
		return groups, err
	}
	ts, err := parseHextets(input, tail)
	if err != nil {
		return groups, err
	}

	if compressed {
		if len(hs)+len(ts) > 7 {
			return groups, FormatError(ipv6Param, input, "too many groups around \"::\"")
		}
		copy(groups[:], hs)
		copy(groups[8-len(ts):], ts)
		return groups, nil
	}
	if len(hs) != 8 {
		return groups, FormatError(ipv6Param, input, fmt.Sprintf("expected 8 groups, got %d", len(hs)))
	}
	copy(groups[:], hs)
	return groups, nil
}

func parseHextets(input, s string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ":")
	out := make([]uint16, 0, len(fields))
	for _, f := range fields {
		if len(f) < 1 || len(f) > 4 || !isHexDigits(f) {
			return nil, FormatError(ipv6Param, input, "group "+strconv.Quote(f)+" is not 1-4 hex digits")
		}
		n, _ := strconv.ParseUint(f, 16, 16)
		out = append(out, uint16(n))
	}
	return out, nil
}

// formatIPv6 renders the RFC 5952 form: lowercase, no leading zeros, and
// the first longest run of two or more zero groups replaced by "::".
func formatIPv6(g [8]uint16) string {
	bestStart, bestLen := -1, 0
	for i := 0; i < 8; {
		if g[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && g[j] == 0 {
			j++
		}
		if j-i > bestLen {
			bestStart, bestLen = i, j-i
		}
		i = j
	}
	if bestLen < 2 {
		bestStart, bestLen = -1, 0
	}

	var b strings.Builder
	for i := 0; i < 8; i++ {
		if i == bestStart {
			b.WriteString("::")
			i += bestLen - 1
			continue
		}
		if i > 0 && i != bestStart+bestLen {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(uint64(g[i]), 16))
	}
	return b.String()
}

func (IPv6Value) ParamType() string { return ipv6Param }
func (IPv6Value) Family() Family    { return FamilyIPv6 }
func (IPv6Value) Version() int      { return 6 }
func (*IPv6Value) address()         {}

// Address renders the canonical compressed address without the prefix.
func (v IPv6Value) Address() string { return formatIPv6(v.groups) }

// String renders the canonical address, followed by "/N" when a prefix was given.
func (v IPv6Value) String() string {
	if v.hasPrefix {
		return formatIPv6(v.groups) + "/" + strconv.Itoa(v.prefix)
	}
	return formatIPv6(v.groups)
}

// Expanded renders all eight groups as four hex digits, without the prefix.
func (v IPv6Value) Expanded() string {
	parts := make([]string, 8)
	for i, g := range v.groups {
		parts[i] = fmt.Sprintf("%04x", g)
	}
	return strings.Join(parts, ":")
}

// Assign parses text and replaces the value only on success.
func (v *IPv6Value) Assign(text string) error {
	parsed, err := ParseIPv6(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// AssignIPv4 stores the IPv4-mapped form ::ffff:a.b.c.d. An IPv4 prefix p
// becomes 96+p.
func (v *IPv6Value) AssignIPv4(v4 IPv4Value) {
	a := v4.AddressCompact()
	*v = IPv6Value{groups: [8]uint16{0, 0, 0, 0, 0, 0xffff, uint16(a >> 16), uint16(a)}}
	if v4.HasPrefix() {
		v.prefix, v.hasPrefix = 96+v4.PrefixBits(), true
	}
}

// IPv4 returns the embedded address when v is IPv4-mapped.
func (v IPv6Value) IPv4() (IPv4Value, bool) {
	for _, g := range v.groups[:5] {
		if g != 0 {
			return IPv4Value{}, false
		}
	}
	if v.groups[5] != 0xffff {
		return IPv4Value{}, false
	}
	out := IPv4Value{addr: uint32(v.groups[6])<<16 | uint32(v.groups[7])}
	if v.hasPrefix && v.prefix >= 96 {
		out.prefix, out.hasPrefix = v.prefix-96, true
	}
	return out, true
}

func (v IPv6Value) HasPrefix() bool { return v.hasPrefix }

func (v IPv6Value) PrefixBits() int {
	if !v.hasPrefix {
		return 128
	}
	return v.prefix
}

func (v IPv6Value) Part(i int) int {
	if i < 0 || i > 7 {
		return 0
	}
	return int(v.groups[i])
}

func (v IPv6Value) Parts() []int {
	out := make([]int, 8)
	for i, g := range v.groups {
		out[i] = int(g)
	}
	return out
}

// SetPrefix sets the prefix length.
func (v *IPv6Value) SetPrefix(prefix int) error {
	if prefix < 0 || prefix > 128 {
		return RangeError(ipv6Param, strconv.Itoa(prefix), "prefix length must be 0-128")
	}
	v.prefix, v.hasPrefix = prefix, true
	return nil
}

func (v *IPv6Value) ClearPrefix() {
	v.prefix, v.hasPrefix = 0, false
}

func (v IPv6Value) masked() [8]uint16 {
	var out [8]uint16
	bitsLeft := v.PrefixBits()
	for i, g := range v.groups {
		n := min(max(bitsLeft-16*i, 0), 16)
		out[i] = g & (uint16(0xffff) << (16 - n))
	}
	return out
}

// Network renders the address with host bits cleared, keeping the prefix suffix if any.
func (v IPv6Value) Network() string {
	n := IPv6Value{groups: v.masked(), prefix: v.prefix, hasPrefix: v.hasPrefix}
	return n.String()
}

func (v IPv6Value) NetworkContains(candidate string) bool {
	c, err := ParseIPv6(candidate)
	if err != nil {
		return false
	}
	c.prefix, c.hasPrefix = v.prefix, v.hasPrefix
	return v.masked() == c.masked()
}

// compare orders two addresses numerically, ignoring prefixes.
func (v IPv6Value) compare(o IPv6Value) int {
	for i := range v.groups {
		if v.groups[i] != o.groups[i] {
			return sign(int(v.groups[i]) - int(o.groups[i]))
		}
	}
	return 0
}

func (v IPv6Value) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *IPv6Value) UnmarshalText(text []byte) error { return v.Assign(string(text)) }

func (v IPv6Value) MarshalYAML() (any, error) { return v.String(), nil }

func (v *IPv6Value) UnmarshalYAML(node *yaml.Node) error { return AssignNode(v, node) }
