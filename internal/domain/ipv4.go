package domain

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const ipv4Param = "ipv4"

// IPv4Value is an IPv4 address with an optional prefix length.
// The zero value is 0.0.0.0 with no prefix.
type IPv4Value struct {
	addr      uint32
	prefix    int
	hasPrefix bool
}

// ParseIPv4 parses a dotted quad or a 32-bit decimal, optionally followed
// by "/" and a prefix length, a dotted netmask, or a 32-bit decimal netmask.
func ParseIPv4(text string) (IPv4Value, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return IPv4Value{}, FormatError(ipv4Param, text, "empty address")
	}

	addrPart, maskPart, hasMask := strings.Cut(s, "/")
	addr, err := parseIPv4Address(text, addrPart)
	if err != nil {
		return IPv4Value{}, err
	}

	v := IPv4Value{addr: addr}
	if hasMask {
		prefix, err := parseIPv4Netmask(text, maskPart)
		if err != nil {
			return IPv4Value{}, err
		}
		v.prefix, v.hasPrefix = prefix, true
	}
	return v, nil
}

func parseIPv4Address(input, s string) (uint32, error) {
	if !strings.Contains(s, ".") {
		n, err := parseDecimal(ipv4Param, input, s, 1<<32-1)
		return uint32(n), err
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, FormatError(ipv4Param, input, fmt.Sprintf("expected 4 octets, got %d", len(parts)))
	}
	var addr uint32
	for _, p := range parts {
		if len(p) > 3 {
			if !isDigits(p) {
				return 0, FormatError(ipv4Param, input, "octet "+strconv.Quote(p)+" is not decimal")
			}
			return 0, RangeError(ipv4Param, input, "octet "+p+" exceeds 255")
		}
		n, err := parseDecimal(ipv4Param, input, p, 255)
		if err != nil {
			return 0, err
		}
		addr = addr<<8 | uint32(n)
	}
	return addr, nil
}

// parseIPv4Netmask accepts a prefix length 0-32, a dotted mask or a 32-bit
// decimal mask, and returns the prefix length.
func parseIPv4Netmask(input, s string) (int, error) {
	var mask uint32
	if strings.Contains(s, ".") {
		m, err := parseIPv4Address(input, s)
		if err != nil {
			return 0, err
		}
		mask = m
	} else {
		n, err := parseDecimal(ipv4Param, input, s, 1<<32-1)
		if err != nil {
			return 0, err
		}
		if n <= 32 {
			return int(n), nil
		}
		// Every contiguous mask other than 0 has the top bit set.
		if n < 1<<31 {
			return 0, RangeError(ipv4Param, input, "prefix length must be 0-32")
		}
		mask = uint32(n)
	}

	prefix, err := CompactToSimple(mask)
	if err != nil {
		return 0, FormatError(ipv4Param, input, "invalid netmask")
	}
	return prefix, nil
}

// SimpleToCompact converts a prefix length to its 32-bit mask.
func SimpleToCompact(prefix int) (uint32, error) {
	if prefix < 0 || prefix > 32 {
		return 0, RangeError(ipv4Param, strconv.Itoa(prefix), "prefix length must be 0-32")
	}
	return maskFor(prefix), nil
}

// CompactToSimple converts a 32-bit mask to a prefix length. The mask
// must be a run of leading ones followed only by zeros.
func CompactToSimple(mask uint32) (int, error) {
	ones := bits.LeadingZeros32(^mask)
	if maskFor(ones) != mask {
		return 0, FormatError(ipv4Param, formatIPv4(mask), "invalid netmask")
	}
	return ones, nil
}

func maskFor(prefix int) uint32 {
	if prefix <= 0 {
		return 0
	}
	return ^uint32(0) << (32 - prefix)
}

func formatIPv4(a uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", a>>24, a>>16&0xff, a>>8&0xff, a&0xff)
}

func (IPv4Value) ParamType() string { return ipv4Param }
func (IPv4Value) Family() Family    { return FamilyIPv4 }
func (IPv4Value) Version() int      { return 4 }
func (*IPv4Value) address()         {}

// Address renders the dotted quad without the prefix.
func (v IPv4Value) Address() string { return formatIPv4(v.addr) }

// String renders the dotted quad, followed by "/N" when a prefix was given.
func (v IPv4Value) String() string {
	if v.hasPrefix {
		return formatIPv4(v.addr) + "/" + strconv.Itoa(v.prefix)
	}
	return formatIPv4(v.addr)
}

// Assign parses text and replaces the value only on success.
func (v *IPv4Value) Assign(text string) error {
	parsed, err := ParseIPv4(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v IPv4Value) HasPrefix() bool { return v.hasPrefix }

func (v IPv4Value) PrefixBits() int {
	if !v.hasPrefix {
		return 32
	}
	return v.prefix
}

func (v IPv4Value) Part(i int) int {
	if i < 0 || i > 3 {
		return 0
	}
	return int(v.addr >> (24 - 8*i) & 0xff)
}

func (v IPv4Value) Parts() []int {
	return []int{v.Part(0), v.Part(1), v.Part(2), v.Part(3)}
}

// SetParts replaces the four octets and keeps the prefix.
func (v *IPv4Value) SetParts(a, b, c, d int) error {
	var addr uint32
	for _, o := range []int{a, b, c, d} {
		if o < 0 || o > 255 {
			return RangeError(ipv4Param, fmt.Sprintf("%d.%d.%d.%d", a, b, c, d), "octet "+strconv.Itoa(o)+" outside 0-255")
		}
		addr = addr<<8 | uint32(o)
	}
	v.addr = addr
	return nil
}

// SetPrefix sets the prefix length.
func (v *IPv4Value) SetPrefix(prefix int) error {
	if prefix < 0 || prefix > 32 {
		return RangeError(ipv4Param, strconv.Itoa(prefix), "prefix length must be 0-32")
	}
	v.prefix, v.hasPrefix = prefix, true
	return nil
}

// SetNetmask sets the prefix from any accepted netmask form.
func (v *IPv4Value) SetNetmask(text string) error {
	prefix, err := parseIPv4Netmask(text, strings.TrimSpace(text))
	if err != nil {
		return err
	}
	v.prefix, v.hasPrefix = prefix, true
	return nil
}

// ClearPrefix drops the prefix so the value is a single host again.
func (v *IPv4Value) ClearPrefix() {
	v.prefix, v.hasPrefix = 0, false
}

func (v IPv4Value) AddressCompact() uint32 { return v.addr }
func (v IPv4Value) NetmaskCompact() uint32 { return maskFor(v.PrefixBits()) }
func (v IPv4Value) NetmaskString() string  { return formatIPv4(v.NetmaskCompact()) }

// Network renders the network address, keeping the prefix suffix if any.
func (v IPv4Value) Network() string {
	n := IPv4Value{addr: v.addr & v.NetmaskCompact(), prefix: v.prefix, hasPrefix: v.hasPrefix}
	return n.String()
}

// Broadcast renders the all-ones host address of the network.
func (v IPv4Value) Broadcast() string {
	return formatIPv4(v.addr | ^v.NetmaskCompact())
}

func (v IPv4Value) NetworkContains(candidate string) bool {
	c, err := ParseIPv4(candidate)
	if err != nil {
		return false
	}
	mask := v.NetmaskCompact()
	return v.addr&mask == c.addr&mask
}

func (v IPv4Value) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *IPv4Value) UnmarshalText(text []byte) error { return v.Assign(string(text)) }

func (v IPv4Value) MarshalYAML() (any, error) { return v.String(), nil }

func (v *IPv4Value) UnmarshalYAML(node *yaml.Node) error { return AssignNode(v, node) }
