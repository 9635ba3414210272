package domain

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	portParam     = "port"
	portListParam = "port_list"

	// InvalidPort marks a missing range bound.
	InvalidPort = -1
	maxPort     = 65535
)

// PortValue is a single port or a port range, optionally negated.
//
//	port := ["!"] ( [num] ":" num | num [":" [num]] )
//
// A range with a missing bound is open on that side: From or To reports
// InvalidPort and Contains treats the bound as 0 or 65535.
// The zero value is empty and renders as "".
type PortValue struct {
	negated bool
	isRange bool
	lo, hi  int
	hasLo   bool
	hasHi   bool
}

// ParsePort parses text into a new PortValue.
func ParsePort(text string) (PortValue, error) {
	input := text
	s := strings.TrimSpace(text)
	var p PortValue
	if strings.HasPrefix(s, "!") {
		p.negated = true
		s = s[1:]
	}
	if s == "" {
		return PortValue{}, FormatError(portParam, input, "empty port")
	}

	lo, hi, isRange := strings.Cut(s, ":")
	if !isRange {
		n, err := parseDecimal(portParam, input, s, maxPort)
		if err != nil {
			return PortValue{}, err
		}
		p.lo, p.hi, p.hasLo, p.hasHi = int(n), int(n), true, true
		return p, nil
	}

	p.isRange = true
	if lo == "" && hi == "" {
		return PortValue{}, FormatError(portParam, input, "range needs at least one bound")
	}
	if lo != "" {
		n, err := parseDecimal(portParam, input, lo, maxPort)
		if err != nil {
			return PortValue{}, err
		}
		p.lo, p.hasLo = int(n), true
	}
	if hi != "" {
		n, err := parseDecimal(portParam, input, hi, maxPort)
		if err != nil {
			return PortValue{}, err
		}
		p.hi, p.hasHi = int(n), true
	}
	if p.hasLo && p.hasHi && p.lo > p.hi {
		return PortValue{}, RangeError(portParam, input, "range start exceeds end")
	}
	return p, nil
}

func (PortValue) ParamType() string { return portParam }

// Assign parses text. Unlike the other values, a failed parse leaves the
// port in its empty default state rather than keeping the previous value.
func (p *PortValue) Assign(text string) error {
	parsed, err := ParsePort(text)
	*p = parsed
	return err
}

// SetPort makes p the single, non-negated port n.
func (p *PortValue) SetPort(n int) error {
	if n < 0 || n > maxPort {
		return RangeError(portParam, strconv.Itoa(n), "port must be 0-65535")
	}
	*p = PortValue{lo: n, hi: n, hasLo: true, hasHi: true}
	return nil
}

// SetRange makes p the range from:to, keeping negation. InvalidPort leaves
// that side open, but not both.
func (p *PortValue) SetRange(from, to int) error {
	input := strconv.Itoa(from) + ":" + strconv.Itoa(to)
	next := PortValue{negated: p.negated, isRange: true}
	if from != InvalidPort {
		if from < 0 || from > maxPort {
			return RangeError(portParam, input, "port must be 0-65535")
		}
		next.lo, next.hasLo = from, true
	}
	if to != InvalidPort {
		if to < 0 || to > maxPort {
			return RangeError(portParam, input, "port must be 0-65535")
		}
		next.hi, next.hasHi = to, true
	}
	switch {
	case !next.hasLo && !next.hasHi:
		return FormatError(portParam, input, "range needs at least one bound")
	case next.hasLo && next.hasHi && from > to:
		return RangeError(portParam, input, "range start exceeds end")
	}
	*p = next
	return nil
}

// SetNegated sets or clears the leading "!".
func (p *PortValue) SetNegated(neg bool) { p.negated = neg }

func (p PortValue) Negated() bool { return p.negated }
func (p PortValue) IsRange() bool { return p.isRange }
func (p PortValue) HasFrom() bool { return p.hasLo }
func (p PortValue) HasTo() bool   { return p.hasHi }
func (p PortValue) IsEmpty() bool { return !p.hasLo && !p.hasHi }

// From returns the lower bound or InvalidPort.
func (p PortValue) From() int {
	if !p.hasLo {
		return InvalidPort
	}
	return p.lo
}

// To returns the upper bound or InvalidPort.
func (p PortValue) To() int {
	if !p.hasHi {
		return InvalidPort
	}
	return p.hi
}

// Bounds returns the effective inclusive bounds with open sides filled in.
func (p PortValue) Bounds() (lo, hi int) {
	lo, hi = 0, maxPort
	if p.hasLo {
		lo = p.lo
	}
	if p.hasHi {
		hi = p.hi
	}
	return lo, hi
}

// Contains reports whether port matches, honoring negation. An empty
// value matches nothing.
func (p PortValue) Contains(port int) bool {
	if p.IsEmpty() {
		return false
	}
	lo, hi := p.Bounds()
	in := port >= lo && port <= hi
	return in != p.negated
}

// String renders the canonical form; missing bounds render empty.
func (p PortValue) String() string {
	if p.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if p.negated {
		b.WriteByte('!')
	}
	if p.hasLo {
		b.WriteString(strconv.Itoa(p.lo))
	}
	if p.isRange {
		b.WriteByte(':')
		if p.hasHi {
			b.WriteString(strconv.Itoa(p.hi))
		}
	}
	return b.String()
}

func (p PortValue) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PortValue) UnmarshalText(text []byte) error { return p.Assign(string(text)) }

func (p PortValue) MarshalYAML() (any, error) { return p.String(), nil }

func (p *PortValue) UnmarshalYAML(node *yaml.Node) error { return AssignNode(p, node) }

// PortList is an ordered set of PortValue keyed by canonical text.
// Adding a port whose text is already present overwrites that element.
type PortList struct {
	listBase[PortValue]
}

func (PortList) ParamType() string { return portListParam }

// Add parses text and inserts it by key.
func (l *PortList) Add(text string) (PortValue, error) {
	p, err := ParsePort(text)
	if err != nil {
		return PortValue{}, err
	}
	l.items.put(p.String(), p)
	return p, nil
}

// Put inserts an already built port by key. Empty ports are ignored.
func (l *PortList) Put(p PortValue) {
	if p.IsEmpty() {
		return
	}
	l.items.put(p.String(), p)
}

// Delete removes the port matching text, canonicalized when it parses.
func (l *PortList) Delete(text string) bool {
	if p, err := ParsePort(text); err == nil {
		text = p.String()
	}
	return l.items.remove(strings.TrimSpace(text))
}

// Get returns the port stored under the canonical form of text.
func (l PortList) Get(text string) (PortValue, bool) {
	if p, err := ParsePort(text); err == nil {
		text = p.String()
	}
	return l.items.get(text)
}

// Ports returns the ports in insertion order.
func (l PortList) Ports() []PortValue { return l.items.values() }

// Contains reports whether any element matches port.
func (l PortList) Contains(port int) bool {
	for _, p := range l.items.values() {
		if p.Contains(port) {
			return true
		}
	}
	return false
}

// Assign replaces the contents from list text. The list is unchanged on error.
func (l *PortList) Assign(text string) error {
	items, err := l.brackets.split(portListParam, text)
	if err != nil {
		return err
	}
	return l.AssignItems(items)
}

// AssignItems replaces the contents with the parsed items. The list is unchanged on error.
func (l *PortList) AssignItems(items []string) error {
	var next keyed[PortValue]
	for _, item := range items {
		p, err := ParsePort(item)
		if err != nil {
			return err
		}
		next.put(p.String(), p)
	}
	l.items = next
	return nil
}

func (l *PortList) UnmarshalText(text []byte) error { return l.Assign(string(text)) }

func (l *PortList) UnmarshalYAML(node *yaml.Node) error { return AssignNode(l, node) }

func (l *PortList) UnmarshalJSON(data []byte) error { return unmarshalListJSON(l, data) }
