package domain

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BooleanCode stores one of twelve boolean spellings. Synonym pairs sit on
// adjacent ordinals so the truth value is the parity: even is true.
type BooleanCode int

const (
	BoolYes BooleanCode = iota
	BoolNo
	BoolOn
	BoolOff
	BoolEnable
	BoolDisable
	BoolEnabled
	BoolDisabled
	BoolUp
	BoolDown
	BoolSet
	BoolUnset

	booleanCodeCount
)

var booleanNames = [booleanCodeCount]string{
	"yes", "no", "on", "off", "enable", "disable",
	"enabled", "disabled", "up", "down", "set", "unset",
}

const booleanParam = "boolean"

// ParamType returns "boolean".
func (BooleanCode) ParamType() string { return booleanParam }

// String returns the lowercase symbol name.
func (b BooleanCode) String() string {
	if b < 0 || b >= booleanCodeCount {
		return "BooleanCode(" + strconv.Itoa(int(b)) + ")"
	}
	return booleanNames[b]
}

// IsTrue reports whether the ordinal is even.
func (b BooleanCode) IsTrue() bool { return b%2 == 0 }

// IsFalse reports whether the ordinal is odd.
func (b BooleanCode) IsFalse() bool { return !b.IsTrue() }

// EnableWith moves to the true representative nearest to hint.
func (b *BooleanCode) EnableWith(hint BooleanCode) {
	*b = (hint + hint%2) % booleanCodeCount
}

// DisableWith moves to the false representative nearest to hint.
func (b *BooleanCode) DisableWith(hint BooleanCode) {
	*b = (hint + (1 - hint%2)) % booleanCodeCount
}

// Named wrappers apply the parity transform with their own symbol as hint.

func (b *BooleanCode) Yes()      { b.EnableWith(BoolYes) }
func (b *BooleanCode) No()       { b.DisableWith(BoolNo) }
func (b *BooleanCode) On()       { b.EnableWith(BoolOn) }
func (b *BooleanCode) Off()      { b.DisableWith(BoolOff) }
func (b *BooleanCode) Enable()   { b.EnableWith(BoolEnable) }
func (b *BooleanCode) Disable()  { b.DisableWith(BoolDisable) }
func (b *BooleanCode) Enabled()  { b.EnableWith(BoolEnabled) }
func (b *BooleanCode) Disabled() { b.DisableWith(BoolDisabled) }
func (b *BooleanCode) Up()       { b.EnableWith(BoolUp) }
func (b *BooleanCode) Down()     { b.DisableWith(BoolDown) }
func (b *BooleanCode) Set()      { b.EnableWith(BoolSet) }
func (b *BooleanCode) Unset()    { b.DisableWith(BoolUnset) }

// Assign accepts a symbol name in any case, "true"/"false", or an ordinal 0-11.
func (b *BooleanCode) Assign(text string) error {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "true":
		*b = BoolYes
		return nil
	case "false":
		*b = BoolNo
		return nil
	}
	for i, name := range booleanNames {
		if s == name {
			*b = BooleanCode(i)
			return nil
		}
	}
	if isDigits(s) {
		n, err := parseDecimal(booleanParam, text, s, uint64(booleanCodeCount-1))
		if err != nil {
			return err
		}
		*b = BooleanCode(n)
		return nil
	}
	return FormatError(booleanParam, text, "unknown boolean symbol")
}

// ParseBooleanCode parses text into a new BooleanCode.
func ParseBooleanCode(text string) (BooleanCode, error) {
	var b BooleanCode
	if err := b.Assign(text); err != nil {
		return BoolYes, err
	}
	return b, nil
}

func (b BooleanCode) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BooleanCode) UnmarshalText(text []byte) error { return b.Assign(string(text)) }

func (b BooleanCode) MarshalYAML() (any, error) { return b.String(), nil }

func (b *BooleanCode) UnmarshalYAML(node *yaml.Node) error { return AssignNode(b, node) }
