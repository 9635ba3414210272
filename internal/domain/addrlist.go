package domain

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	addressListParam     = "address_list"
	polyAddressListParam = "polymorphic_address_list"
)

// listBase holds the rendering shared by every keyed list.
type listBase[T any] struct {
	items    keyed[T]
	brackets Brackets
}

// Len returns the number of elements.
func (l listBase[T]) Len() int { return l.items.len() }

// Items returns the canonical text of each element in insertion order.
func (l listBase[T]) Items() []string { return l.items.keys() }

// String renders "" when empty, the bare element when there is one, and a
// bracketed comma join otherwise.
func (l listBase[T]) String() string { return l.brackets.render(l.items.keys()) }

// Brackets returns the delimiters used for two or more elements.
func (l listBase[T]) Brackets() Brackets { return l.brackets.orDefault() }

// SetBrackets changes the delimiters used for two or more elements.
func (l *listBase[T]) SetBrackets(open, closing rune) {
	l.brackets = Brackets{Open: open, Close: closing}
}

// Clear removes every element.
func (l *listBase[T]) Clear() { l.items = keyed[T]{} }

func (l listBase[T]) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l listBase[T]) MarshalYAML() (any, error) { return l.Items(), nil }

func (l listBase[T]) MarshalJSON() ([]byte, error) {
	items := l.Items()
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// unmarshalListJSON accepts a JSON array of strings or a single string in list text form.
func unmarshalListJSON(lp ListParam, data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		return lp.AssignItems(items)
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return TypeMismatchError(lp.ParamType(), "expected a string or an array of strings")
	}
	return lp.Assign(text)
}

// AddressList is an ordered set of concrete addresses keyed by canonical text.
type AddressList struct {
	listBase[AddressValue]
}

func (AddressList) ParamType() string { return addressListParam }

// Add parses text and appends it, or replaces the element with the same
// canonical text in place.
func (l *AddressList) Add(text string) (AddressValue, error) {
	v, err := ParseAddress(text)
	if err != nil {
		return nil, err
	}
	l.items.put(v.String(), v)
	return v, nil
}

// Remove deletes the element matching text, canonicalized when it parses.
func (l *AddressList) Remove(text string) bool {
	if v, err := ParseAddress(text); err == nil {
		text = v.String()
	}
	return l.items.remove(strings.TrimSpace(text))
}

// Elements returns the addresses in insertion order.
func (l AddressList) Elements() []AddressValue { return l.items.values() }

// Assign replaces the contents from list text. The list is unchanged on error.
func (l *AddressList) Assign(text string) error {
	items, err := l.brackets.split(addressListParam, text)
	if err != nil {
		return err
	}
	return l.AssignItems(items)
}

// AssignItems replaces the contents with the parsed items. The list is unchanged on error.
func (l *AddressList) AssignItems(items []string) error {
	var next keyed[AddressValue]
	for _, item := range items {
		v, err := ParseAddress(item)
		if err != nil {
			return err
		}
		next.put(v.String(), v)
	}
	l.items = next
	return nil
}

// NetworkAvailability reports whether any element's network contains ip.
func (l AddressList) NetworkAvailability(ip string) bool {
	for _, v := range l.items.values() {
		if v.NetworkContains(ip) {
			return true
		}
	}
	return false
}

func (l *AddressList) UnmarshalText(text []byte) error { return l.Assign(string(text)) }

func (l *AddressList) UnmarshalYAML(node *yaml.Node) error { return AssignNode(l, node) }

func (l *AddressList) UnmarshalJSON(data []byte) error { return unmarshalListJSON(l, data) }

// PolymorphicAddressList is an ordered set of PolymorphicAddress values
// keyed by canonical text.
type PolymorphicAddressList struct {
	listBase[PolymorphicAddress]
}

func (PolymorphicAddressList) ParamType() string { return polyAddressListParam }

// Add parses text and appends it, or replaces the element with the same
// canonical text in place. Empty text is refused.
func (l *PolymorphicAddressList) Add(text string) (PolymorphicAddress, error) {
	p, err := parseListAddress(polyAddressListParam, text)
	if err != nil {
		return PolymorphicAddress{}, err
	}
	l.items.put(p.String(), p)
	return p, nil
}

// Remove deletes the element matching text, canonicalized when it parses.
func (l *PolymorphicAddressList) Remove(text string) bool {
	if p, err := parseListAddress(polyAddressListParam, text); err == nil {
		text = p.String()
	}
	return l.items.remove(strings.TrimSpace(text))
}

// Elements returns the addresses in insertion order.
func (l PolymorphicAddressList) Elements() []PolymorphicAddress { return l.items.values() }

// Assign replaces the contents from list text. The list is unchanged on error.
func (l *PolymorphicAddressList) Assign(text string) error {
	items, err := l.brackets.split(polyAddressListParam, text)
	if err != nil {
		return err
	}
	return l.AssignItems(items)
}

// AssignItems replaces the contents with the parsed items. The list is unchanged on error.
func (l *PolymorphicAddressList) AssignItems(items []string) error {
	var next keyed[PolymorphicAddress]
	for _, item := range items {
		p, err := parseListAddress(polyAddressListParam, item)
		if err != nil {
			return err
		}
		next.put(p.String(), p)
	}
	l.items = next
	return nil
}

// NetworkAvailability reports whether any element's network contains ip.
func (l PolymorphicAddressList) NetworkAvailability(ip string) bool {
	for _, p := range l.items.values() {
		if p.NetworkContains(ip) {
			return true
		}
	}
	return false
}

func (l *PolymorphicAddressList) UnmarshalText(text []byte) error { return l.Assign(string(text)) }

func (l *PolymorphicAddressList) UnmarshalYAML(node *yaml.Node) error { return AssignNode(l, node) }

func (l *PolymorphicAddressList) UnmarshalJSON(data []byte) error { return unmarshalListJSON(l, data) }

func parseListAddress(param, text string) (PolymorphicAddress, error) {
	if strings.TrimSpace(text) == "" {
		return PolymorphicAddress{}, FormatError(param, text, "empty element")
	}
	return NewPolymorphicAddress(text)
}
