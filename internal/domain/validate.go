package domain

import (
	"strconv"
	"strings"
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// parseDecimal parses an unsigned decimal no larger than max.
// Non-digit text is a format error, an oversized value a range error.
func parseDecimal(param, input, s string, max uint64) (uint64, error) {
	if !isDigits(s) {
		return 0, FormatError(param, input, "expected decimal digits, got "+strconv.Quote(s))
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n > max {
		return 0, RangeError(param, input, s+" exceeds "+strconv.FormatUint(max, 10))
	}
	return n, nil
}

// Brackets is the delimiter pair used when a list renders more than one element.
type Brackets struct {
	Open  rune
	Close rune
}

// DefaultBrackets is the pair used by lists that never called SetBrackets.
var DefaultBrackets = Brackets{Open: '[', Close: ']'}

func (b Brackets) orDefault() Brackets {
	if b.Open == 0 && b.Close == 0 {
		return DefaultBrackets
	}
	return b
}

// render joins items: none renders empty, one renders bare, more are bracketed.
func (b Brackets) render(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	b = b.orDefault()
	return string(b.Open) + strings.Join(items, ",") + string(b.Close)
}

// split is the inverse of render and also accepts a bare comma list.
func (b Brackets) split(param, text string) ([]string, error) {
	b = b.orDefault()
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}

	openTok, closeTok := string(b.Open), string(b.Close)
	if strings.HasPrefix(s, openTok) {
		if !strings.HasSuffix(s, closeTok) || len(s) < len(openTok)+len(closeTok) {
			return nil, FormatError(param, text, "unterminated list, expected "+closeTok)
		}
		s = strings.TrimSpace(s[len(openTok) : len(s)-len(closeTok)])
		if s == "" {
			return nil, nil
		}
	}

	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, FormatError(param, text, "empty list element")
		}
		items = append(items, p)
	}
	return items, nil
}

// keyed is an insertion-ordered collection keyed by canonical text.
// Putting an existing key replaces the element in place.
type keyed[T any] struct {
	entries []keyedEntry[T]
}

type keyedEntry[T any] struct {
	key   string
	value T
}

func (k *keyed[T]) put(key string, v T) {
	for i := range k.entries {
		if k.entries[i].key == key {
			k.entries[i].value = v
			return
		}
	}
	k.entries = append(k.entries, keyedEntry[T]{key: key, value: v})
}

func (k *keyed[T]) get(key string) (T, bool) {
	for _, e := range k.entries {
		if e.key == key {
			return e.value, true
		}
	}
	var zero T
	return zero, false
}

func (k *keyed[T]) remove(key string) bool {
	for i, e := range k.entries {
		if e.key == key {
			k.entries = append(k.entries[:i:i], k.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (k *keyed[T]) keys() []string {
	out := make([]string, len(k.entries))
	for i, e := range k.entries {
		out[i] = e.key
	}
	return out
}

func (k *keyed[T]) values() []T {
	out := make([]T, len(k.entries))
	for i, e := range k.entries {
		out[i] = e.value
	}
	return out
}

func (k *keyed[T]) len() int {
	return len(k.entries)
}
