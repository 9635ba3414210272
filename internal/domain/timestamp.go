package domain

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const timestampParam = "timestamp"

// DefaultTimestampSeparator joins the date and time parts.
const DefaultTimestampSeparator = 'T'

// Timestamp is a CalendarDate and a ClockTime rendered as date, separator, time.
type Timestamp struct {
	Date CalendarDate
	Time ClockTime

	sep rune
}

func (Timestamp) ParamType() string { return timestampParam }

// Separator returns the configured separator, 'T' unless changed.
func (ts Timestamp) Separator() rune {
	if ts.sep == 0 {
		return DefaultTimestampSeparator
	}
	return ts.sep
}

// SetSeparator changes the rune placed between the date and the time.
// Digits, '-' and ':' would make the text ambiguous and are refused.
func (ts *Timestamp) SetSeparator(r rune) error {
	if r == 0 || r == '-' || r == ':' || (r >= '0' && r <= '9') {
		return FormatError(timestampParam, string(r), "separator must not be a digit, '-' or ':'")
	}
	ts.sep = r
	return nil
}

func (ts Timestamp) IsValid() bool {
	return ts.Date.IsValid() && ts.Time.IsValid()
}

// String renders the date, the separator and the time.
func (ts Timestamp) String() string {
	return ts.Date.String() + string(ts.Separator()) + ts.Time.String()
}

// Assign splits text at the separator and parses both halves. Nothing is
// stored unless both parse.
func (ts *Timestamp) Assign(text string) error {
	s := strings.TrimSpace(text)
	i := strings.IndexRune(s, ts.Separator())
	if i < 0 {
		return FormatError(timestampParam, text, "missing separator "+string(ts.Separator()))
	}
	var d CalendarDate
	if err := d.Assign(s[:i]); err != nil {
		return err
	}
	var t ClockTime
	if err := t.Assign(s[i+len(string(ts.Separator())):]); err != nil {
		return err
	}
	ts.Date, ts.Time = d, t
	return nil
}

// Compare orders by date and then by time.
func (ts Timestamp) Compare(o Timestamp) int {
	if c := ts.Date.Compare(o.Date); c != 0 {
		return c
	}
	return ts.Time.Compare(o.Time)
}

func (ts Timestamp) Before(o Timestamp) bool { return ts.Compare(o) < 0 }
func (ts Timestamp) After(o Timestamp) bool  { return ts.Compare(o) > 0 }

// Sub returns the signed number of seconds from o to ts.
func (ts Timestamp) Sub(o Timestamp) int {
	return ts.Date.Sub(o.Date)*secondsPerDay + ts.Time.Sub(o.Time)
}

// AddSeconds shifts the timestamp, carrying whole days into the date.
func (ts Timestamp) AddSeconds(n int) Timestamp {
	t, carry := ts.Time.AddSeconds(n)
	ts.Time = t
	if carry != 0 {
		ts.Date = ts.Date.AddDays(carry)
	}
	return ts
}

// FormattedValue formats the date and time parts with their own patterns
// and joins them with the separator.
func (ts Timestamp) FormattedValue(datePattern, timePattern string) string {
	return ts.Date.FormattedValue(datePattern) + string(ts.Separator()) + ts.Time.FormattedValue(timePattern)
}

// CaptureNow sets both parts from a single reading of clock.
func (ts *Timestamp) CaptureNow(clock Clock) {
	fixed := FixedClock{T: clockOrSystem(clock).Now()}
	ts.Date.CaptureNow(fixed)
	ts.Time.CaptureNow(fixed)
}

// Now sets the timestamp from the system clock.
func (ts *Timestamp) Now() { ts.CaptureNow(nil) }

func (ts Timestamp) MarshalText() ([]byte, error) { return []byte(ts.String()), nil }

func (ts *Timestamp) UnmarshalText(text []byte) error { return ts.Assign(string(text)) }

func (ts Timestamp) MarshalYAML() (any, error) { return ts.String(), nil }

func (ts *Timestamp) UnmarshalYAML(node *yaml.Node) error { return AssignNode(ts, node) }
