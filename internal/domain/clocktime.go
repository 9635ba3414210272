package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	timeParam     = "time"
	secondsPerDay = 24 * 60 * 60
)

// ClockTime is a time of day with second resolution. The zero value is midnight.
type ClockTime struct {
	hour, minute, second int
}

// NewClockTime returns a validated time of day.
func NewClockTime(hour, minute, second int) (ClockTime, error) {
	var t ClockTime
	if err := t.SetTime(hour, minute, second); err != nil {
		return ClockTime{}, err
	}
	return t, nil
}

func (ClockTime) ParamType() string { return timeParam }

func (t ClockTime) Hour() int   { return t.hour }
func (t ClockTime) Minute() int { return t.minute }
func (t ClockTime) Second() int { return t.second }

func (t ClockTime) IsValid() bool {
	return t.hour >= 0 && t.hour <= 23 && t.minute >= 0 && t.minute <= 59 && t.second >= 0 && t.second <= 59
}

// SetTime validates and stores the components.
func (t *ClockTime) SetTime(hour, minute, second int) error {
	input := fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	if hour < 0 || hour > 23 {
		return RangeError(timeParam, input, "hour must be 0-23")
	}
	if minute < 0 || minute > 59 {
		return RangeError(timeParam, input, "minute must be 0-59")
	}
	if second < 0 || second > 59 {
		return RangeError(timeParam, input, "second must be 0-59")
	}
	t.hour, t.minute, t.second = hour, minute, second
	return nil
}

// String renders hh:mm:ss.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
}

// Assign parses hh:mm:ss or hh:mm.
func (t *ClockTime) Assign(text string) error {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return FormatError(timeParam, text, "expected hh:mm:ss")
	}
	var vals [3]int
	for i, p := range parts {
		if !isDigits(p) || len(p) > 2 {
			return FormatError(timeParam, text, "expected hh:mm:ss")
		}
		vals[i], _ = strconv.Atoi(p)
	}
	return t.SetTime(vals[0], vals[1], vals[2])
}

// Seconds returns the number of seconds since midnight.
func (t ClockTime) Seconds() int {
	return t.hour*3600 + t.minute*60 + t.second
}

// Compare orders by hour, minute, then second and returns -1, 0 or +1.
func (t ClockTime) Compare(o ClockTime) int {
	switch {
	case t.hour != o.hour:
		return sign(t.hour - o.hour)
	case t.minute != o.minute:
		return sign(t.minute - o.minute)
	}
	return sign(t.second - o.second)
}

func (t ClockTime) Before(o ClockTime) bool { return t.Compare(o) < 0 }
func (t ClockTime) After(o ClockTime) bool  { return t.Compare(o) > 0 }
func (t ClockTime) Equal(o ClockTime) bool  { return t.Compare(o) == 0 }

// Sub returns the signed number of seconds from o to t.
func (t ClockTime) Sub(o ClockTime) int {
	return t.Seconds() - o.Seconds()
}

// Add sums two times of day. The result is normalized to a valid time and
// the number of whole days that overflowed is returned as carry.
func (t ClockTime) Add(o ClockTime) (ClockTime, int) {
	return t.AddSeconds(o.Seconds())
}

// AddSeconds shifts t by n seconds. carry is negative when n moves before midnight.
func (t ClockTime) AddSeconds(n int) (sum ClockTime, carry int) {
	total := t.Seconds() + n
	carry = total / secondsPerDay
	total %= secondsPerDay
	if total < 0 {
		total += secondsPerDay
		carry--
	}
	return ClockTime{hour: total / 3600, minute: total % 3600 / 60, second: total % 60}, carry
}

// FormattedValue replaces hh, mm and ss in pattern with zero-padded components.
func (t ClockTime) FormattedValue(pattern string) string {
	return strings.NewReplacer(
		"hh", fmt.Sprintf("%02d", t.hour),
		"mm", fmt.Sprintf("%02d", t.minute),
		"ss", fmt.Sprintf("%02d", t.second),
	).Replace(pattern)
}

// CaptureNow sets the time from clock, or the system clock when nil.
func (t *ClockTime) CaptureNow(clock Clock) {
	now := clockOrSystem(clock).Now()
	t.hour, t.minute, t.second = now.Hour(), now.Minute(), now.Second()
}

// Now sets the time from the system clock.
func (t *ClockTime) Now() { t.CaptureNow(nil) }

func (t ClockTime) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ClockTime) UnmarshalText(text []byte) error { return t.Assign(string(text)) }

func (t ClockTime) MarshalYAML() (any, error) { return t.String(), nil }

func (t *ClockTime) UnmarshalYAML(node *yaml.Node) error { return AssignNode(t, node) }
