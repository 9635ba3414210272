package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dateParam = "date"
	zeroDate  = "0000-00-00"
)

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether y is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the length of month m of year y, or 0 when m is not 1-12.
func DaysInMonth(y, m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return daysPerMonth[m]
}

// CalendarDate is a year, month and day. The zero value renders as
// 0000-00-00 and is not valid.
type CalendarDate struct {
	year, month, day int
}

// NewCalendarDate returns a validated date.
func NewCalendarDate(year, month, day int) (CalendarDate, error) {
	var d CalendarDate
	if err := d.SetDate(year, month, day); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

func (CalendarDate) ParamType() string { return dateParam }

func (d CalendarDate) Year() int  { return d.year }
func (d CalendarDate) Month() int { return d.month }
func (d CalendarDate) Day() int   { return d.day }

// IsValid reports whether month is 1-12 and day fits in that month.
func (d CalendarDate) IsValid() bool {
	return d.month >= 1 && d.month <= 12 && d.day >= 1 && d.day <= DaysInMonth(d.year, d.month)
}

// SetDate validates and stores the components.
func (d *CalendarDate) SetDate(year, month, day int) error {
	input := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if year < 1 || year > 9999 {
		return RangeError(dateParam, input, "year must be 1-9999")
	}
	if month < 1 || month > 12 {
		return RangeError(dateParam, input, "month must be 1-12")
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return RangeError(dateParam, input, fmt.Sprintf("day must be 1-%d", DaysInMonth(year, month)))
	}
	d.year, d.month, d.day = year, month, day
	return nil
}

// String renders YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Assign parses YYYY-MM-DD. The default rendering 0000-00-00 restores the zero value.
func (d *CalendarDate) Assign(text string) error {
	if strings.TrimSpace(text) == zeroDate {
		*d = CalendarDate{}
		return nil
	}
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 3 || !isDigits(parts[0]) || !isDigits(parts[1]) || !isDigits(parts[2]) {
		return FormatError(dateParam, text, "expected YYYY-MM-DD")
	}
	if len(parts[0]) > 4 || len(parts[1]) > 2 || len(parts[2]) > 2 {
		return FormatError(dateParam, text, "expected YYYY-MM-DD")
	}
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	return d.SetDate(y, m, day)
}

// dayNumber counts days with 0001-01-01 as day 1.
func (d CalendarDate) dayNumber() int {
	y := d.year - 1
	n := 365*y + y/4 - y/100 + y/400
	for m := 1; m < d.month; m++ {
		n += DaysInMonth(d.year, m)
	}
	return n + d.day
}

// Weekday derives the day of the week from the proleptic day count.
// Day 1 (0001-01-01) is a Monday, so the count modulo 7 is a time.Weekday.
func (d CalendarDate) Weekday() time.Weekday {
	return time.Weekday(((d.dayNumber() % 7) + 7) % 7)
}

// DayOfYear returns 1 for January 1st.
func (d CalendarDate) DayOfYear() int {
	n := d.day
	for m := 1; m < d.month; m++ {
		n += DaysInMonth(d.year, m)
	}
	return n
}

// Compare orders by year, month, then day and returns -1, 0 or +1.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(d.month - o.month)
	}
	return sign(d.day - o.day)
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.Compare(o) == 0 }

// Sub returns the signed number of days from o to d.
func (d CalendarDate) Sub(o CalendarDate) int {
	return d.dayNumber() - o.dayNumber()
}

// AddDays returns the date n days later (earlier when n is negative).
// The result is only meaningful for years 1-9999.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return dateFromDayNumber(d.dayNumber() + n)
}

func dateFromDayNumber(n int) CalendarDate {
	// Start from an estimate and walk to the exact year.
	y := n / 366
	for (CalendarDate{year: y + 1, month: 1, day: 1}).dayNumber() <= n {
		y++
	}
	d := CalendarDate{year: y, month: 1, day: 1}
	rem := n - d.dayNumber()
	for rem >= DaysInMonth(y, d.month) {
		rem -= DaysInMonth(y, d.month)
		d.month++
	}
	d.day = rem + 1
	return d
}

// FormattedValue replaces YYYY, YY, MM and DD in pattern with zero-padded components.
func (d CalendarDate) FormattedValue(pattern string) string {
	return strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", d.year),
		"YY", fmt.Sprintf("%02d", d.year%100),
		"MM", fmt.Sprintf("%02d", d.month),
		"DD", fmt.Sprintf("%02d", d.day),
	).Replace(pattern)
}

// CaptureNow sets the date from clock, or the system clock when nil.
func (d *CalendarDate) CaptureNow(clock Clock) {
	t := clockOrSystem(clock).Now()
	d.year, d.month, d.day = t.Year(), int(t.Month()), t.Day()
}

// Now sets the date from the system clock.
func (d *CalendarDate) Now() { d.CaptureNow(nil) }

// Time returns midnight of the date in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *CalendarDate) UnmarshalText(text []byte) error { return d.Assign(string(text)) }

func (d CalendarDate) MarshalYAML() (any, error) { return d.String(), nil }

func (d *CalendarDate) UnmarshalYAML(node *yaml.Node) error { return AssignNode(d, node) }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
