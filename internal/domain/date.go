package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display format for a calendar Date.
const DateLayout = "2006-01-02"

// Date is a calendar date at day granularity. Two Dates are equal when their
// year, month and day-of-month match, so == is the day-granularity comparison
// used for every trip and day lookup.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes its arguments the way time.Date does, so day 0 is the
// last day of the previous month and month 13 is January of the next year.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf drops the time-of-day and zone of t, keeping the calendar date as
// seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return DateOf(t), nil
}

// Time returns midnight of d in loc. A nil loc means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Weekday reports the day of the week, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return d.Time(nil).Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// String formats d as "2006-01-02".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Label formats d the long way, e.g. "Monday, June 3, 2024".
func (d Date) Label() string {
	return d.Time(nil).Format("Monday, January 2, 2006")
}

// MarshalText implements encoding.TextMarshaler so Dates serialize as
// "2006-01-02" in JSON bodies and map keys.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SameDay reports whether a and b fall on the same calendar date, ignoring
// time-of-day. Each time is read in its own location.
func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}

// Range returns every date from min(a, b) to max(a, b), inclusive on both
// ends, in chronological order.
func Range(a, b Date) []Date {
	if b.Before(a) {
		a, b = b, a
	}
	var out []Date
	for d := a; !d.After(b); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// ContainsDate reports whether dates holds d.
func ContainsDate(dates []Date, d Date) bool {
	for _, x := range dates {
		if x == d {
			return true
		}
	}
	return false
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return NewDate(year, month+1, 0).Day
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
