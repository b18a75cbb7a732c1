package reading

import (
	"fmt"
	"time"
)

// DateLayout is the persisted form of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. The zero value means "no date"
// and is used for a profile that has never read anything.
//
// Valid dates order lexicographically, so they can be compared with < and >.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// TodayIn returns the calendar date of now in loc.
func TodayIn(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

func (d Date) String() string { return string(d) }

func (d Date) IsZero() bool { return d == "" }

// Time returns midnight UTC of d. ok is false for the zero or a malformed date.
func (d Date) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts d by n days. A malformed date yields the zero Date.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return DateOf(t.AddDate(0, 0, n))
}

// DaysBetween returns to - from in whole days. ok is false when either date
// cannot be parsed.
func DaysBetween(from, to Date) (days int, ok bool) {
	f, ok1 := from.Time()
	t, ok2 := to.Time()
	if !ok1 || !ok2 {
		return 0, false
	}
	return int(t.Sub(f).Hours() / 24), true
}
