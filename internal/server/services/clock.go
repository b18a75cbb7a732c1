package services

import (
	"time"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// Clock supplies the wall time and the calendar day in the server's zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock for loc backed by time.Now. A nil loc means UTC.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc, now: time.Now}
}

// FixedClock always reports t. Used by tests and tooling.
func FixedClock(t time.Time) Clock {
	return Clock{loc: t.Location(), now: func() time.Time { return t }}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Today is the calendar date of Now in the clock's location.
func (c Clock) Today() reading.Date {
	return reading.TodayIn(c.Now(), c.loc)
}
