package domain

import (
	"math"
	"time"
)

// DayLayout is the calendar-day identifier format used by every event log.
const DayLayout = "2006-01-02"

// NeverDays is what DaysSince reports for an unset day, so cooldown checks
// against a missing value always read as elapsed.
const NeverDays = 999

// Clock abstracts the wall clock so calendar math is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// DayString formats t as a calendar day in t's own location.
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

// Calendar produces calendar-day identifiers and week windows relative to
// its clock.
type Calendar struct {
	clock Clock
}

// NewCalendar returns a Calendar reading the given clock. A nil clock means
// the system clock.
func NewCalendar(clock Clock) Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	return Calendar{clock: clock}
}

// Now returns the calendar's current instant.
func (c Calendar) Now() time.Time {
	return c.clock.Now()
}

// Today returns the current local day.
func (c Calendar) Today() string {
	return DayString(c.clock.Now())
}

// DayOffset returns the local day shifted by n days; negative n is the past.
func (c Calendar) DayOffset(n int) string {
	return DayString(noon(c.clock.Now()).AddDate(0, 0, n))
}

// WeekWindow returns the seven days from six days ago through today, oldest
// first.
func (c Calendar) WeekWindow() []string {
	now := noon(c.clock.Now())
	week := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		week = append(week, DayString(now.AddDate(0, 0, -i)))
	}
	return week
}

// WeekdayLabel returns the short weekday name ("Mon") for a day string, or
// the empty string when day does not parse.
func (c Calendar) WeekdayLabel(day string) string {
	t, err := c.noonOf(day)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

// DaysSince returns the whole days elapsed between noon of day and now.
// Empty or unparseable days report NeverDays.
func (c Calendar) DaysSince(day string) int {
	if day == "" {
		return NeverDays
	}
	t, err := c.noonOf(day)
	if err != nil {
		return NeverDays
	}
	return int(math.Floor(c.clock.Now().Sub(t).Hours() / 24))
}

func (c Calendar) noonOf(day string) (time.Time, error) {
	loc := c.clock.Now().Location()
	t, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, err
	}
	return noon(t), nil
}

// noon returns 12:00 on t's local day. Stepping whole days from noon never
// lands in a DST gap, which some zones place at midnight.
func noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
