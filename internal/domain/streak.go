package domain

import (
	"math"
	"time"
)

// maxStreakDays bounds the backward walk in Streak.
const maxStreakDays = 3660

// DaySet is a de-duplicated set of calendar-day strings.
type DaySet map[string]struct{}

// NewDaySet builds a DaySet from the given days, dropping duplicates.
func NewDaySet(days ...string) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// Has reports whether day is in the set.
func (s DaySet) Has(day string) bool {
	_, ok := s[day]
	return ok
}

// Union returns a new set holding every day of s and others.
func (s DaySet) Union(others ...DaySet) DaySet {
	out := make(DaySet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	for _, o := range others {
		for d := range o {
			out[d] = struct{}{}
		}
	}
	return out
}

// Streak counts consecutive active days ending today. When today is not in
// days the count starts from yesterday, so a streak still in progress does
// not read as zero; if yesterday is missing too the streak is zero.
func Streak(days DaySet, today time.Time) int {
	if len(days) == 0 {
		return 0
	}
	d := noon(today)
	if !days.Has(DayString(d)) {
		d = d.AddDate(0, 0, -1)
	}
	streak := 0
	for streak < maxStreakDays && streak <= len(days) {
		if !days.Has(DayString(d)) {
			break
		}
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklyScore returns the percentage of week found in days, measured against
// min(planned, 7) days. It is not capped: planned values below the number of
// active days produce scores above 100. Non-positive planned means 7.
func WeeklyScore(days DaySet, week []string, planned int) int {
	if planned <= 0 || planned > 7 {
		planned = 7
	}
	done := 0
	for _, d := range week {
		if days.Has(d) {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(planned) * 100))
}

// Streak is Streak evaluated at the calendar's current day.
func (c Calendar) Streak(days DaySet) int {
	return Streak(days, c.clock.Now())
}

// WeeklyScore is WeeklyScore over the calendar's current week window.
func (c Calendar) WeeklyScore(days DaySet, planned int) int {
	return WeeklyScore(days, c.WeekWindow(), planned)
}
