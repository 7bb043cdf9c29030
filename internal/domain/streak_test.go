package domain_test

import (
	"testing"
	"time"

	"forge/internal/domain"
)

var streakToday = time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)

func daysBack(offsets ...int) domain.DaySet {
	days := make([]string, 0, len(offsets))
	for _, o := range offsets {
		days = append(days, domain.DayString(streakToday.AddDate(0, 0, -o)))
	}
	return domain.NewDaySet(days...)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days domain.DaySet
		want int
	}{
		{"empty", domain.NewDaySet(), 0},
		{"today only", daysBack(0), 1},
		{"run ending today", daysBack(0, 1, 2, 3), 4},
		{"gap stops the count", daysBack(0, 1, 3, 4, 5), 2},
		{"alive from yesterday", daysBack(1, 2, 3), 3},
		{"broken yesterday", daysBack(2, 3, 4), 0},
		{"future days ignored", daysBack(-1, 0), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Streak(tc.days, streakToday); got != tc.want {
				t.Errorf("Streak() = %d; want %d", got, tc.want)
			}
		})
	}
}

func TestStreakLongRunTerminates(t *testing.T) {
	offsets := make([]int, 5000)
	for i := range offsets {
		offsets[i] = i
	}
	got := domain.Streak(daysBack(offsets...), streakToday)
	if got <= 0 || got > 5000 {
		t.Fatalf("Streak() = %d; want a bounded positive count", got)
	}
}

func TestWeeklyScore(t *testing.T) {
	cal := domain.NewCalendar(domain.FixedClock(streakToday))
	tests := []struct {
		name    string
		days    domain.DaySet
		planned int
		want    int
	}{
		{"five of seven", daysBack(0, 1, 2, 4, 6), 7, 71},
		{"all seven", daysBack(0, 1, 2, 3, 4, 5, 6), 7, 100},
		{"none", daysBack(8, 9), 7, 0},
		{"three planned three done", daysBack(0, 2, 4), 3, 100},
		{"three planned five done is uncapped", daysBack(0, 1, 2, 3, 4), 3, 167},
		{"planned above seven uses seven", daysBack(0, 1, 2, 3, 4, 5, 6), 10, 100},
		{"zero planned means seven", daysBack(0), 0, 14},
		{"outside window ignored", daysBack(0, 7, 8), 7, 14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.WeeklyScore(tc.days, tc.planned); got != tc.want {
				t.Errorf("WeeklyScore(planned=%d) = %d; want %d", tc.planned, got, tc.want)
			}
		})
	}
}

func TestDaySetUnionDeduplicates(t *testing.T) {
	a := domain.NewDaySet("2026-03-09", "2026-03-08")
	b := domain.NewDaySet("2026-03-09", "2026-03-07", "2026-03-07")
	u := a.Union(b)
	if len(u) != 3 {
		t.Fatalf("len(Union) = %d; want 3", len(u))
	}
	if len(a) != 2 {
		t.Errorf("Union mutated receiver: len = %d", len(a))
	}
}

func TestWorkoutDaysOnlyCompleted(t *testing.T) {
	set := domain.WorkoutDays([]domain.Workout{
		{ID: 1, Date: "2026-03-09", Completed: true},
		{ID: 2, Date: "2026-03-08", Completed: false},
	})
	if !set.Has("2026-03-09") || set.Has("2026-03-08") {
		t.Errorf("WorkoutDays = %v; want only 2026-03-09", set)
	}
}
