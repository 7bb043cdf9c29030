package app_test

import (
	"context"
	"errors"
	"testing"

	"forge/internal/app"
	"forge/internal/domain"
)

// seedWeek fills the active account's logs with a known week.
func seedWeek(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	logs := env.logs(t)
	logs.Runs.Set(ctx, []domain.Run{
		{ID: 1, Date: env.day(-10), DurationSeconds: 1200, DistanceMeters: 3000},
		{ID: 2, Date: env.day(-2), DurationSeconds: 1800, DistanceMeters: 5000},
		{ID: 3, Date: env.day(-1), DurationSeconds: 1500, DistanceMeters: 4000},
		{ID: 4, Date: env.day(0), DurationSeconds: 900, DistanceMeters: 2500},
	})
	logs.Focus.Set(ctx, []domain.FocusSession{
		{ID: 1, Date: env.day(-1), Minutes: 10, Partial: true},
		{ID: 2, Date: env.day(0), Minutes: 25},
		{ID: 3, Date: env.day(0), Minutes: 5, Partial: true},
	})
	logs.Meals.Set(ctx, []domain.Meal{
		{ID: 1, Date: env.day(-3), Name: "Pasta", Calories: 700, MealType: domain.Dinner},
		{ID: 2, Date: env.day(0), Name: "Oats", Calories: 500, MealType: domain.Breakfast},
	})
	logs.Workouts.Set(ctx, []domain.Workout{
		{ID: 1, Date: env.day(-4), Name: "Legs", Type: "Legs", Completed: true},
		{ID: 2, Date: env.day(-1), Name: "Pull", Type: "Pull"},
		{ID: 3, Date: env.day(0), Name: "Push", Type: "Push", Completed: true},
	})
}

func TestDashboard(t *testing.T) {
	env := signedIn(t)
	seedWeek(t, env)
	svc := app.NewSummaryService(env.store, env.session, env.cal)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if d.Checklist != (app.Checklist{Run: true, Focus: true, Calories: true, Workout: true}) || d.Discipline != 100 {
		t.Errorf("checklist = %+v, discipline %d", d.Checklist, d.Discipline)
	}
	if want := (app.Streaks{Run: 3, Focus: 2, Meal: 1, Workout: 1}); d.Streaks != want {
		t.Errorf("Streaks = %+v; want %+v", d.Streaks, want)
	}
	if d.BestStreak != 3 {
		t.Errorf("BestStreak = %d; want 3", d.BestStreak)
	}
	// Run, focus and workout days dedupe to four distinct days.
	if d.WeekScore != 57 {
		t.Errorf("WeekScore = %d; want 57", d.WeekScore)
	}
	if d.Runs != (app.GoalProgress{Count: 3, Goal: 3, Percent: 100}) {
		t.Errorf("Runs = %+v", d.Runs)
	}
	if d.Workouts != (app.GoalProgress{Count: 2, Goal: 4, Percent: 50}) {
		t.Errorf("Workouts = %+v", d.Workouts)
	}
	if d.FocusToday != 30 || d.FocusMinutes != 40 {
		t.Errorf("focus today %d, week %d", d.FocusToday, d.FocusMinutes)
	}
	if d.CaloriesToday != 500 || d.AvgCalories != 171 || d.CalorieGoal != 2000 {
		t.Errorf("calories today %d, avg %d, goal %d", d.CaloriesToday, d.AvgCalories, d.CalorieGoal)
	}

	if len(d.Week) != 7 {
		t.Fatalf("Week has %d days", len(d.Week))
	}
	if last := d.Week[6]; last.Day != "2026-03-09" || last.Weekday != "Mon" || last.Score != 1 {
		t.Errorf("today = %+v", last)
	}
	if d.Week[5].Score != 0.5 {
		t.Errorf("yesterday score = %v; want 0.5", d.Week[5].Score)
	}
	if d.Week[0].Score != 0 {
		t.Errorf("first day score = %v; want 0", d.Week[0].Score)
	}
}

func TestDashboardEmptyDay(t *testing.T) {
	env := signedIn(t)
	svc := app.NewSummaryService(env.store, env.session, env.cal)
	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Discipline != 0 || d.BestStreak != 0 || d.WeekScore != 0 || d.Review != nil {
		t.Errorf("empty dashboard = %+v", d)
	}
}

func TestDailySeries(t *testing.T) {
	env := signedIn(t)
	seedWeek(t, env)
	svc := app.NewSummaryService(env.store, env.session, env.cal)
	ctx := context.Background()

	points, err := svc.Daily(ctx, 3)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if len(points) != 3 || points[0].Day != env.day(-2) || points[2].Day != env.day(0) {
		t.Fatalf("points = %+v", points)
	}
	today := points[2]
	want := app.DayPoint{Day: env.day(0), Runs: 1, RunMeters: 2500, FocusMinutes: 30, Calories: 500, Workouts: 1}
	if today != want {
		t.Errorf("today = %+v; want %+v", today, want)
	}
	if points[1].Workouts != 0 {
		t.Errorf("planned workout counted: %+v", points[1])
	}

	points, _ = svc.Daily(ctx, 1000)
	if len(points) != 366 {
		t.Errorf("Daily(1000) returned %d points; want 366", len(points))
	}
}

func TestSummaryRequiresAccount(t *testing.T) {
	env := newEnv(t)
	svc := app.NewSummaryService(env.store, env.session, env.cal)
	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, app.ErrNoActiveAccount) {
		t.Errorf("err = %v; want ErrNoActiveAccount", err)
	}
}
