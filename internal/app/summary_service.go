package app

import (
	"context"
	"math"

	"forge/internal/domain"
	"forge/internal/store"
)

const (
	maxDailyDays   = 366
	focusGoalToday = 25
	checklistItems = 4
)

// SummaryService derives the dashboard and daily series from the logs. It
// holds no state of its own.
type SummaryService struct {
	accountLogs
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(st *store.Store, session *Session, cal domain.Calendar) *SummaryService {
	return &SummaryService{accountLogs{store: st, session: session, cal: cal}}
}

// Checklist is today's four-item discipline checklist.
type Checklist struct {
	Run      bool `json:"run"`
	Focus    bool `json:"focus"`
	Calories bool `json:"calories"`
	Workout  bool `json:"workout"`
}

// Done returns the number of checked items.
func (c Checklist) Done() int {
	n := 0
	for _, ok := range []bool{c.Run, c.Focus, c.Calories, c.Workout} {
		if ok {
			n++
		}
	}
	return n
}

// Streaks are the current consecutive-day streaks per module.
type Streaks struct {
	Run     int `json:"run"`
	Focus   int `json:"focus"`
	Meal    int `json:"meal"`
	Workout int `json:"workout"`
}

// Best returns the longest of the module streaks.
func (s Streaks) Best() int {
	return max(s.Run, s.Focus, s.Meal, s.Workout)
}

// ActivityDay is one day of the week window with the fraction of modules
// that saw activity.
type ActivityDay struct {
	Day     string  `json:"day"`
	Weekday string  `json:"weekday"`
	Score   float64 `json:"score"`
}

// GoalProgress compares a weekly count with its goal.
type GoalProgress struct {
	Count   int `json:"count"`
	Goal    int `json:"goal"`
	Percent int `json:"percent"`
}

// Dashboard is the home-screen summary.
type Dashboard struct {
	Account       domain.Account `json:"account"`
	Today         string         `json:"today"`
	Checklist     Checklist      `json:"checklist"`
	Discipline    int            `json:"discipline"`
	FocusToday    int            `json:"focusToday"`
	CaloriesToday int            `json:"caloriesToday"`
	Streaks       Streaks        `json:"streaks"`
	BestStreak    int            `json:"bestStreak"`
	WeekScore     int            `json:"weekScore"`
	Week          []ActivityDay  `json:"week"`
	Runs          GoalProgress   `json:"runs"`
	Workouts      GoalProgress   `json:"workouts"`
	FocusMinutes  int            `json:"focusMinutes"`
	CalorieGoal   int            `json:"calorieGoal"`
	AvgCalories   int            `json:"avgCalories"`
	Review        *domain.Review `json:"review"`
}

// DayPoint is a single data point returned by Daily.
type DayPoint struct {
	Day          string `json:"day"`
	Runs         int    `json:"runs"`
	RunMeters    int    `json:"runMeters"`
	FocusMinutes int    `json:"focusMinutes"`
	Calories     int    `json:"calories"`
	Workouts     int    `json:"workouts"`
}

// Dashboard computes the home-screen summary for the current account.
func (s *SummaryService) Dashboard(ctx context.Context) (Dashboard, error) {
	account, logs, err := s.current()
	if err != nil {
		return Dashboard{}, err
	}
	snap := logs.Snapshot(ctx, account)
	return buildDashboard(s.cal, snap), nil
}

func buildDashboard(cal domain.Calendar, snap Snapshot) Dashboard {
	today := cal.Today()
	week := cal.WeekWindow()
	inWeek := domain.NewDaySet(week...)

	runDays := domain.RunDays(snap.Runs)
	focusDays := domain.FocusDays(snap.Focus)
	mealDays := domain.MealDays(snap.Meals)
	workoutDays := domain.WorkoutDays(snap.Workouts)

	d := Dashboard{
		Account:     snap.Account,
		Today:       today,
		CalorieGoal: snap.Account.Goals.CaloriesPerDay,
		Review:      snap.Review,
	}

	var runCount, workoutCount, weekCalories int
	for _, r := range snap.Runs {
		if inWeek.Has(r.Date) {
			runCount++
		}
	}
	for _, f := range snap.Focus {
		if f.Date == today {
			d.FocusToday += f.Minutes
		}
		if inWeek.Has(f.Date) {
			d.FocusMinutes += f.Minutes
		}
	}
	for _, m := range snap.Meals {
		if m.Date == today {
			d.CaloriesToday += m.Calories
		}
		if inWeek.Has(m.Date) {
			weekCalories += m.Calories
		}
	}
	for _, w := range snap.Workouts {
		if w.Completed && inWeek.Has(w.Date) {
			workoutCount++
		}
	}

	d.Checklist = Checklist{
		Run:      runDays.Has(today),
		Focus:    d.FocusToday >= focusGoalToday,
		Calories: d.CaloriesToday > 0,
		Workout:  workoutDays.Has(today),
	}
	d.Discipline = percent(d.Checklist.Done(), checklistItems)

	d.Streaks = Streaks{
		Run:     cal.Streak(runDays),
		Focus:   cal.Streak(focusDays),
		Meal:    cal.Streak(mealDays),
		Workout: cal.Streak(workoutDays),
	}
	d.BestStreak = d.Streaks.Best()
	d.WeekScore = cal.WeeklyScore(runDays.Union(focusDays, workoutDays), 7)

	d.Week = make([]ActivityDay, 0, len(week))
	for _, day := range week {
		active := 0
		for _, set := range []domain.DaySet{runDays, focusDays, mealDays, workoutDays} {
			if set.Has(day) {
				active++
			}
		}
		d.Week = append(d.Week, ActivityDay{
			Day:     day,
			Weekday: cal.WeekdayLabel(day),
			Score:   float64(active) / checklistItems,
		})
	}

	d.Runs = progress(runCount, snap.Account.Goals.RunsPerWeek)
	d.Workouts = progress(workoutCount, snap.Account.Goals.WorkoutsPerWeek)
	d.AvgCalories = int(math.Round(float64(weekCalories) / 7))
	return d
}

// progress reports count against goal, capped at 100 percent.
func progress(count, goal int) GoalProgress {
	p := GoalProgress{Count: count, Goal: goal}
	if goal > 0 {
		p.Percent = min(percent(count, goal), 100)
	}
	return p
}

func percent(n, of int) int {
	return int(math.Round(float64(n) / float64(of) * 100))
}

// Daily returns per-day totals for the last days days, oldest first. days
// is clamped to 1..366.
func (s *SummaryService) Daily(ctx context.Context, days int) ([]DayPoint, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	if days > maxDailyDays {
		days = maxDailyDays
	}
	if days < 1 {
		days = 1
	}

	byDay := make(map[string]*DayPoint, days)
	points := make([]DayPoint, days)
	for i := range points {
		day := s.cal.DayOffset(i - days + 1)
		points[i] = DayPoint{Day: day}
		byDay[day] = &points[i]
	}

	for _, r := range logs.Runs.Get(ctx) {
		if p, ok := byDay[r.Date]; ok {
			p.Runs++
			p.RunMeters += r.DistanceMeters
		}
	}
	for _, f := range logs.Focus.Get(ctx) {
		if p, ok := byDay[f.Date]; ok {
			p.FocusMinutes += f.Minutes
		}
	}
	for _, m := range logs.Meals.Get(ctx) {
		if p, ok := byDay[m.Date]; ok {
			p.Calories += m.Calories
		}
	}
	for _, w := range logs.Workouts.Get(ctx) {
		if p, ok := byDay[w.Date]; ok && w.Completed {
			p.Workouts++
		}
	}
	return points, nil
}
