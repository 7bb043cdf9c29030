package domain

import "time"

// MinFocusCreditSeconds is the elapsed time a stopped focus session needs to
// be recorded.
const MinFocusCreditSeconds = 300

// Run is one completed outdoor run.
type Run struct {
	ID              int64  `json:"id" toml:"id" yaml:"id"`
	Date            string `json:"date" toml:"date" yaml:"date"`
	DurationSeconds int    `json:"durationSeconds" toml:"duration_seconds" yaml:"durationSeconds"`
	DistanceMeters  int    `json:"distanceMeters" toml:"distance_meters" yaml:"distanceMeters"`
	Note            string `json:"note" toml:"note" yaml:"note"`
}

// FocusSession is one focused-work session. Partial marks sessions stopped
// before their planned duration but past MinFocusCreditSeconds.
type FocusSession struct {
	ID      int64  `json:"id" toml:"id" yaml:"id"`
	Date    string `json:"date" toml:"date" yaml:"date"`
	Minutes int    `json:"minutes" toml:"minutes" yaml:"minutes"`
	Partial bool   `json:"partial" toml:"partial" yaml:"partial"`
}

// MealType classifies a meal.
type MealType string

// Meal types.
const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

// MealTypes lists the valid meal types in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether t is one of MealTypes.
func (t MealType) Valid() bool {
	for _, m := range MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

// Meal is one logged meal. Time is local HH:MM.
type Meal struct {
	ID       int64    `json:"id" toml:"id" yaml:"id"`
	Date     string   `json:"date" toml:"date" yaml:"date"`
	Name     string   `json:"name" toml:"name" yaml:"name"`
	Calories int      `json:"calories" toml:"calories" yaml:"calories"`
	MealType MealType `json:"mealType" toml:"meal_type" yaml:"mealType"`
	Time     string   `json:"time" toml:"time" yaml:"time"`
}

// Workout types offered when planning.
var WorkoutTypes = []string{"Push", "Pull", "Legs", "Full Body", "Cardio", "Core"}

// Workout is a planned or completed workout. Completed is terminal.
type Workout struct {
	ID              int64      `json:"id" toml:"id" yaml:"id"`
	Date            string     `json:"date" toml:"date" yaml:"date"`
	Name            string     `json:"name" toml:"name" yaml:"name"`
	Type            string     `json:"type" toml:"type" yaml:"type"`
	Completed       bool       `json:"completed" toml:"completed" yaml:"completed"`
	DurationMinutes int        `json:"durationMinutes" toml:"duration_minutes" yaml:"durationMinutes"`
	CompletedAt     *time.Time `json:"completedAt,omitempty" toml:"completed_at,omitempty" yaml:"completedAt,omitempty"`
}

// Suggestion is one titled recommendation of a weekly review.
type Suggestion struct {
	Title string `json:"title" toml:"title" yaml:"title"`
	Text  string `json:"text" toml:"text" yaml:"text"`
}

// Review is the cached weekly review. PlanAccepted and clearing
// PlanAdjustment are the only in-place changes; everything else is replaced
// on regeneration.
type Review struct {
	Summary        string       `json:"summary" toml:"summary" yaml:"summary"`
	Suggestions    []Suggestion `json:"suggestions" toml:"suggestions" yaml:"suggestions"`
	PlanAdjustment *string      `json:"planAdjustment" toml:"plan_adjustment,omitempty" yaml:"planAdjustment"`
	GeneratedOn    string       `json:"generatedOn" toml:"generated_on" yaml:"generatedOn"`
	PlanAccepted   bool         `json:"planAccepted" toml:"plan_accepted" yaml:"planAccepted"`
}

// ReviewCooldownDays is how long a review is kept before another may be
// generated.
const ReviewCooldownDays = 7

// RunDays returns the distinct days with a run.
func RunDays(runs []Run) DaySet {
	set := make(DaySet, len(runs))
	for _, r := range runs {
		set[r.Date] = struct{}{}
	}
	return set
}

// FocusDays returns the distinct days with a focus session.
func FocusDays(sessions []FocusSession) DaySet {
	set := make(DaySet, len(sessions))
	for _, f := range sessions {
		set[f.Date] = struct{}{}
	}
	return set
}

// MealDays returns the distinct days with a logged meal.
func MealDays(meals []Meal) DaySet {
	set := make(DaySet, len(meals))
	for _, m := range meals {
		set[m.Date] = struct{}{}
	}
	return set
}

// WorkoutDays returns the distinct days with a completed workout.
func WorkoutDays(workouts []Workout) DaySet {
	set := make(DaySet)
	for _, w := range workouts {
		if w.Completed {
			set[w.Date] = struct{}{}
		}
	}
	return set
}
