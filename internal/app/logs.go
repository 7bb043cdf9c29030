package app

import (
	"context"
	"errors"
	"time"

	"forge/internal/domain"
	"forge/internal/store"
)

// Event validation and lookup errors.
var (
	ErrInvalidEvent            = errors.New("invalid event")
	ErrMealNotFound            = errors.New("meal not found")
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutAlreadyCompleted = errors.New("workout already completed")
)

// Logs are the typed per-account handles on the store.
type Logs struct {
	Runs       store.Log[domain.Run]
	Focus      store.Log[domain.FocusSession]
	Meals      store.Log[domain.Meal]
	Workouts   store.Log[domain.Workout]
	Review     store.Value[*domain.Review]
	FocusTimer store.Value[domain.FocusTimer]
	RunTimer   store.Value[domain.RunTimer]
}

// LogsFor binds the logs of one account.
func LogsFor(st *store.Store, accountID string) Logs {
	key := func(kind domain.Kind) domain.Key { return domain.AccountKey(accountID, kind) }
	return Logs{
		Runs:       store.NewLog[domain.Run](st, key(domain.KindRuns)),
		Focus:      store.NewLog[domain.FocusSession](st, key(domain.KindFocus)),
		Meals:      store.NewLog[domain.Meal](st, key(domain.KindMeals)),
		Workouts:   store.NewLog[domain.Workout](st, key(domain.KindWorkouts)),
		Review:     store.NewValue[*domain.Review](st, key(domain.KindReview), nil),
		FocusTimer: store.NewValue(st, key(domain.KindFocusTimer), func() domain.FocusTimer { return domain.FocusTimer{State: domain.TimerIdle} }),
		RunTimer:   store.NewValue(st, key(domain.KindRunTimer), func() domain.RunTimer { return domain.RunTimer{State: domain.TimerIdle} }),
	}
}

// Snapshot is every stored log of one account.
type Snapshot struct {
	Account  domain.Account        `json:"account" toml:"account" yaml:"account"`
	Runs     []domain.Run          `json:"runs" toml:"runs" yaml:"runs"`
	Focus    []domain.FocusSession `json:"focus" toml:"focus" yaml:"focus"`
	Meals    []domain.Meal         `json:"meals" toml:"meals" yaml:"meals"`
	Workouts []domain.Workout      `json:"workouts" toml:"workouts" yaml:"workouts"`
	Review   *domain.Review        `json:"review,omitempty" toml:"review,omitempty" yaml:"review,omitempty"`
}

// Snapshot reads all logs.
func (l Logs) Snapshot(ctx context.Context, account domain.Account) Snapshot {
	return Snapshot{
		Account:  account,
		Runs:     l.Runs.Get(ctx),
		Focus:    l.Focus.Get(ctx),
		Meals:    l.Meals.Get(ctx),
		Workouts: l.Workouts.Get(ctx),
		Review:   l.Review.Get(ctx),
	}
}

// accountLogs resolves the signed-in account and its logs.
type accountLogs struct {
	store   *store.Store
	session *Session
	cal     domain.Calendar
}

func (a accountLogs) current() (domain.Account, Logs, error) {
	account, err := a.session.Current()
	if err != nil {
		return domain.Account{}, Logs{}, err
	}
	return account, LogsFor(a.store, account.ID), nil
}

// nextID returns a millisecond timestamp id that is strictly greater than
// last, so two events created in the same millisecond stay distinct.
func nextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

func lastID[E any](events []E, id func(E) int64) int64 {
	var last int64
	for _, e := range events {
		if v := id(e); v > last {
			last = v
		}
	}
	return last
}
