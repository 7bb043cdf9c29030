package app

import (
	"context"
	"fmt"
	"strings"

	"forge/internal/domain"
	"forge/internal/store"
)

const (
	defaultWorkoutType = "Push"
	quickWorkoutName   = "Quick Workout"
	quickWorkoutType   = "General"
)

// WorkoutService plans and completes workouts.
type WorkoutService struct {
	accountLogs
}

// NewWorkoutService creates a WorkoutService.
func NewWorkoutService(st *store.Store, session *Session, cal domain.Calendar) *WorkoutService {
	return &WorkoutService{accountLogs{store: st, session: session, cal: cal}}
}

// Plan adds an uncompleted workout for today. A non-positive duration is
// stored as 0, meaning unspecified.
func (s *WorkoutService) Plan(ctx context.Context, name, workoutType string, minutes int) (domain.Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Workout{}, fmt.Errorf("%w: workout name required", ErrInvalidEvent)
	}
	workoutType = strings.TrimSpace(workoutType)
	if workoutType == "" {
		workoutType = defaultWorkoutType
	}
	if minutes < 0 {
		minutes = 0
	}
	return s.add(ctx, domain.Workout{Name: name, Type: workoutType, DurationMinutes: minutes})
}

// QuickLog records a completed general workout for today.
func (s *WorkoutService) QuickLog(ctx context.Context) (domain.Workout, error) {
	now := s.cal.Now()
	return s.add(ctx, domain.Workout{
		Name:        quickWorkoutName,
		Type:        quickWorkoutType,
		Completed:   true,
		CompletedAt: &now,
	})
}

func (s *WorkoutService) add(ctx context.Context, w domain.Workout) (domain.Workout, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Workout{}, err
	}
	now := s.cal.Now()
	_, err = logs.Workouts.Update(ctx, func(ws []domain.Workout) ([]domain.Workout, error) {
		w.ID = nextID(now, lastID(ws, func(w domain.Workout) int64 { return w.ID }))
		w.Date = domain.DayString(now)
		return append(ws, w), nil
	})
	return w, err
}

// Complete marks the workout with id completed. Completion is terminal.
func (s *WorkoutService) Complete(ctx context.Context, id int64) (domain.Workout, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Workout{}, err
	}
	now := s.cal.Now()
	var done domain.Workout
	_, err = logs.Workouts.Update(ctx, func(ws []domain.Workout) ([]domain.Workout, error) {
		for i := range ws {
			if ws[i].ID != id {
				continue
			}
			if ws[i].Completed {
				return ws, ErrWorkoutAlreadyCompleted
			}
			ws[i].Completed = true
			ws[i].CompletedAt = &now
			done = ws[i]
			return ws, nil
		}
		return ws, ErrWorkoutNotFound
	})
	return done, err
}

// List returns all workouts, oldest first.
func (s *WorkoutService) List(ctx context.Context) ([]domain.Workout, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	return logs.Workouts.Get(ctx), nil
}
