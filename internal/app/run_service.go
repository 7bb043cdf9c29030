package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"forge/internal/domain"
	"forge/internal/store"
)

// RunService times and records runs.
type RunService struct {
	accountLogs
}

// NewRunService creates a RunService.
func NewRunService(st *store.Store, session *Session, cal domain.Calendar) *RunService {
	return &RunService{accountLogs{store: st, session: session, cal: cal}}
}

// Start begins timing a run.
func (s *RunService) Start(ctx context.Context) (domain.RunTimer, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.RunTimer{}, err
	}
	now := s.cal.Now()
	return logs.RunTimer.Update(ctx, func(t domain.RunTimer) (domain.RunTimer, error) {
		return t.Start(now)
	})
}

// Elapsed returns the time on the running timer and whether one is running.
func (s *RunService) Elapsed(ctx context.Context) (time.Duration, bool, error) {
	_, logs, err := s.current()
	if err != nil {
		return 0, false, err
	}
	t := logs.RunTimer.Get(ctx)
	return t.Elapsed(s.cal.Now()), t.State == domain.TimerRunning, nil
}

// Stop ends the running timer and saves a run with its duration.
func (s *RunService) Stop(ctx context.Context, distanceMeters int, note string) (domain.Run, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Run{}, err
	}
	if distanceMeters < 0 {
		return domain.Run{}, fmt.Errorf("%w: distance must not be negative", ErrInvalidEvent)
	}
	var seconds int
	_, err = logs.RunTimer.Update(ctx, func(t domain.RunTimer) (domain.RunTimer, error) {
		next, secs, err := t.Stop(s.cal.Now())
		seconds = secs
		return next, err
	})
	if err != nil {
		return domain.Run{}, err
	}
	return s.save(ctx, logs, seconds, distanceMeters, note)
}

// Discard stops the running timer without saving a run.
func (s *RunService) Discard(ctx context.Context) error {
	_, logs, err := s.current()
	if err != nil {
		return err
	}
	_, err = logs.RunTimer.Update(ctx, func(t domain.RunTimer) (domain.RunTimer, error) {
		next, _, err := t.Stop(s.cal.Now())
		return next, err
	})
	return err
}

// Record saves a run measured elsewhere.
func (s *RunService) Record(ctx context.Context, durationSeconds, distanceMeters int, note string) (domain.Run, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Run{}, err
	}
	if durationSeconds < 0 || distanceMeters < 0 {
		return domain.Run{}, fmt.Errorf("%w: duration and distance must not be negative", ErrInvalidEvent)
	}
	return s.save(ctx, logs, durationSeconds, distanceMeters, note)
}

func (s *RunService) save(ctx context.Context, logs Logs, seconds, meters int, note string) (domain.Run, error) {
	now := s.cal.Now()
	var run domain.Run
	_, err := logs.Runs.Update(ctx, func(runs []domain.Run) ([]domain.Run, error) {
		run = domain.Run{
			ID:              nextID(now, lastID(runs, func(r domain.Run) int64 { return r.ID })),
			Date:            domain.DayString(now),
			DurationSeconds: seconds,
			DistanceMeters:  meters,
			Note:            strings.TrimSpace(note),
		}
		return append(runs, run), nil
	})
	return run, err
}

// List returns all runs, oldest first.
func (s *RunService) List(ctx context.Context) ([]domain.Run, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	return logs.Runs.Get(ctx), nil
}
