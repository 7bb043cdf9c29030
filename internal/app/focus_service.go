package app

import (
	"context"

	"forge/internal/domain"
	"forge/internal/store"
)

// FocusService drives the persisted focus timer and records sessions.
type FocusService struct {
	accountLogs
}

// NewFocusService creates a FocusService.
func NewFocusService(st *store.Store, session *Session, cal domain.Calendar) *FocusService {
	return &FocusService{accountLogs{store: st, session: session, cal: cal}}
}

// transition applies fn to the stored timer and appends any session it
// yields to the focus log.
func (s *FocusService) transition(ctx context.Context, fn func(domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error)) (domain.FocusTimer, *domain.FocusSession, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.FocusTimer{}, nil, err
	}
	var session *domain.FocusSession
	timer, err := logs.FocusTimer.Update(ctx, func(t domain.FocusTimer) (domain.FocusTimer, error) {
		next, sess, err := fn(t)
		session = sess
		return next, err
	})
	if err != nil || session == nil {
		return timer, nil, err
	}

	now := s.cal.Now()
	_, err = logs.Focus.Update(ctx, func(sessions []domain.FocusSession) ([]domain.FocusSession, error) {
		session.ID = nextID(now, lastID(sessions, func(f domain.FocusSession) int64 { return f.ID }))
		return append(sessions, *session), nil
	})
	return timer, session, err
}

// Start begins a countdown of minutes.
func (s *FocusService) Start(ctx context.Context, minutes int) (domain.FocusTimer, error) {
	now := s.cal.Now()
	t, _, err := s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		// A completed countdown is settled before a new one replaces it.
		t, sess := t.Tick(now)
		next, err := t.Start(now, minutes)
		if err != nil {
			return t, sess, err
		}
		return next, sess, nil
	})
	return t, err
}

// Pause pauses the running countdown.
func (s *FocusService) Pause(ctx context.Context) (domain.FocusTimer, *domain.FocusSession, error) {
	now := s.cal.Now()
	return s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		if t, sess := t.Tick(now); sess != nil {
			return t, sess, nil
		}
		next, err := t.Pause(now)
		return next, nil, err
	})
}

// Hide pauses a running countdown and raises the return nudge.
func (s *FocusService) Hide(ctx context.Context) (domain.FocusTimer, *domain.FocusSession, error) {
	now := s.cal.Now()
	return s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		if t, sess := t.Tick(now); sess != nil {
			return t, sess, nil
		}
		return t.Hide(now), nil, nil
	})
}

// Resume continues a paused countdown and clears the nudge.
func (s *FocusService) Resume(ctx context.Context) (domain.FocusTimer, error) {
	now := s.cal.Now()
	t, _, err := s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		next, err := t.Resume(now)
		return next, nil, err
	})
	return t, err
}

// Status re-reads the clock, completing the countdown when it has run out.
func (s *FocusService) Status(ctx context.Context) (domain.FocusTimer, *domain.FocusSession, error) {
	now := s.cal.Now()
	return s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		next, sess := t.Tick(now)
		return next, sess, nil
	})
}

// Stop ends the countdown early. The session is nil when too little time
// elapsed to be credited.
func (s *FocusService) Stop(ctx context.Context) (*domain.FocusSession, error) {
	now := s.cal.Now()
	_, sess, err := s.transition(ctx, func(t domain.FocusTimer) (domain.FocusTimer, *domain.FocusSession, error) {
		return t.Stop(now)
	})
	return sess, err
}

// List returns all focus sessions, oldest first.
func (s *FocusService) List(ctx context.Context) ([]domain.FocusSession, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	return logs.Focus.Get(ctx), nil
}
