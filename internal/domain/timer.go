package domain

import (
	"errors"
	"time"
)

var (
	// ErrTimerRunning indicates a timer is already in progress.
	ErrTimerRunning = errors.New("timer already running")
	// ErrTimerNotRunning indicates there is no running timer to act on.
	ErrTimerNotRunning = errors.New("timer not running")
	// ErrTimerNotPaused indicates resume was requested on a timer that is not paused.
	ErrTimerNotPaused = errors.New("timer not paused")
	// ErrInvalidDuration indicates a non-positive focus duration.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
)

// Focus presets in minutes.
const (
	FocusPresetShort = 25
	FocusPresetLong  = 50
)

// TimerState is the lifecycle state of a timer.
type TimerState string

// Timer states.
const (
	TimerIdle      TimerState = "idle"
	TimerRunning   TimerState = "running"
	TimerPaused    TimerState = "paused"
	TimerCompleted TimerState = "completed"
)

// FocusTimer is a countdown for one focus session. Elapsed time is derived
// from the clock on every transition: Accumulated holds the time banked
// before the last resume and ResumedAt the start of the current running span.
type FocusTimer struct {
	State       TimerState    `json:"state"`
	Minutes     int           `json:"minutes"`
	Accumulated time.Duration `json:"accumulated"`
	ResumedAt   time.Time     `json:"resumedAt"`
	Nudge       bool          `json:"nudge"`
}

// Planned returns the planned session length.
func (t FocusTimer) Planned() time.Duration {
	return time.Duration(t.Minutes) * time.Minute
}

// Elapsed returns the focused time at now. Paused timers do not accrue.
func (t FocusTimer) Elapsed(now time.Time) time.Duration {
	elapsed := t.Accumulated
	if t.State == TimerRunning && now.After(t.ResumedAt) {
		elapsed += now.Sub(t.ResumedAt)
	}
	if planned := t.Planned(); elapsed > planned {
		elapsed = planned
	}
	return elapsed
}

// Remaining returns the time left at now.
func (t FocusTimer) Remaining(now time.Time) time.Duration {
	return t.Planned() - t.Elapsed(now)
}

// Start begins a new countdown of minutes. Completed or idle timers may be
// restarted; active ones may not.
func (t FocusTimer) Start(now time.Time, minutes int) (FocusTimer, error) {
	if t.State == TimerRunning || t.State == TimerPaused {
		return t, ErrTimerRunning
	}
	if minutes <= 0 {
		return t, ErrInvalidDuration
	}
	return FocusTimer{State: TimerRunning, Minutes: minutes, ResumedAt: now}, nil
}

// Pause banks the running span and stops accrual.
func (t FocusTimer) Pause(now time.Time) (FocusTimer, error) {
	if t.State != TimerRunning {
		return t, ErrTimerNotRunning
	}
	t.Accumulated = t.Elapsed(now)
	t.State = TimerPaused
	t.ResumedAt = time.Time{}
	return t, nil
}

// Hide handles loss of foreground visibility: a running timer pauses at once
// and raises the nudge flag. Anything else is left untouched.
func (t FocusTimer) Hide(now time.Time) FocusTimer {
	if t.State != TimerRunning {
		return t
	}
	t, _ = t.Pause(now)
	t.Nudge = true
	return t
}

// Resume continues a paused timer from now.
func (t FocusTimer) Resume(now time.Time) (FocusTimer, error) {
	if t.State != TimerPaused {
		return t, ErrTimerNotPaused
	}
	t.State = TimerRunning
	t.ResumedAt = now
	t.Nudge = false
	return t, nil
}

// Tick re-reads the clock. A running timer whose elapsed time reached the
// planned duration completes and yields a full session.
func (t FocusTimer) Tick(now time.Time) (FocusTimer, *FocusSession) {
	if t.State != TimerRunning || t.Elapsed(now) < t.Planned() {
		return t, nil
	}
	t.Accumulated = t.Planned()
	t.State = TimerCompleted
	t.ResumedAt = time.Time{}
	return t, &FocusSession{Date: DayString(now), Minutes: t.Minutes}
}

// Stop ends an active timer early. A session is produced only when at least
// MinFocusCreditSeconds elapsed; it is marked partial and credited whole
// minutes. A timer that reached its planned length completes normally.
func (t FocusTimer) Stop(now time.Time) (FocusTimer, *FocusSession, error) {
	if t.State != TimerRunning && t.State != TimerPaused {
		return t, nil, ErrTimerNotRunning
	}
	if _, session := t.Tick(now); session != nil {
		return FocusTimer{State: TimerIdle}, session, nil
	}
	elapsed := int(t.Elapsed(now) / time.Second)
	idle := FocusTimer{State: TimerIdle}
	if elapsed < MinFocusCreditSeconds {
		return idle, nil, nil
	}
	return idle, &FocusSession{Date: DayString(now), Minutes: elapsed / 60, Partial: true}, nil
}

// RunTimer measures the duration of a run from its start instant.
type RunTimer struct {
	State     TimerState `json:"state"`
	StartedAt time.Time  `json:"startedAt"`
}

// Start begins timing a run.
func (t RunTimer) Start(now time.Time) (RunTimer, error) {
	if t.State == TimerRunning {
		return t, ErrTimerRunning
	}
	return RunTimer{State: TimerRunning, StartedAt: now}, nil
}

// Elapsed returns the time since the run started.
func (t RunTimer) Elapsed(now time.Time) time.Duration {
	if t.State != TimerRunning || now.Before(t.StartedAt) {
		return 0
	}
	return now.Sub(t.StartedAt)
}

// Stop ends the run and returns its whole-second duration.
func (t RunTimer) Stop(now time.Time) (RunTimer, int, error) {
	if t.State != TimerRunning {
		return t, 0, ErrTimerNotRunning
	}
	return RunTimer{State: TimerIdle}, int(t.Elapsed(now) / time.Second), nil
}
