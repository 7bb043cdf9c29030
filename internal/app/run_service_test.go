package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"forge/internal/app"
	"forge/internal/domain"
)

func TestRunStartStop(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	svc := app.NewRunService(env.store, env.session, env.cal)

	if _, err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Start(ctx); !errors.Is(err, domain.ErrTimerRunning) {
		t.Fatalf("second Start err = %v; want ErrTimerRunning", err)
	}

	env.clock.Advance(31*time.Minute + 5*time.Second)
	elapsed, running, err := svc.Elapsed(ctx)
	if err != nil || !running || elapsed != 31*time.Minute+5*time.Second {
		t.Fatalf("Elapsed() = %v, %v, %v", elapsed, running, err)
	}

	run, err := svc.Stop(ctx, 5200, " easy ")
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if run.DurationSeconds != 1865 || run.DistanceMeters != 5200 || run.Note != "easy" || run.Date != "2026-03-09" {
		t.Errorf("run = %+v", run)
	}
	if _, err := svc.Stop(ctx, 0, ""); !errors.Is(err, domain.ErrTimerNotRunning) {
		t.Errorf("Stop without timer err = %v; want ErrTimerNotRunning", err)
	}

	runs, _ := svc.List(ctx)
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("List() = %+v", runs)
	}
}

func TestRunDiscard(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	svc := app.NewRunService(env.store, env.session, env.cal)

	if _, err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Discard(ctx); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	runs, _ := svc.List(ctx)
	if len(runs) != 0 {
		t.Errorf("Discard saved %d runs", len(runs))
	}
	if _, running, _ := svc.Elapsed(ctx); running {
		t.Error("timer still running after Discard")
	}
}

func TestRunRecordIDsAreUnique(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	svc := app.NewRunService(env.store, env.session, env.cal)

	// Same clock instant for every record.
	seen := map[int64]bool{}
	for i := 0; i < 3; i++ {
		run, err := svc.Record(ctx, 600, 1000, "")
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if seen[run.ID] {
			t.Fatalf("duplicate id %d", run.ID)
		}
		seen[run.ID] = true
	}
	if _, err := svc.Record(ctx, -1, 0, ""); !errors.Is(err, app.ErrInvalidEvent) {
		t.Errorf("negative duration err = %v; want ErrInvalidEvent", err)
	}
}

func TestRunRequiresAccount(t *testing.T) {
	env := newEnv(t)
	svc := app.NewRunService(env.store, env.session, env.cal)
	if _, err := svc.Start(context.Background()); !errors.Is(err, app.ErrNoActiveAccount) {
		t.Errorf("err = %v; want ErrNoActiveAccount", err)
	}
}
