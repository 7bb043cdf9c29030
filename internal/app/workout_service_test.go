package app_test

import (
	"context"
	"errors"
	"testing"

	"forge/internal/app"
)

func TestWorkoutPlanThenComplete(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	svc := app.NewWorkoutService(env.store, env.session, env.cal)

	w, err := svc.Plan(ctx, "Upper", "", 45)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if w.Completed || w.Type != "Push" || w.CompletedAt != nil {
		t.Fatalf("planned = %+v", w)
	}

	done, err := svc.Complete(ctx, w.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil || !done.CompletedAt.Equal(testNow) {
		t.Errorf("completed = %+v", done)
	}

	if _, err := svc.Complete(ctx, w.ID); !errors.Is(err, app.ErrWorkoutAlreadyCompleted) {
		t.Errorf("second Complete err = %v; want ErrWorkoutAlreadyCompleted", err)
	}
	if _, err := svc.Complete(ctx, 42); !errors.Is(err, app.ErrWorkoutNotFound) {
		t.Errorf("Complete(42) err = %v; want ErrWorkoutNotFound", err)
	}

	all, _ := svc.List(ctx)
	if len(all) != 1 {
		t.Errorf("List() has %d workouts; want 1", len(all))
	}
}

func TestWorkoutQuickLog(t *testing.T) {
	env := signedIn(t)
	svc := app.NewWorkoutService(env.store, env.session, env.cal)
	w, err := svc.QuickLog(context.Background())
	if err != nil {
		t.Fatalf("QuickLog: %v", err)
	}
	if !w.Completed || w.Name != "Quick Workout" || w.CompletedAt == nil {
		t.Errorf("quick = %+v", w)
	}
}

func TestWorkoutPlanRequiresName(t *testing.T) {
	env := signedIn(t)
	svc := app.NewWorkoutService(env.store, env.session, env.cal)
	if _, err := svc.Plan(context.Background(), " ", "Legs", 0); !errors.Is(err, app.ErrInvalidEvent) {
		t.Errorf("err = %v; want ErrInvalidEvent", err)
	}
}
