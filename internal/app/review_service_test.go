package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"forge/internal/app"
	"forge/internal/domain"
)

type mockCoach struct {
	reviewFn func(ctx context.Context, payload string) (domain.ReviewDraft, error)
	calls    int
}

func (m *mockCoach) WeeklyReview(ctx context.Context, payload string) (domain.ReviewDraft, error) {
	m.calls++
	if m.reviewFn != nil {
		return m.reviewFn(ctx, payload)
	}
	return domain.ReviewDraft{}, errors.New("not configured")
}

func strPtr(s string) *string { return &s }

func TestReviewPayload(t *testing.T) {
	env := signedIn(t)
	seedWeek(t, env)
	svc := app.NewReviewService(env.store, env.session, env.cal, nil)

	got, err := svc.Payload(context.Background())
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	want := "User: Ada. Goals: 3 runs/wk, 4 workouts/wk, 2000 kcal/day. " +
		"This week: 3 runs (goal: 3), 40 focus min, avg 171 kcal/day (goal: 2000), 2 workouts (goal: 4). " +
		"Best streaks: run 3d, focus 2d."
	if got != want {
		t.Errorf("Payload() =\n%s\nwant\n%s", got, want)
	}
}

func TestReviewGenerate(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	var sent string
	coach := &mockCoach{reviewFn: func(_ context.Context, payload string) (domain.ReviewDraft, error) {
		sent = payload
		return domain.ReviewDraft{
			Summary:        "Solid week.",
			Suggestions:    []domain.Suggestion{{Title: "Sleep", Text: "Go to bed earlier."}, {Title: "Fuel", Text: "Log lunch."}},
			PlanAdjustment: strPtr("Add one easy run."),
		}, nil
	}}
	svc := app.NewReviewService(env.store, env.session, env.cal, coach)

	review, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if sent == "" {
		t.Error("coach received no payload")
	}
	if review.Summary != "Solid week." || len(review.Suggestions) != 2 || review.GeneratedOn != "2026-03-09" || review.PlanAccepted {
		t.Errorf("review = %+v", review)
	}

	cached, _ := svc.Get(ctx)
	if cached == nil || cached.Summary != "Solid week." {
		t.Fatalf("cached = %+v", cached)
	}
}

func TestReviewCooldown(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	coach := &mockCoach{reviewFn: func(context.Context, string) (domain.ReviewDraft, error) {
		return domain.ReviewDraft{Summary: "ok"}, nil
	}}
	svc := app.NewReviewService(env.store, env.session, env.cal, coach)

	if ok, _ := svc.CanGenerate(ctx); !ok {
		t.Fatal("first review should be allowed")
	}
	if _, err := svc.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	env.clock.Advance(6 * 24 * time.Hour)
	if _, err := svc.Generate(ctx); !errors.Is(err, app.ErrReviewCooldown) {
		t.Fatalf("Generate after 6 days err = %v; want ErrReviewCooldown", err)
	}

	env.clock.Advance(24 * time.Hour)
	if ok, _ := svc.CanGenerate(ctx); !ok {
		t.Fatal("review should be allowed after 7 days")
	}
	if _, err := svc.Generate(ctx); err != nil {
		t.Fatalf("Generate after 7 days: %v", err)
	}
	if coach.calls != 2 {
		t.Errorf("coach called %d times; want 2", coach.calls)
	}
}

func TestReviewGenerateOverlapping(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	var calls atomic.Int32
	coach := &mockCoach{reviewFn: func(context.Context, string) (domain.ReviewDraft, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return domain.ReviewDraft{Summary: "ok"}, nil
	}}
	svc := app.NewReviewService(env.store, env.session, env.cal, coach)

	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Generate(ctx)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, app.ErrReviewCooldown):
			t.Errorf("Generate err = %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("%d calls succeeded; want 1", ok)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("coach called %d times; want 1", n)
	}
}

func TestReviewAcceptDuringGenerateKeepsNewReview(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	var svc *app.ReviewService
	accepted := make(chan error, 1)
	coach := &mockCoach{reviewFn: func(context.Context, string) (domain.ReviewDraft, error) {
		go func() {
			_, err := svc.AcceptPlan(ctx)
			accepted <- err
		}()
		time.Sleep(10 * time.Millisecond)
		return domain.ReviewDraft{Summary: "fresh", PlanAdjustment: strPtr("Add a rest day.")}, nil
	}}
	svc = app.NewReviewService(env.store, env.session, env.cal, coach)

	if _, err := svc.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := <-accepted; err != nil {
		t.Fatalf("AcceptPlan: %v", err)
	}

	got, err := svc.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if got.Summary != "fresh" || !got.PlanAccepted {
		t.Errorf("review = %+v; want the generated review, accepted", got)
	}
}

func TestReviewFallback(t *testing.T) {
	tests := []struct {
		name  string
		coach domain.Coach
	}{
		{"coach error", &mockCoach{}},
		{"no coach", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := signedIn(t)
			svc := app.NewReviewService(env.store, env.session, env.cal, tt.coach)
			review, err := svc.Generate(context.Background())
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if review.Summary != app.FallbackSummary || len(review.Suggestions) != 0 || review.PlanAdjustment != nil {
				t.Errorf("review = %+v; want the fallback", review)
			}
			if review.GeneratedOn != "2026-03-09" {
				t.Errorf("GeneratedOn = %q", review.GeneratedOn)
			}
		})
	}
}

func TestReviewAcceptAndSkip(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	coach := &mockCoach{reviewFn: func(context.Context, string) (domain.ReviewDraft, error) {
		return domain.ReviewDraft{Summary: "ok", PlanAdjustment: strPtr("Rest Sunday.")}, nil
	}}
	svc := app.NewReviewService(env.store, env.session, env.cal, coach)

	if _, err := svc.AcceptPlan(ctx); !errors.Is(err, app.ErrNoReview) {
		t.Fatalf("AcceptPlan without review err = %v; want ErrNoReview", err)
	}
	if _, err := svc.Generate(ctx); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	r, err := svc.AcceptPlan(ctx)
	if err != nil || !r.PlanAccepted || r.PlanAdjustment == nil {
		t.Fatalf("AcceptPlan() = %+v, %v", r, err)
	}
	r, err = svc.SkipPlan(ctx)
	if err != nil || r.PlanAdjustment != nil {
		t.Fatalf("SkipPlan() = %+v, %v", r, err)
	}
	cached, _ := svc.Get(ctx)
	if cached.PlanAdjustment != nil || cached.Summary != "ok" {
		t.Errorf("cached = %+v", cached)
	}
}
