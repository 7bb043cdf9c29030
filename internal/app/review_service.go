package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"forge/internal/domain"
	"forge/internal/store"
)

var (
	// ErrReviewCooldown indicates the cached review is younger than a week.
	ErrReviewCooldown = errors.New("weekly review already generated this week")
	// ErrNoReview indicates there is no cached review to act on.
	ErrNoReview = errors.New("no weekly review")
)

// FallbackSummary replaces the review when the coach cannot be reached or
// its answer does not parse.
const FallbackSummary = "Unable to connect. Check your internet and try again."

// ReviewService generates and caches the weekly review.
type ReviewService struct {
	accountLogs
	coach domain.Coach
}

// NewReviewService creates a ReviewService. A nil coach always yields the
// fallback review.
func NewReviewService(st *store.Store, session *Session, cal domain.Calendar, coach domain.Coach) *ReviewService {
	return &ReviewService{accountLogs: accountLogs{store: st, session: session, cal: cal}, coach: coach}
}

// Get returns the cached review, or nil.
func (s *ReviewService) Get(ctx context.Context) (*domain.Review, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	return logs.Review.Get(ctx), nil
}

// CanGenerate reports whether the cooldown allows a new review.
func (s *ReviewService) CanGenerate(ctx context.Context) (bool, error) {
	review, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.canGenerate(review), nil
}

func (s *ReviewService) canGenerate(review *domain.Review) bool {
	return review == nil || s.cal.DaysSince(review.GeneratedOn) >= domain.ReviewCooldownDays
}

// Payload builds the natural-language summary of the week sent to the coach.
func (s *ReviewService) Payload(ctx context.Context) (string, error) {
	account, logs, err := s.current()
	if err != nil {
		return "", err
	}
	return buildPayload(s.cal, logs.Snapshot(ctx, account)), nil
}

func buildPayload(cal domain.Calendar, snap Snapshot) string {
	week := domain.NewDaySet(cal.WeekWindow()...)
	var runs, focus, calories, workouts int
	for _, r := range snap.Runs {
		if week.Has(r.Date) {
			runs++
		}
	}
	for _, f := range snap.Focus {
		if week.Has(f.Date) {
			focus += f.Minutes
		}
	}
	for _, m := range snap.Meals {
		if week.Has(m.Date) {
			calories += m.Calories
		}
	}
	for _, w := range snap.Workouts {
		if w.Completed && week.Has(w.Date) {
			workouts++
		}
	}
	avg := int(math.Round(float64(calories) / 7))
	g := snap.Account.Goals
	return fmt.Sprintf("User: %s. Goals: %d runs/wk, %d workouts/wk, %d kcal/day. "+
		"This week: %d runs (goal: %d), %d focus min, avg %d kcal/day (goal: %d), %d workouts (goal: %d). "+
		"Best streaks: run %dd, focus %dd.",
		snap.Account.Name, g.RunsPerWeek, g.WorkoutsPerWeek, g.CaloriesPerDay,
		runs, g.RunsPerWeek, focus, avg, g.CaloriesPerDay, workouts, g.WorkoutsPerWeek,
		cal.Streak(domain.RunDays(snap.Runs)), cal.Streak(domain.FocusDays(snap.Focus)))
}

// Generate asks the coach for a new review and caches it. Coach failures
// are not returned; they produce the fallback review. The review is held
// for the whole cycle, so overlapping calls reach the coach once and the
// later ones see the cooldown.
func (s *ReviewService) Generate(ctx context.Context) (domain.Review, error) {
	account, logs, err := s.current()
	if err != nil {
		return domain.Review{}, err
	}

	review, err := logs.Review.Update(ctx, func(cur *domain.Review) (*domain.Review, error) {
		if !s.canGenerate(cur) {
			return cur, ErrReviewCooldown
		}
		review := s.draft(ctx, logs.Snapshot(ctx, account))
		review.GeneratedOn = s.cal.Today()
		return &review, nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	return *review, nil
}

func (s *ReviewService) draft(ctx context.Context, snap Snapshot) domain.Review {
	review := domain.Review{Summary: FallbackSummary, Suggestions: []domain.Suggestion{}}
	if s.coach == nil {
		return review
	}
	draft, err := s.coach.WeeklyReview(ctx, buildPayload(s.cal, snap))
	if err != nil {
		log.Printf("weekly review: %v", err)
		return review
	}
	review = domain.Review{
		Summary:        draft.Summary,
		Suggestions:    draft.Suggestions,
		PlanAdjustment: draft.PlanAdjustment,
	}
	if review.Suggestions == nil {
		review.Suggestions = []domain.Suggestion{}
	}
	return review
}

// AcceptPlan marks the plan adjustment accepted.
func (s *ReviewService) AcceptPlan(ctx context.Context) (domain.Review, error) {
	return s.mutate(ctx, func(r *domain.Review) { r.PlanAccepted = true })
}

// SkipPlan drops the plan adjustment.
func (s *ReviewService) SkipPlan(ctx context.Context) (domain.Review, error) {
	return s.mutate(ctx, func(r *domain.Review) { r.PlanAdjustment = nil })
}

func (s *ReviewService) mutate(ctx context.Context, fn func(*domain.Review)) (domain.Review, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Review{}, err
	}
	review, err := logs.Review.Update(ctx, func(r *domain.Review) (*domain.Review, error) {
		if r == nil {
			return nil, ErrNoReview
		}
		fn(r)
		return r, nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	return *review, nil
}
