package domain

import "context"

// ReviewDraft is what the remote coach returns for a weekly payload.
type ReviewDraft struct {
	Summary        string       `json:"summary"`
	Suggestions    []Suggestion `json:"suggestions"`
	PlanAdjustment *string      `json:"planAdjustment"`
}

// Coach is the port for the remote weekly-review generator.
type Coach interface {
	WeeklyReview(ctx context.Context, payload string) (ReviewDraft, error)
}
