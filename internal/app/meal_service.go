package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"forge/internal/domain"
	"forge/internal/store"
)

// MealInput is the meal form.
type MealInput struct {
	Name     string
	Calories int
	MealType domain.MealType
	// Time is local HH:MM; empty means now.
	Time string
}

// MealService records and deletes meals.
type MealService struct {
	accountLogs
}

// NewMealService creates a MealService.
func NewMealService(st *store.Store, session *Session, cal domain.Calendar) *MealService {
	return &MealService{accountLogs{store: st, session: session, cal: cal}}
}

// Log validates in and appends a meal dated today.
func (s *MealService) Log(ctx context.Context, in MealInput) (domain.Meal, error) {
	_, logs, err := s.current()
	if err != nil {
		return domain.Meal{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Meal{}, fmt.Errorf("%w: meal name required", ErrInvalidEvent)
	}
	if in.Calories <= 0 {
		return domain.Meal{}, fmt.Errorf("%w: calories must be positive", ErrInvalidEvent)
	}
	mealType := in.MealType
	if mealType == "" {
		mealType = domain.Lunch
	}
	if !mealType.Valid() {
		return domain.Meal{}, fmt.Errorf("%w: unknown meal type %q", ErrInvalidEvent, mealType)
	}

	now := s.cal.Now()
	at := strings.TrimSpace(in.Time)
	if at == "" {
		at = now.Format("15:04")
	} else if _, err := time.Parse("15:04", at); err != nil {
		return domain.Meal{}, fmt.Errorf("%w: time must be HH:MM", ErrInvalidEvent)
	}

	var meal domain.Meal
	_, err = logs.Meals.Update(ctx, func(meals []domain.Meal) ([]domain.Meal, error) {
		meal = domain.Meal{
			ID:       nextID(now, lastID(meals, func(m domain.Meal) int64 { return m.ID })),
			Date:     domain.DayString(now),
			Name:     name,
			Calories: in.Calories,
			MealType: mealType,
			Time:     at,
		}
		return append(meals, meal), nil
	})
	return meal, err
}

// Delete removes the meal with id.
func (s *MealService) Delete(ctx context.Context, id int64) error {
	_, logs, err := s.current()
	if err != nil {
		return err
	}
	_, err = logs.Meals.Update(ctx, func(meals []domain.Meal) ([]domain.Meal, error) {
		for i, m := range meals {
			if m.ID == id {
				return append(meals[:i:i], meals[i+1:]...), nil
			}
		}
		return meals, ErrMealNotFound
	})
	return err
}

// List returns all meals, oldest first.
func (s *MealService) List(ctx context.Context) ([]domain.Meal, error) {
	_, logs, err := s.current()
	if err != nil {
		return nil, err
	}
	return logs.Meals.Get(ctx), nil
}

// Today returns today's meals and their calorie total.
func (s *MealService) Today(ctx context.Context) ([]domain.Meal, int, error) {
	meals, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	today := s.cal.Today()
	var out []domain.Meal
	total := 0
	for _, m := range meals {
		if m.Date == today {
			out = append(out, m)
			total += m.Calories
		}
	}
	return out, total, nil
}
