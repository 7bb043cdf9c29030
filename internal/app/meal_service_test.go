package app_test

import (
	"context"
	"errors"
	"testing"

	"forge/internal/app"
	"forge/internal/domain"
)

func TestMealLogValidation(t *testing.T) {
	tests := []struct {
		name string
		in   app.MealInput
	}{
		{"empty name", app.MealInput{Name: "  ", Calories: 300}},
		{"zero calories", app.MealInput{Name: "Oats", Calories: 0}},
		{"bad type", app.MealInput{Name: "Oats", Calories: 300, MealType: "Brunch"}},
		{"bad time", app.MealInput{Name: "Oats", Calories: 300, Time: "7am"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := signedIn(t)
			svc := app.NewMealService(env.store, env.session, env.cal)
			if _, err := svc.Log(context.Background(), tt.in); !errors.Is(err, app.ErrInvalidEvent) {
				t.Errorf("err = %v; want ErrInvalidEvent", err)
			}
		})
	}
}

func TestMealLogDefaults(t *testing.T) {
	env := signedIn(t)
	svc := app.NewMealService(env.store, env.session, env.cal)
	meal, err := svc.Log(context.Background(), app.MealInput{Name: " Oats ", Calories: 350})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if meal.Name != "Oats" || meal.MealType != domain.Lunch || meal.Time != "09:30" || meal.Date != "2026-03-09" {
		t.Errorf("meal = %+v", meal)
	}
}

func TestMealDeleteKeepsOthersInOrder(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	svc := app.NewMealService(env.store, env.session, env.cal)

	var ids []int64
	for _, name := range []string{"Oats", "Soup", "Pasta", "Apple"} {
		m, err := svc.Log(ctx, app.MealInput{Name: name, Calories: 100})
		if err != nil {
			t.Fatalf("Log: %v", err)
		}
		ids = append(ids, m.ID)
	}

	if err := svc.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := svc.List(ctx)
	want := []string{"Oats", "Pasta", "Apple"}
	if len(got) != len(want) {
		t.Fatalf("List() = %+v", got)
	}
	for i, m := range got {
		if m.Name != want[i] {
			t.Errorf("meal %d = %q; want %q", i, m.Name, want[i])
		}
	}

	if err := svc.Delete(ctx, ids[1]); !errors.Is(err, app.ErrMealNotFound) {
		t.Errorf("second Delete err = %v; want ErrMealNotFound", err)
	}
}

func TestMealToday(t *testing.T) {
	env := signedIn(t)
	ctx := context.Background()
	env.logs(t).Meals.Set(ctx, []domain.Meal{
		{ID: 1, Date: env.day(-1), Name: "Old", Calories: 900},
		{ID: 2, Date: env.day(0), Name: "Oats", Calories: 300},
		{ID: 3, Date: env.day(0), Name: "Soup", Calories: 450},
	})
	svc := app.NewMealService(env.store, env.session, env.cal)
	meals, total, err := svc.Today(ctx)
	if err != nil || len(meals) != 2 || total != 750 {
		t.Errorf("Today() = %v, %d, %v", meals, total, err)
	}
}
