package main

import (
	"fmt"
	"strconv"

	"forge/internal/app"
	"forge/internal/domain"

	"github.com/spf13/cobra"
)

func (c *cli) mealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log meals and calories",
	}

	var in app.MealInput
	var mealType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a meal",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.MealType = domain.MealType(mealType)
			meal, err := c.app.Services.Meals.Log(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🍎 Meal logged: %s, %d kcal (%s, %s)\n", meal.Name, meal.Calories, meal.MealType, meal.Time)
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "meal name")
	add.Flags().IntVar(&in.Calories, "calories", 0, "calories (kcal)")
	add.Flags().StringVar(&mealType, "type", string(domain.Lunch), "Breakfast, Lunch, Dinner or Snack")
	add.Flags().StringVar(&in.Time, "time", "", "local time HH:MM (default now)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid meal id %q", args[0])
			}
			if err := c.app.Services.Meals.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Meal deleted.")
			return nil
		},
	}

	var todayOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			meals := c.app.Services.Meals
			out := cmd.OutOrStdout()
			var (
				items []domain.Meal
				total int
				err   error
			)
			if todayOnly {
				items, total, err = meals.Today(cmd.Context())
			} else {
				items, err = meals.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, m := range items {
				fmt.Fprintf(out, "  %d  %s %s  %-9s %5d kcal  %s\n", m.ID, m.Date, m.Time, m.MealType, m.Calories, m.Name)
			}
			if todayOnly {
				account, _ := c.app.Services.Auth.Current()
				goal := account.Goals.CaloriesPerDay
				printMetric(out, "Today", fmt.Sprintf("%d / %d kcal", total, goal))
				if goal > 0 {
					fmt.Fprintf(out, "  %s\n", bar(float64(total)/float64(goal), 30))
				}
			}
			return nil
		},
	}
	list.Flags().BoolVar(&todayOnly, "today", false, "only today's meals, with the calorie goal")

	cmd.AddCommand(add, del, list)
	return cmd
}
