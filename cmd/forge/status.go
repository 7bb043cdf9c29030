package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's checklist, streaks and the weekly score",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.app.Services.Summary.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			printBoxedHeader(out, "FORGE · "+d.Today)
			printMetric(out, "Today's discipline", fmt.Sprintf("%d%%", d.Discipline))
			fmt.Fprintln(out)

			runValue := "Not done"
			if d.Checklist.Run {
				runValue = "Done"
			}
			calValue := "Not logged"
			if d.Checklist.Calories {
				calValue = fmt.Sprintf("%d kcal", d.CaloriesToday)
			}
			workoutValue := "Not done"
			if d.Checklist.Workout {
				workoutValue = "Done"
			}
			printCheck(out, "Run", d.Checklist.Run, runValue)
			printCheck(out, "Focus", d.Checklist.Focus, fmt.Sprintf("%d min", d.FocusToday))
			printCheck(out, "Calories", d.Checklist.Calories, calValue)
			printCheck(out, "Workout", d.Checklist.Workout, workoutValue)
			fmt.Fprintln(out)

			printMetric(out, "Best streak", fmt.Sprintf("%d days 🔥", d.BestStreak))
			printMetric(out, "Streaks", fmt.Sprintf("run %dd, focus %dd, meals %dd, workouts %dd",
				d.Streaks.Run, d.Streaks.Focus, d.Streaks.Meal, d.Streaks.Workout))
			printMetric(out, "Week score", fmt.Sprintf("%d%%", d.WeekScore))
			printMetric(out, "Runs this week", fmt.Sprintf("%d / %d", d.Runs.Count, d.Runs.Goal))
			printMetric(out, "Workouts this week", fmt.Sprintf("%d / %d", d.Workouts.Count, d.Workouts.Goal))
			printMetric(out, "Focus this week", fmt.Sprintf("%d min", d.FocusMinutes))
			printMetric(out, "Avg calories", fmt.Sprintf("%d / %d kcal", d.AvgCalories, d.CalorieGoal))
			fmt.Fprintln(out)

			fmt.Fprintln(out, headerStyle.Sprint("Weekly activity:"))
			for _, day := range d.Week {
				fmt.Fprintf(out, "  %s %s\n", day.Weekday, bar(day.Score, 20))
			}

			if d.Review != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, amberStyle.Sprint("Latest weekly review:"))
				fmt.Fprintf(out, "  %s\n", d.Review.Summary)
			}
			return nil
		},
	}
}

func (c *cli) dailyCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show per-day totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := c.app.Services.Summary.Daily(cmd.Context(), days)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %-10s %5s %9s %6s %6s %8s\n", "Day", "Runs", "Meters", "Focus", "kcal", "Workouts")
			for _, p := range points {
				fmt.Fprintf(out, "  %-10s %5d %9d %6d %6d %8d\n", p.Day, p.Runs, p.RunMeters, p.FocusMinutes, p.Calories, p.Workouts)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 14, "number of days (max 366)")
	return cmd
}
