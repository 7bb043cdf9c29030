package main

import (
	"fmt"
	"strconv"
	"strings"

	"forge/internal/domain"

	"github.com/spf13/cobra"
)

func (c *cli) workoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Plan and complete workouts",
	}

	var name, workoutType string
	var minutes int
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Plan a workout for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.app.Services.Workouts.Plan(cmd.Context(), name, workoutType, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💪 Planned %s (%s), id %d\n", w.Name, w.Type, w.ID)
			return nil
		},
	}
	plan.Flags().StringVar(&name, "name", "", "workout name")
	plan.Flags().StringVar(&workoutType, "type", "Push", strings.Join(domain.WorkoutTypes, ", "))
	plan.Flags().IntVar(&minutes, "minutes", 0, "planned duration in minutes (optional)")

	quick := &cobra.Command{
		Use:   "quick",
		Short: "Log a completed workout now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Services.Workouts.QuickLog(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Workout logged.")
			return nil
		},
	}

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a planned workout completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid workout id %q", args[0])
			}
			w, err := c.app.Services.Workouts.Complete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s completed.\n", w.Name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.app.Services.Workouts.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ws) == 0 {
				fmt.Fprintln(out, "No workouts yet.")
				return nil
			}
			for i := len(ws) - 1; i >= 0; i-- {
				w := ws[i]
				state := mutedStyle.Sprint("planned")
				if w.Completed {
					state = doneStyle.Sprint("done")
				}
				dur := ""
				if w.DurationMinutes > 0 {
					dur = fmt.Sprintf("%d min", w.DurationMinutes)
				}
				fmt.Fprintf(out, "  %d  %s  %-14s %-9s %-7s %s\n", w.ID, w.Date, w.Name, w.Type, dur, state)
			}
			return nil
		},
	}

	cmd.AddCommand(plan, quick, complete, list)
	return cmd
}
