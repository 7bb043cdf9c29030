package main

import (
	"fmt"
	"time"

	"forge/internal/app"

	"github.com/spf13/cobra"
)

func (c *cli) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time and log runs",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start the run timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Services.Runs.Start(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🏃 Run started. Stop it with `forge run stop --distance <meters>`.")
			return nil
		},
	}

	var distance int
	var note string
	var discard bool
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the run timer and save the run",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := c.app.Services.Runs
			if discard {
				if err := runs.Discard(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Run discarded.")
				return nil
			}
			run, err := runs.Stop(cmd.Context(), distance, note)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBoxedHeader(out, "RUN SAVED")
			printMetric(out, "Duration", app.FormatDuration(run.DurationSeconds))
			printMetric(out, "Distance", app.FormatDistance(run.DistanceMeters))
			return nil
		},
	}
	stop.Flags().IntVar(&distance, "distance", 0, "distance in meters")
	stop.Flags().StringVar(&note, "note", "", "note")
	stop.Flags().BoolVar(&discard, "discard", false, "discard instead of saving")

	var duration time.Duration
	var addDistance int
	var addNote string
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a run timed elsewhere",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.app.Services.Runs.Record(cmd.Context(), int(duration/time.Second), addDistance, addNote)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Run logged: %s in %s\n", app.FormatDistance(run.DistanceMeters), app.FormatDuration(run.DurationSeconds))
			return nil
		},
	}
	add.Flags().DurationVar(&duration, "duration", 0, "duration, e.g. 31m5s")
	add.Flags().IntVar(&addDistance, "distance", 0, "distance in meters")
	add.Flags().StringVar(&addNote, "note", "", "note")

	list := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := c.app.Services.Runs.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if elapsed, running, _ := c.app.Services.Runs.Elapsed(cmd.Context()); running {
				printMetric(out, "Running", clock(elapsed))
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs yet.")
				return nil
			}
			for i := len(runs) - 1; i >= 0; i-- {
				r := runs[i]
				fmt.Fprintf(out, "  %s  %-9s %8s  %s\n", r.Date, app.FormatDistance(r.DistanceMeters), app.FormatDuration(r.DurationSeconds), r.Note)
			}
			return nil
		},
	}

	cmd.AddCommand(start, stop, add, list)
	return cmd
}
