package main

import (
	"fmt"
	"io"
	"time"

	"forge/internal/domain"

	"github.com/spf13/cobra"
)

func (c *cli) focusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run focus sessions",
	}

	var minutes int
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a focus countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.app.Services.Focus.Start(cmd.Context(), minutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📚 Focus started: %d min\n", t.Minutes)
			return nil
		},
	}
	start.Flags().IntVarP(&minutes, "minutes", "m", domain.FocusPresetShort, "session length in minutes (presets: 25, 50)")

	pause := &cobra.Command{
		Use:   "pause",
		Short: "Pause the countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, sess, err := c.app.Services.Focus.Pause(cmd.Context())
			if err != nil {
				return err
			}
			c.printFocus(cmd.OutOrStdout(), t, sess)
			return nil
		},
	}

	hide := &cobra.Command{
		Use:   "hide",
		Short: "Step away: pause and leave a reminder to come back",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, sess, err := c.app.Services.Focus.Hide(cmd.Context())
			if err != nil {
				return err
			}
			c.printFocus(cmd.OutOrStdout(), t, sess)
			return nil
		},
	}

	resume := &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.app.Services.Focus.Resume(cmd.Context())
			if err != nil {
				return err
			}
			c.printFocus(cmd.OutOrStdout(), t, nil)
			return nil
		},
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "End the countdown early",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Services.Focus.Stop(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sess == nil {
				fmt.Fprintf(out, "Stopped. Sessions under %d minutes are not recorded.\n", domain.MinFocusCreditSeconds/60)
				return nil
			}
			kind := "complete"
			if sess.Partial {
				kind = "partial"
			}
			fmt.Fprintf(out, "✅ Logged %d min (%s)\n", sess.Minutes, kind)
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, sess, err := c.app.Services.Focus.Status(cmd.Context())
			if err != nil {
				return err
			}
			c.printFocus(cmd.OutOrStdout(), t, sess)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := c.app.Services.Focus.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No focus sessions yet.")
				return nil
			}
			for i := len(sessions) - 1; i >= 0; i-- {
				s := sessions[i]
				kind := "complete"
				if s.Partial {
					kind = "partial"
				}
				fmt.Fprintf(out, "  %s  %3d min  %s\n", s.Date, s.Minutes, kind)
			}
			return nil
		},
	}

	cmd.AddCommand(start, pause, hide, resume, stop, status, list)
	return cmd
}

func (c *cli) printFocus(out io.Writer, t domain.FocusTimer, completed *domain.FocusSession) {
	if completed != nil {
		fmt.Fprintf(out, "🎉 Session complete: %d min logged\n", completed.Minutes)
		return
	}
	now := c.now()
	switch t.State {
	case domain.TimerRunning:
		printMetric(out, "Running", clock(t.Remaining(now))+" left")
	case domain.TimerPaused:
		printMetric(out, "Paused", clock(t.Remaining(now))+" left")
		if t.Nudge {
			fmt.Fprintln(out, amberStyle.Sprint("  Come back and resume with `forge focus resume`."))
		}
	default:
		fmt.Fprintln(out, "No focus session running.")
	}
	if t.Minutes > 0 && t.State != domain.TimerIdle {
		fmt.Fprintf(out, "  %s\n", bar(float64(t.Elapsed(now))/float64(t.Planned()), 30))
	}
}

func (c *cli) now() time.Time {
	if c.clock == nil {
		return time.Now()
	}
	return c.clock.Now()
}
