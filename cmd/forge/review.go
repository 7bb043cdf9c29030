package main

import (
	"fmt"
	"io"

	"forge/internal/domain"

	"github.com/spf13/cobra"
)

func (c *cli) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Weekly coach review",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate this week's review (once every 7 days)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), "Analyzing your week across all modules…")
			r, err := c.app.Services.Review.Generate(cmd.Context())
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), r)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the latest review",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Services.Review.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if r == nil {
				fmt.Fprintln(out, "No review yet. Run `forge review generate`.")
				return nil
			}
			printReview(out, *r)
			if ok, _ := c.app.Services.Review.CanGenerate(cmd.Context()); ok {
				fmt.Fprintln(out, mutedStyle.Sprint("  A new review can be generated."))
			}
			return nil
		},
	}

	accept := &cobra.Command{
		Use:   "accept",
		Short: "Accept next week's plan tweak",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Services.Review.AcceptPlan(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doneStyle.Sprint("✓ Accepted"))
			return nil
		},
	}

	skip := &cobra.Command{
		Use:   "skip",
		Short: "Skip next week's plan tweak",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Services.Review.SkipPlan(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan tweak skipped.")
			return nil
		},
	}

	cmd.AddCommand(generate, show, accept, skip)
	return cmd
}

func printReview(out io.Writer, r domain.Review) {
	printBoxedHeader(out, "WEEKLY REPORT")
	printMetric(out, "Generated", r.GeneratedOn)
	fmt.Fprintf(out, "\n  %s\n", r.Summary)
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Sprint("Suggestions:"))
		for _, s := range r.Suggestions {
			fmt.Fprintf(out, "  • %s: %s\n", labelStyle.Sprint(s.Title), s.Text)
		}
	}
	if r.PlanAdjustment != nil {
		fmt.Fprintln(out)
		printMetric(out, "Next week tweak", *r.PlanAdjustment)
		if r.PlanAccepted {
			fmt.Fprintln(out, doneStyle.Sprint("  ✓ Accepted"))
		}
	}
}
