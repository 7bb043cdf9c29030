package main

import (
	"errors"
	"fmt"

	"forge/internal/app"

	"github.com/spf13/cobra"
)

func (c *cli) registerCmd() *cobra.Command {
	var in app.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := c.app.Services.Auth.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Welcome, %s. Goals: %d runs/wk, %d workouts/wk, %d kcal/day\n",
				account.Name, account.Goals.RunsPerWeek, account.Goals.WorkoutsPerWeek, account.Goals.CaloriesPerDay)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (6+ characters)")
	cmd.Flags().StringVar(&in.Timezone, "timezone", "", "IANA timezone (default: local)")
	cmd.Flags().StringVar(&in.RunsPerWeek, "runs", "", "runs per week goal (default 3)")
	cmd.Flags().StringVar(&in.WorkoutsPerWeek, "workouts", "", "workouts per week goal (default 4)")
	cmd.Flags().StringVar(&in.CaloriesPerDay, "calories", "", "daily calorie goal (default 2000)")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := c.app.Services.Auth.Login(cmd.Context(), email, password)
			switch {
			case errors.Is(err, app.ErrNotFound):
				return errors.New("no account found, register first")
			case errors.Is(err, app.ErrInvalidCredentials):
				return errors.New("incorrect password")
			case err != nil:
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Signed in as %s\n", account.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; your data is kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Services.Auth.SignOut(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := c.app.Services.Auth.Current()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printMetric(out, "Name", account.Name)
			printMetric(out, "Email", account.Email)
			printMetric(out, "Timezone", account.Timezone)
			printMetric(out, "Joined", account.JoinedDate)
			printMetric(out, "Goals", fmt.Sprintf("%d runs/wk, %d workouts/wk, %d kcal/day",
				account.Goals.RunsPerWeek, account.Goals.WorkoutsPerWeek, account.Goals.CaloriesPerDay))
			return nil
		},
	}
}
