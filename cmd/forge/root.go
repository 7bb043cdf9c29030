package main

import (
	"forge/internal/bootstrap"
	"forge/internal/config"
	"forge/internal/domain"

	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	configPath string
	clock      domain.Clock
	app        *bootstrap.App
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithClock(nil)
}

func newRootCmdWithClock(clock domain.Clock) *cobra.Command {
	c := &cli{clock: clock}
	root := &cobra.Command{
		Use:           "forge",
		Short:         "Track runs, focus, meals and workouts; build streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.app, err = bootstrap.New(cmd.Context(), cfg, c.clock)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/forge/config.toml)")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.runCmd(),
		c.focusCmd(),
		c.mealCmd(),
		c.workoutCmd(),
		c.statusCmd(),
		c.dailyCmd(),
		c.reviewCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.serveCmd(),
	)
	return root
}
