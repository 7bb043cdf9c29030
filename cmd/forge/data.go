package main

import (
	"fmt"
	"io"
	"os"

	"forge/internal/app"

	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data (csv, json, toml or yaml)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := app.Format(format)
			if f == "" {
				f = app.FormatFromPath(out)
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			if err := c.app.Services.Export.Export(cmd.Context(), w, f); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "✅ Exported %s to %s\n", f, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv, json, toml or yaml (default from the file extension, else csv)")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace your logs with a json, toml or yaml export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := app.Format(format)
			if f == "" {
				f = app.FormatFromPath(args[0])
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			snap, err := c.app.Services.Export.Import(cmd.Context(), file, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d runs, %d focus sessions, %d meals, %d workouts\n",
				len(snap.Runs), len(snap.Focus), len(snap.Meals), len(snap.Workouts))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, toml or yaml (default from the file extension)")
	return cmd
}
