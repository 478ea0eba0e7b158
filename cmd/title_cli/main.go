// Package main is the terminal client of the title catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	apiBase    string
	verbose    bool
	timeout    time.Duration

	current *app
)

var rootCmd = &cobra.Command{
	Use:   "titles",
	Short: "Browse the title catalog from the terminal",
	Long: `titles talks to the catalog API: it lists and filters titles, shows
title details and posts reviews.

Run without arguments to start the interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{
			ConfigPath: configPath,
			APIBase:    apiBase,
			Verbose:    verbose,
			Out:        cmd.OutOrStdout(),
			Err:        cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), current, cmd.InOrStdin())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Catalog API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Deadline for one-shot commands")

	bindSearchFlags(searchCmd)
	titleCmd.Flags().Bool("all-cast", false, "Show the full cast")

	rootCmd.AddCommand(searchCmd, suggestCmd, titleCmd, peopleCmd, homeCmd, shellCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
