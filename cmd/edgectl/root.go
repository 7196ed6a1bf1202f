// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for edgectl.
package cmd

import (
	"context"
	"fmt"
	"os"

	"edgectl/internal/config"
	"edgectl/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// settings is the loaded tool configuration, shared by all commands.
	settings = config.Default()

	// logger is the shared structured logger.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "edgectl",
		Short: "Scaffold and manage IoT edge module solutions",
		Long: TitleStyle.Render("edgectl") + SubtitleStyle.Render(" - IoT edge solution tooling") + `

edgectl scaffolds edge module development solutions, keeps their deployment
templates in sync as modules are added, reconciles container registry
credentials against the solution's env file, and wires up debugger launch
configurations.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a solution:        edgectl solution new my-solution
  2. Add more modules:         edgectl module add
  3. Fill registry secrets:    edit .env, then edgectl env check`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")

	rootCmd.AddCommand(solutionCmd)
	rootCmd.AddCommand(moduleCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment overrides.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFileOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatError(err))
		return
	}
	settings = cfg

	if verbose || settings.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// formatError renders an error for display, including suggestions when the
// error is actionable.
func formatError(err error) string {
	if ae, ok := issue.AsActionable(err); ok {
		return ae.Format()
	}
	return err.Error()
}
