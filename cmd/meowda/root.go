// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"meowda-cli/internal/provision"

	"github.com/charmbracelet/fang"
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

	// app wires the CLI services for the production binary.
	app = NewApp(Dependencies{})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "meowda",
		Short: "A scoped virtual environment manager",
		Long: TitleStyle.Render("meowda") + SubtitleStyle.Render(" - a scoped virtual environment manager") + `

meowda manages named Python virtual environments in per-project (local)
or per-user (global) stores, delegating environment creation and package
management to uv.

Local stores live in ` + CmdStyle.Render(".meowda/venvs") + ` directories discovered by walking
up from the current directory; the nearest store wins and farther ones
are consulted read-only. The global store lives in the platform user
state directory.

` + SubtitleStyle.Render("Examples:") + `
  meowda create myenv --python 3.12   Create an environment
  meowda list --local                 List project-local environments
  meowda install numpy pandas         Install into the active environment
  meowda dir                          Print the store directory`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/meowda/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(newCreateCommand(app))
	rootCmd.AddCommand(newRemoveCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newDirCommand(app))
	rootCmd.AddCommand(newInstallCommand(app))
	rootCmd.AddCommand(newUninstallCommand(app))
	rootCmd.AddCommand(newActivateCommand())
	rootCmd.AddCommand(newDeactivateCommand())
	rootCmd.AddCommand(newConfigCommand(app))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("%s (commit %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		// Propagate uv's own exit code when it ran but failed.
		var toolErr *provision.ToolError
		if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
			os.Exit(toolErr.ExitCode)
		}
		os.Exit(1)
	}
}
