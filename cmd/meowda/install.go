// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"meowda-cli/internal/scope"

	"github.com/spf13/cobra"
)

// newInstallCommand creates the `meowda install` command.
func newInstallCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [flags] <packages...>",
		Short: "Install packages into the active environment",
		Long: `Install packages into the currently activated virtual environment.

All arguments are forwarded verbatim to 'uv pip install', so any uv
option works unchanged. meowda's own flags (--local, --global) must come
before the first forwarded argument.

The active environment is detected from $VIRTUAL_ENV and must belong to
the selected store.

Examples:
  meowda install numpy pandas
  meowda install -r requirements.txt
  meowda install --local -e .`,
		// Flag parsing is disabled so uv options pass through untouched.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageCommand(cmd, app, args, func(ctx context.Context, b packageBackend, sc scope.Scope, active string, forward []string) error {
				return b.Install(ctx, sc, active, forward)
			})
		},
	}
	return cmd
}

// newUninstallCommand creates the `meowda uninstall` command.
func newUninstallCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall [flags] <packages...>",
		Short: "Uninstall packages from the active environment",
		Long: `Uninstall packages from the currently activated virtual environment.

All arguments are forwarded verbatim to 'uv pip uninstall'. meowda's own
flags (--local, --global) must come before the first forwarded argument.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageCommand(cmd, app, args, func(ctx context.Context, b packageBackend, sc scope.Scope, active string, forward []string) error {
				return b.Uninstall(ctx, sc, active, forward)
			})
		},
	}
	return cmd
}

// packageBackend is the slice of the backend used by package commands.
type packageBackend interface {
	Install(ctx context.Context, sc scope.Scope, activeEnv string, args []string) error
	Uninstall(ctx context.Context, sc scope.Scope, activeEnv string, args []string) error
}

// runPackageCommand handles the shared scan/validate/delegate flow of the
// install and uninstall commands.
func runPackageCommand(cmd *cobra.Command, app *App, args []string, op func(context.Context, packageBackend, scope.Scope, string, []string) error) error {
	parsed, err := parsePassthroughArgs(args)
	if err != nil {
		return err
	}
	if parsed.help {
		return cmd.Help()
	}
	if len(parsed.forward) == 0 {
		return fmt.Errorf("no packages specified; see '%s --help'", cmd.CommandPath())
	}

	b, cfg, err := app.newBackend(cmd.Context())
	if err != nil {
		return err
	}
	sc, err := scopeFromPassthrough(parsed, cfg)
	if err != nil {
		return err
	}

	return op(cmd.Context(), b, sc, app.activeEnvPath(), parsed.forward)
}
