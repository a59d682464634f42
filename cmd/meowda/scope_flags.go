// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"meowda-cli/internal/config"
	"meowda-cli/internal/scope"

	"github.com/spf13/cobra"
)

// addScopeFlags registers the scope selector flags shared by all
// environment commands.
func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("local", false, "operate on the project-local venv store")
	cmd.Flags().Bool("global", false, "operate on the user-global venv store")
	cmd.MarkFlagsMutuallyExclusive("local", "global")
}

// scopeFromFlags resolves the requested scope from the command flags,
// falling back to the configured default scope when neither flag is given.
func scopeFromFlags(cmd *cobra.Command, cfg *config.Config) (scope.Scope, error) {
	local, err := cmd.Flags().GetBool("local")
	if err != nil {
		return "", err
	}
	global, err := cmd.Flags().GetBool("global")
	if err != nil {
		return "", err
	}

	switch {
	case local:
		return scope.Local, nil
	case global:
		return scope.Global, nil
	default:
		return scope.ParseScope(cfg.DefaultScope)
	}
}
