// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRemoveCommand creates the `meowda remove` command.
func newRemoveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a virtual environment",
		Long: `Remove a virtual environment from the selected store.

The environment's directory tree is deleted recursively. Environments in
shadow stores (farther .meowda/venvs directories) are never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			b, cfg, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			sc, err := scopeFromFlags(cmd, cfg)
			if err != nil {
				return err
			}

			if err := b.Remove(cmd.Context(), sc, name); err != nil {
				return err
			}

			fmt.Fprintf(app.Stdout(), "Virtual environment %s removed successfully.\n", ActiveEnvStyle.Render(name))
			return nil
		},
	}

	addScopeFlags(cmd)
	return cmd
}
