// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCommand creates the `meowda list` command.
func newListCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List virtual environments",
		Long: `List the virtual environments in the selected store.

Only the primary store directory is enumerated; environments that exist
solely in farther shadow stores are not shown. The currently activated
environment is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, cfg, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			sc, err := scopeFromFlags(cmd, cfg)
			if err != nil {
				return err
			}

			envs, err := b.List(cmd.Context(), sc, app.activeEnvPath())
			if err != nil {
				return err
			}

			if len(envs) == 0 {
				fmt.Fprintln(app.Stdout(), "No virtual environments found.")
				return nil
			}

			fmt.Fprintln(app.Stdout(), "Available virtual environments:")
			for _, env := range envs {
				indicator := "  "
				name := env.Name
				if env.Active {
					indicator = "* "
					name = ActiveEnvStyle.Render(env.Name)
				}
				fmt.Fprintf(app.Stdout(), "%s%s (%s)\n", indicator, name, PathStyle.Render(env.Path))
			}
			return nil
		},
	}

	addScopeFlags(cmd)
	return cmd
}
