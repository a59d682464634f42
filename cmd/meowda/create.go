// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCreateCommand creates the `meowda create` command.
func newCreateCommand(app *App) *cobra.Command {
	var (
		createPython string
		createClear  bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new virtual environment",
		Long: `Create a new virtual environment in the selected store.

The environment is materialized by uv and seeded with baseline packaging
tooling (pip, setuptools, wheel).

Examples:
  meowda create myenv
  meowda create myenv --python 3.12
  meowda create myenv --python 3.12 --clear --local`,
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

			if err := b.Create(cmd.Context(), sc, name, createPython, createClear); err != nil {
				return err
			}

			fmt.Fprintf(app.Stdout(), "Virtual environment %s created successfully.\n", ActiveEnvStyle.Render(name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&createPython, "python", "p", "3", "interpreter specification forwarded to uv")
	cmd.Flags().BoolVar(&createClear, "clear", false, "remove an existing environment of the same name first")
	addScopeFlags(cmd)

	return cmd
}
