// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDirCommand creates the `meowda dir` command.
func newDirCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Print the store directory",
		Long: `Print the primary store directory for the selected scope.

The output is the bare path, suitable for use in shell substitutions:
  cd "$(meowda dir --local)"`,
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

			path, err := b.Dir(sc)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.Stdout(), path)
			return nil
		},
	}

	addScopeFlags(cmd)
	return cmd
}
