// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// errActivationUnavailable is returned by the activate and deactivate
// commands. A child process cannot mutate its parent shell's environment,
// so activation is owned by a shell function installed separately.
var errActivationUnavailable = errors.New("please run `meowda init <shell_profile>` to set up the activation script")

// newActivateCommand creates the `meowda activate` command, which refuses
// and points at the shell setup instead.
func newActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "Activate a virtual environment (requires shell setup)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errActivationUnavailable
		},
	}
}

// newDeactivateCommand creates the `meowda deactivate` command.
func newDeactivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate the current virtual environment (requires shell setup)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errActivationUnavailable
		},
	}
}
