// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"meowda-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `meowda config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage meowda configuration",
		Long: `Manage meowda configuration.

Configuration is stored in:
  - Linux: ~/.config/meowda/config.toml
  - macOS: ~/Library/Application Support/meowda/config.toml
  - Windows: %APPDATA%\meowda\config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout(), TitleStyle.Render("meowda configuration"))
			fmt.Fprintf(app.Stdout(), "  uv_path:       %s\n", cfg.UvPath)
			fmt.Fprintf(app.Stdout(), "  default_scope: %s\n", cfg.DefaultScope)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout(), "Wrote default configuration to %s\n", PathStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout(), path)
			return nil
		},
	})

	return cfgCmd
}
