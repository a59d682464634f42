// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for meowda.
//
// This package implements the Cobra command hierarchy for the meowda CLI:
// the root command, the environment commands (create, remove, list, dir),
// the package commands (install, uninstall), the refused activation
// commands, and configuration management.
package cmd
