// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"meowda-cli/internal/backend"
	"meowda-cli/internal/config"
	"meowda-cli/internal/issue"
	"meowda-cli/internal/provision"
	"meowda-cli/internal/scope"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. All Cobra command
	// handlers receive an App reference and delegate business logic
	// through it.
	App struct {
		Config         config.Provider
		newProvisioner func(binary string) (provision.Provisioner, error)
		stdout         io.Writer
		stderr         io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply fakes to isolate specific behavior.
	Dependencies struct {
		Config         config.Provider
		NewProvisioner func(binary string) (provision.Provisioner, error)
		Stdout         io.Writer
		Stderr         io.Writer
	}
)

// NewApp builds an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	a := &App{
		Config:         deps.Config,
		newProvisioner: deps.NewProvisioner,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}
	if a.Config == nil {
		a.Config = config.NewProvider()
	}
	if a.newProvisioner == nil {
		a.newProvisioner = func(binary string) (provision.Provisioner, error) {
			return provision.NewUvTool(binary)
		}
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	return a
}

// Stdout returns the writer for normal command output.
func (a *App) Stdout() io.Writer { return a.stdout }

// Stderr returns the writer for diagnostics.
func (a *App) Stderr() io.Writer { return a.stderr }

// loadConfig loads the effective configuration, rendering guidance when it
// cannot be read.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		if rendered, rerr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); rerr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
		return nil, err
	}
	return cfg, nil
}

// newBackend loads configuration, probes the provisioning tool, and wires
// a Backend for command handlers.
func (a *App) newBackend(ctx context.Context) (*backend.Backend, *config.Config, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	tool, err := a.newProvisioner(cfg.UvPath)
	if err != nil {
		if errors.Is(err, provision.ErrUvNotAvailable) {
			if rendered, rerr := issue.Get(issue.UvNotFoundId).Render("dark"); rerr == nil {
				fmt.Fprint(a.stderr, rendered)
			}
		}
		return nil, nil, err
	}

	logger := log.NewWithOptions(a.stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return backend.New(scope.NewResolver(), tool, logger), cfg, nil
}

// activeEnvPath returns the externally detected active environment path,
// passed explicitly into backend operations.
func (a *App) activeEnvPath() string {
	return scope.NewResolver().ActiveEnvPath()
}
