// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cjsify/cjsify/internal/config"
	"github.com/cjsify/cjsify/internal/logging"
	"github.com/cjsify/cjsify/internal/shell"
)

type (
	// RunnerFactory builds the shell runner for one invocation. mirror
	// receives the commands' live output and may be nil.
	RunnerFactory func(logger *log.Logger, mirror io.Writer) shell.Runner

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer.
	App struct {
		Config    config.Provider
		NewRunner RunnerFactory
		Clock     logging.Clock
		stdout    io.Writer
		stderr    io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		NewRunner RunnerFactory
		Clock     logging.Clock
		Stdout    io.Writer
		Stderr    io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewRunner == nil {
		deps.NewRunner = newExecutor
	}
	if deps.Clock == nil {
		deps.Clock = logging.RealClock{}
	}

	return &App{
		Config:    deps.Config,
		NewRunner: deps.NewRunner,
		Clock:     deps.Clock,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

func newExecutor(logger *log.Logger, mirror io.Writer) shell.Runner {
	return shell.NewExecutor(shell.WithLogger(logger), shell.WithOutput(mirror, mirror))
}
