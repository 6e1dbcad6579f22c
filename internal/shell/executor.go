// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// Runner runs one command to completion. It is satisfied by *Executor
	// and faked in tests.
	Runner interface {
		Run(ctx context.Context, cmd Command) (Result, error)
	}

	// Executor interprets command lines with mvdan.cc/sh.
	Executor struct {
		logger *log.Logger
		env    []string
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures an Executor.
	Option func(*Executor)
)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Executor) { e.logger = logger }
}

// WithEnv appends KEY=VALUE pairs to the inherited process environment.
func WithEnv(pairs ...string) Option {
	return func(e *Executor) { e.env = append(e.env, pairs...) }
}

// WithOutput mirrors command output to the given writers while it is
// captured. Nil writers are ignored.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates an Executor inheriting the process environment.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		logger: log.New(io.Discard),
		env:    os.Environ(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run parses and executes cmd.Line in cmd.Dir. A non-zero exit status is
// returned as a *CommandError together with the captured Result.
func (e *Executor) Run(ctx context.Context, cmd Command) (Result, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd.Line), "")
	if err != nil {
		return Result{ExitCode: 1}, &InvalidCommandError{Line: cmd.Line, Cause: err}
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(e.env...)),
		interp.StdIO(nil, tee(&stdout, e.stdout), tee(&stderr, e.stderr)),
		interp.ExecHandlers(e.logExec),
	}
	if cmd.Dir != "" {
		opts = append(opts, interp.Dir(cmd.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return Result{ExitCode: 1}, fmt.Errorf("failed to create interpreter: %w", err)
	}

	e.logger.Debug("running command", "line", cmd.Line, "dir", cmd.Dir)

	runErr := runner.Run(ctx, prog)
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitStatus interp.ExitStatus
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitStatus):
		result.ExitCode = ExitCode(exitStatus)
	default:
		result.ExitCode = 1
		return result, fmt.Errorf("command %q execution failed: %w", cmd.Line, runErr)
	}

	if result.ExitCode.IsSuccess() {
		return result, nil
	}
	return result, &CommandError{
		Line:     cmd.Line,
		Dir:      cmd.Dir,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
}

func (e *Executor) logExec(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		e.logger.Debug("spawning", "argv", args)
		return next(ctx, args)
	}
}

func tee(capture *bytes.Buffer, mirror io.Writer) io.Writer {
	if mirror == nil {
		return capture
	}
	return io.MultiWriter(capture, mirror)
}
