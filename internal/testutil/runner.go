// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"sync"

	"github.com/cjsify/cjsify/internal/shell"
)

type (
	// FakeRunner implements shell.Runner by recording every command and
	// delegating to an optional handler. Without a handler every command
	// succeeds with empty output.
	FakeRunner struct {
		mu       sync.Mutex
		commands []shell.Command
		handler  func(shell.Command) (shell.Result, error)
	}
)

// NewFakeRunner creates a FakeRunner. handler may be nil.
func NewFakeRunner(handler func(shell.Command) (shell.Result, error)) *FakeRunner {
	return &FakeRunner{handler: handler}
}

// Run records cmd and returns the handler's result.
func (r *FakeRunner) Run(_ context.Context, cmd shell.Command) (shell.Result, error) {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	handler := r.handler
	r.mu.Unlock()

	if handler == nil {
		return shell.Result{}, nil
	}
	return handler(cmd)
}

// Commands returns the recorded commands in call order.
func (r *FakeRunner) Commands() []shell.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shell.Command(nil), r.commands...)
}

// Lines returns the recorded command lines in call order.
func (r *FakeRunner) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.Line
	}
	return lines
}
