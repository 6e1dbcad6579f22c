// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrInvalidCommand is the sentinel error wrapped by InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrCommandFailed is the sentinel error wrapped by CommandError.
	ErrCommandFailed = errors.New("command failed")
)

type (
	// Command is one shell command line and the directory it runs in.
	// An empty Dir means the executor's current directory.
	Command struct {
		Line string
		Dir  string
	}

	// Result holds the captured output of a completed command.
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode ExitCode
	}

	// InvalidCommandError is returned when a command line cannot be parsed or
	// a template cannot be expanded.
	InvalidCommandError struct {
		Line  string
		Cause error
	}

	// CommandError is returned when a command exits with a non-zero status.
	// Its message includes the captured stderr so callers can match
	// well-known tool messages with strings.Contains.
	CommandError struct {
		Line     string
		Dir      string
		ExitCode ExitCode
		Stdout   string
		Stderr   string
	}
)

// Expand substitutes {key} placeholders in template with the shell-quoted
// values of vars. Unknown placeholders are an error.
func Expand(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		key := rest[start+1 : end]
		value, ok := vars[key]
		if !ok {
			return "", &InvalidCommandError{Line: template, Cause: fmt.Errorf("unknown placeholder {%s}", key)}
		}
		quoted, err := Quote(value)
		if err != nil {
			return "", &InvalidCommandError{Line: template, Cause: err}
		}

		b.WriteString(rest[:start])
		b.WriteString(quoted)
		rest = rest[end+1:]
	}
	return b.String(), nil
}

// Quote returns s quoted as a single Bash word.
func Quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangBash)
}

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command %q: %v", e.Line, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *InvalidCommandError) Unwrap() []error { return []error{ErrInvalidCommand, e.Cause} }

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit code %d", e.Line, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is for programmatic detection.
func (e *CommandError) Unwrap() error { return ErrCommandFailed }
