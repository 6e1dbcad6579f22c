// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecutorCapturesOutput(t *testing.T) {
	t.Parallel()

	result, err := NewExecutor().Run(context.Background(), Command{Line: `echo out; echo err >&2`})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "err\n")
	}
	if !result.ExitCode.IsSuccess() {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestExecutorRunsInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := NewExecutor().Run(context.Background(), Command{Line: "pwd", Dir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := filepath.EvalSymlinks(strings.TrimSpace(result.Stdout))
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestExecutorNonZeroExit(t *testing.T) {
	t.Parallel()

	line := `echo "You cannot publish over the previously published versions" >&2; exit 3`
	result, err := NewExecutor().Run(context.Background(), Command{Line: line})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("Run() error = %v, want ErrCommandFailed", err)
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %T, want *CommandError", err)
	}
	if cmdErr.ExitCode != 3 || result.ExitCode != 3 {
		t.Errorf("exit code = %d/%d, want 3", cmdErr.ExitCode, result.ExitCode)
	}
	if !strings.Contains(err.Error(), "You cannot publish over the previously published versions") {
		t.Errorf("error message %q does not include stderr", err.Error())
	}
}

func TestExecutorEnv(t *testing.T) {
	t.Parallel()

	result, err := NewExecutor(WithEnv("CJSIFY_TEST_VALUE=hello")).Run(context.Background(), Command{Line: `echo "$CJSIFY_TEST_VALUE"`})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello\n")
	}
}

func TestExecutorMirrorsOutput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	exec := NewExecutor(WithOutput(&stdout, &stderr))
	if _, err := exec.Run(context.Background(), Command{Line: `echo a; echo b >&2`}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout.String() != "a\n" || stderr.String() != "b\n" {
		t.Errorf("mirrored = (%q, %q), want (%q, %q)", stdout.String(), stderr.String(), "a\n", "b\n")
	}
}

func TestExecutorParseError(t *testing.T) {
	t.Parallel()

	_, err := NewExecutor().Run(context.Background(), Command{Line: `echo 'unterminated`})
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("Run() error = %v, want ErrInvalidCommand", err)
	}
}

func TestExecutorMissingDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "missing")
	_, err := NewExecutor().Run(context.Background(), Command{Line: "true", Dir: dir})
	if err == nil {
		t.Fatal("Run() error = nil for a missing directory")
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Errorf("Run() error = %v, want an interpreter setup error", err)
	}
}
