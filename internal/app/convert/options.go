// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/internal/rewrite"
	"github.com/cjsify/cjsify/pkg/npm"
)

// ErrInvalidOptions is the sentinel error wrapped by InvalidOptionsError.
var ErrInvalidOptions = errors.New("invalid convert options")

type (
	// Options configures an Orchestrator.
	//
	// Workspace and the three command lines are required. The workspace is
	// wiped on every run, so it may not be the filesystem root, the home
	// directory or the working directory and its ancestors. The transpile
	// command is a template with {src} and {dest} placeholders.
	Options struct {
		Workspace        string
		Namer            npm.Namer
		Project          rewrite.Project
		ProjectURL       string
		InstallCommand   string
		TranspileCommand string
		PublishCommand   string
		DryRun           bool
		Telemetry        pipeline.Telemetry
	}

	// InvalidOptionsError is returned when Options has invalid fields.
	// It wraps ErrInvalidOptions for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidOptionsError struct {
		FieldErrors []error
	}
)

// IsValid returns whether the options are usable, and the field errors
// if they are not.
func (o Options) IsValid() (bool, []error) {
	var errs []error
	if o.Workspace == "" {
		errs = append(errs, errors.New("workspace must not be empty"))
	} else if err := fsutil.CheckDisposable(o.Workspace); err != nil {
		errs = append(errs, err)
	}
	if o.Namer.Scope() == "" {
		errs = append(errs, errors.New("namer must have a scope"))
	}
	if o.InstallCommand == "" {
		errs = append(errs, errors.New("install command must not be empty"))
	}
	if o.TranspileCommand == "" {
		errs = append(errs, errors.New("transpile command must not be empty"))
	}
	if o.PublishCommand == "" {
		errs = append(errs, errors.New("publish command must not be empty"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOptionsError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOptionsError.
func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid convert options: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidOptions for errors.Is() compatibility.
func (e *InvalidOptionsError) Unwrap() error { return ErrInvalidOptions }

func (o Options) absWorkspace() (string, error) {
	abs, err := filepath.Abs(o.Workspace)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace %s: %w", o.Workspace, err)
	}
	return abs, nil
}
