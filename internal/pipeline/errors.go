// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

const (
	// StageInstall is the dependency materialization stage.
	StageInstall Stage = "install"
	// StageScan is the installed-tree scan.
	StageScan Stage = "scan"
	// StageTranspile is the copy-then-transpile stage.
	StageTranspile Stage = "transpile"
	// StagePublish is the registry publish stage.
	StagePublish Stage = "publish"
)

var (
	// ErrInstallFailed is wrapped by StageError for install failures.
	ErrInstallFailed = errors.New("install failed")
	// ErrScanFailed is wrapped by StageError for scan failures.
	ErrScanFailed = errors.New("scan failed")
	// ErrTranspileFailed is wrapped by StageError for transpile failures.
	ErrTranspileFailed = errors.New("transpile failed")
	// ErrPublishFailed is wrapped by StageError for publish failures.
	ErrPublishFailed = errors.New("publish failed")
)

type (
	// Stage names a pipeline stage.
	Stage string

	// StageError is returned when a stage fails. It unwraps to both the
	// stage sentinel and the underlying cause, so errors.As can still reach a
	// *shell.CommandError.
	StageError struct {
		Stage  Stage
		Target string
		Cause  error
	}
)

// String returns the stage name.
func (s Stage) String() string { return string(s) }

// Sentinel returns the sentinel error for the stage.
func (s Stage) Sentinel() error {
	switch s {
	case StageInstall:
		return ErrInstallFailed
	case StageScan:
		return ErrScanFailed
	case StageTranspile:
		return ErrTranspileFailed
	case StagePublish:
		return ErrPublishFailed
	default:
		return nil
	}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Target, e.Cause)
}

// Unwrap returns the stage sentinel and the cause.
func (e *StageError) Unwrap() []error {
	if sentinel := e.Stage.Sentinel(); sentinel != nil {
		return []error{sentinel, e.Cause}
	}
	return []error{e.Cause}
}
