// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"errors"
	"fmt"

	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// SupportedLicense is the only license the rewriter republishes.
const SupportedLicense = "MIT"

var (
	// ErrUnsupportedLicense is the sentinel error wrapped by UnsupportedLicenseError.
	ErrUnsupportedLicense = errors.New("unsupported license")
	// ErrEntryPointResolution is the sentinel error wrapped by EntryPointResolutionError.
	ErrEntryPointResolution = errors.New("entry point resolution failed")
)

type (
	// UnsupportedLicenseError is returned when a manifest license is not MIT.
	UnsupportedLicenseError struct {
		Package npm.PackageName
		License string
	}

	// EntryPointResolutionError is returned when a manifest declares "exports"
	// but no recognized condition yields a main entry point.
	EntryPointResolutionError struct {
		Package npm.PackageName
		Kind    manifest.ExportsKind
	}
)

func (e *UnsupportedLicenseError) Error() string {
	license := e.License
	if license == "" {
		license = "<none>"
	}
	return fmt.Sprintf("unsupported license for %s: %s", e.Package, license)
}

func (e *UnsupportedLicenseError) Unwrap() error { return ErrUnsupportedLicense }

func (e *EntryPointResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve a CommonJS entry point for %s from %s exports", e.Package, e.Kind)
}

func (e *EntryPointResolutionError) Unwrap() error { return ErrEntryPointResolution }
