// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// scopeSeparator replaces the "/" of a scoped name when it is flattened.
	scopeSeparator = "__"

	// maxNameLength is the npm registry limit for package names.
	maxNameLength = 214
)

var (
	// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
	ErrInvalidVersion = errors.New("invalid version")
)

type (
	// PackageName is an npm package name, either unscoped ("left-pad") or
	// scoped ("@scope/name").
	PackageName string

	// InvalidPackageNameError is returned when a PackageName is empty, too long,
	// or a malformed scoped name.
	InvalidPackageNameError struct {
		Value  PackageName
		Reason string
	}

	// Version is an exact package version as recorded in an installed manifest
	// or a pinned specifier. It is not a range.
	Version string

	// InvalidVersionError is returned when a Version is empty or contains whitespace.
	InvalidVersionError struct {
		Value Version
	}
)

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// IsScoped reports whether the name has an "@scope/" prefix.
func (n PackageName) IsScoped() bool { return strings.HasPrefix(string(n), "@") }

// Escape flattens the name into a single token that is valid as the
// unscoped part of a scoped name. The leading "@" of a scoped name is
// dropped and the scope separator becomes "__":
//
//	left-pad     -> left-pad
//	@scope/name  -> scope__name
func (n PackageName) Escape() string {
	if scoped, ok := strings.CutPrefix(string(n), "@"); ok {
		return strings.Replace(scoped, "/", scopeSeparator, 1)
	}
	return string(n)
}

// Validate returns an error if the PackageName is not a usable npm name.
func (n PackageName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidPackageNameError{Value: n, Reason: "must be non-empty"}
	case len(s) > maxNameLength:
		return &InvalidPackageNameError{Value: n, Reason: fmt.Sprintf("must not exceed %d characters", maxNameLength)}
	case strings.ContainsAny(s, " \t\r\n"):
		return &InvalidPackageNameError{Value: n, Reason: "must not contain whitespace"}
	}

	if n.IsScoped() {
		scope, rest, found := strings.Cut(s[1:], "/")
		if !found || scope == "" || rest == "" || strings.Contains(rest, "/") {
			return &InvalidPackageNameError{Value: n, Reason: `scoped names must look like "@scope/name"`}
		}
		return nil
	}
	if strings.Contains(s, "/") {
		return &InvalidPackageNameError{Value: n, Reason: `unscoped names must not contain "/"`}
	}
	return nil
}

// Error implements the error interface for InvalidPackageNameError.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }

// String returns the string representation of the Version.
func (v Version) String() string { return string(v) }

// Validate returns an error if the Version is empty or contains whitespace.
func (v Version) Validate() error {
	if strings.TrimSpace(string(v)) == "" || strings.ContainsAny(string(v), " \t\r\n") {
		return &InvalidVersionError{Value: v}
	}
	return nil
}

// Error implements the error interface for InvalidVersionError.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
