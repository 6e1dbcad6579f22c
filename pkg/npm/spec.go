// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPinnedSpec is the sentinel error wrapped by InvalidPinnedSpecError.
var ErrInvalidPinnedSpec = errors.New("invalid pinned package specifier")

type (
	// PinnedSpec identifies one exact package version to convert.
	// Fields are unexported for immutability; use Name() and Version().
	PinnedSpec struct {
		name    PackageName
		version Version
	}

	// InvalidPinnedSpecError is returned when a "name@version" string cannot be
	// split into a valid name and version.
	InvalidPinnedSpecError struct {
		Raw   string
		Cause error
	}
)

// NewPinnedSpec creates a validated PinnedSpec.
func NewPinnedSpec(name PackageName, version Version) (PinnedSpec, error) {
	raw := string(name) + "@" + string(version)
	if err := name.Validate(); err != nil {
		return PinnedSpec{}, &InvalidPinnedSpecError{Raw: raw, Cause: err}
	}
	if err := version.Validate(); err != nil {
		return PinnedSpec{}, &InvalidPinnedSpecError{Raw: raw, Cause: err}
	}
	return PinnedSpec{name: name, version: version}, nil
}

// ParsePinnedSpec parses "name@version" or "@scope/name@version".
// The version separator is the last "@" that is not the scope marker.
func ParsePinnedSpec(raw string) (PinnedSpec, error) {
	s := strings.TrimSpace(raw)
	idx := strings.LastIndex(s, "@")
	if idx <= 0 {
		return PinnedSpec{}, &InvalidPinnedSpecError{Raw: raw, Cause: errors.New(`expected "name@version"`)}
	}
	return NewPinnedSpec(PackageName(s[:idx]), Version(s[idx+1:]))
}

// MustParsePinnedSpec is like ParsePinnedSpec but panics on error.
// Intended for tests and static tables.
func MustParsePinnedSpec(raw string) PinnedSpec {
	spec, err := ParsePinnedSpec(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// Name returns the package name.
func (s PinnedSpec) Name() PackageName { return s.name }

// Version returns the exact version.
func (s PinnedSpec) Version() Version { return s.version }

// String returns the "name@version" form.
func (s PinnedSpec) String() string { return string(s.name) + "@" + string(s.version) }

// Error implements the error interface for InvalidPinnedSpecError.
func (e *InvalidPinnedSpecError) Error() string {
	return fmt.Sprintf("invalid pinned package specifier %q: %v", e.Raw, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *InvalidPinnedSpecError) Unwrap() []error {
	return []error{ErrInvalidPinnedSpec, e.Cause}
}
