// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/cjsify/cjsify/pkg/cueutil"
	"github.com/cjsify/cjsify/pkg/npm"
)

//go:embed packages_schema.cue
var packagesSchema []byte

// ErrInvalidPackageList is the sentinel error wrapped by InvalidPackageListError.
var ErrInvalidPackageList = errors.New("invalid package list")

// InvalidPackageListError is returned when the packages file cannot be read
// or holds something other than a list of pinned specifiers.
type InvalidPackageListError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *InvalidPackageListError) Error() string {
	return fmt.Sprintf("invalid package list %s: %v", e.Path, e.Cause)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *InvalidPackageListError) Unwrap() []error {
	return []error{ErrInvalidPackageList, e.Cause}
}

// LoadPackageList reads a JSON (or CUE) list of "name@version" specifiers.
// Order is preserved and duplicates are kept.
func LoadPackageList(path string) ([]npm.PinnedSpec, error) {
	raw, err := cueutil.ParseFile[[]string](packagesSchema, path, "#PackageList")
	if err != nil {
		return nil, &InvalidPackageListError{Path: path, Cause: err}
	}
	return ParsePinnedSpecs(*raw)
}

// ParsePinnedSpecs parses every specifier, failing on the first invalid one.
func ParsePinnedSpecs(raw []string) ([]npm.PinnedSpec, error) {
	specs := make([]npm.PinnedSpec, 0, len(raw))
	for _, r := range raw {
		spec, err := npm.ParsePinnedSpec(r)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
