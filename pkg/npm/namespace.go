// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScope is the sentinel error wrapped by InvalidScopeError.
var ErrInvalidScope = errors.New("invalid scope")

type (
	// Scope is the reserved registry scope converted packages are published
	// under, without the leading "@" (e.g. "common.js").
	Scope string

	// InvalidScopeError is returned when a Scope is empty or contains "@" or "/".
	InvalidScopeError struct {
		Value Scope
	}

	// Namer maps original package names to their namespaced replacements.
	Namer struct {
		scope  Scope
		prefix string
	}
)

// String returns the string representation of the Scope.
func (s Scope) String() string { return string(s) }

// Validate returns an error if the Scope cannot be used as an npm scope.
func (s Scope) Validate() error {
	if strings.TrimSpace(string(s)) == "" || strings.ContainsAny(string(s), "@/ ") {
		return &InvalidScopeError{Value: s}
	}
	return nil
}

// Error implements the error interface for InvalidScopeError.
func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid scope %q: must be non-empty and contain no '@', '/' or spaces", e.Value)
}

// Unwrap returns ErrInvalidScope for errors.Is() compatibility.
func (e *InvalidScopeError) Unwrap() error { return ErrInvalidScope }

// NewNamer creates a Namer for scope. prefix is prepended to every escaped
// name and may be empty.
func NewNamer(scope Scope, prefix string) (Namer, error) {
	if err := scope.Validate(); err != nil {
		return Namer{}, err
	}
	return Namer{scope: scope, prefix: prefix}, nil
}

// Scope returns the namer's scope.
func (n Namer) Scope() Scope { return n.scope }

// Namespaced returns "@<scope>/<prefix><escaped name>".
func (n Namer) Namespaced(name PackageName) PackageName {
	return PackageName("@" + string(n.scope) + "/" + n.prefix + name.Escape())
}
