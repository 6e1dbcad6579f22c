// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"testing"
)

func TestNamerNamespaced(t *testing.T) {
	t.Parallel()

	namer, err := NewNamer("common.js", "")
	if err != nil {
		t.Fatalf("NewNamer() error = %v", err)
	}

	tests := []struct {
		in   PackageName
		want PackageName
	}{
		{"esm-thing", "@common.js/esm-thing"},
		{"@sindresorhus/is", "@common.js/sindresorhus__is"},
	}
	for _, tt := range tests {
		if got := namer.Namespaced(tt.in); got != tt.want {
			t.Errorf("Namespaced(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if err := namer.Namespaced(tt.in).Validate(); err != nil {
			t.Errorf("Namespaced(%q) produced invalid name: %v", tt.in, err)
		}
	}
}

func TestNamerPrefix(t *testing.T) {
	t.Parallel()

	namer, err := NewNamer("common.js", "test__")
	if err != nil {
		t.Fatalf("NewNamer() error = %v", err)
	}
	if got := namer.Namespaced("@scope/name"); got != "@common.js/test__scope__name" {
		t.Errorf("Namespaced() = %q", got)
	}
}

func TestNewNamerRejectsBadScope(t *testing.T) {
	t.Parallel()

	for _, scope := range []Scope{"", "@common", "a/b", "has space"} {
		if _, err := NewNamer(scope, ""); !errors.Is(err, ErrInvalidScope) {
			t.Errorf("NewNamer(%q) error = %v, want ErrInvalidScope", scope, err)
		}
	}
}
