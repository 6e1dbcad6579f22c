// SPDX-License-Identifier: MPL-2.0

package npm

import (
	"errors"
	"testing"
)

func TestParsePinnedSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw         string
		wantName    PackageName
		wantVersion Version
		wantErr     bool
	}{
		{raw: "left-pad@9.9.9", wantName: "left-pad", wantVersion: "9.9.9"},
		{raw: "@scope/name@1.0.0", wantName: "@scope/name", wantVersion: "1.0.0"},
		{raw: "  chalk@5.3.0  ", wantName: "chalk", wantVersion: "5.3.0"},
		{raw: "pkg@1.0.0-beta.1", wantName: "pkg", wantVersion: "1.0.0-beta.1"},
		{raw: "left-pad", wantErr: true},
		{raw: "@scope/name", wantErr: true},
		{raw: "left-pad@", wantErr: true},
		{raw: "@9.9.9", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			spec, err := ParsePinnedSpec(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePinnedSpec(%q) = %v, want error", tt.raw, spec)
				}
				if !errors.Is(err, ErrInvalidPinnedSpec) {
					t.Errorf("error does not wrap ErrInvalidPinnedSpec: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePinnedSpec(%q) unexpected error: %v", tt.raw, err)
			}
			if spec.Name() != tt.wantName || spec.Version() != tt.wantVersion {
				t.Errorf("ParsePinnedSpec(%q) = (%q, %q), want (%q, %q)",
					tt.raw, spec.Name(), spec.Version(), tt.wantName, tt.wantVersion)
			}
		})
	}
}

func TestPinnedSpecString(t *testing.T) {
	t.Parallel()

	spec := MustParsePinnedSpec("@scope/name@2.0.0")
	if got := spec.String(); got != "@scope/name@2.0.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestParsePinnedSpecWrapsCause(t *testing.T) {
	t.Parallel()

	_, err := ParsePinnedSpec("a/b@1.0.0")
	if !errors.Is(err, ErrInvalidPackageName) {
		t.Errorf("expected cause ErrInvalidPackageName, got %v", err)
	}
}
