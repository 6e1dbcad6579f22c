// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cjsify/cjsify/pkg/npm"
)

func writePackageList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "esm-packages.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPackageList(t *testing.T) {
	t.Parallel()

	path := writePackageList(t, `["chalk@5.3.0", "@sindresorhus/is@6.0.0", "chalk@5.3.0"]`)

	specs, err := LoadPackageList(path)
	if err != nil {
		t.Fatalf("LoadPackageList() error = %v", err)
	}

	want := []string{"chalk@5.3.0", "@sindresorhus/is@6.0.0", "chalk@5.3.0"}
	if len(specs) != len(want) {
		t.Fatalf("LoadPackageList() = %v, want %v", specs, want)
	}
	for i, spec := range specs {
		if spec.String() != want[i] {
			t.Errorf("specs[%d] = %s, want %s", i, spec, want[i])
		}
	}
	if specs[1].Name() != "@sindresorhus/is" || specs[1].Version() != "6.0.0" {
		t.Errorf("scoped spec parsed as %s / %s", specs[1].Name(), specs[1].Version())
	}
}

func TestLoadPackageListEmpty(t *testing.T) {
	t.Parallel()

	specs, err := LoadPackageList(writePackageList(t, `[]`))
	if err != nil {
		t.Fatalf("LoadPackageList() error = %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("LoadPackageList() = %v, want empty", specs)
	}
}

func TestLoadPackageListRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"not a list", `{"chalk": "5.3.0"}`},
		{"missing version", `["chalk"]`},
		{"not a string", `[42]`},
		{"malformed json", `["chalk@5.3.0"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadPackageList(writePackageList(t, tt.content))
			if !errors.Is(err, ErrInvalidPackageList) {
				t.Errorf("LoadPackageList() error = %v, want ErrInvalidPackageList", err)
			}
		})
	}
}

func TestLoadPackageListMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadPackageList(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrInvalidPackageList) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadPackageList() error = %v, want ErrInvalidPackageList wrapping os.ErrNotExist", err)
	}
}

func TestParsePinnedSpecs(t *testing.T) {
	t.Parallel()

	if _, err := ParsePinnedSpecs([]string{"ok@1.0.0", "@"}); !errors.Is(err, npm.ErrInvalidPinnedSpec) {
		t.Errorf("ParsePinnedSpecs() error = %v, want npm.ErrInvalidPinnedSpec", err)
	}
}
