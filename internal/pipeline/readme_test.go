// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cjsify/cjsify/internal/testutil"
	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

const testProjectURL = "https://github.com/etienne-martin/common.js"

func newTestReadmeWriter(t *testing.T) *ReadmeWriter {
	t.Helper()

	namer, err := npm.NewNamer("common.js", "")
	if err != nil {
		t.Fatalf("NewNamer() error = %v", err)
	}
	return NewReadmeWriter(namer, testProjectURL)
}

func TestReadmeRender(t *testing.T) {
	t.Parallel()

	got := newTestReadmeWriter(t).Render(&manifest.Manifest{Name: "@scope/esm-thing", Version: "2.0.0"})

	want := "# @common.js/scope__esm-thing\n\n" +
		"The [@scope/esm-thing](https://www.npmjs.com/package/@scope/esm-thing) package exported as CommonJS modules.\n\n" +
		"Exported from [@scope/esm-thing@2.0.0](https://www.npmjs.com/package/@scope/esm-thing/v/2.0.0) using " +
		testProjectURL + "."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestReadmeReplace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "readme.md"), "lowercase original")
	testutil.WriteFile(t, filepath.Join(dir, "README.md"), "original")

	w := newTestReadmeWriter(t)
	original := &manifest.Manifest{Name: "esm-thing", Version: "2.0.0"}
	if err := w.Replace(dir, original); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if got := testutil.ReadFile(t, filepath.Join(dir, ReadmeFile)); got != w.Render(original) {
		t.Errorf("%s = %q, want rendered notice", ReadmeFile, got)
	}
	// On case-insensitive filesystems readme.md and README.md are one file.
	lower := filepath.Join(dir, "readme.md")
	if testutil.PathExists(lower) && !strings.Contains(testutil.ReadFile(t, lower), "esm-thing@2.0.0") {
		t.Errorf("readme.md = %q, want notice", testutil.ReadFile(t, lower))
	}
}
