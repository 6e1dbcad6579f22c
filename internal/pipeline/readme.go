// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// ReadmeFile is the file name of the generated readme.
const ReadmeFile = "README.md"

// npmPackageURL is the public registry page of a package.
const npmPackageURL = "https://www.npmjs.com/package/"

// ReadmeWriter replaces package readmes with the conversion notice.
type ReadmeWriter struct {
	namer      npm.Namer
	projectURL string
}

// NewReadmeWriter creates a ReadmeWriter. projectURL is linked from every
// generated readme.
func NewReadmeWriter(namer npm.Namer, projectURL string) *ReadmeWriter {
	return &ReadmeWriter{namer: namer, projectURL: projectURL}
}

// Render returns the readme for the original package identity.
func (w *ReadmeWriter) Render(original *manifest.Manifest) string {
	name, version := string(original.Name), string(original.Version)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", w.namer.Namespaced(original.Name))
	fmt.Fprintf(&b, "The [%s](%s%s) package exported as CommonJS modules.\n\n", name, npmPackageURL, name)
	fmt.Fprintf(&b, "Exported from [%s@%s](%s%s/v/%s) using %s.", name, version, npmPackageURL, name, version, w.projectURL)
	return b.String()
}

// Replace removes README.md and readme.md from dir and writes the generated
// readme for original.
func (w *ReadmeWriter) Replace(dir string, original *manifest.Manifest) error {
	fsutil.ForceRemove(filepath.Join(dir, ReadmeFile), filepath.Join(dir, "readme.md"))

	if err := os.WriteFile(filepath.Join(dir, ReadmeFile), []byte(w.Render(original)), 0o644); err != nil {
		return fmt.Errorf("failed to write readme for %s: %w", original.Identity(), err)
	}
	return nil
}
