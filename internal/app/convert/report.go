// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"github.com/cjsify/cjsify/internal/esmregistry"
	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/pkg/npm"
)

// Report describes one conversion run.
type Report struct {
	Spec npm.PinnedSpec

	// ESMPackages is the registry snapshot taken after the scan.
	ESMPackages []esmregistry.Entry

	// NothingToConvert is set when the tree had no ESM-only package; the
	// run then stops after the scan.
	NothingToConvert bool

	// Converted lists the namespaced names written by the rewriter.
	Converted []npm.PackageName

	// Pruned lists the package directories removed from the tree.
	Pruned []string

	// TranspiledDir is the copied node_modules holding transpiled output.
	TranspiledDir string

	// Published lists the publish outcome of every converted package.
	Published []pipeline.PublishResult
}
