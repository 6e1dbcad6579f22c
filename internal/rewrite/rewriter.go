// SPDX-License-Identifier: MPL-2.0

package rewrite

import (
	"strings"

	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// descriptionSuffix completes the generated description sentence.
const descriptionSuffix = " package exported as CommonJS modules"

var (
	// clearedFields are removed from the untyped part of the manifest.
	clearedFields = []string{"exports", "module", "keywords", "author"}
	forcedFields  = []string{"type", "description", "repository", "homepage"}
	// clearedScripts would rebuild sources with the original ESM toolchain.
	clearedScripts = []string{"prepare", "prepack", "prepublishOnly"}
)

type (
	// Project identifies the tool's own project, written into every
	// converted manifest.
	Project struct {
		Repository string
		Homepage   string
	}

	// Registry answers whether a dependency range resolves to a package that
	// is being converted.
	Registry interface {
		Satisfies(name npm.PackageName, rng string) bool
	}

	// Rewriter converts ESM-only manifests into their CommonJS mirrors.
	Rewriter struct {
		namer   npm.Namer
		project Project
	}
)

// New creates a Rewriter that namespaces names with namer.
func New(namer npm.Namer, project Project) *Rewriter {
	return &Rewriter{namer: namer, project: project}
}

// Rewrite returns the converted copy of m. The input manifest is not
// modified. The license is checked before anything else.
func (r *Rewriter) Rewrite(m *manifest.Manifest, registry Registry) (*manifest.Manifest, error) {
	if !strings.EqualFold(m.License, SupportedLicense) {
		return nil, &UnsupportedLicenseError{Package: m.Name, License: m.License}
	}

	out := m.Clone()

	entry := ResolveEntryPoints(m.Exports, EntryPoints{Main: m.Main, Browser: m.Browser, Types: m.Types})
	if m.Exports != nil && entry.Main == "" {
		return nil, &EntryPointResolutionError{Package: m.Name, Kind: m.Exports.Kind()}
	}
	out.Main, out.Browser, out.Types = entry.Main, entry.Browser, entry.Types
	out.Exports = nil

	out.Dependencies = r.rekeyDependencies(m.Dependencies, registry)

	out.Name = r.namer.Namespaced(m.Name)
	out.Repository = r.project.Repository
	out.Homepage = r.project.Homepage
	out.Type = manifest.TypeCommonJS
	out.Description = string(m.Name) + descriptionSuffix

	for _, field := range clearedFields {
		delete(out.Fields, field)
	}
	// Forced fields may have arrived as non-string values kept in Fields,
	// e.g. a {"type": "git", "url": ...} repository object.
	for _, field := range forcedFields {
		delete(out.Fields, field)
	}

	if out.Scripts == nil {
		out.Scripts = map[string]string{}
	}
	for _, script := range clearedScripts {
		delete(out.Scripts, script)
	}

	return out, nil
}

// rekeyDependencies maps every dependency that the registry satisfies onto
// its namespaced name, keeping the range. The result is never nil.
func (r *Rewriter) rekeyDependencies(deps map[string]string, registry Registry) map[string]string {
	out := make(map[string]string, len(deps))
	for name, rng := range deps {
		if registry != nil && registry.Satisfies(npm.PackageName(name), rng) {
			out[string(r.namer.Namespaced(npm.PackageName(name)))] = rng
			continue
		}
		out[name] = rng
	}
	return out
}
