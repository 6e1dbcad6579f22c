// SPDX-License-Identifier: MPL-2.0

package rewrite

import "github.com/cjsify/cjsify/pkg/manifest"

// EntryPoints is the legacy entry-point triple a CommonJS consumer reads.
type EntryPoints struct {
	Main    string
	Browser string
	Types   string
}

// ResolveEntryPoints derives legacy entry points from exports, starting from
// current. A single entry becomes Main. For a conditional map the rules apply
// in order and a later rule may overwrite Main or Browser set by an earlier
// one:
//
//  1. "types" sets Types.
//  2. "node" sets Main, and "default" then sets Browser.
//  3. "browser" sets Browser, and "default" then sets Main.
//
// Only conditions whose value is a plain path are considered. A nil exports
// returns current unchanged.
func ResolveEntryPoints(exports *manifest.Exports, current EntryPoints) EntryPoints {
	if exports == nil {
		return current
	}

	resolved := current
	switch exports.Kind() {
	case manifest.ExportsSingle:
		resolved.Main = exports.Path()
	case manifest.ExportsConditional:
		if types, ok := exports.ConditionPath(manifest.ConditionTypes); ok {
			resolved.Types = types
		}

		def, hasDefault := exports.ConditionPath(manifest.ConditionDefault)

		if node, ok := exports.ConditionPath(manifest.ConditionNode); ok {
			resolved.Main = node
			if hasDefault {
				resolved.Browser = def
			}
		}
		if browser, ok := exports.ConditionPath(manifest.ConditionBrowser); ok {
			resolved.Browser = browser
			if hasDefault {
				resolved.Main = def
			}
		}
	case manifest.ExportsUnrepresentable:
		// Nothing can be derived from arrays or scalars.
	}
	return resolved
}
