// SPDX-License-Identifier: MPL-2.0

// Package manifest reads, classifies and writes package.json manifests.
//
// A Manifest keeps the handful of fields the conversion pipeline reasons
// about as typed values and carries every other top-level field through
// unchanged, so a rewritten manifest differs from its original only where
// the rewriter changed it.
//
// The conditional "exports" field is decoded into the Exports tagged
// variant: a single entry path, a conditional map keyed by condition name,
// or an unrepresentable shape (arrays, numbers, booleans).
package manifest
