// SPDX-License-Identifier: MPL-2.0

// Package rewrite turns an ESM-only package manifest into the manifest of its
// CommonJS mirror: license gate, entry-point resolution from "exports",
// dependency re-keying against the ESM registry and metadata normalization.
package rewrite
