// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user-supplied CUE (or JSON, which CUE accepts
// verbatim) against an embedded schema definition.
//
// Configuration files and package lists share the same flow: compile the
// schema, unify the input with one of its definitions, validate, decode.
// Errors carry the file name and a JSON-style path to the offending value.
//
//	//go:embed packages_schema.cue
//	var schema []byte
//
//	specs, err := cueutil.ParseFile[[]string](schema, "esm-packages.json", "#PackageList")
package cueutil
