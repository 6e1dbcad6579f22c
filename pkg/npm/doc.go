// SPDX-License-Identifier: MPL-2.0

// Package npm defines value types for npm package identity: package names,
// exact versions, pinned "name@version" specifiers and the namespaced names
// under which converted packages are republished.
//
// This package is a leaf dependency: it imports only the standard library.
package npm
