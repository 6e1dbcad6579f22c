// SPDX-License-Identifier: MPL-2.0

// Package fsutil provides the filesystem primitives the conversion pipeline
// needs: tree copies that preserve symlinks and guarded force removal.
package fsutil
