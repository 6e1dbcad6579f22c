// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeDir is the sentinel error wrapped by UnsafeDirError.
var ErrUnsafeDir = errors.New("directory is not safe to wipe")

// UnsafeDirError is returned when wiping a directory would delete user data.
type UnsafeDirError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *UnsafeDirError) Error() string {
	return fmt.Sprintf("refusing to use %s as a scratch directory: it is %s", e.Path, e.Reason)
}

// Unwrap returns ErrUnsafeDir for errors.Is() compatibility.
func (e *UnsafeDirError) Unwrap() error { return ErrUnsafeDir }

// CheckDisposable returns an *UnsafeDirError when dir resolves to the
// filesystem root, the home directory, the current working directory or
// one of its ancestors. Symlinks are resolved when dir exists.
func CheckDisposable(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var homes, workdirs []string
	if home, err := os.UserHomeDir(); err == nil {
		homes = pathVariants(home)
	}
	if wd, err := os.Getwd(); err == nil {
		workdirs = pathVariants(wd)
	}

	for _, candidate := range pathVariants(abs) {
		if filepath.Dir(candidate) == candidate {
			return &UnsafeDirError{Path: dir, Reason: "the filesystem root"}
		}
		for _, home := range homes {
			if candidate == home {
				return &UnsafeDirError{Path: dir, Reason: "the home directory"}
			}
		}
		for _, wd := range workdirs {
			if isWithin(wd, candidate) {
				return &UnsafeDirError{Path: dir, Reason: "the working directory or one of its parents"}
			}
		}
	}
	return nil
}

// pathVariants returns the cleaned path and, when it differs, the path with
// symlinks resolved.
func pathVariants(path string) []string {
	path = filepath.Clean(path)
	variants := []string{path}
	if resolved, err := filepath.EvalSymlinks(path); err == nil && resolved != path {
		variants = append(variants, resolved)
	}
	return variants
}

// isWithin reports whether path equals parent or lies beneath it.
func isWithin(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
