// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/pkg/manifest"
)

// Prune deletes every scanned package that is not ESM-only and returns the
// pruned directories. A pruned package that has an ESM-only package
// installed beneath it keeps its nested node_modules directory so the
// descendant survives; everything else in it is removed.
func Prune(packages []ScannedPackage) []string {
	var keep []string
	for _, p := range packages {
		if manifest.IsESMOnly(p.Manifest) {
			keep = append(keep, p.Dir)
		}
	}

	var pruned []string
	for _, p := range packages {
		if manifest.IsESMOnly(p.Manifest) {
			continue
		}
		if hasDescendant(p.Dir, keep) {
			removeExcept(p.Dir, NodeModulesDir)
		} else {
			fsutil.ForceRemove(p.Dir)
		}
		pruned = append(pruned, p.Dir)
	}
	return pruned
}

func hasDescendant(dir string, candidates []string) bool {
	prefix := filepath.Join(dir, NodeModulesDir) + string(filepath.Separator)
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// removeExcept force-removes every entry of dir except the named one.
func removeExcept(dir, name string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.Name() == name {
			continue
		}
		fsutil.ForceRemove(filepath.Join(dir, entry.Name()))
	}
}
