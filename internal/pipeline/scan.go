// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/cjsify/cjsify/pkg/manifest"
)

// Manifest locations inside an installed tree, relative to its root.
const (
	UnscopedPattern = "**/node_modules/*/package.json"
	ScopedPattern   = "**/node_modules/@*/*/package.json"
)

// ScannedPackage is one installed package found by Scan.
type ScannedPackage struct {
	Dir          string
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Kind classifies the scanned manifest.
func (p ScannedPackage) Kind() manifest.Kind { return manifest.Classify(p.Manifest) }

// Scan finds every installed package manifest under root. The unscoped and
// scoped patterns are globbed concurrently; unscoped results come first.
// Each manifest is read and parsed once and must carry a name and version.
func Scan(ctx context.Context, root string) ([]ScannedPackage, error) {
	patterns := []string{UnscopedPattern, ScopedPattern}
	matches := make([][]string, len(patterns))

	fsys := os.DirFS(root)
	g, gCtx := errgroup.WithContext(ctx)
	for i, pattern := range patterns {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			found, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				return fmt.Errorf("glob %s: %w", pattern, err)
			}
			matches[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &StageError{Stage: StageScan, Target: root, Cause: err}
	}

	var packages []ScannedPackage
	for _, group := range matches {
		for _, rel := range group {
			path := filepath.Join(root, filepath.FromSlash(rel))
			m, err := manifest.Load(path)
			if err != nil {
				return nil, err
			}
			packages = append(packages, ScannedPackage{
				Dir:          filepath.Dir(path),
				ManifestPath: path,
				Manifest:     m,
			})
		}
	}
	return packages, nil
}
