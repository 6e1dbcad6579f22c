// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cjsify/cjsify/internal/shell"
	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// NodeModulesDir is the installation directory the package manager writes.
const NodeModulesDir = "node_modules"

type (
	// InstalledTree is the workspace directory holding one pinned package
	// and its installed dependency tree.
	InstalledTree struct {
		Spec npm.PinnedSpec
		Root string
	}

	// Materializer installs a pinned package into a fresh directory of the
	// workspace.
	Materializer struct {
		runner    shell.Runner
		workspace string
		command   string
		telemetry Telemetry
	}
)

// NodeModules returns <root>/node_modules.
func (t InstalledTree) NodeModules() string {
	return filepath.Join(t.Root, NodeModulesDir)
}

// NewMaterializer creates a Materializer that installs into workspace with
// the given install command line.
func NewMaterializer(runner shell.Runner, workspace, command string, telemetry Telemetry) *Materializer {
	return &Materializer{runner: runner, workspace: workspace, command: command, telemetry: telemetry}
}

// Materialize creates <workspace>/<name>@<version>, writes a manifest that
// depends on exactly the pinned package and runs the install command there.
func (m *Materializer) Materialize(ctx context.Context, spec npm.PinnedSpec) (InstalledTree, error) {
	tree := InstalledTree{Spec: spec, Root: filepath.Join(m.workspace, spec.String())}

	if err := os.MkdirAll(tree.Root, 0o755); err != nil {
		return InstalledTree{}, fmt.Errorf("failed to create package directory: %w", err)
	}

	root := &manifest.Manifest{
		Dependencies: map[string]string{string(spec.Name()): string(spec.Version())},
	}
	if err := manifest.Save(filepath.Join(tree.Root, manifest.FileName), root); err != nil {
		return InstalledTree{}, err
	}

	timer := m.telemetry.StartTimer("Installed " + filepath.Base(tree.Root))
	if _, err := m.runner.Run(ctx, shell.Command{Line: m.command, Dir: tree.Root}); err != nil {
		return InstalledTree{}, &StageError{Stage: StageInstall, Target: spec.String(), Cause: err}
	}
	timer.Stop()

	return tree, nil
}
