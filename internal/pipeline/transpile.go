// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"path/filepath"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/internal/shell"
)

// TranspiledDir is the workspace subdirectory receiving transpiled trees.
const TranspiledDir = "transpiled"

// Transpiler copies a pruned tree and runs the external transpiler over it.
type Transpiler struct {
	runner    shell.Runner
	template  string
	telemetry Telemetry
}

// NewTranspiler creates a Transpiler. template is a command line with {src}
// and {dest} placeholders.
func NewTranspiler(runner shell.Runner, template string, telemetry Telemetry) *Transpiler {
	return &Transpiler{runner: runner, template: template, telemetry: telemetry}
}

// Destination returns <destinationRoot>/<name>@<version>/node_modules, the
// directory the tree's node_modules is copied to.
func Destination(tree InstalledTree, destinationRoot string) string {
	return filepath.Join(destinationRoot, tree.Spec.String(), NodeModulesDir)
}

// Transpile copies the tree's node_modules verbatim under destinationRoot
// and then runs the transpiler from the source tree into destinationRoot,
// so transpiled output replaces the copied sources it touches. It returns
// the copied node_modules directory.
func (t *Transpiler) Transpile(ctx context.Context, tree InstalledTree, destinationRoot string) (string, error) {
	timer := t.telemetry.StartTimer("Transpiled packages")

	dest := Destination(tree, destinationRoot)
	if err := fsutil.CopyTree(tree.NodeModules(), dest); err != nil {
		return "", &StageError{Stage: StageTranspile, Target: tree.Spec.String(), Cause: err}
	}

	line, err := shell.Expand(t.template, map[string]string{
		"src":  tree.NodeModules(),
		"dest": destinationRoot,
	})
	if err != nil {
		return "", &StageError{Stage: StageTranspile, Target: tree.Spec.String(), Cause: err}
	}
	if _, err := t.runner.Run(ctx, shell.Command{Line: line}); err != nil {
		return "", &StageError{Stage: StageTranspile, Target: tree.Spec.String(), Cause: err}
	}

	timer.Stop()
	return dest, nil
}
