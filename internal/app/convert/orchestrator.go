// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/cjsify/cjsify/internal/esmregistry"
	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/internal/logging"
	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/internal/rewrite"
	"github.com/cjsify/cjsify/internal/shell"
	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// RunSeparator is logged after each completed run.
const RunSeparator = "---"

// Orchestrator converts pinned packages one at a time.
type Orchestrator struct {
	workspace    string
	materializer *pipeline.Materializer
	rewriter     *rewrite.Rewriter
	readme       *pipeline.ReadmeWriter
	transpiler   *pipeline.Transpiler
	publisher    *pipeline.Publisher
	telemetry    pipeline.Telemetry
	logger       *log.Logger
}

// New creates an Orchestrator whose stages run their commands through runner.
func New(runner shell.Runner, opts Options) (*Orchestrator, error) {
	if ok, errs := opts.IsValid(); !ok {
		return nil, errs[0]
	}
	workspace, err := opts.absWorkspace()
	if err != nil {
		return nil, err
	}

	logger := opts.Telemetry.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Orchestrator{
		workspace:    workspace,
		materializer: pipeline.NewMaterializer(runner, workspace, opts.InstallCommand, opts.Telemetry),
		rewriter:     rewrite.New(opts.Namer, opts.Project),
		readme:       pipeline.NewReadmeWriter(opts.Namer, opts.ProjectURL),
		transpiler:   pipeline.NewTranspiler(runner, opts.TranspileCommand, opts.Telemetry),
		publisher:    pipeline.NewPublisher(runner, opts.PublishCommand, opts.DryRun, opts.Telemetry),
		telemetry:    opts.Telemetry,
		logger:       logger,
	}, nil
}

// Workspace returns the absolute workspace directory.
func (o *Orchestrator) Workspace() string { return o.workspace }

// DryRun reports whether publishing is simulated.
func (o *Orchestrator) DryRun() bool { return o.publisher.DryRun() }

// Run converts every spec in order. It stops at the first failure and
// returns the reports of the runs completed so far.
func (o *Orchestrator) Run(ctx context.Context, specs []npm.PinnedSpec) ([]*Report, error) {
	reports := make([]*Report, 0, len(specs))
	for _, spec := range specs {
		report, err := o.Convert(ctx, spec)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
		o.logger.Print(RunSeparator)
	}
	return reports, nil
}

// Convert runs the full pipeline for one pinned package. The workspace is
// wiped first; only one run may use it at a time.
func (o *Orchestrator) Convert(ctx context.Context, spec npm.PinnedSpec) (*Report, error) {
	report := &Report{Spec: spec}

	fsutil.ForceRemove(o.workspace)
	if err := os.MkdirAll(o.workspace, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	tree, err := o.materializer.Materialize(ctx, spec)
	if err != nil {
		return nil, err
	}

	packages, err := pipeline.Scan(ctx, tree.Root)
	if err != nil {
		return nil, err
	}

	manifests := make([]*manifest.Manifest, len(packages))
	for i, p := range packages {
		manifests[i] = p.Manifest
	}
	registry := esmregistry.Build(manifests)
	report.ESMPackages = registry.Entries()

	if registry.IsEmpty() {
		report.NothingToConvert = true
		o.logger.Infof("Nothing to convert, %s is already exported as CommonJS modules", spec.Name())
		return report, nil
	}

	o.logger.Infof("Found %d ESM packages to convert:", registry.Len())
	for _, entry := range report.ESMPackages {
		o.logger.Info("  " + entry.String())
	}

	if err := o.rewriteAll(packages, registry, report); err != nil {
		return nil, err
	}
	report.Pruned = pipeline.Prune(packages)

	destinationRoot := filepath.Join(o.workspace, pipeline.TranspiledDir)
	report.TranspiledDir, err = o.transpiler.Transpile(ctx, tree, destinationRoot)
	if err != nil {
		return nil, err
	}

	if err := o.publishAll(ctx, destinationRoot, report); err != nil {
		return nil, err
	}
	return report, nil
}

// rewriteAll converts every ESM-only manifest in place and replaces its
// readme, one package at a time.
func (o *Orchestrator) rewriteAll(packages []pipeline.ScannedPackage, registry *esmregistry.Registry, report *Report) error {
	for _, p := range packages {
		if !manifest.IsESMOnly(p.Manifest) {
			continue
		}

		timer := o.telemetry.StartTimer(fmt.Sprintf("Converted %s entrypoints to CommonJS", p.Manifest.Name))

		converted, err := o.rewriter.Rewrite(p.Manifest, registry)
		if err != nil {
			return err
		}
		if err := manifest.Save(p.ManifestPath, converted); err != nil {
			return err
		}
		if err := o.readme.Replace(p.Dir, p.Manifest); err != nil {
			return err
		}

		timer.Stop()
		report.Converted = append(report.Converted, converted.Name)
	}
	return nil
}

// publishAll publishes every package of the transpiled tree sequentially.
func (o *Orchestrator) publishAll(ctx context.Context, destinationRoot string, report *Report) error {
	timer := o.telemetry.StartTimer("Published packages")

	publishable, err := pipeline.Scan(ctx, destinationRoot)
	if err != nil {
		return err
	}
	for _, p := range publishable {
		outcome, err := o.publisher.Publish(ctx, p.Dir)
		if err != nil {
			return err
		}
		report.Published = append(report.Published, pipeline.PublishResult{
			Identity: p.Manifest.Identity(),
			Dir:      p.Dir,
			Outcome:  outcome,
		})
	}

	timer.Stop()
	return nil
}
