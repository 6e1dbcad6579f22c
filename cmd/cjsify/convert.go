// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cjsify/cjsify/internal/app/convert"
	"github.com/cjsify/cjsify/internal/config"
	"github.com/cjsify/cjsify/internal/logging"
	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/internal/rewrite"
	"github.com/cjsify/cjsify/pkg/npm"
)

func newConvertCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [name@version ...]",
		Short: "Convert pinned packages and their ESM-only dependencies",
		Long: `Convert pinned packages and their ESM-only dependencies.

Without arguments the specifiers are read from the packages file
(packages_file, default esm-packages.json). Packages are converted one
at a time and the first failure stops the run.

Publishing is a dry run unless publish.dry_run is false, --dry-run=false
is passed or DISABLE_DRY_RUN=true is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, app, flags, args)
		},
	}
}

func runConvert(cmd *cobra.Command, app *App, flags *rootFlags, args []string) error {
	cfg, _, err := flags.loadConfig(cmd, app)
	if err != nil {
		return failCommand(cmd, app, err, flags.verbose)
	}

	specs, err := resolveSpecs(cfg, args)
	if err != nil {
		return failCommand(cmd, app, err, cfg.UI.Verbose)
	}

	namer, err := cfg.Namer()
	if err != nil {
		return failCommand(cmd, app, err, cfg.UI.Verbose)
	}

	logger := logging.New(app.stdout, cfg.UI.Verbose)
	var mirror io.Writer
	if cfg.UI.Verbose {
		mirror = app.stderr
	}

	orchestrator, err := convert.New(app.NewRunner(logger, mirror), convert.Options{
		Workspace: cfg.WorkspaceDir,
		Namer:     namer,
		Project: rewrite.Project{
			Repository: cfg.Project.Repository,
			Homepage:   cfg.Project.Homepage,
		},
		ProjectURL:       cfg.Project.URL,
		InstallCommand:   cfg.Commands.Install.String(),
		TranspileCommand: cfg.Commands.Transpile.String(),
		PublishCommand:   cfg.Commands.Publish.String(),
		DryRun:           cfg.Publish.DryRun,
		Telemetry:        pipeline.Telemetry{Logger: logger, Clock: app.Clock},
	})
	if err != nil {
		return failCommand(cmd, app, err, cfg.UI.Verbose)
	}

	if orchestrator.DryRun() {
		logger.Warn("Dry run: nothing will be published", "enable", config.DisableDryRunEnv+"=true")
	}

	reports, err := orchestrator.Run(cmd.Context(), specs)
	printSummary(app.stdout, reports)
	if err != nil {
		return failCommand(cmd, app, err, cfg.UI.Verbose)
	}
	return nil
}

// resolveSpecs parses args, falling back to the configured packages file.
func resolveSpecs(cfg *config.Config, args []string) ([]npm.PinnedSpec, error) {
	if len(args) > 0 {
		return config.ParsePinnedSpecs(args)
	}
	return config.LoadPackageList(cfg.PackagesFile)
}

func printSummary(w io.Writer, reports []*convert.Report) {
	if len(reports) == 0 {
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Summary"))
	for _, r := range reports {
		name := KeyStyle.Render(r.Spec.String())
		if r.NothingToConvert {
			fmt.Fprintf(w, "  %s %s\n", name, SubtitleStyle.Render("already CommonJS"))
			continue
		}

		var published, skipped int
		for _, p := range r.Published {
			if p.Outcome == pipeline.OutcomeAlreadyPublished {
				skipped++
			} else {
				published++
			}
		}
		fmt.Fprintf(w, "  %s %s\n", name, SuccessStyle.Render(fmt.Sprintf(
			"%d converted, %d published, %d already published", len(r.Converted), published, skipped)))
	}
}

// failCommand renders err with its help text and returns an ExitError so
// fang does not print it a second time.
func failCommand(cmd *cobra.Command, app *App, err error, verbose bool) error {
	renderServiceError(app.stderr, classifyError(err, verbose))
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}
