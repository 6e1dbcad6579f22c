// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cjsify/cjsify/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configPath string
	envFile    string
	dryRun     bool
}

// NewRootCommand builds the cjsify command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "cjsify",
		Short: "Republish ESM-only npm packages as CommonJS",
		Long: TitleStyle.Render("cjsify") + SubtitleStyle.Render(" - Republish ESM-only npm packages as CommonJS") + `

cjsify installs a pinned package, finds every ESM-only package in its
dependency tree, rewrites their manifests to point at a reserved scope,
transpiles the tree to CommonJS and publishes the results.

` + SubtitleStyle.Render("Examples:") + `
  cjsify convert chalk@5.3.0            Convert one pinned package
  cjsify convert                        Convert every entry of esm-packages.json
  cjsify convert --dry-run=false ...    Publish for real
  cjsify classify tmp/chalk@5.3.0       Show the module kind of every installed package
  cjsify config show                    Show the current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/cjsify/config.cue)")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before the configuration")
	rootCmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", true, "pass --dry-run to the publish command (overrides publish.dry_run)")

	rootCmd.AddCommand(newConvertCommand(app, flags))
	rootCmd.AddCommand(newClassifyCommand(app))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// loadConfig loads the configuration and applies the flag overrides.
func (f *rootFlags) loadConfig(cmd *cobra.Command, app *App) (*config.Config, string, error) {
	cfg, path, err := app.Config.Resolve(cmd.Context(), config.LoadOptions{
		ConfigFilePath: f.configPath,
		EnvFilePath:    f.envFile,
	})
	if err != nil {
		return nil, "", err
	}

	if f.verbose {
		cfg.UI.Verbose = true
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Publish.DryRun = f.dryRun
	}
	return cfg, path, nil
}

// getVersionString returns the ldflags version, the module version of a
// `go install` build, or a development marker.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI and exits with the command's exit code.
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
