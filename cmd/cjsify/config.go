// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cjsify/cjsify/internal/config"
)

// newConfigCommand creates the `cjsify config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cjsify configuration",
		Long: `Manage cjsify configuration.

Configuration is read from the --config path, then from:
  - Linux: ~/.config/cjsify/config.cue
  - macOS: ~/Library/Application Support/cjsify/config.cue
  - Windows: %APPDATA%\cjsify\config.cue
and finally from ./config.cue. CJSIFY_<KEY> environment variables
override single keys, e.g. CJSIFY_WORKSPACE_DIR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.loadConfig(cmd, app)
			if err != nil {
				return failCommand(cmd, app, err, flags.verbose)
			}
			showConfig(app.stdout, cfg, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.loadConfig(cmd, app)
			if err != nil {
				return failCommand(cmd, app, err, flags.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Config file already exists: %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created config file: %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	key := KeyStyle.Render
	value := func(v any) string { return SuccessStyle.Render(fmt.Sprint(v)) }

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", key("workspace_dir"), value(cfg.WorkspaceDir))
	fmt.Fprintf(w, "%s: %s\n", key("packages_file"), value(cfg.PackagesFile))
	fmt.Fprintf(w, "%s: %s\n", key("scope"), value(cfg.Scope))
	if cfg.NamePrefix == "" {
		fmt.Fprintf(w, "%s: %s\n", key("name_prefix"), SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", key("name_prefix"), value(cfg.NamePrefix))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("project"))
	fmt.Fprintf(w, "  repository: %s\n", value(cfg.Project.Repository))
	fmt.Fprintf(w, "  homepage: %s\n", value(cfg.Project.Homepage))
	fmt.Fprintf(w, "  url: %s\n", value(cfg.Project.URL))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("commands"))
	fmt.Fprintf(w, "  install: %s\n", value(cfg.Commands.Install))
	fmt.Fprintf(w, "  transpile: %s\n", value(cfg.Commands.Transpile))
	fmt.Fprintf(w, "  publish: %s\n", value(cfg.Commands.Publish))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("publish"))
	fmt.Fprintf(w, "  dry_run: %s\n", value(cfg.Publish.DryRun))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", key("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(cfg.UI.Verbose))
}
