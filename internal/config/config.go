// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cjsify/cjsify/internal/issue"
	"github.com/cjsify/cjsify/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "cjsify"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes the environment variables overriding config keys,
	// e.g. CJSIFY_PUBLISH_DRY_RUN.
	EnvPrefix = "CJSIFY"
	// DisableDryRunEnv turns the publish dry run off when set to true.
	DisableDryRunEnv = "DISABLE_DRY_RUN"
	// DefaultEnvFile is loaded before the configuration when present.
	DefaultEnvFile = ".env"

	disableDryRunKey = "disable_dry_run"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the cjsify configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// loadWithOptions loads the configuration and returns it along with the
// path of the file it was read from ("" when only defaults apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := loadEnvFile(opts.EnvFilePath); err != nil {
		return nil, "", loadError(opts.EnvFilePath, err, "Check the KEY=value syntax of the env file")
	}

	v := newViper()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", loadError(path, err,
				"Check that the file contains valid CUE syntax",
				"Verify the configuration values match the expected schema",
				"Use 'cjsify config dump' to see a complete default configuration")
		}
	}

	if v.GetString(disableDryRunKey) == "true" {
		v.Set("publish.dry_run", false)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("The transpile command must contain both {src} and {dest}").
			WithSuggestion("workspace_dir is wiped before every run; point it at a dedicated scratch directory").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, path, nil
}

// newViper returns a Viper seeded with the defaults and bound to the
// environment.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("workspace_dir", defaults.WorkspaceDir)
	v.SetDefault("packages_file", defaults.PackagesFile)
	v.SetDefault("scope", string(defaults.Scope))
	v.SetDefault("name_prefix", defaults.NamePrefix)
	v.SetDefault("project.repository", defaults.Project.Repository)
	v.SetDefault("project.homepage", defaults.Project.Homepage)
	v.SetDefault("project.url", defaults.Project.URL)
	v.SetDefault("commands.install", string(defaults.Commands.Install))
	v.SetDefault("commands.transpile", string(defaults.Commands.Transpile))
	v.SetDefault("commands.publish", string(defaults.Commands.Publish))
	v.SetDefault("publish.dry_run", defaults.Publish.DryRun)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// BindEnv with an explicit name bypasses the prefix.
	_ = v.BindEnv(disableDryRunKey, DisableDryRunEnv)

	return v
}

// resolveConfigPath picks the config file: an explicit path must exist,
// otherwise the user config dir and then the working directory are tried.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'cjsify config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	fileName := ConfigFileName + "." + ConfigFileExt
	for _, candidate := range []string{filepath.Join(cfgDir, fileName), fileName} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func loadError(path string, err error, suggestions ...string) error {
	ctx := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId)
	for _, s := range suggestions {
		ctx = ctx.WithSuggestion(s)
	}
	return ctx.Wrap(err).BuildError()
}

// loadEnvFile exports the variables of path without overriding the ones
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper. Every field is optional, so values need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Unify(configSchema, data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ConfigFilePath returns the path of the user config file.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes the default config file unless one exists and
// returns its path and whether it was created.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", false, err
	}

	if fileExists(cfgPath) {
		return cfgPath, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// GenerateCUE renders cfg as a config file accepted by the #Config schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// cjsify configuration file\n\n")

	fmt.Fprintf(&sb, "workspace_dir: %q\n", cfg.WorkspaceDir)
	fmt.Fprintf(&sb, "packages_file: %q\n", cfg.PackagesFile)
	fmt.Fprintf(&sb, "scope:         %q\n", cfg.Scope)
	fmt.Fprintf(&sb, "name_prefix:   %q\n", cfg.NamePrefix)

	sb.WriteString("\nproject: {\n")
	fmt.Fprintf(&sb, "\trepository: %q\n", cfg.Project.Repository)
	fmt.Fprintf(&sb, "\thomepage:   %q\n", cfg.Project.Homepage)
	fmt.Fprintf(&sb, "\turl:        %q\n", cfg.Project.URL)
	sb.WriteString("}\n")

	sb.WriteString("\ncommands: {\n")
	fmt.Fprintf(&sb, "\tinstall:   %q\n", cfg.Commands.Install)
	fmt.Fprintf(&sb, "\ttranspile: %q\n", cfg.Commands.Transpile)
	fmt.Fprintf(&sb, "\tpublish:   %q\n", cfg.Commands.Publish)
	sb.WriteString("}\n")

	sb.WriteString("\npublish: {\n")
	fmt.Fprintf(&sb, "\tdry_run: %v\n", cfg.Publish.DryRun)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
