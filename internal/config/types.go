// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/pkg/npm"
)

const (
	// SrcPlaceholder is replaced by the installed tree in the transpile command.
	SrcPlaceholder = "{src}"
	// DestPlaceholder is replaced by the output directory in the transpile command.
	DestPlaceholder = "{dest}"
)

var (
	// ErrInvalidCommandTemplate is returned when a command template is blank
	// or lacks a required placeholder.
	ErrInvalidCommandTemplate = errors.New("invalid command template")
	// ErrInvalidWorkspaceDir is returned when workspace_dir is blank or
	// points at a directory that must never be wiped.
	ErrInvalidWorkspaceDir = errors.New("invalid workspace dir")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CommandTemplate is a shell command line, optionally with {key} placeholders.
	CommandTemplate string

	// InvalidCommandTemplateError is returned when a CommandTemplate cannot be used.
	InvalidCommandTemplateError struct {
		Key     string
		Value   CommandTemplate
		Missing string
	}

	// InvalidConfigError aggregates every field error of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the root configuration.
	Config struct {
		WorkspaceDir string         `json:"workspace_dir" mapstructure:"workspace_dir"`
		PackagesFile string         `json:"packages_file" mapstructure:"packages_file"`
		Scope        npm.Scope      `json:"scope" mapstructure:"scope"`
		NamePrefix   string         `json:"name_prefix" mapstructure:"name_prefix"`
		Project      ProjectConfig  `json:"project" mapstructure:"project"`
		Commands     CommandsConfig `json:"commands" mapstructure:"commands"`
		Publish      PublishConfig  `json:"publish" mapstructure:"publish"`
		UI           UIConfig       `json:"ui" mapstructure:"ui"`
	}

	// ProjectConfig holds the metadata stamped onto every converted manifest
	// and readme.
	ProjectConfig struct {
		Repository string `json:"repository" mapstructure:"repository"`
		Homepage   string `json:"homepage" mapstructure:"homepage"`
		URL        string `json:"url" mapstructure:"url"`
	}

	// CommandsConfig holds the external commands run by the pipeline.
	CommandsConfig struct {
		Install   CommandTemplate `json:"install" mapstructure:"install"`
		Transpile CommandTemplate `json:"transpile" mapstructure:"transpile"`
		Publish   CommandTemplate `json:"publish" mapstructure:"publish"`
	}

	// PublishConfig controls the publish stage.
	PublishConfig struct {
		DryRun bool `json:"dry_run" mapstructure:"dry_run"`
	}

	// UIConfig controls terminal output.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the command line.
func (c CommandTemplate) String() string { return string(c) }

// Validate checks that the template is non-blank and references every
// placeholder in required.
func (c CommandTemplate) Validate(key string, required ...string) error {
	if strings.TrimSpace(string(c)) == "" {
		return &InvalidCommandTemplateError{Key: key, Value: c}
	}
	for _, placeholder := range required {
		if !strings.Contains(string(c), placeholder) {
			return &InvalidCommandTemplateError{Key: key, Value: c, Missing: placeholder}
		}
	}
	return nil
}

// Error implements the error interface for InvalidCommandTemplateError.
func (e *InvalidCommandTemplateError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("invalid command template %s %q: missing %s", e.Key, e.Value, e.Missing)
	}
	return fmt.Sprintf("invalid command template %s: must not be empty", e.Key)
}

// Unwrap returns ErrInvalidCommandTemplate for errors.Is() compatibility.
func (e *InvalidCommandTemplateError) Unwrap() error { return ErrInvalidCommandTemplate }

// IsValid returns whether the Config can drive a conversion, and the
// field errors otherwise.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.WorkspaceDir) == "" {
		errs = append(errs, fmt.Errorf("workspace_dir: %w", ErrInvalidWorkspaceDir))
	} else if err := fsutil.CheckDisposable(c.WorkspaceDir); err != nil {
		errs = append(errs, fmt.Errorf("workspace_dir: %w: %w", ErrInvalidWorkspaceDir, err))
	}
	if err := c.Scope.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Commands.Install.Validate("commands.install"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Commands.Transpile.Validate("commands.transpile", SrcPlaceholder, DestPlaceholder); err != nil {
		errs = append(errs, err)
	}
	if err := c.Commands.Publish.Validate("commands.publish"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Namer returns the package namer for the configured scope and prefix.
func (c Config) Namer() (npm.Namer, error) {
	return npm.NewNamer(c.Scope, c.NamePrefix)
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so
// errors.Is() matches both the aggregate and each field's sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WorkspaceDir: "tmp",
		PackagesFile: "esm-packages.json",
		Scope:        "common.js",
		NamePrefix:   "",
		Project: ProjectConfig{
			Repository: "etienne-martin/common.js",
			Homepage:   "https://github.com/etienne-martin/common.js#readme",
			URL:        "https://github.com/etienne-martin/common.js",
		},
		Commands: CommandsConfig{
			Install:   "npm install --no-package-lock",
			Transpile: "yarn swc {src} --out-dir {dest}",
			Publish:   "npm publish --access public",
		},
		Publish: PublishConfig{
			DryRun: true,
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
