// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cjsify/cjsify/internal/fsutil"
	"github.com/cjsify/cjsify/pkg/npm"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.WorkspaceDir != "tmp" {
		t.Errorf("WorkspaceDir = %q, want tmp", cfg.WorkspaceDir)
	}
	if cfg.PackagesFile != "esm-packages.json" {
		t.Errorf("PackagesFile = %q, want esm-packages.json", cfg.PackagesFile)
	}
	if cfg.Scope != "common.js" {
		t.Errorf("Scope = %q, want common.js", cfg.Scope)
	}
	if cfg.NamePrefix != "" {
		t.Errorf("NamePrefix = %q, want empty", cfg.NamePrefix)
	}
	if !cfg.Publish.DryRun {
		t.Error("publishing should default to a dry run")
	}
	if cfg.UI.Verbose {
		t.Error("verbose should default to false")
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("DefaultConfig().IsValid() = %v", errs)
	}
}

func TestConfigNamer(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.NamePrefix = "test__"

	namer, err := cfg.Namer()
	if err != nil {
		t.Fatalf("Namer() error = %v", err)
	}
	if got := namer.Namespaced("@babel/core"); got != "@common.js/test__babel__core" {
		t.Errorf("Namespaced() = %q", got)
	}
}

func TestCommandTemplateValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template CommandTemplate
		required []string
		wantErr  bool
		missing  string
	}{
		{"plain command", "npm publish", nil, false, ""},
		{"blank", "  ", nil, true, ""},
		{"all placeholders", "swc {src} -d {dest}", []string{SrcPlaceholder, DestPlaceholder}, false, ""},
		{"missing dest", "swc {src}", []string{SrcPlaceholder, DestPlaceholder}, true, DestPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.template.Validate("commands.x", tt.required...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidCommandTemplate) {
				t.Errorf("error should wrap ErrInvalidCommandTemplate, got %v", err)
			}
			var tmplErr *InvalidCommandTemplateError
			if errors.As(err, &tmplErr) && tmplErr.Missing != tt.missing {
				t.Errorf("Missing = %q, want %q", tmplErr.Missing, tt.missing)
			}
		})
	}
}

func TestConfigIsValidCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.WorkspaceDir = ""
	cfg.Scope = "@bad"
	cfg.Commands.Transpile = "swc {src}"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	if len(errs) != 1 {
		t.Fatalf("IsValid() returned %d errors, want 1 aggregate", len(errs))
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3", cfgErr.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
	if !errors.Is(cfgErr.FieldErrors[0], ErrInvalidWorkspaceDir) {
		t.Errorf("first field error = %v, want ErrInvalidWorkspaceDir", cfgErr.FieldErrors[0])
	}
	if !errors.Is(cfgErr.FieldErrors[1], npm.ErrInvalidScope) {
		t.Errorf("second field error = %v, want npm.ErrInvalidScope", cfgErr.FieldErrors[1])
	}
}

func TestConfigIsValidRejectsUnsafeWorkspace(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{".", "..", string(filepath.Separator)} {
		cfg := DefaultConfig()
		cfg.WorkspaceDir = dir

		valid, errs := cfg.IsValid()
		if valid {
			t.Errorf("IsValid() with workspace_dir %q = true, want false", dir)
			continue
		}
		var cfgErr *InvalidConfigError
		if !errors.As(errs[0], &cfgErr) || len(cfgErr.FieldErrors) != 1 {
			t.Fatalf("IsValid() with workspace_dir %q error = %v, want one field error", dir, errs[0])
		}
		fieldErr := cfgErr.FieldErrors[0]
		if !errors.Is(fieldErr, ErrInvalidWorkspaceDir) || !errors.Is(fieldErr, fsutil.ErrUnsafeDir) {
			t.Errorf("workspace_dir %q field error = %v, want ErrInvalidWorkspaceDir and ErrUnsafeDir", dir, fieldErr)
		}
	}
}
