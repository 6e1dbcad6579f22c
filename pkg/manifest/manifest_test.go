// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `{
  "name": "esm-thing",
  "version": "2.0.0",
  "type": "module",
  "license": "MIT",
  "description": "A <b>thing</b> & more",
  "exports": {"node": "./index.js", "default": "./index.mjs"},
  "dependencies": {"dep-a": "^1.0.0"},
  "scripts": {"build": "tsc", "prepare": "npm run build"},
  "files": ["dist"],
  "repository": {"type": "git", "url": "https://example.com/x.git"},
  "engines": {"node": ">=18"}
}`

func TestParseKeepsUnknownFields(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(sampleManifest), "package.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "esm-thing" || m.Version != "2.0.0" || m.Type != TypeModule {
		t.Errorf("identity = %s type=%q", m.Identity(), m.Type)
	}
	if m.Dependencies["dep-a"] != "^1.0.0" {
		t.Errorf("Dependencies = %v", m.Dependencies)
	}
	if m.Scripts["prepare"] != "npm run build" {
		t.Errorf("Scripts = %v", m.Scripts)
	}
	for _, key := range []string{"files", "engines", "repository"} {
		if _, ok := m.Fields[key]; !ok {
			t.Errorf("Fields[%q] missing", key)
		}
	}
	if m.Repository != "" {
		t.Errorf("object repository should stay raw, got typed value %q", m.Repository)
	}
}

func TestEncodeRoundTripsUnknownFields(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(sampleManifest), "package.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Contains(string(data), `\u003c`) || strings.Contains(string(data), `\u0026`) {
		t.Errorf("Encode() escaped HTML characters:\n%s", data)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"esm-thing\"") {
		t.Errorf("Encode() is not 2-space indented:\n%s", data)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("Encode() produced invalid JSON: %v", err)
	}
	if _, ok := generic["engines"]; !ok {
		t.Error("engines lost in round trip")
	}
	exports, ok := generic["exports"].(map[string]any)
	if !ok || exports["node"] != "./index.js" {
		t.Errorf("exports lost in round trip: %v", generic["exports"])
	}
}

func TestParseFalsyExports(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{"name":"x","version":"1.0.0","type":"module","exports":false,"main":true}`), "package.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Exports != nil {
		t.Errorf("Exports = %v, want nil for false", m.Exports.Kind())
	}
	if string(m.Fields["exports"]) != "false" {
		t.Errorf("Fields[exports] = %s, want false kept verbatim", m.Fields["exports"])
	}
	if m.Main != "" || !m.HasMain() {
		t.Errorf("Main = %q, HasMain() = %v, want non-string main detected", m.Main, m.HasMain())
	}
}

func TestEncodeEmptyMaps(t *testing.T) {
	t.Parallel()

	m := &Manifest{Name: "x", Version: "1.0.0", Dependencies: map[string]string{}}
	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), `"dependencies": {}`) {
		t.Errorf("empty dependencies should be written as {}:\n%s", data)
	}
	if strings.Contains(string(data), "scripts") {
		t.Errorf("nil scripts should be omitted:\n%s", data)
	}
}

func TestParseMalformedDependencies(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"name":"x","version":"1.0.0","dependencies":["a"]}`), "x/package.json")
	if !errors.Is(err, ErrMalformedField) {
		t.Fatalf("Parse() error = %v, want ErrMalformedField", err)
	}
	if !strings.Contains(err.Error(), "x/package.json") {
		t.Errorf("error should mention the path: %v", err)
	}
}

func TestLoadRequiresIdentity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing name", body: `{"version":"1.0.0"}`, field: "name"},
		{name: "missing version", body: `{"name":"x"}`, field: "version"},
		{name: "non-string name", body: `{"name":1,"version":"1.0.0"}`, field: "name"},
	}

	for i, tt := range tests {
		path := filepath.Join(dir, tt.name+".json")
		if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
			t.Fatalf("case %d: write: %v", i, err)
		}

		_, err := Load(path)
		var missing *MissingFieldError
		if !errors.As(err, &missing) {
			t.Errorf("%s: Load() error = %v, want *MissingFieldError", tt.name, err)
			continue
		}
		if missing.Field != tt.field {
			t.Errorf("%s: Field = %q, want %q", tt.name, missing.Field, tt.field)
		}
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("%s: error does not wrap ErrMissingField", tt.name)
		}
	}
}

func TestSaveThenLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := &Manifest{
		Name:         "@scope/pkg",
		Version:      "1.2.3",
		Type:         TypeCommonJS,
		Main:         "./index.js",
		Dependencies: map[string]string{"a": "^1"},
	}
	if err := Save(filepath.Join(dir, FileName), m); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if got.Identity() != "@scope/pkg@1.2.3" || got.Main != "./index.js" || got.Type != TypeCommonJS {
		t.Errorf("LoadDir() = %+v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(sampleManifest), "package.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := m.Clone()
	c.Dependencies["dep-b"] = "1"
	c.Scripts["build"] = "changed"
	delete(c.Fields, "files")

	if _, ok := m.Dependencies["dep-b"]; ok {
		t.Error("Clone shares Dependencies")
	}
	if m.Scripts["build"] != "tsc" {
		t.Error("Clone shares Scripts")
	}
	if _, ok := m.Fields["files"]; !ok {
		t.Error("Clone shares Fields")
	}
}
