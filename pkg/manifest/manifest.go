// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cjsify/cjsify/pkg/npm"
)

// FileName is the manifest file name inside a package directory.
const FileName = "package.json"

const (
	// TypeAbsent means the manifest has no "type" field.
	TypeAbsent ModuleType = ""
	// TypeCommonJS is the explicit "commonjs" module type.
	TypeCommonJS ModuleType = "commonjs"
	// TypeModule is the "module" (ECMAScript module) type.
	TypeModule ModuleType = "module"
)

var (
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing manifest field")
	// ErrMalformedField is the sentinel error wrapped by MalformedFieldError.
	ErrMalformedField = errors.New("malformed manifest field")
)

type (
	// ModuleType is the manifest "type" declaration.
	ModuleType string

	// Manifest is one package.json document.
	//
	// Typed fields hold the values the pipeline reads or rewrites. Fields holds
	// every other top-level key verbatim. A typed string field whose JSON value
	// was not a string is left in Fields and the typed field stays empty.
	Manifest struct {
		Name         npm.PackageName
		Version      npm.Version
		Description  string
		Type         ModuleType
		Main         string
		Browser      string
		Types        string
		Exports      *Exports
		Dependencies map[string]string
		License      string
		Scripts      map[string]string
		Repository   string
		Homepage     string

		// Fields holds all remaining top-level keys as raw JSON.
		Fields map[string]json.RawMessage
	}

	// MissingFieldError is returned when a required field is absent.
	MissingFieldError struct {
		Path  string
		Field string
	}

	// MalformedFieldError is returned when a field has a shape the pipeline
	// cannot interpret (e.g. "dependencies" that is not a string map).
	MalformedFieldError struct {
		Path  string
		Field string
		Cause error
	}
)

// stringFields maps JSON keys to the typed string field they populate.
func (m *Manifest) stringFields() map[string]*string {
	return map[string]*string{
		"description": &m.Description,
		"main":        &m.Main,
		"browser":     &m.Browser,
		"types":       &m.Types,
		"license":     &m.License,
		"repository":  &m.Repository,
		"homepage":    &m.Homepage,
	}
}

// UnmarshalJSON decodes a manifest, keeping unknown fields in Fields.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Manifest{}

	if v, ok := raw["name"]; ok && decodeString(v, (*string)(&m.Name)) {
		delete(raw, "name")
	}
	if v, ok := raw["version"]; ok && decodeString(v, (*string)(&m.Version)) {
		delete(raw, "version")
	}
	if v, ok := raw["type"]; ok && decodeString(v, (*string)(&m.Type)) {
		delete(raw, "type")
	}
	for key, dst := range m.stringFields() {
		if v, ok := raw[key]; ok && decodeString(v, dst) {
			delete(raw, key)
		}
	}

	if v, ok := raw["exports"]; ok {
		exports, err := ParseExports(v)
		if err != nil {
			return &MalformedFieldError{Field: "exports", Cause: err}
		}
		if exports != nil {
			m.Exports = exports
			delete(raw, "exports")
		}
	}
	if v, ok := raw["dependencies"]; ok {
		if err := decodeStringMap(v, &m.Dependencies); err != nil {
			return &MalformedFieldError{Field: "dependencies", Cause: err}
		}
		delete(raw, "dependencies")
	}
	if v, ok := raw["scripts"]; ok {
		if err := decodeStringMap(v, &m.Scripts); err != nil {
			return &MalformedFieldError{Field: "scripts", Cause: err}
		}
		delete(raw, "scripts")
	}

	if len(raw) > 0 {
		m.Fields = raw
	}
	return nil
}

// MarshalJSON encodes the manifest. Empty typed strings are omitted; nil
// maps are omitted while empty non-nil maps are written as {}.
func (m Manifest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+16)
	for k, v := range m.Fields {
		out[k] = v
	}

	putString := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	putString("name", string(m.Name))
	putString("version", string(m.Version))
	putString("type", string(m.Type))
	for key, src := range m.stringFields() {
		putString(key, *src)
	}

	if m.Exports != nil {
		out["exports"] = m.Exports
	}
	if m.Dependencies != nil {
		out["dependencies"] = m.Dependencies
	}
	if m.Scripts != nil {
		out["scripts"] = m.Scripts
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	c := *m
	c.Dependencies = cloneMap(m.Dependencies)
	c.Scripts = cloneMap(m.Scripts)
	if m.Fields != nil {
		c.Fields = make(map[string]json.RawMessage, len(m.Fields))
		for k, v := range m.Fields {
			c.Fields[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// HasMain reports whether the manifest declares a truthy "main", including
// a non-string value kept in Fields.
func (m *Manifest) HasMain() bool {
	if m.Main != "" {
		return true
	}
	raw, ok := m.Fields["main"]
	return ok && truthy(raw)
}

// Identity returns "name@version".
func (m *Manifest) Identity() string {
	return string(m.Name) + "@" + string(m.Version)
}

// RequireIdentity returns a MissingFieldError if name or version is absent.
func (m *Manifest) RequireIdentity(path string) error {
	if m.Name == "" {
		return &MissingFieldError{Path: path, Field: "name"}
	}
	if m.Version == "" {
		return &MissingFieldError{Path: path, Field: "version"}
	}
	return nil
}

// Parse decodes manifest bytes. path is used in error messages only.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		var malformed *MalformedFieldError
		if errors.As(err, &malformed) {
			malformed.Path = path
			return nil, malformed
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// Load reads and parses the manifest at path and checks that it carries a
// name and a version.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	if err := m.RequireIdentity(path); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDir loads <dir>/package.json.
func LoadDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, FileName))
}

// Encode renders the manifest as 2-space indented JSON without HTML escaping.
func Encode(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save writes the manifest to path, replacing any existing file.
func Save(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest %s: %w", m.Identity(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Path, e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface for MalformedFieldError.
func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("%s: malformed field %q: %v", e.Path, e.Field, e.Cause)
}

// Unwrap returns ErrMalformedField for errors.Is() compatibility.
func (e *MalformedFieldError) Unwrap() error { return ErrMalformedField }

func decodeString(raw json.RawMessage, dst *string) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	*dst = s
	return true
}

func decodeStringMap(raw json.RawMessage, dst *map[string]string) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// truthy reports whether a JSON value is truthy in JavaScript terms.
// Undecodable input counts as truthy so callers surface the syntax error.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
