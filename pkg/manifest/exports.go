// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// ExportsSingle is a bare entry path: "exports": "./index.js".
	ExportsSingle ExportsKind = iota + 1
	// ExportsConditional is an object keyed by condition or subpath.
	ExportsConditional
	// ExportsUnrepresentable is any other JSON shape (array, number, bool).
	ExportsUnrepresentable
)

// Well-known condition names.
const (
	ConditionTypes   = "types"
	ConditionNode    = "node"
	ConditionBrowser = "browser"
	ConditionDefault = "default"
)

type (
	// ExportsKind discriminates the Exports variant.
	ExportsKind int

	// Exports is the tagged variant for the "exports" field:
	// SingleEntry(path) | ConditionalMap(condition -> Exports) | Unrepresentable.
	// Build values with SingleEntry, ConditionalMap or ParseExports.
	Exports struct {
		kind       ExportsKind
		path       string
		conditions map[string]*Exports
		raw        json.RawMessage
	}
)

// SingleEntry returns a single-path Exports value.
func SingleEntry(path string) *Exports {
	return &Exports{kind: ExportsSingle, path: path}
}

// ConditionalMap returns a conditional Exports value.
func ConditionalMap(conditions map[string]*Exports) *Exports {
	if conditions == nil {
		conditions = map[string]*Exports{}
	}
	return &Exports{kind: ExportsConditional, conditions: conditions}
}

// ParseExports decodes a raw "exports" value. It returns nil for falsy
// values (null, false, 0 and ""), all of which mean "no exports".
func ParseExports(raw json.RawMessage) (*Exports, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !truthy(trimmed) {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return SingleEntry(s), nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		conditions := make(map[string]*Exports, len(obj))
		for key, value := range obj {
			child, err := ParseExports(value)
			if err != nil {
				return nil, fmt.Errorf("condition %q: %w", key, err)
			}
			if child == nil {
				child = &Exports{kind: ExportsUnrepresentable, raw: value}
			}
			conditions[key] = child
		}
		e := ConditionalMap(conditions)
		e.raw = append(json.RawMessage(nil), trimmed...)
		return e, nil
	default:
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON value for exports")
		}
		return &Exports{kind: ExportsUnrepresentable, raw: append(json.RawMessage(nil), trimmed...)}, nil
	}
}

// Kind returns the variant tag.
func (e *Exports) Kind() ExportsKind { return e.kind }

// Path returns the entry path of a SingleEntry, or "" for other variants.
func (e *Exports) Path() string {
	if e.kind != ExportsSingle {
		return ""
	}
	return e.path
}

// Condition returns the value for a condition of a ConditionalMap.
func (e *Exports) Condition(name string) (*Exports, bool) {
	if e.kind != ExportsConditional {
		return nil, false
	}
	child, ok := e.conditions[name]
	return child, ok
}

// ConditionPath returns the condition's path when the condition exists and
// is itself a SingleEntry.
func (e *Exports) ConditionPath(name string) (string, bool) {
	child, ok := e.Condition(name)
	if !ok || child == nil || child.kind != ExportsSingle {
		return "", false
	}
	return child.path, true
}

// MarshalJSON re-encodes the exports value.
func (e *Exports) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case ExportsSingle:
		return json.Marshal(e.path)
	case ExportsConditional:
		if e.raw != nil {
			return e.raw, nil
		}
		return json.Marshal(e.conditions)
	default:
		if e.raw == nil {
			return []byte("null"), nil
		}
		return e.raw, nil
	}
}

// String returns a readable name for the kind.
func (k ExportsKind) String() string {
	switch k {
	case ExportsSingle:
		return "single-entry"
	case ExportsConditional:
		return "conditional-map"
	case ExportsUnrepresentable:
		return "unrepresentable"
	default:
		return "unknown"
	}
}
