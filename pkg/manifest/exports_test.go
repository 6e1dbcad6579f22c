// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"testing"
)

func TestParseExports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantNil  bool
		wantKind ExportsKind
	}{
		{name: "null", raw: `null`, wantNil: true},
		{name: "empty string", raw: `""`, wantNil: true},
		{name: "false", raw: `false`, wantNil: true},
		{name: "zero", raw: `0`, wantNil: true},
		{name: "string", raw: `"./index.js"`, wantKind: ExportsSingle},
		{name: "object", raw: `{"node":"./a.js"}`, wantKind: ExportsConditional},
		{name: "subpath object", raw: `{".":{"import":"./a.js"}}`, wantKind: ExportsConditional},
		{name: "array", raw: `["./a.js","./b.js"]`, wantKind: ExportsUnrepresentable},
		{name: "bool", raw: `true`, wantKind: ExportsUnrepresentable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseExports(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("ParseExports(%s) error = %v", tt.raw, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseExports(%s) = %v, want nil", tt.raw, got.Kind())
				}
				return
			}
			if got == nil || got.Kind() != tt.wantKind {
				t.Fatalf("ParseExports(%s) kind = %v, want %v", tt.raw, got, tt.wantKind)
			}
		})
	}
}

func TestExportsConditionPath(t *testing.T) {
	t.Parallel()

	e, err := ParseExports(json.RawMessage(`{"node":"./n.js","browser":{"import":"./b.mjs"},"types":"./t.d.ts"}`))
	if err != nil {
		t.Fatalf("ParseExports() error = %v", err)
	}

	if p, ok := e.ConditionPath(ConditionNode); !ok || p != "./n.js" {
		t.Errorf("ConditionPath(node) = %q, %v", p, ok)
	}
	if _, ok := e.ConditionPath(ConditionBrowser); ok {
		t.Error("nested browser condition should not yield a path")
	}
	if _, ok := e.Condition(ConditionBrowser); !ok {
		t.Error("Condition(browser) should exist")
	}
	if _, ok := e.ConditionPath(ConditionDefault); ok {
		t.Error("missing default condition should not yield a path")
	}
	if SingleEntry("./x.js").Path() != "./x.js" {
		t.Error("SingleEntry().Path() mismatch")
	}
	if e.Path() != "" {
		t.Error("ConditionalMap.Path() should be empty")
	}
}

func TestExportsMarshalJSON(t *testing.T) {
	t.Parallel()

	e := ConditionalMap(map[string]*Exports{"node": SingleEntry("./n.js")})
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"node":"./n.js"}` {
		t.Errorf("Marshal() = %s", data)
	}
}
