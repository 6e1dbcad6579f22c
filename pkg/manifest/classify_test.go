// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	conditional := ConditionalMap(map[string]*Exports{"import": SingleEntry("./index.mjs")})

	tests := []struct {
		name string
		m    Manifest
		want Kind
	}{
		{name: "type absent", m: Manifest{}, want: KindCommonJS},
		{name: "type absent with exports", m: Manifest{Exports: conditional}, want: KindCommonJS},
		{name: "type commonjs", m: Manifest{Type: TypeCommonJS}, want: KindCommonJS},
		{name: "type commonjs with main", m: Manifest{Type: TypeCommonJS, Main: "index.js"}, want: KindCommonJS},
		{name: "main only", m: Manifest{Main: "index.js"}, want: KindCommonJS},
		{name: "module with main is dual", m: Manifest{Type: TypeModule, Main: "index.cjs"}, want: KindDual},
		{name: "module without main", m: Manifest{Type: TypeModule}, want: KindESMOnly},
		{name: "module with exports only", m: Manifest{Type: TypeModule, Exports: conditional}, want: KindESMOnly},
		{name: "unknown type", m: Manifest{Type: "esm"}, want: KindCommonJS},
		{name: "module with non-string main", m: Manifest{Type: TypeModule, Fields: map[string]json.RawMessage{"main": json.RawMessage(`true`)}}, want: KindDual},
		{name: "module with false main", m: Manifest{Type: TypeModule, Fields: map[string]json.RawMessage{"main": json.RawMessage(`false`)}}, want: KindESMOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := tt.m
			if got := Classify(&m); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
			if got := IsESMOnly(&m); got != (tt.want == KindESMOnly) {
				t.Errorf("IsESMOnly() = %v", got)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	for kind, want := range map[Kind]string{
		KindCommonJS: "commonjs",
		KindDual:     "dual",
		KindESMOnly:  "esm-only",
		Kind(0):      "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
