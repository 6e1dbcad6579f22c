// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"testing"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
		wantErr  bool
	}{
		{
			name:     "plain paths",
			template: "yarn swc {src} --out-dir {dest}",
			vars:     map[string]string{"src": "/tmp/a/node_modules", "dest": "/tmp/transpiled"},
			want:     "yarn swc /tmp/a/node_modules --out-dir /tmp/transpiled",
		},
		{
			name:     "path with spaces and at sign",
			template: "yarn swc {src}",
			vars:     map[string]string{"src": "/tmp/left pad@1.0.0"},
			want:     "yarn swc '/tmp/left pad@1.0.0'",
		},
		{
			name:     "no placeholders",
			template: "npm install --no-package-lock",
			want:     "npm install --no-package-lock",
		},
		{
			name:     "unclosed brace kept",
			template: "echo {src",
			vars:     map[string]string{"src": "x"},
			want:     "echo {src",
		},
		{
			name:     "unknown placeholder",
			template: "echo {other}",
			vars:     map[string]string{"src": "x"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Expand(tt.template, tt.vars)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCommand) {
					t.Fatalf("Expand() error = %v, want ErrInvalidCommand", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand() = %q, want %q", got, tt.want)
			}
		})
	}
}
