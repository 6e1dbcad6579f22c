// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cjsify/cjsify/internal/pipeline"
	"github.com/cjsify/cjsify/pkg/manifest"
)

func newClassifyCommand(app *App) *cobra.Command {
	var esmOnly bool

	cmd := &cobra.Command{
		Use:   "classify <dir>",
		Short: "List the packages installed under a directory with their module kind",
		Long: `List the packages installed under a directory with their module kind.

Every node_modules/*/package.json and node_modules/@*/*/package.json
below <dir> is read. Nothing is modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := pipeline.Scan(cmd.Context(), args[0])
			if err != nil {
				return failCommand(cmd, app, err, false)
			}

			for _, p := range packages {
				kind := p.Kind()
				if esmOnly && kind != manifest.KindESMOnly {
					continue
				}
				style, ok := kindStyles[kind.String()]
				if !ok {
					style = SubtitleStyle
				}
				fmt.Fprintf(app.stdout, "%s %s\n", KeyStyle.Render(p.Manifest.Identity()), style.Render(kind.String()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&esmOnly, "esm-only", false, "only list packages that need conversion")
	return cmd
}
