// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cjsify CLI commands.
//
// Every command receives an *App holding the configuration provider and the
// shell runner, so tests can swap both without touching package state.
package cmd
