// SPDX-License-Identifier: MPL-2.0

// Package shell runs fully-formed shell command lines in an explicit working
// directory and captures their output.
//
// Command lines are parsed and interpreted by mvdan.cc/sh, so pipelines,
// redirections and quoting behave the same on every platform without a
// system shell. External programs such as npm and yarn are spawned by the
// interpreter.
package shell
