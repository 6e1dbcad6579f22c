// SPDX-License-Identifier: MPL-2.0

// Package pipeline implements the stages of one conversion run: installing
// the pinned package into a workspace, scanning the installed tree, pruning
// packages that need no conversion, replacing readmes, transpiling and
// publishing. Each stage is sequenced by the convert orchestrator.
package pipeline
