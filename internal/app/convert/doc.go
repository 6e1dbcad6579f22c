// SPDX-License-Identifier: MPL-2.0

// Package convert sequences one conversion run per pinned package:
// clean workspace, install, scan and classify, rewrite and prune, transpile,
// publish. Runs are strictly sequential and the first failure aborts the
// batch.
package convert
