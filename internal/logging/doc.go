// SPDX-License-Identifier: MPL-2.0

// Package logging builds the process logger and times pipeline stages.
package logging
