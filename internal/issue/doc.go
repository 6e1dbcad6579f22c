// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries what was attempted, on which package or file, and
// how to fix it. Each error may point at an entry of the Markdown issue
// catalog, which the CLI renders with glamour when a conversion fails.
package issue
