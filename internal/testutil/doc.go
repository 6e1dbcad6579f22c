// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include package tree fixtures (WritePackage, WriteFile),
// file assertions (ReadFile) and a deterministic FakeClock for stage timing.
package testutil
