// SPDX-License-Identifier: MPL-2.0

// Package esmregistry records which installed package versions are ESM-only
// within one conversion run and answers whether a dependency range refers
// to one of them.
//
// A Registry is built once from the scanned tree and is read-only afterwards.
package esmregistry
