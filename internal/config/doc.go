// SPDX-License-Identifier: MPL-2.0

// Package config loads cjsify settings using Viper with CUE as the file format.
//
// The config file is looked up at the --config path, then at
// <user config dir>/cjsify/config.cue, then at ./config.cue. Every file is
// validated against the embedded #Config schema (config_schema.cue) before
// being merged over the defaults. CJSIFY_* environment variables override
// individual keys and DISABLE_DRY_RUN=true turns publishing on.
//
// The package also reads the pinned package list (esm-packages.json by
// default), validated against #PackageList.
package config
