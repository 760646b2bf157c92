// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads storefront configuration.
//
// Configuration comes from a single file named by the STOREFRONT_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). Files ending in .json or .jsonc are read as JSON with
// comments; anything else is YAML. When no file is given at all,
// [FromEnvironment] builds the configuration from defaults, which read
// the API location and token from API_URL and API_TOKEN.
//
// The file may contain environment sections (development, staging,
// production) that override base values when [Config].Environment
// matches. Production without a section logs at warn.
//
// ${VAR} and ${VAR:-default} patterns in api.base_url and api.token
// are expanded from the process environment after loading, so
// credentials never need to be written into the file.
package config
