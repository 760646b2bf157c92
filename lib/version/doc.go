// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of the storefront is running.
//
// Release builds stamp the package variables with -ldflags -X:
//
//	go build -ldflags "-X github.com/popuweekendclub/storefront/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Other builds fall back to the VCS information the Go toolchain
// records in the binary. The stamp appears in `storefront version` and
// in the User-Agent of every ticketing API request.
package version
