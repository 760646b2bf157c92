// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the storefront binary: a
// tree of [Command] values with pflag-parsed flags, help output,
// typo suggestions for commands and flags, a structured logger, and
// JSON output helpers.
package cli
