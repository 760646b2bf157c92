// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Command storefront is the POP Weekend Club ticket storefront: an
// interactive terminal shop plus one-shot commands for stock, orders,
// and event metadata.
package main

import (
	"os"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/cmd/storefront/commands"
)

func main() {
	runtime := commands.DefaultRuntime()
	err := commands.Root(runtime).Execute(os.Args[1:])
	os.Exit(cli.Exit(err, runtime.Stderr))
}
