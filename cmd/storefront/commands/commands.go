// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the storefront command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/lib/version"
)

// Runtime carries the process-level dependencies of the command tree.
type Runtime struct {
	Stdout io.Writer
	Stderr io.Writer

	// Stdin is checked for a terminal before the shop starts.
	Stdin *os.File

	// Transport overrides the HTTP transport of API clients. Nil uses
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// DefaultRuntime wires the command tree to the process's standard
// streams.
func DefaultRuntime() Runtime {
	return Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// commandLogger returns the logger for one-shot commands.
func (runtime Runtime) commandLogger(level slog.Level) *slog.Logger {
	if runtime.Stderr == os.Stderr {
		return cli.NewCommandLogger(level)
	}
	return cli.NewLogger(runtime.Stderr, level, true)
}

// Root builds the complete storefront command tree.
func Root(runtime Runtime) *cli.Command {
	return &cli.Command{
		Name: "storefront",
		Description: `storefront: POP Weekend Club ticket shop.

Browse ticket categories, hold seats for a date, and pay for the order
from the terminal. The ticketing API is configured with a YAML or JSONC
file (--config or $STOREFRONT_CONFIG), or directly from $API_URL and
$API_TOKEN.`,
		Output: runtime.Stderr,
		Subcommands: []*cli.Command{
			shopCommand(runtime),
			availabilityCommand(runtime),
			paymentStatusCommand(runtime),
			catalogCommand(runtime),
			eventCommand(runtime),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintf(runtime.Stdout, "storefront %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the shop",
				Command:     "storefront shop --log-file /tmp/storefront.log",
			},
			{
				Description: "Show remaining tickets for 7 February",
				Command:     "storefront availability --day 7",
			},
			{
				Description: "Check whether an order has been paid",
				Command:     "storefront payment-status ORD-1234",
			},
		},
	}
}

// commandContext returns a context cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
