// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/lib/checkout"
	"github.com/popuweekendclub/storefront/lib/config"
	"github.com/popuweekendclub/storefront/lib/storefrontui"
)

func shopCommand(runtime Runtime) *cli.Command {
	var connection connectionFlags
	var logFile string

	return &cli.Command{
		Name:    "shop",
		Summary: "Open the interactive storefront",
		Description: `Open the terminal storefront: pick a ticket category, choose a date
and quantity, enter contact details, and pay with the code shown.

A reserved order is held for the configured hold budget (15 minutes by
default); the countdown is shown on screen and the order is released
when it runs out. The terminal UI owns the screen, so logs go to
--log-file (or logging.file) and are discarded otherwise.`,
		Usage: "storefront shop [--config FILE] [--log-file FILE]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("shop", pflag.ContinueOnError)
			connection.addFlags(flagSet)
			flagSet.StringVar(&logFile, "log-file", "", "append logs to this file (overrides logging.file)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			if runtime.Stdin == nil || !term.IsTerminal(int(runtime.Stdin.Fd())) {
				return errors.New("shop needs an interactive terminal; use the availability and payment-status commands from scripts")
			}

			cfg, err := connection.loadConfig()
			if err != nil {
				return err
			}
			if logFile != "" {
				cfg.Logging.File = logFile
			}
			logger, closeLog, err := shopLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			client, release, err := runtime.newClient(cfg, logger)
			if err != nil {
				return err
			}
			defer release()

			ctx, cancel := commandContext()
			defer cancel()

			controller, err := checkout.New(checkout.Config{
				Gateway:     client,
				HoldBudget:  cfg.Checkout.HoldBudget,
				MaxQuantity: cfg.Checkout.MaxQuantity,
				Context:     ctx,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			defer controller.Stop()

			logger.Info("storefront opened",
				"api", client.BaseURL(),
				"hold_budget", controller.HoldBudget(),
				"environment", cfg.Environment)

			program := tea.NewProgram(storefrontui.NewModel(controller),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(runtime.Stdin),
				tea.WithOutput(runtime.Stdout))
			_, err = program.Run()
			if err != nil && ctx.Err() != nil {
				// Interrupted by a signal: a normal way to leave.
				return nil
			}
			return err
		},
	}
}

// shopLogger opens the log file named by cfg, or returns a discarding
// logger when there is none.
func shopLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return cli.DiscardLogger(), func() {}, nil
	}
	file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := cli.NewLogger(file, logLevel(cfg), false)
	return logger, func() { file.Close() }, nil
}
