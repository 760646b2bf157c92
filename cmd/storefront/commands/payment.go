// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
)

// exitNotPaid is the exit status of payment-status for an order with
// no payment recorded yet.
const exitNotPaid = 2

func paymentStatusCommand(runtime Runtime) *cli.Command {
	var connection connectionFlags
	var output cli.JSONOutput

	return &cli.Command{
		Name:    "payment-status",
		Summary: "Check whether an order has been paid",
		Description: `Ask the ticketing API whether a payment has been recorded for an
order. Exits 0 when paid and 2 when no payment has been recorded yet,
so scripts can poll it.`,
		Usage: "storefront payment-status <order-id> [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("payment-status", pflag.ContinueOnError)
			connection.addFlags(flagSet)
			flagSet.BoolVar(&output.OutputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one order id, got %d arguments", len(args))
			}
			orderID := args[0]

			client, logger, release, err := runtime.connect(&connection)
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := commandContext()
			defer cancel()
			status, err := client.VerifyPayment(ctx, orderID)
			if err != nil {
				return err
			}
			logger.Debug("payment verified", "order_id", orderID, "paid", status.Paid)

			result := struct {
				OrderID string `json:"order_id"`
				Paid    bool   `json:"paid"`
				Message string `json:"message,omitempty"`
			}{orderID, status.Paid, status.Message}

			output.Writer = runtime.Stdout
			done, err := output.EmitJSON(result)
			if !done {
				if status.Paid {
					fmt.Fprintf(runtime.Stdout, "%s: paid\n", orderID)
				} else {
					fmt.Fprintf(runtime.Stdout, "%s: not paid yet\n", orderID)
				}
				if status.Message != "" {
					fmt.Fprintf(runtime.Stdout, "  %s\n", status.Message)
				}
			}
			if err != nil {
				return err
			}
			if !status.Paid {
				return &cli.ExitError{Code: exitNotPaid}
			}
			return nil
		},
	}
}
