// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/lib/catalog"
)

func eventCommand(runtime Runtime) *cli.Command {
	var connection connectionFlags
	var output cli.JSONOutput

	return &cli.Command{
		Name:    "event",
		Summary: "Show upstream metadata for an event id",
		Description: `Fetch the ticketing API's record for one event id: its name, date,
price, and quota. Event ids for each category and day are listed by
"storefront catalog".`,
		Usage: "storefront event <event-id> [--json]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("event", pflag.ContinueOnError)
			connection.addFlags(flagSet)
			flagSet.BoolVar(&output.OutputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one event id, got %d arguments", len(args))
			}
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || eventID <= 0 {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			client, _, release, err := runtime.connect(&connection)
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := commandContext()
			defer cancel()
			event, err := client.GetEvent(ctx, eventID)
			if err != nil {
				return err
			}

			output.Writer = runtime.Stdout
			if done, err := output.EmitJSON(event); done {
				return err
			}
			fmt.Fprintf(runtime.Stdout, "#%d %s\n", event.ID, event.Name)
			if event.Date != "" {
				fmt.Fprintf(runtime.Stdout, "  date:  %s\n", event.Date)
			}
			fmt.Fprintf(runtime.Stdout, "  price: %s\n", catalog.FormatRupiah(event.Price))
			fmt.Fprintf(runtime.Stdout, "  quota: %d\n", event.Quota)
			if event.Description != "" {
				fmt.Fprintf(runtime.Stdout, "\n%s\n", ansi.Wrap(event.Description, 72, " "))
			}
			return nil
		},
	}
}
