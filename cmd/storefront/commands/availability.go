// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/lib/catalog"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// availabilityRow is one category on one day, joined with the
// upstream's availability for its event.
type availabilityRow struct {
	Date            string `json:"date"`
	Ticket          string `json:"ticket"`
	EventID         int64  `json:"event_id"`
	Known           bool   `json:"known"`
	Remaining       int    `json:"remaining"`
	WaitingCount    int    `json:"waiting_count"`
	SoldOut         bool   `json:"sold_out"`
	WaitingRoomFull bool   `json:"waiting_room_full"`
}

func (row availabilityRow) status() string {
	switch {
	case !row.Known:
		return "unknown"
	case row.SoldOut:
		return "sold out"
	case row.WaitingRoomFull:
		return "waiting room full"
	}
	return "on sale"
}

func availabilityCommand(runtime Runtime) *cli.Command {
	var connection connectionFlags
	var output cli.JSONOutput
	var day int
	var category string

	return &cli.Command{
		Name:    "availability",
		Aliases: []string{"stock"},
		Summary: "Show remaining tickets per date and category",
		Description: `Fetch current stock from the ticketing API and show it for every
ticket category on every event day.`,
		Usage: "storefront availability [--day N] [--category NAME] [--json]",
		Examples: []cli.Example{
			{
				Description: "Family bundles on 8 February",
				Command:     "storefront availability --day 8 --category family-bundle",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("availability", pflag.ContinueOnError)
			connection.addFlags(flagSet)
			flagSet.IntVar(&day, "day", 0, "only this day of "+catalog.EventMonth)
			flagSet.StringVar(&category, "category", "", "only this ticket category")
			flagSet.BoolVar(&output.OutputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			days := catalog.Days
			if day != 0 {
				if !catalog.ValidDay(catalog.Day(day)) {
					return fmt.Errorf("the event does not run on %s", catalog.FormatDay(catalog.Day(day)))
				}
				days = []catalog.Day{catalog.Day(day)}
			}
			products := catalog.Products
			if category != "" {
				parsed, err := catalog.ParseCategory(category)
				if err != nil {
					return err
				}
				product, _ := catalog.Lookup(parsed)
				products = []catalog.Product{product}
			}

			client, _, release, err := runtime.connect(&connection)
			if err != nil {
				return err
			}
			defer release()
			ctx, cancel := commandContext()
			defer cancel()
			records, err := client.CheckAvailability(ctx)
			if err != nil {
				return err
			}

			rows := availabilityRows(records, days, products)
			output.Writer = runtime.Stdout
			if done, err := output.EmitJSON(rows); done {
				return err
			}

			writer := tabwriter.NewWriter(runtime.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "DATE\tTICKET\tEVENT\tREMAINING\tSTATUS")
			for _, row := range rows {
				remaining := "-"
				if row.Known && row.Remaining >= 0 {
					remaining = strconv.Itoa(row.Remaining)
				}
				status := row.status()
				if row.WaitingCount > 0 {
					status += fmt.Sprintf(" (%d waiting)", row.WaitingCount)
				}
				fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n", row.Date, row.Ticket, row.EventID, remaining, status)
			}
			return writer.Flush()
		},
	}
}

// availabilityRows joins records onto the catalog, one row per day and
// product that has an event.
func availabilityRows(records []ticketapi.Availability, days []catalog.Day, products []catalog.Product) []availabilityRow {
	byEvent := make(map[int64]ticketapi.Availability, len(records))
	for _, record := range records {
		byEvent[record.EventID] = record
	}
	var rows []availabilityRow
	for _, day := range days {
		events := catalog.EventIDs(day)
		for _, product := range products {
			eventID, ok := events[product.Category]
			if !ok {
				continue
			}
			row := availabilityRow{
				Date:      catalog.FormatDay(day),
				Ticket:    catalog.TicketType(product.Category),
				EventID:   eventID,
				Remaining: -1,
			}
			if record, found := byEvent[eventID]; found {
				row.Known = true
				row.Remaining = record.Remaining
				row.WaitingCount = record.WaitingCount
				row.SoldOut = record.SoldOut
				row.WaitingRoomFull = record.WaitingRoomFull
			}
			rows = append(rows, row)
		}
	}
	return rows
}
