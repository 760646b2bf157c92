// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/popuweekendclub/storefront/cmd/storefront/cli"
	"github.com/popuweekendclub/storefront/lib/catalog"
)

// catalogEntry is one listing row with its event per day.
type catalogEntry struct {
	Ticket   string           `json:"ticket"`
	Category catalog.Category `json:"category"`
	Price    int64            `json:"price"`
	Tagline  string           `json:"tagline"`
	Events   map[string]int64 `json:"events"`
}

func catalogCommand(runtime Runtime) *cli.Command {
	var output cli.JSONOutput

	return &cli.Command{
		Name:    "catalog",
		Summary: "List ticket categories, optionally fuzzy-filtered",
		Description: `List the ticket categories on sale with their prices and the upstream
event id for each day. An optional query fuzzy-matches ticket names
and taglines, best match first. Works offline.`,
		Usage: "storefront catalog [query] [--json]",
		Examples: []cli.Example{
			{
				Description: "Find the bundle for a family",
				Command:     "storefront catalog fam",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
			flagSet.BoolVar(&output.OutputJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			query := strings.Join(args, " ")
			matches := catalog.Search(query)
			if len(matches) == 0 {
				return fmt.Errorf("no ticket category matches %q", query)
			}

			entries := make([]catalogEntry, 0, len(matches))
			for _, match := range matches {
				events := make(map[string]int64)
				for _, day := range catalog.Days {
					if eventID, ok := catalog.LookupEventID(match.Product.Category, day); ok {
						events[strconv.Itoa(int(day))] = eventID
					}
				}
				entries = append(entries, catalogEntry{
					Ticket:   catalog.TicketType(match.Product.Category),
					Category: match.Product.Category,
					Price:    match.Product.Price,
					Tagline:  match.Product.Tagline,
					Events:   events,
				})
			}

			output.Writer = runtime.Stdout
			if done, err := output.EmitJSON(entries); done {
				return err
			}

			writer := tabwriter.NewWriter(runtime.Stdout, 2, 0, 3, ' ', 0)
			header := "TICKET\tPRICE\tTAGLINE"
			for _, day := range catalog.Days {
				header += "\t" + strconv.Itoa(int(day)) + " " + catalog.EventMonth[:3]
			}
			fmt.Fprintln(writer, header)
			for _, entry := range entries {
				line := fmt.Sprintf("%s\t%s\t%s", entry.Ticket, catalog.FormatRupiah(entry.Price), entry.Tagline)
				for _, day := range catalog.Days {
					if eventID, ok := entry.Events[strconv.Itoa(int(day))]; ok {
						line += "\t#" + strconv.FormatInt(eventID, 10)
					} else {
						line += "\t-"
					}
				}
				fmt.Fprintln(writer, line)
			}
			return writer.Flush()
		},
	}
}
