// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "strconv"

// Event details shown on the storefront landing view.
const (
	EventTitle = "POP Weekend Club"
	Venue      = "Taman Ismail Marzuki"
)

// Blurb is the event description in markdown.
const Blurb = `Where all **gamers, geeks, weebs, & art enthusiasts** gather in one
place with *POP Culture Spirits*. While we love events as you guys love
your card collections, this year we'll move from convenience store to a
bigger place.`

// DateRange renders the event days as one span, e.g. "6–8 February 2026".
func DateRange() string {
	if len(Days) == 0 {
		return ""
	}
	first, last := Days[0], Days[len(Days)-1]
	if first == last {
		return FormatDay(first)
	}
	return strconv.Itoa(int(first)) + "–" + FormatDay(last)
}
