// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog holds the storefront's static product data: ticket
// categories with their prices, the event days on sale, and the table
// that maps a category and day to the upstream event identifier.
//
// Everything here is a pure function of its inputs. The tables are
// package-level values built once at init and never mutated, so they
// are safe to read from any goroutine.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is the upstream ticket category key, exactly as the
// ticketing API expects it in uppercase (e.g. "SINGLE").
type Category string

const (
	EarlyBird    Category = "EARLY BIRD"
	Single       Category = "SINGLE"
	CoupleBundle Category = "COUPLE BUNDLE"
	FamilyBundle Category = "FAMILY BUNDLE"
	GroupBundle  Category = "GROUP BUNDLE"
	NormalTicket Category = "NORMAL TICKET"
)

// Day is a day of the month in the event's month. The event runs on
// consecutive days of a single month, so the day number alone
// identifies a date.
type Day int

// Event month and year. Every Day is interpreted in this month.
const (
	EventMonth = "February"
	EventYear  = 2026
)

// Days lists the event days in ascending order.
var Days = []Day{6, 7, 8}

// Product describes one purchasable ticket category as shown in the
// storefront listing.
type Product struct {
	Category Category

	// Price is the unit price in rupiah. The order total is
	// Price multiplied by the chosen quantity.
	Price int64

	// Tagline is the one-line description shown under the name.
	Tagline string
}

// Products is the storefront listing in display order.
var Products = []Product{
	{Category: EarlyBird, Price: 25000, Tagline: "promo price, limited stock!"},
	{Category: Single, Price: 50000, Tagline: "1 ticket - ala carte"},
	{Category: CoupleBundle, Price: 90000, Tagline: "2 tickets - buy in pair"},
	{Category: FamilyBundle, Price: 170000, Tagline: "4 tickets - family pack"},
	{Category: GroupBundle, Price: 300000, Tagline: "8 tickets - Jumbo pack"},
	{Category: NormalTicket, Price: 75000, Tagline: "promo price, limited stock!"},
}

// FallbackEventID is returned by EventID for combinations missing from
// the table. It is the lowest identifier the upstream knows about.
const FallbackEventID int64 = 1

// eventIDs maps category and day to the upstream event identifier.
// Identifiers are assigned in blocks of three per category, one per
// day, in listing order.
var eventIDs = map[Category]map[Day]int64{
	EarlyBird:    {6: 1, 7: 2, 8: 3},
	Single:       {6: 4, 7: 5, 8: 6},
	CoupleBundle: {6: 7, 7: 8, 8: 9},
	FamilyBundle: {6: 10, 7: 11, 8: 12},
	GroupBundle:  {6: 13, 7: 14, 8: 15},
	NormalTicket: {6: 16, 7: 17, 8: 18},
}

// LookupEventID returns the upstream event identifier for category on
// day, and whether the combination exists in the table. Callers that
// must not silently reserve the wrong event use this form.
func LookupEventID(category Category, day Day) (int64, bool) {
	byDay, ok := eventIDs[category]
	if !ok {
		return 0, false
	}
	id, ok := byDay[day]
	return id, ok
}

// EventID returns the upstream event identifier for category on day.
// Unknown combinations return FallbackEventID. The storefront only
// offers combinations from the table, so the fallback is reached only
// through programming errors or hand-built requests.
func EventID(category Category, day Day) int64 {
	if id, ok := LookupEventID(category, day); ok {
		return id
	}
	return FallbackEventID
}

// EventIDs returns every identifier in the table for day, keyed by
// category. Used to join availability records back to categories.
func EventIDs(day Day) map[Category]int64 {
	result := make(map[Category]int64, len(eventIDs))
	for category, byDay := range eventIDs {
		if id, ok := byDay[day]; ok {
			result[category] = id
		}
	}
	return result
}

// Lookup returns the product for category.
func Lookup(category Category) (Product, bool) {
	for _, product := range Products {
		if product.Category == category {
			return product, true
		}
	}
	return Product{}, false
}

// ParseCategory resolves user input to a category. Matching ignores
// case and treats hyphens and underscores as spaces, so "early-bird"
// and "Early Bird" both resolve to EarlyBird.
func ParseCategory(input string) (Category, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.NewReplacer("-", " ", "_", " ").Replace(normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")
	for _, product := range Products {
		if string(product.Category) == normalized {
			return product.Category, nil
		}
	}
	return "", fmt.Errorf("unknown ticket category %q", input)
}

// ValidDay reports whether day is one of the event days.
func ValidDay(day Day) bool {
	for _, candidate := range Days {
		if candidate == day {
			return true
		}
	}
	return false
}

// FormatDay renders day as the date label the upstream stores with
// each order, e.g. "7 February 2026".
func FormatDay(day Day) string {
	return strconv.Itoa(int(day)) + " " + EventMonth + " " + strconv.Itoa(EventYear)
}

// TicketType renders category as its title-cased display label, e.g.
// "COUPLE BUNDLE" becomes "Couple Bundle". Categories outside the
// listing render unchanged.
func TicketType(category Category) string {
	if _, ok := Lookup(category); !ok {
		return string(category)
	}
	words := strings.Fields(strings.ToLower(string(category)))
	for index, word := range words {
		words[index] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Total returns the order total for quantity units of a product
// priced at unitPrice.
func Total(unitPrice int64, quantity int) int64 {
	return unitPrice * int64(quantity)
}

// ShortPrice renders a price the way the listing does: whole
// thousands as "25k", anything else as the plain number.
func ShortPrice(price int64) string {
	if price > 0 && price%1000 == 0 {
		return strconv.FormatInt(price/1000, 10) + "k"
	}
	return strconv.FormatInt(price, 10)
}

// FormatRupiah renders an amount with dot thousands separators, e.g.
// 170000 becomes "Rp 170.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var builder strings.Builder
	for index, digit := range digits {
		if index > 0 && (len(digits)-index)%3 == 0 {
			builder.WriteByte('.')
		}
		builder.WriteRune(digit)
	}
	return "Rp " + sign + builder.String()
}
