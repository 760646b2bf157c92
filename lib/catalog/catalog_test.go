// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "testing"

func TestEventID(t *testing.T) {
	tests := []struct {
		category Category
		day      Day
		want     int64
	}{
		{EarlyBird, 6, 1},
		{EarlyBird, 8, 3},
		{Single, 7, 5},
		{CoupleBundle, 6, 7},
		{FamilyBundle, 7, 11},
		{GroupBundle, 8, 15},
		{NormalTicket, 8, 18},
	}
	for _, test := range tests {
		if got := EventID(test.category, test.day); got != test.want {
			t.Errorf("EventID(%q, %d) = %d, want %d", test.category, test.day, got, test.want)
		}
	}
}

func TestEventIDFallback(t *testing.T) {
	if got := EventID("VIP", 7); got != FallbackEventID {
		t.Errorf("EventID(unknown category) = %d, want %d", got, FallbackEventID)
	}
	if got := EventID(Single, 9); got != FallbackEventID {
		t.Errorf("EventID(unknown day) = %d, want %d", got, FallbackEventID)
	}
	if _, ok := LookupEventID(Single, 9); ok {
		t.Error("LookupEventID(unknown day) reported ok")
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	seen := make(map[int64]string)
	for _, day := range Days {
		for category, id := range EventIDs(day) {
			label := TicketType(category) + " / " + FormatDay(day)
			if previous, exists := seen[id]; exists {
				t.Errorf("event id %d assigned to both %s and %s", id, previous, label)
			}
			seen[id] = label
		}
	}
	if len(seen) != len(Products)*len(Days) {
		t.Errorf("table has %d identifiers, want %d", len(seen), len(Products)*len(Days))
	}
}

func TestFormatDay(t *testing.T) {
	if got := FormatDay(7); got != "7 February 2026" {
		t.Errorf("FormatDay(7) = %q, want %q", got, "7 February 2026")
	}
}

func TestTicketType(t *testing.T) {
	tests := map[Category]string{
		Single:       "Single",
		EarlyBird:    "Early Bird",
		CoupleBundle: "Couple Bundle",
		NormalTicket: "Normal Ticket",
		"VIP PASS":   "VIP PASS",
	}
	for category, want := range tests {
		if got := TicketType(category); got != want {
			t.Errorf("TicketType(%q) = %q, want %q", category, got, want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, input := range []string{"single", "SINGLE", "  Single "} {
		got, err := ParseCategory(input)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", input, err)
		}
		if got != Single {
			t.Errorf("ParseCategory(%q) = %q, want %q", input, got, Single)
		}
	}
	got, err := ParseCategory("early-bird")
	if err != nil || got != EarlyBird {
		t.Errorf("ParseCategory(early-bird) = %q, %v", got, err)
	}
	if _, err := ParseCategory("platinum"); err == nil {
		t.Error("ParseCategory(platinum) should fail")
	}
}

func TestPrices(t *testing.T) {
	product, ok := Lookup(FamilyBundle)
	if !ok {
		t.Fatal("FamilyBundle missing from listing")
	}
	if product.Price != 170000 {
		t.Errorf("FamilyBundle price = %d, want 170000", product.Price)
	}
	if got := Total(product.Price, 3); got != 510000 {
		t.Errorf("Total = %d, want 510000", got)
	}
	if got := ShortPrice(25000); got != "25k" {
		t.Errorf("ShortPrice(25000) = %q", got)
	}
	if got := ShortPrice(12345); got != "12345" {
		t.Errorf("ShortPrice(12345) = %q", got)
	}
	if got := FormatRupiah(170000); got != "Rp 170.000" {
		t.Errorf("FormatRupiah(170000) = %q", got)
	}
	if got := FormatRupiah(1250000); got != "Rp 1.250.000" {
		t.Errorf("FormatRupiah(1250000) = %q", got)
	}
	if got := FormatRupiah(500); got != "Rp 500" {
		t.Errorf("FormatRupiah(500) = %q", got)
	}
}

func TestValidDay(t *testing.T) {
	if !ValidDay(8) {
		t.Error("ValidDay(8) = false")
	}
	if ValidDay(5) {
		t.Error("ValidDay(5) = true")
	}
}

func TestDateRange(t *testing.T) {
	if got := DateRange(); got != "6–8 February 2026" {
		t.Errorf("DateRange() = %q", got)
	}
}
