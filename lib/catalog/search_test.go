// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import "testing"

func TestSearchEmptyQueryReturnsListing(t *testing.T) {
	matches := Search("  ")
	if len(matches) != len(Products) {
		t.Fatalf("Search(\"\") returned %d matches, want %d", len(matches), len(Products))
	}
	for index, match := range matches {
		if match.Product.Category != Products[index].Category {
			t.Errorf("match %d = %q, want listing order %q", index, match.Product.Category, Products[index].Category)
		}
	}
}

func TestSearchRanksClosestCategoryFirst(t *testing.T) {
	matches := Search("fam")
	if len(matches) == 0 {
		t.Fatal("Search(fam) returned no matches")
	}
	if matches[0].Product.Category != FamilyBundle {
		t.Errorf("best match = %q, want %q", matches[0].Product.Category, FamilyBundle)
	}
}

func TestSearchMatchesTagline(t *testing.T) {
	matches := Search("jumbo")
	if len(matches) != 1 || matches[0].Product.Category != GroupBundle {
		t.Errorf("Search(jumbo) = %v, want only GROUP BUNDLE", matches)
	}
}

func TestSearchMatchesCapitalizedWords(t *testing.T) {
	tests := []struct {
		query string
		want  Category
	}{
		{"couple", CoupleBundle},
		{"early", EarlyBird},
		{"group", GroupBundle},
		{"Jumbo", GroupBundle},
	}
	for _, test := range tests {
		matches := Search(test.query)
		if len(matches) == 0 {
			t.Errorf("Search(%q) returned no matches", test.query)
			continue
		}
		if matches[0].Product.Category != test.want {
			t.Errorf("Search(%q) best match = %q, want %q", test.query, matches[0].Product.Category, test.want)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	if matches := Search("xyzzy"); len(matches) != 0 {
		t.Errorf("Search(xyzzy) = %v, want none", matches)
	}
}
