// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Match is a product that matched a search query, with fzf's score.
// Higher scores are better matches.
type Match struct {
	Product Product
	Score   int
}

// initScheme sets fzf's bonus tables. FuzzyMatchV2 scores against
// them, and misses word-boundary matches until they are set.
var initScheme = sync.OnceFunc(func() { algo.Init("default") })

// Search returns the products whose category name or tagline fuzzy
// matches query, best match first. Ties keep listing order. An empty
// query returns every product with a zero score.
func Search(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(Products))
		for index, product := range Products {
			matches[index] = Match{Product: product}
		}
		return matches
	}

	initScheme()
	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(16*1024, 2048)

	var matches []Match
	for _, product := range Products {
		best := -1
		for _, field := range []string{TicketType(product.Category), product.Tagline} {
			chars := util.ToChars([]byte(field))
			result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
			if result.Start >= 0 && result.Score > best {
				best = result.Score
			}
		}
		if best >= 0 {
			matches = append(matches, Match{Product: product, Score: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
