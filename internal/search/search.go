// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the academic paper API and normalizes results
// into the Paper shape. On any network or parse failure it falls back
// to a deterministic embedded fixture set so callers always receive a
// valid page of results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// searchAPIBase is the paper search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const searchFields = "title,abstract,authors,externalIds,year,citationCount,url,openAccessPdf,venue"

// minAbstractLen is the shortest abstract considered usable. Results
// below it are dropped.
const minAbstractLen = 50

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[^\s]+$`)

// ValidDOI reports whether s is a syntactically valid bare DOI.
func ValidDOI(s string) bool {
	return doiPattern.MatchString(s)
}

// Result is one page of search results. Total counts all matches
// upstream, not just the returned page.
type Result struct {
	Papers []types.Paper
	Total  int
}

// Client queries the paper search API.
type Client struct {
	Client *http.Client
	Config types.SearchConfig
}

// Search runs a paged query. offset and limit control pagination; the
// error return is reserved for caller mistakes (empty query, bad
// bounds). Upstream failures never surface as errors: the client falls
// back to the fixture dataset instead.
func (c *Client) Search(ctx context.Context, query string, offset, limit int) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{}, fmt.Errorf("query is empty")
	}
	if limit <= 0 {
		return Result{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return Result{}, fmt.Errorf("offset must be non-negative, got %d", offset)
	}

	res, err := c.searchUpstream(ctx, query, offset, limit)
	if err != nil {
		return fallbackResults(query, offset, limit), nil
	}
	return res, nil
}

func (c *Client) searchUpstream(ctx context.Context, query string, offset, limit int) (Result, error) {
	params := url.Values{
		"query":  {query},
		"offset": {fmt.Sprintf("%d", offset)},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {searchFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)
	if c.Config.APIKey != "" {
		req.Header.Set("x-api-key", c.Config.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return Result{}, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Result{}, fmt.Errorf("parsing search response: %w", err)
	}

	res := Result{Total: sr.Total}
	for _, entry := range sr.Data {
		p, ok := c.normalize(entry)
		if !ok {
			continue
		}
		res.Papers = append(res.Papers, p)
	}
	return res, nil
}

// normalize converts one upstream entry into a Paper. It tolerates both
// upstream abstract schemas (plain string and inverted word-position
// index) and applies the abstract-length and DOI filters.
func (c *Client) normalize(entry apiPaper) (types.Paper, bool) {
	abstract := entry.Abstract
	if abstract == "" {
		abstract = ReconstructAbstract(entry.AbstractInvertedIndex)
	}
	if len(abstract) < minAbstractLen {
		return types.Paper{}, false
	}

	doi := strings.TrimPrefix(entry.ExternalIDs.DOI, "https://doi.org/")
	if !ValidDOI(doi) {
		doi = ""
	}
	if c.Config.RequireDOI && doi == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:            entry.PaperID,
		Title:         entry.Title,
		Year:          entry.Year,
		Abstract:      abstract,
		CitationCount: entry.CitationCount,
		DOI:           doi,
		URL:           entry.URL,
		PDFURL:        entry.OpenAccessPdf.URL,
		Source:        entry.Venue,
	}
	if p.ID == "" {
		if doi != "" {
			p.ID = doi
		} else {
			return types.Paper{}, false
		}
	}
	for _, a := range entry.Authors {
		if a.Name != "" {
			p.Authors = append(p.Authors, a.Name)
		}
	}
	return p, true
}

// ReconstructAbstract converts an inverted word-position index back to
// plain text: allocate a slot per position up to the maximum, place
// each word at each of its positions, join with single spaces.
func ReconstructAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	max := -1
	for _, positions := range index {
		for _, pos := range positions {
			if pos > max {
				max = pos
			}
		}
	}
	if max < 0 {
		return ""
	}

	words := make([]string, max+1)
	for word, positions := range index {
		for _, pos := range positions {
			if pos >= 0 {
				words[pos] = word
			}
		}
	}
	return strings.Join(words, " ")
}

// PageNumber converts an offset/limit pair to a 1-based page number for
// page-based backends and display.
func PageNumber(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}

// DedupeByID drops papers whose ID already appeared earlier in the
// slice. Deduplication across pages is the caller's responsibility, so
// this runs over the concatenation of pages.
func DedupeByID(papers []types.Paper) []types.Paper {
	seen := make(map[string]bool, len(papers))
	deduped := papers[:0:0]
	for _, p := range papers {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// Upstream API JSON structures.
type apiResponse struct {
	Total  int        `json:"total"`
	Offset int        `json:"offset"`
	Data   []apiPaper `json:"data"`
}

type apiPaper struct {
	PaperID               string           `json:"paperId"`
	Title                 string           `json:"title"`
	Abstract              string           `json:"abstract"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	Year                  int              `json:"year"`
	CitationCount         int              `json:"citationCount"`
	URL                   string           `json:"url"`
	Venue                 string           `json:"venue"`
	ExternalIDs           apiExternalIDs   `json:"externalIds"`
	OpenAccessPdf         apiOpenAccess    `json:"openAccessPdf"`
	Authors               []apiAuthor      `json:"authors"`
}

type apiExternalIDs struct {
	DOI string `json:"DOI"`
}

type apiOpenAccess struct {
	URL string `json:"url"`
}

type apiAuthor struct {
	Name string `json:"name"`
}
