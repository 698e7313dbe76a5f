// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich assembles per-paper context for LLM prompting: it
// attaches full text from cached PDFs where available and selects a
// bounded content window per paper.
package enrich

import (
	"context"
	"sync"

	"github.com/pdiddy/research-assistant/internal/extract"
	"github.com/pdiddy/research-assistant/internal/pdfcache"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// minExtractedLen is the shortest extraction considered usable. Anything
// at or below it counts as a failed extraction for the session.
const minExtractedLen = 50

// Enricher attaches full text to papers from the PDF cache. Extraction
// failures are remembered per session: a paper whose cached PDF failed
// to yield text is not retried until the process restarts.
type Enricher struct {
	store *pdfcache.Store

	mu     sync.Mutex
	failed map[string]bool
}

// New returns an Enricher reading from store.
func New(store *pdfcache.Store) *Enricher {
	return &Enricher{
		store:  store,
		failed: make(map[string]bool),
	}
}

// Enrich returns new Paper values, never mutating the input. For each
// paper with a cached PDF and no FullText yet, it extracts the PDF text
// and attaches it when the extraction yields more than minExtractedLen
// characters; otherwise the paper passes through unchanged. Title,
// Authors, and Abstract are never touched.
func (e *Enricher) Enrich(ctx context.Context, papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		out[i] = e.enrichOne(ctx, p)
	}
	return out
}

func (e *Enricher) enrichOne(ctx context.Context, p types.Paper) types.Paper {
	if p.FullText != "" || p.ID == "" {
		return p
	}

	e.mu.Lock()
	skip := e.failed[p.ID]
	e.mu.Unlock()
	if skip {
		return p
	}

	blob, err := e.store.Get(ctx, p.ID)
	if err != nil || blob == nil {
		// No cached PDF (or a transient storage failure): the paper
		// keeps its abstract. Storage failures are not remembered, so
		// a later call can still succeed.
		return p
	}

	text := extract.Text(blob)
	if len(text) <= minExtractedLen {
		e.mu.Lock()
		e.failed[p.ID] = true
		e.mu.Unlock()
		return p
	}

	p.FullText = text
	return p
}
