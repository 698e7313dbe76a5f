// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis tracks per-paper, per-field analysis state and runs
// field extractions concurrently. Each task writes only its own
// (paper, field) slot, so concurrent completions never conflict; two
// tasks racing on the same slot resolve last-write-wins.
package analysis

import (
	"sync"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Board holds one AnalysisResult per paper ID. It is owned by the
// calling context rather than being an ambient singleton; the caller
// decides its lifetime.
type Board struct {
	mu      sync.Mutex
	results map[string]*types.AnalysisResult
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{results: make(map[string]*types.AnalysisResult)}
}

func (b *Board) slot(paperID string) *types.AnalysisResult {
	r, ok := b.results[paperID]
	if !ok {
		r = &types.AnalysisResult{PaperID: paperID}
		b.results[paperID] = r
	}
	return r
}

// Start marks the paper's result as loading.
func (b *Board) Start(paperID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slot(paperID).IsLoading = true
}

// Finish clears the loading flag once all field tasks for the paper
// have completed.
func (b *Board) Finish(paperID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slot(paperID).IsLoading = false
}

// SetField stores a completed field value.
func (b *Board) SetField(paperID string, field types.AnalysisField, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slot(paperID).SetField(field, value)
}

// SetError records a field failure. A failed field never blocks other
// fields or other papers; the value slot is left as it was.
func (b *Board) SetError(paperID string, field types.AnalysisField, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slot(paperID).Error = string(field) + ": " + err.Error()
}

// Get returns a copy of the paper's result, or a zero result when the
// paper was never started.
func (b *Board) Get(paperID string) types.AnalysisResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.results[paperID]; ok {
		return *r
	}
	return types.AnalysisResult{PaperID: paperID}
}

// Snapshot returns a copy of every result on the board.
func (b *Board) Snapshot() map[string]types.AnalysisResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]types.AnalysisResult, len(b.results))
	for id, r := range b.results {
		out[id] = *r
	}
	return out
}
