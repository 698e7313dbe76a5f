// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists the user's saved papers as a JSON file and
// rehydrates it at startup. Saved papers keep their analysis results
// across sessions.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Library is the saved-paper collection. All mutations write through
// to disk atomically (temp file and rename).
type Library struct {
	path   string
	papers []types.Paper
}

// Open loads the library at path. A missing file is an empty library,
// not an error.
func Open(path string) (*Library, error) {
	l := &Library{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("reading library %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &l.papers); err != nil {
		return nil, fmt.Errorf("parsing library %s: %w", path, err)
	}
	return l, nil
}

// Papers returns a copy of the saved papers in insertion order.
func (l *Library) Papers() []types.Paper {
	out := make([]types.Paper, len(l.papers))
	copy(out, l.papers)
	return out
}

// Get returns the saved paper with the given ID.
func (l *Library) Get(id string) (types.Paper, bool) {
	for _, p := range l.papers {
		if p.ID == id {
			return p, true
		}
	}
	return types.Paper{}, false
}

// Add saves a paper. Re-adding an existing ID updates the record but
// keeps any SavedAnalysis the stored copy carries. It reports whether
// the paper was new.
func (l *Library) Add(p types.Paper) (bool, error) {
	for i, existing := range l.papers {
		if existing.ID == p.ID {
			if p.SavedAnalysis == nil {
				p.SavedAnalysis = existing.SavedAnalysis
			}
			l.papers[i] = p
			return false, l.save()
		}
	}
	l.papers = append(l.papers, p)
	return true, l.save()
}

// Remove deletes the saved paper with the given ID and reports whether
// it was present.
func (l *Library) Remove(id string) (bool, error) {
	for i, p := range l.papers {
		if p.ID == id {
			l.papers = append(l.papers[:i], l.papers[i+1:]...)
			return true, l.save()
		}
	}
	return false, nil
}

// SaveAnalysis attaches an analysis result to a saved paper.
func (l *Library) SaveAnalysis(id string, result types.AnalysisResult) error {
	for i := range l.papers {
		if l.papers[i].ID == id {
			r := result
			r.IsLoading = false
			l.papers[i].SavedAnalysis = &r
			return l.save()
		}
	}
	return fmt.Errorf("paper %s is not in the library", id)
}

// Len returns the number of saved papers.
func (l *Library) Len() int {
	return len(l.papers)
}

func (l *Library) save() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating library directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(l.papers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling library: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".library-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing library: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
