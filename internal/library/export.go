// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ExportEntry is one saved paper in an export, with the full text
// omitted: exports are for sharing metadata and analyses, not for
// moving cached paper bodies around.
type ExportEntry struct {
	ID            string                `json:"id" yaml:"id"`
	Title         string                `json:"title" yaml:"title"`
	Authors       []string              `json:"authors" yaml:"authors"`
	Year          int                   `json:"year" yaml:"year"`
	DOI           string                `json:"doi,omitempty" yaml:"doi,omitempty"`
	Source        string                `json:"source,omitempty" yaml:"source,omitempty"`
	CitationCount int                   `json:"citation_count" yaml:"citation_count"`
	SavedAnalysis *types.AnalysisResult `json:"saved_analysis,omitempty" yaml:"saved_analysis,omitempty"`
}

// ExportYAML writes the library to w as YAML.
func (l *Library) ExportYAML(w io.Writer) error {
	entries := make([]ExportEntry, len(l.papers))
	for i, p := range l.papers {
		entries[i] = ExportEntry{
			ID:            p.ID,
			Title:         p.Title,
			Authors:       p.Authors,
			Year:          p.Year,
			DOI:           p.DOI,
			Source:        p.Source,
			CitationCount: p.CitationCount,
			SavedAnalysis: p.SavedAnalysis,
		}
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
