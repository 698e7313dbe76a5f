// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research assistant:
// bibliographic records, per-paper analysis state, chat messages, and
// per-stage configuration.
package types

// Paper holds one bibliographic record returned by the search stage.
// The ID is stable per source and keys both the PDF cache and the
// analysis state. Enrichment never overwrites Title, Authors, or
// Abstract; it may only add FullText.
type Paper struct {
	// ID is the canonical identifier from the source (Semantic Scholar
	// paper ID, DOI, or fixture ID in fallback mode).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Abstract is the paper abstract. Inverted-index abstracts are
	// reconstructed into plain text by the search client before a
	// Paper is built.
	Abstract string `json:"abstract" yaml:"abstract"`

	// CitationCount is the citation count reported by the source.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// DOI is the bare DOI (e.g. "10.1145/1234567.1234568") when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the landing page for the paper, if any.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PDFURL is a direct link to the PDF, if any.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// Source identifies the venue or backend that produced this record.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// FullText is populated only after a cached PDF has been
	// successfully extracted for this paper.
	FullText string `json:"full_text,omitempty" yaml:"full_text,omitempty"`

	// SavedAnalysis is an analysis result the user chose to retain
	// with the paper in the library.
	SavedAnalysis *AnalysisResult `json:"saved_analysis,omitempty" yaml:"saved_analysis,omitempty"`
}

// HasFullText reports whether extraction has attached full text.
func (p Paper) HasFullText() bool {
	return p.FullText != ""
}
