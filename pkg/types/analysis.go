// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnalysisField names one of the per-paper analysis slots.
type AnalysisField string

const (
	FieldSummary     AnalysisField = "summary"
	FieldMethodology AnalysisField = "methodology"
	FieldOutcome     AnalysisField = "outcome"
)

// AllAnalysisFields lists the analysis fields in display order.
var AllAnalysisFields = []AnalysisField{FieldSummary, FieldMethodology, FieldOutcome}

// ValidAnalysisField reports whether f is a known field name.
func ValidAnalysisField(f AnalysisField) bool {
	switch f {
	case FieldSummary, FieldMethodology, FieldOutcome:
		return true
	}
	return false
}

// AnalysisResult holds the per-paper analysis state. Each field
// populates independently: empty, then loading, then a value or an
// error. Two writers for the same (paper, field) pair resolve
// last-write-wins; content is idempotent per paper and field.
type AnalysisResult struct {
	PaperID     string `json:"paper_id" yaml:"paper_id"`
	Summary     string `json:"summary" yaml:"summary"`
	Methodology string `json:"methodology" yaml:"methodology"`
	Outcome     string `json:"outcome" yaml:"outcome"`

	// IsLoading is true while any field task for this paper is in flight.
	IsLoading bool `json:"is_loading" yaml:"is_loading"`

	// Error holds the most recent field failure, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Field returns the value of the named field.
func (r *AnalysisResult) Field(f AnalysisField) string {
	switch f {
	case FieldSummary:
		return r.Summary
	case FieldMethodology:
		return r.Methodology
	case FieldOutcome:
		return r.Outcome
	}
	return ""
}

// SetField stores v into the named field. Unknown fields are ignored.
func (r *AnalysisResult) SetField(f AnalysisField, v string) {
	switch f {
	case FieldSummary:
		r.Summary = v
	case FieldMethodology:
		r.Methodology = v
	case FieldOutcome:
		r.Outcome = v
	}
}
