// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// maxContentChars is the per-paper character budget for prompt content
// drawn from full text.
const maxContentChars = 10000

// Content is the paper text selected for prompting: either the
// abstract verbatim or the truncated full text. Prompt builders switch
// on the variant instead of checking nullable fields.
type Content interface {
	// Text returns the content body, already within budget.
	Text() string
	// Marker labels the variant in prompts, distinguishing truncated
	// full text from abstract-only content.
	Marker() string

	isContent()
}

// Abstract is abstract-only content.
type Abstract string

func (a Abstract) Text() string   { return string(a) }
func (a Abstract) Marker() string { return "Abstract" }
func (Abstract) isContent()       {}

// FullText is truncated full-text content.
type FullText string

func (f FullText) Text() string   { return string(f) }
func (f FullText) Marker() string { return "Full text (truncated)" }
func (FullText) isContent()       {}

// SelectContent applies the content selection rule used by every
// downstream LLM call: the first maxContentChars characters of the full
// text when present, otherwise the abstract verbatim.
func SelectContent(p types.Paper) Content {
	if p.HasFullText() {
		return FullText(truncate(p.FullText, maxContentChars))
	}
	return Abstract(p.Abstract)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// FormatSources renders a numbered source list for prompting. Each
// entry carries the bracketed index used for citations, the metadata
// line, and the selected content with its marker.
func FormatSources(papers []types.Paper) string {
	var b strings.Builder
	for i, p := range papers {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, SourceLine(p))
		c := SelectContent(p)
		fmt.Fprintf(&b, "\n%s: %s", c.Marker(), c.Text())
	}
	return b.String()
}

// SourceLine renders the one-line metadata header for a paper.
func SourceLine(p types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", p.Title)
	if len(p.Authors) > 0 {
		fmt.Fprintf(&b, " by %s", strings.Join(p.Authors, ", "))
	}
	if p.Year > 0 {
		fmt.Fprintf(&b, " (%d)", p.Year)
	}
	if p.Source != "" {
		fmt.Fprintf(&b, ". %s", p.Source)
	}
	return b.String()
}
