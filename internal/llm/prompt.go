// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Per-task caps on the number of papers included in a prompt. These are
// deliberate cost and latency controls, not incidental limits: full
// text is far more context-expensive than an abstract, so tasks that
// enrich papers admit fewer of them.
const (
	// MaxSynthesisPapers bounds synthesis context.
	MaxSynthesisPapers = 4
	// MaxChatPapers bounds chat context.
	MaxChatPapers = 5
	// MaxReviewPapersFullText bounds review sources when any carries full text.
	MaxReviewPapersFullText = 6
	// MaxReviewPapers bounds review sources when all are abstract-only.
	MaxReviewPapers = 15
)

// fieldInstructions maps each analysis field to its fixed system
// instruction.
var fieldInstructions = map[types.AnalysisField]string{
	types.FieldSummary: "You are a research assistant. Summarize the given paper in 2-3 sentences " +
		"for a researcher deciding whether to read it. State what was studied and what was found. " +
		"Use only the provided text.",
	types.FieldMethodology: "You are a research assistant. Describe the methodology of the given paper " +
		"in 2-3 sentences: study design, data or participants, and analysis approach. " +
		"Use only the provided text. If the methodology is not described, say so.",
	types.FieldOutcome: "You are a research assistant. State the main outcome of the given paper " +
		"in 2-3 sentences, including quantitative results where reported. " +
		"Use only the provided text. If no outcome is reported, say so.",
}

// FieldMessages builds the message pair for a single-field extraction
// over one paper's selected content.
func FieldMessages(field types.AnalysisField, p types.Paper, c enrich.Content) ([]types.ChatMessage, error) {
	instruction, ok := fieldInstructions[field]
	if !ok {
		return nil, fmt.Errorf("unknown analysis field %q", field)
	}
	user := fmt.Sprintf("Paper: %s\n\n%s:\n%s", enrich.SourceLine(p), c.Marker(), c.Text())
	return []types.ChatMessage{
		{Role: types.RoleSystem, Content: instruction},
		{Role: types.RoleUser, Content: user},
	}, nil
}

// SynthesisMessages builds the message pair for answering a question
// across up to MaxSynthesisPapers sources. The answer must cite sources
// by bracketed index.
func SynthesisMessages(question string, papers []types.Paper) ([]types.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is empty")
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("no papers to synthesize from")
	}
	papers = capPapers(papers, MaxSynthesisPapers)

	system := "You are a research assistant answering questions from a set of numbered sources. " +
		"Answer in at most 200 words. Cite every claim with the bracketed index of its source, " +
		"e.g. [2]. Use only the provided sources; if they do not answer the question, say so."
	user := fmt.Sprintf("Question: %s\n\nSources:\n\n%s", question, enrich.FormatSources(papers))
	return []types.ChatMessage{
		{Role: types.RoleSystem, Content: system},
		{Role: types.RoleUser, Content: user},
	}, nil
}

// ChatMessages builds the conversation for a chat turn over up to
// MaxChatPapers context papers. Any system messages in the prior
// history are filtered out and a fresh system prompt is injected, so
// the context always reflects the current paper set rather than a stale
// one.
func ChatMessages(history []types.ChatMessage, papers []types.Paper, userTurn string) ([]types.ChatMessage, error) {
	if strings.TrimSpace(userTurn) == "" {
		return nil, fmt.Errorf("message is empty")
	}
	papers = capPapers(papers, MaxChatPapers)

	system := "You are a research assistant discussing a set of papers with the user. " +
		"Ground every answer in the numbered context papers below and cite them by bracketed " +
		"index, e.g. [1]. If the papers do not cover the question, say so plainly."
	if len(papers) > 0 {
		system += "\n\nContext papers:\n\n" + enrich.FormatSources(papers)
	} else {
		system += "\n\nNo context papers are selected."
	}

	msgs := make([]types.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, types.ChatMessage{Role: types.RoleSystem, Content: system})
	for _, m := range history {
		if m.Role == types.RoleSystem {
			continue
		}
		msgs = append(msgs, m)
	}
	msgs = append(msgs, types.ChatMessage{Role: types.RoleUser, Content: userTurn})
	return msgs, nil
}

// ReviewMessages builds the message pair for literature-review
// generation. Each source is assigned a stable reference token (ref1,
// ref2, ...) and the model is instructed to cite exclusively by those
// tokens; the instruction forbids fabricated citations, which is the
// strongest guarantee available at this layer.
func ReviewMessages(topic string, papers []types.Paper) ([]types.ChatMessage, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic is empty")
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("no papers to review")
	}
	papers = ReviewSources(papers)

	tokens := ReviewTokens(len(papers))

	var sources strings.Builder
	for i, p := range papers {
		if i > 0 {
			sources.WriteString("\n\n")
		}
		c := enrich.SelectContent(p)
		fmt.Fprintf(&sources, "[%s] %s\n%s: %s", tokens[i], enrich.SourceLine(p), c.Marker(), c.Text())
	}

	system := fmt.Sprintf("You are a research assistant writing a literature review. "+
		"Produce a structured document with an introduction, thematic sections, and a conclusion. "+
		"Cite sources inline using only the reference tokens %s, in square brackets, e.g. [%s]. "+
		"Every citation must use one of these tokens; do not invent references or cite anything "+
		"not listed.", strings.Join(tokens, ", "), tokens[0])
	user := fmt.Sprintf("Topic: %s\n\nReferences:\n\n%s", topic, sources.String())
	return []types.ChatMessage{
		{Role: types.RoleSystem, Content: system},
		{Role: types.RoleUser, Content: user},
	}, nil
}

// ReviewTokens returns the reference tokens for n sources: ref1..refN.
func ReviewTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ref%d", i+1)
	}
	return tokens
}

// ReviewSources applies the review source cap: fewer sources are
// admitted when any carries full text. Callers rendering a reference
// key apply the same rule so tokens line up with the prompt.
func ReviewSources(papers []types.Paper) []types.Paper {
	limit := MaxReviewPapers
	for _, p := range papers {
		if p.HasFullText() {
			limit = MaxReviewPapersFullText
			break
		}
	}
	return capPapers(papers, limit)
}

func capPapers(papers []types.Paper, max int) []types.Paper {
	if len(papers) > max {
		return papers[:max]
	}
	return papers
}
