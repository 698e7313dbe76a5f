// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// AnalyzeField runs a single-field extraction for one paper.
func (g *Gateway) AnalyzeField(ctx context.Context, field types.AnalysisField, p types.Paper, c enrich.Content) (string, error) {
	msgs, err := FieldMessages(field, p, c)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, msgs)
}

// Synthesize answers a question across up to MaxSynthesisPapers sources.
func (g *Gateway) Synthesize(ctx context.Context, question string, papers []types.Paper) (string, error) {
	msgs, err := SynthesisMessages(question, papers)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, msgs)
}

// Chat runs one conversation turn over up to MaxChatPapers context
// papers and returns the assistant reply. The caller owns the history;
// the fresh system prompt built here is not meant to be persisted.
func (g *Gateway) Chat(ctx context.Context, history []types.ChatMessage, papers []types.Paper, userTurn string) (string, error) {
	msgs, err := ChatMessages(history, papers, userTurn)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, msgs)
}

// Review generates a literature review over the given sources.
func (g *Gateway) Review(ctx context.Context, topic string, papers []types.Paper) (string, error) {
	msgs, err := ReviewMessages(topic, papers)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, msgs)
}
