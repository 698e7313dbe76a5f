// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// FieldAnalyzer runs one field extraction. *llm.Gateway implements it.
type FieldAnalyzer interface {
	AnalyzeField(ctx context.Context, field types.AnalysisField, p types.Paper, c enrich.Content) (string, error)
}

// Run enriches one paper and fans out one task per requested field,
// writing each completion into its own board slot. Failed fields are
// recorded and do not stop the remaining fields; Run returns the
// paper's result after all tasks finish.
func Run(ctx context.Context, analyzer FieldAnalyzer, enricher *enrich.Enricher, board *Board, paper types.Paper, fields []types.AnalysisField) types.AnalysisResult {
	if len(fields) == 0 {
		fields = types.AllAnalysisFields
	}

	// Single-field analysis enriches exactly one paper.
	enriched := enricher.Enrich(ctx, []types.Paper{paper})[0]
	content := enrich.SelectContent(enriched)

	board.Start(paper.ID)

	var grp errgroup.Group
	for _, field := range fields {
		field := field
		grp.Go(func() error {
			value, err := analyzer.AnalyzeField(ctx, field, enriched, content)
			if err != nil {
				board.SetError(paper.ID, field, err)
				return nil
			}
			board.SetField(paper.ID, field, value)
			return nil
		})
	}
	grp.Wait()

	board.Finish(paper.ID)
	return board.Get(paper.ID)
}
