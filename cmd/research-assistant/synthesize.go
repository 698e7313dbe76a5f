package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <question>",
	Short: "Answer a question across saved papers",
	Long: `Synthesize answers a question from up to 4 saved papers, citing sources
by bracketed index. Papers with cached PDFs contribute truncated full text;
the rest contribute their abstracts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("papers")
		question := joinArgs(args)

		cfg := buildConfig()
		papers, cleanup, err := contextPapers(cfg, ids, llm.MaxSynthesisPapers)
		if err != nil {
			return err
		}
		defer cleanup()

		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		answer, err := gateway.Synthesize(context.Background(), question, papers)
		if err != nil {
			return translateErr(err)
		}

		fmt.Println(answer)
		fmt.Println()
		printSourceKey(papers)
		return nil
	},
}

// contextPapers loads and enriches the requested saved papers, or the
// first max saved papers when no IDs are given. The returned cleanup
// closes the cache store.
func contextPapers(cfg types.AssistantConfig, ids []string, max int) ([]types.Paper, func(), error) {
	lib, err := openLibrary(cfg)
	if err != nil {
		return nil, nil, err
	}

	var papers []types.Paper
	if len(ids) > 0 {
		for _, id := range ids {
			p, ok := lib.Get(id)
			if !ok {
				return nil, nil, fmt.Errorf("paper %s is not in the library", id)
			}
			papers = append(papers, p)
		}
	} else {
		papers = lib.Papers()
	}
	if len(papers) == 0 {
		return nil, nil, fmt.Errorf("library is empty: save papers with `research-assistant search --save`")
	}
	if len(papers) > max {
		papers = papers[:max]
	}

	store, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}

	enriched := newEnricher(store).Enrich(context.Background(), papers)
	return enriched, func() { store.Close() }, nil
}

func printSourceKey(papers []types.Paper) {
	fmt.Println("Sources:")
	for i, p := range papers {
		marker := "abstract"
		if p.HasFullText() {
			marker = "full text"
		}
		fmt.Printf("  [%d] %s (%s)\n", i+1, p.Title, marker)
	}
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

func init() {
	synthesizeCmd.Flags().StringSlice("papers", nil, "paper IDs to use as sources (default: first saved papers)")

	rootCmd.AddCommand(synthesizeCmd)
}
