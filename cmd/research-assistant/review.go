package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/llm"
)

var reviewCmd = &cobra.Command{
	Use:   "review <topic>",
	Short: "Generate a literature review from saved papers",
	Long: `Review generates a structured literature review over saved papers, with
inline citations keyed to per-paper reference tokens (ref1, ref2, ...).
When any source carries cached full text at most 6 sources are used;
abstract-only reviews admit up to 15.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("papers")
		topic := joinArgs(args)

		cfg := buildConfig()
		papers, cleanup, err := contextPapers(cfg, ids, llm.MaxReviewPapers)
		if err != nil {
			return err
		}
		defer cleanup()

		// Enrichment may have attached full text, which tightens the
		// source cap; apply it here so the reference key matches the
		// prompt.
		papers = llm.ReviewSources(papers)

		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		doc, err := gateway.Review(context.Background(), topic, papers)
		if err != nil {
			return translateErr(err)
		}

		fmt.Println(doc)
		fmt.Println()
		fmt.Println("References:")
		tokens := llm.ReviewTokens(len(papers))
		for i, p := range papers {
			fmt.Printf("  [%s] %s\n", tokens[i], p.Title)
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringSlice("papers", nil, "paper IDs to use as sources (default: first saved papers)")

	rootCmd.AddCommand(reviewCmd)
}
