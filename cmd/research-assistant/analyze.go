package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/analysis"
	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <paper-id>",
	Short: "Extract summary, methodology, and outcome for a saved paper",
	Long: `Analyze runs the per-field extractions for one saved paper. Fields run
concurrently; a failed field is reported inline without blocking the others.
When a cached PDF exists its extracted full text replaces the abstract as
prompt context.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fieldNames, _ := cmd.Flags().GetStringSlice("fields")
		save, _ := cmd.Flags().GetBool("save")

		fields, err := parseFields(fieldNames)
		if err != nil {
			return err
		}

		cfg := buildConfig()
		lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		paper, ok := lib.Get(args[0])
		if !ok {
			return fmt.Errorf("paper %s is not in the library", args[0])
		}

		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		gateway, err := newGateway(cfg)
		if err != nil {
			return err
		}

		board := analysis.NewBoard()
		result := analysis.Run(context.Background(), gateway, newEnricher(store), board, paper, fields)

		for _, f := range fields {
			fmt.Printf("## %s\n\n", titleCase(string(f)))
			if v := result.Field(f); v != "" {
				fmt.Printf("%s\n\n", v)
			} else {
				fmt.Printf("(unavailable)\n\n")
			}
		}
		if result.Error != "" {
			fmt.Printf("warning: %s\n", serviceHint(result.Error))
		}

		if save {
			if err := lib.SaveAnalysis(paper.ID, result); err != nil {
				return err
			}
			fmt.Printf("analysis saved for %s\n", paper.ID)
		}
		return nil
	},
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseFields validates --fields values against the known field names.
func parseFields(names []string) ([]types.AnalysisField, error) {
	if len(names) == 0 {
		return types.AllAnalysisFields, nil
	}
	fields := make([]types.AnalysisField, 0, len(names))
	for _, name := range names {
		f := types.AnalysisField(strings.ToLower(strings.TrimSpace(name)))
		if !types.ValidAnalysisField(f) {
			return nil, fmt.Errorf("unknown field %q: want summary, methodology, or outcome", name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// serviceHint rewrites a recorded error for display, pointing at
// configuration when no backend was usable.
func serviceHint(recorded string) string {
	if strings.Contains(recorded, llm.ErrNoService.Error()) {
		return recorded + " (set llm.provider, start the local server, or add .secrets/gemini-api-key)"
	}
	return recorded
}

// translateErr maps gateway errors to user-facing messages for commands
// that fail outright instead of recording per-field errors.
func translateErr(err error) error {
	if errors.Is(err, llm.ErrNoService) {
		return fmt.Errorf("%w\nConfigure a backend: start the local model server or add .secrets/gemini-api-key", err)
	}
	return err
}

func init() {
	analyzeCmd.Flags().StringSlice("fields", nil, "fields to extract: summary, methodology, outcome (default all)")
	analyzeCmd.Flags().Bool("save", false, "save the analysis with the paper in the library")

	rootCmd.AddCommand(analyzeCmd)
}
