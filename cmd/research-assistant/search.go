package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the academic paper API",
	Long: `Search queries the paper API for the given text and prints one page of
results. When the API is unreachable the client serves a deterministic local
fixture set so pagination keeps working offline.

Results can be saved to the library with --save <n> (the 1-based row number).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		offset, _ := cmd.Flags().GetInt("offset")
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetInt("save")

		cfg := buildConfig()
		client := &search.Client{
			Client: &http.Client{Timeout: cfg.Search.Timeout},
			Config: cfg.Search,
		}

		res, err := client.Search(context.Background(), query, offset, limit)
		if err != nil {
			return err
		}

		if save > 0 {
			if save > len(res.Papers) {
				return fmt.Errorf("--save %d is out of range: page has %d results", save, len(res.Papers))
			}
			return savePaper(cfg, res.Papers[save-1])
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Papers)
		}

		printResults(res, offset, limit)
		return nil
	},
}

func savePaper(cfg types.AssistantConfig, p types.Paper) error {
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	added, err := lib.Add(p)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("saved %s: %s\n", p.ID, p.Title)
	} else {
		fmt.Printf("updated %s: %s\n", p.ID, p.Title)
	}
	return nil
}

func printResults(res search.Result, offset, limit int) {
	if len(res.Papers) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Printf("%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"#", "Title", "Authors", "Year", "Cites", "DOI")
	fmt.Println(strings.Repeat("-", 118))

	for i, p := range res.Papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Printf("%-4d  %-60s  %-20s  %-4d  %-6d  %s\n",
			i+1, title, formatAuthors(p.Authors), p.Year, p.CitationCount, p.DOI)
	}

	fmt.Printf("\npage %d, %d of %d results\n",
		search.PageNumber(offset, limit), len(res.Papers), res.Total)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	searchCmd.Flags().Int("offset", 0, "pagination offset")
	searchCmd.Flags().Int("limit", 10, "results per page")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Int("save", 0, "save the Nth result to the library")

	rootCmd.AddCommand(searchCmd)
}
