package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local PDF cache",
	Long: `Cache lists and deletes locally cached PDFs. The cache is never cleared
automatically; entries stay until deleted here.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached PDFs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Entries(context.Background())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Cache is empty.")
			return nil
		}

		var total uint64
		for _, e := range entries {
			fmt.Printf("%-40s  %8s  %s\n", e.ID, humanize.Bytes(uint64(e.Size)), e.StoredAt.Format("2006-01-02"))
			total += uint64(e.Size)
		}
		fmt.Printf("\n%d PDFs, %s\n", len(entries), humanize.Bytes(total))
		return nil
	},
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <paper-id>...",
	Short: "Delete cached PDFs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		for _, id := range args {
			if err := store.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("deleted: %s\n", id)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}
