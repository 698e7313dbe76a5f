package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <paper-id>...",
	Short: "Download PDFs for saved papers into the cache",
	Long: `Fetch downloads the PDF for each saved paper into the local cache.
Papers must already be in the library and carry a PDF link. An existing
cache entry for the same paper is overwritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		store, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		client := &http.Client{Timeout: 2 * time.Minute}
		ctx := context.Background()
		failed := 0

		for _, id := range args {
			p, ok := lib.Get(id)
			if !ok {
				fmt.Printf("failed:  %s (not in library)\n", id)
				failed++
				continue
			}
			size, err := store.Download(ctx, client, p, cfg.Cache.HTTPConfig)
			if err != nil {
				fmt.Printf("failed:  %s (%v)\n", id, err)
				failed++
				continue
			}
			fmt.Printf("fetched: %s (%s)\n", id, humanize.Bytes(uint64(size)))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d downloads failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
