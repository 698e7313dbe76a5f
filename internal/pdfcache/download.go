// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfcache

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// maxPDFBytes bounds a single download. Published PDFs rarely exceed a
// few tens of megabytes; anything larger is treated as a bad link.
const maxPDFBytes = 128 << 20

// Download fetches the paper's PDF and stores it under the paper ID.
// An existing cache entry for the same ID is overwritten. The paper
// must carry a PDFURL; papers without one cannot be cached.
func (s *Store) Download(ctx context.Context, client *http.Client, p types.Paper, cfg types.HTTPConfig) (int64, error) {
	if p.ID == "" {
		return 0, fmt.Errorf("paper has no ID")
	}
	if p.PDFURL == "" {
		return 0, fmt.Errorf("paper %s has no PDF link", p.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.PDFURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", p.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, p.PDFURL)
	}

	blob, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return 0, fmt.Errorf("reading download for %s: %w", p.ID, err)
	}
	if len(blob) == 0 {
		return 0, fmt.Errorf("empty PDF body from %s", p.PDFURL)
	}
	if len(blob) > maxPDFBytes {
		return 0, fmt.Errorf("PDF for %s exceeds %d bytes", p.ID, maxPDFBytes)
	}

	if err := s.Put(ctx, p.ID, blob); err != nil {
		return 0, err
	}
	return int64(len(blob)), nil
}
