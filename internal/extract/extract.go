// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract decodes PDF blobs into plain text for prompting.
// Extraction is best-effort: any parse failure yields an empty string,
// which callers treat as "extraction unavailable," never as proof that
// the paper has no text.
package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages caps how many pages are processed regardless of document
// length, bounding latency and memory.
const maxPages = 15

// Text extracts plain text from a PDF blob. Pages are processed in
// order starting at 1, up to maxPages; tokens within a page are joined
// by single spaces and pages are separated by a blank line. A corrupt
// or unreadable blob returns "".
func Text(blob []byte) (text string) {
	// The pdf package panics on some malformed inputs; degrade to "".
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if len(blob) == 0 {
		return ""
	}

	reader, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return ""
	}

	n := reader.NumPage()
	if n > maxPages {
		n = maxPages
	}

	var pages []string
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		tokens := strings.Fields(content)
		if len(tokens) == 0 {
			continue
		}
		pages = append(pages, strings.Join(tokens, " "))
	}
	return strings.Join(pages, "\n\n")
}
