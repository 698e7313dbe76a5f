// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// cloudSender talks to the cloud generation API. The API has no system
// or assistant roles in the local sense: assistant maps to "model" and
// system messages are merged into the first user turn. That mapping is
// this adapter's responsibility and invisible to callers.
type cloudSender struct {
	cfg    types.LLMConfig
	client *http.Client
}

func (s *cloudSender) name() string { return "cloud" }

// Cloud API JSON structures.
type cloudRequest struct {
	Contents       []cloudContent       `json:"contents"`
	SafetySettings []cloudSafetySetting `json:"safetySettings"`
}

type cloudContent struct {
	Role  string      `json:"role"`
	Parts []cloudPart `json:"parts"`
}

type cloudPart struct {
	Text string `json:"text"`
}

type cloudSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type cloudResponse struct {
	Candidates []cloudCandidate `json:"candidates"`
}

type cloudCandidate struct {
	Content cloudContent `json:"content"`
}

// Academic paper text trips over-eager safety filters (medical and
// security papers especially), so every category is relaxed.
var safetySettings = []cloudSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// available only reflects credential configuration; the cloud endpoint
// is not probed with live requests.
func (s *cloudSender) available(ctx context.Context) bool {
	return s.cfg.CloudAPIKey != ""
}

func (s *cloudSender) generate(ctx context.Context, msgs []types.ChatMessage) (string, error) {
	if s.cfg.CloudAPIKey == "" {
		return "", fmt.Errorf("cloud API key not configured")
	}

	body := cloudRequest{
		Contents:       mapMessages(msgs),
		SafetySettings: safetySettings,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.cfg.CloudEndpoint, s.cfg.CloudModel, s.cfg.CloudAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("cloud API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("cloud API returned HTTP %d: %s", resp.StatusCode, string(detail))
	}

	var parsed cloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parsing cloud response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("cloud response contained no candidates")
	}

	var out strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return out.String(), nil
}

// mapMessages converts the gateway's role-tagged messages into the
// cloud content schema: system turns are collected and prepended to the
// first user turn, and assistant becomes "model".
func mapMessages(msgs []types.ChatMessage) []cloudContent {
	var systemParts []string
	var contents []cloudContent

	for _, m := range msgs {
		switch m.Role {
		case types.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case types.RoleAssistant:
			contents = append(contents, cloudContent{
				Role:  "model",
				Parts: []cloudPart{{Text: m.Content}},
			})
		default:
			contents = append(contents, cloudContent{
				Role:  "user",
				Parts: []cloudPart{{Text: m.Content}},
			})
		}
	}

	if len(systemParts) > 0 {
		merged := strings.Join(systemParts, "\n\n")
		for i := range contents {
			if contents[i].Role == "user" {
				contents[i].Parts[0].Text = merged + "\n\n" + contents[i].Parts[0].Text
				merged = ""
				break
			}
		}
		// No user turn to merge into: carry the system text as one.
		if merged != "" {
			contents = append([]cloudContent{{
				Role:  "user",
				Parts: []cloudPart{{Text: merged}},
			}}, contents...)
		}
	}
	return contents
}
