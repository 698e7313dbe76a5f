// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// probeTimeout bounds the availability check so an unreachable server
// fails fast instead of holding up provider selection.
const probeTimeout = 2 * time.Second

// localSender talks to an Ollama-compatible local model server using
// the message-array chat protocol.
type localSender struct {
	cfg    types.LLMConfig
	client *http.Client
}

func (s *localSender) name() string { return "local" }

// localRequest is the request body for the local chat endpoint.
type localRequest struct {
	Model    string         `json:"model"`
	Messages []localMessage `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  localOptions   `json:"options"`
}

type localMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type localOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

// localResponse is the response body from the local chat endpoint.
type localResponse struct {
	Message localMessage `json:"message"`
}

// available probes the server's model listing endpoint.
func (s *localSender) available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, s.cfg.LocalEndpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (s *localSender) generate(ctx context.Context, msgs []types.ChatMessage) (string, error) {
	body := localRequest{
		Model:  s.cfg.LocalModel,
		Stream: false,
		Options: localOptions{
			Temperature: s.cfg.Temperature,
			NumCtx:      s.cfg.ContextWindow,
		},
	}
	for _, m := range msgs {
		body.Messages = append(body.Messages, localMessage{Role: string(m.Role), Content: m.Content})
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.LocalEndpoint+"/api/chat", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("local model server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("local model server returned HTTP %d: %s", resp.StatusCode, string(detail))
	}

	var parsed localResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parsing local model response: %w", err)
	}
	return parsed.Message.Content, nil
}
