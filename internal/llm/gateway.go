// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm routes role-tagged message sequences to one of two
// backends: a local model server and a cloud generation API. Provider
// selection is an ordered strategy list evaluated in sequence with
// short-circuit on first success; in auto mode the local server is
// probed first and the cloud is tried only when its key is configured.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrNoService indicates that no AI backend is reachable or configured.
// It is a hard error, distinct from a degraded answer: callers should
// tell the user to configure a backend rather than to retry.
var ErrNoService = errors.New("no AI service reachable: start the local model server or configure a cloud API key")

const (
	defaultLocalEndpoint = "http://localhost:11434"
	defaultLocalModel    = "llama3.1:8b"
	defaultCloudEndpoint = "https://generativelanguage.googleapis.com"
	defaultCloudModel    = "gemini-2.0-flash-lite"
	defaultTemperature   = 0.4
	defaultContextWindow = 16384

	// Local generations routinely outlive the 60s transport default.
	defaultHTTPTimeout = 3 * time.Minute
)

// Status reports per-backend connectivity. Local is a live reachability
// probe of the model server; Cloud reports whether the cloud credential
// is configured (cloud reachability is discovered on use).
type Status struct {
	Local bool `json:"local"`
	Cloud bool `json:"cloud"`
}

// Usable reports whether at least one backend could serve a request.
func (s Status) Usable() bool {
	return s.Local || s.Cloud
}

// sender is one backend: it can report availability and run a
// generation. Both the local and cloud adapters implement it.
type sender interface {
	name() string
	available(ctx context.Context) bool
	generate(ctx context.Context, msgs []types.ChatMessage) (string, error)
}

// Gateway presents a single generation contract over the configured
// backends. Construct it with New; configuration is explicit, never
// ambient.
type Gateway struct {
	cfg   types.LLMConfig
	local *localSender
	cloud *cloudSender
}

// New builds a Gateway from cfg, applying defaults for unset fields.
// An unknown provider mode is an error.
func New(cfg types.LLMConfig, client *http.Client) (*Gateway, error) {
	switch cfg.Provider {
	case "", types.ProviderAuto, types.ProviderLocal, types.ProviderCloud:
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if cfg.Provider == "" {
		cfg.Provider = types.ProviderAuto
	}
	if cfg.LocalEndpoint == "" {
		cfg.LocalEndpoint = defaultLocalEndpoint
	}
	cfg.LocalEndpoint = strings.TrimRight(cfg.LocalEndpoint, "/")
	if cfg.LocalModel == "" {
		cfg.LocalModel = defaultLocalModel
	}
	if cfg.CloudEndpoint == "" {
		cfg.CloudEndpoint = defaultCloudEndpoint
	}
	cfg.CloudEndpoint = strings.TrimRight(cfg.CloudEndpoint, "/")
	if cfg.CloudModel == "" {
		cfg.CloudModel = defaultCloudModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.ContextWindow == 0 {
		cfg.ContextWindow = defaultContextWindow
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Gateway{
		cfg:   cfg,
		local: &localSender{cfg: cfg, client: client},
		cloud: &cloudSender{cfg: cfg, client: client},
	}, nil
}

// Probe checks backend connectivity without issuing a generation.
func (g *Gateway) Probe(ctx context.Context) Status {
	return Status{
		Local: g.local.available(ctx),
		Cloud: g.cfg.CloudAPIKey != "",
	}
}

// Generate dispatches msgs to the first usable backend. In auto mode
// the strategy list is [local, cloud]: local is included when its probe
// succeeds, cloud when its key is configured, and each entry is tried
// once in order. An empty strategy list fails with ErrNoService;
// Generate never returns an empty string with a nil error.
func (g *Gateway) Generate(ctx context.Context, msgs []types.ChatMessage) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	senders := g.strategies(ctx)
	if len(senders) == 0 {
		return "", ErrNoService
	}

	var lastErr error
	for _, s := range senders {
		out, err := s.generate(ctx, msgs)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", s.name(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			lastErr = fmt.Errorf("%s returned an empty response", s.name())
			continue
		}
		return out, nil
	}
	return "", lastErr
}

// strategies builds the ordered backend list for the configured mode.
func (g *Gateway) strategies(ctx context.Context) []sender {
	switch g.cfg.Provider {
	case types.ProviderLocal:
		return []sender{g.local}
	case types.ProviderCloud:
		if g.cfg.CloudAPIKey == "" {
			return nil
		}
		return []sender{g.cloud}
	default:
		var list []sender
		if g.local.available(ctx) {
			list = append(list, g.local)
		}
		if g.cfg.CloudAPIKey != "" {
			list = append(list, g.cloud)
		}
		return list
	}
}
