// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the paper search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequireDOI drops results without a syntactically valid DOI.
	// The stricter variants of the search client enable this.
	RequireDOI bool `json:"require_doi" yaml:"require_doi"`
}

// CacheConfig holds settings for the PDF cache store.
type CacheConfig struct {
	HTTPConfig `yaml:",inline"`

	// Path is the SQLite database file backing the cache
	// (e.g. "cache/pdfs.db").
	Path string `json:"path" yaml:"path"`
}

// LLMProvider selects how the gateway routes generation requests.
type LLMProvider string

const (
	// ProviderAuto probes the local model server first and falls back
	// to the cloud API when the local server is unreachable.
	ProviderAuto LLMProvider = "auto"

	// ProviderLocal forces the local model server.
	ProviderLocal LLMProvider = "local"

	// ProviderCloud forces the cloud API.
	ProviderCloud LLMProvider = "cloud"
)

// LLMConfig holds settings for the LLM gateway. The gateway takes this
// at construction; there is no ambient provider state.
type LLMConfig struct {
	// Provider selects the routing mode: auto, local, or cloud.
	Provider LLMProvider `json:"provider" yaml:"provider"`

	// LocalEndpoint is the base URL of the local model server
	// (default "http://localhost:11434").
	LocalEndpoint string `json:"local_endpoint" yaml:"local_endpoint"`

	// LocalModel is the model name requested from the local server.
	LocalModel string `json:"local_model" yaml:"local_model"`

	// CloudEndpoint is the base URL of the cloud generation API.
	CloudEndpoint string `json:"cloud_endpoint" yaml:"cloud_endpoint"`

	// CloudModel is the cloud model identifier.
	CloudModel string `json:"cloud_model" yaml:"cloud_model"`

	// CloudAPIKey authenticates cloud requests. The auto mode only
	// falls back to the cloud when this is set.
	CloudAPIKey string `json:"cloud_api_key,omitempty" yaml:"cloud_api_key,omitempty"`

	// Temperature is passed through to the local backend options.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// ContextWindow is the local backend context size in tokens.
	ContextWindow int `json:"context_window" yaml:"context_window"`

	// MaxRetries bounds rate-limit retries per request (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LibraryConfig holds settings for the saved-paper library.
type LibraryConfig struct {
	// Path is the JSON file holding the saved library
	// (e.g. "library/library.json").
	Path string `json:"path" yaml:"path"`
}

// ProbeConfig holds settings for periodic connectivity probing.
type ProbeConfig struct {
	// Interval between connectivity probes (default 10s).
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// AssistantConfig groups all stage configurations.
type AssistantConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Probe   ProbeConfig   `json:"probe" yaml:"probe"`
}
