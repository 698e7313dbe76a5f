// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/internal/library"
	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/internal/pdfcache"
	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const defaultUserAgent = "research-assistant/0.1"

// buildConfig assembles the stage configurations from the config file,
// environment, and secrets directory.
func buildConfig() types.AssistantConfig {
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("cache.path", "cache/pdfs.db")
	viper.SetDefault("library.path", "library/library.json")
	viper.SetDefault("probe.interval", "10s")
	viper.SetDefault("llm.provider", "auto")

	cfg := types.AssistantConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: defaultUserAgent,
			},
			APIKey:     secrets.Value(loadedSecrets, "semantic-scholar-api-key", "SEMANTIC_SCHOLAR_API_KEY"),
			RequireDOI: viper.GetBool("search.require_doi"),
		},
		Cache: types.CacheConfig{
			HTTPConfig: types.HTTPConfig{UserAgent: defaultUserAgent},
			Path:       viper.GetString("cache.path"),
		},
		LLM: types.LLMConfig{
			Provider:      types.LLMProvider(viper.GetString("llm.provider")),
			LocalEndpoint: viper.GetString("llm.local_endpoint"),
			LocalModel:    viper.GetString("llm.local_model"),
			CloudEndpoint: viper.GetString("llm.cloud_endpoint"),
			CloudModel:    viper.GetString("llm.cloud_model"),
			CloudAPIKey:   secrets.Value(loadedSecrets, "gemini-api-key", "GEMINI_API_KEY"),
			Temperature:   viper.GetFloat64("llm.temperature"),
			ContextWindow: viper.GetInt("llm.context_window"),
			MaxRetries:    viper.GetInt("llm.max_retries"),
		},
		Library: types.LibraryConfig{Path: viper.GetString("library.path")},
		Probe:   types.ProbeConfig{Interval: viper.GetDuration("probe.interval")},
	}
	if cfg.Probe.Interval <= 0 {
		cfg.Probe.Interval = 10 * time.Second
	}
	return cfg
}

// openCache opens the PDF cache store from config.
func openCache(cfg types.AssistantConfig) (*pdfcache.Store, error) {
	return pdfcache.Open(cfg.Cache.Path)
}

// openLibrary opens the saved-paper library from config.
func openLibrary(cfg types.AssistantConfig) (*library.Library, error) {
	return library.Open(cfg.Library.Path)
}

// newGateway builds the LLM gateway from config.
func newGateway(cfg types.AssistantConfig) (*llm.Gateway, error) {
	return llm.New(cfg.LLM, nil)
}

// newEnricher builds an enricher over the cache store.
func newEnricher(store *pdfcache.Store) *enrich.Enricher {
	return enrich.New(store)
}
