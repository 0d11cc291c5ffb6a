package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"routinecraft/internal/catalog"
	"routinecraft/internal/config"
	"routinecraft/internal/embeddings"
	"routinecraft/internal/llm"
	"routinecraft/internal/search"
	"routinecraft/internal/semindex"
)

// createLLMProviderFromConfig builds the configured chat provider.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// createEmbedderFromConfig builds the configured embedder.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	return embeddings.NewEmbedder(string(provider), cfg.EmbeddingModel)
}

// loadSemanticIndex creates the product index and restores a persisted
// export when one exists. Returns nil when the embedder cannot be built
// (for example, no embedding API key in the environment).
func loadSemanticIndex(cfg *config.Config, cat *catalog.Store) *semindex.Index {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic index disabled: %v\n", err)
		return nil
	}
	index, err := semindex.New(cat, embedder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic index disabled: %v\n", err)
		return nil
	}
	if err := index.Load(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load product index from %s: %v\n", cfg.DataDir, err)
		fmt.Fprintf(os.Stderr, "Semantic search will be empty. Run `routinecraft index` first.\n")
	}
	return index
}

// buildSearchBackend assembles the configured search backend, wrapped
// in the LRU cache. A nil return disables search augmentation; the
// reason is printed so a missing key is never silent.
func buildSearchBackend(cfg *config.Config, provider llm.Provider, index *semindex.Index) search.Backend {
	var backend search.Backend

	switch cfg.SearchBackend {
	case config.SearchNone:
		return nil

	case config.SearchWeb:
		key := config.SearchAPIKey()
		if key == "" {
			fmt.Fprintln(os.Stderr, "Warning: search_backend is \"web\" but BRAVE_API_KEY/ROUTINECRAFT_SEARCH_API_KEY is not set; search is disabled")
			return nil
		}
		backend = search.NewWebBackend(cfg.SearchEndpoint, key)

	case config.SearchLLM:
		if provider == nil {
			fmt.Fprintln(os.Stderr, "Warning: search_backend is \"llm\" but no LLM provider is configured; search is disabled")
			return nil
		}
		backend = search.NewLLMBackend(provider, cfg.Model)

	case config.SearchLocal:
		if index == nil {
			fmt.Fprintln(os.Stderr, "Warning: search_backend is \"local\" but the semantic index is unavailable; search is disabled")
			return nil
		}
		backend = search.NewLocalBackend(index)

	default:
		fmt.Fprintf(os.Stderr, "Warning: unknown search_backend %q; search is disabled\n", cfg.SearchBackend)
		return nil
	}

	cached, err := search.NewCachedBackend(backend, 0)
	if err != nil {
		// The cache is an optimization; fall back to the bare backend.
		return backend
	}
	return cached
}

// databasePath returns the sqlite file under the configured data dir.
func databasePath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "routinecraft.db")
}
