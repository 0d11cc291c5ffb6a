package config

// ModelPreset describes the default models for a provider.
type ModelPreset struct {
	Model          string
	EmbeddingModel string
}

// modelPresets maps each provider to its default model choices.
var modelPresets = map[ProviderType]ModelPreset{
	ProviderOpenAI:    {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderAnthropic: {Model: "claude-sonnet-4-5-20250929", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama:    {Model: "llama3", EmbeddingModel: "nomic-embed-text"},
}

// DefaultSearchEndpoint is the Brave-compatible web-search API URL used
// when search_endpoint is not set.
const DefaultSearchEndpoint = "https://api.search.brave.com/res/v1/web/search"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		SearchBackend:     SearchNone,
		SearchEndpoint:    DefaultSearchEndpoint,
		DataDir:           "data",
		CatalogGlob:       "data/catalog/*.json",
		Port:              8080,
		MaxTokens:         2048,
		Temperature:       0.4,
	}
}

// GetPreset returns the model preset for the given provider, falling
// back to the OpenAI preset for unknown providers.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := modelPresets[provider]; ok {
		return preset
	}
	return modelPresets[ProviderOpenAI]
}
