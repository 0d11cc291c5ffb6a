package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .routinecraft.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to routinecraft! Let's configure your catalog assistant.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)
	preset := GetPreset(provider)

	// 2. Search backend.
	searchPrompt := promptui.Select{
		Label: "Search augmentation backend",
		Items: []string{
			"none  - no web results in routines",
			"web   - Brave-compatible search API (needs BRAVE_API_KEY)",
			"local - semantic lookup over the catalog index",
			"llm   - ask the model to emulate a search (unreliable)",
		},
	}
	searchIdx, _, err := searchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search backend selection: %w", err)
	}
	backends := []SearchBackendType{SearchNone, SearchWeb, SearchLocal, SearchLLM}
	searchBackend := backends[searchIdx]

	// 3. Catalog location.
	catalogPrompt := promptui.Prompt{
		Label:   "Catalog glob (JSON files with {\"products\": [...]})",
		Default: "data/catalog/*.json",
	}
	catalogGlob, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog glob: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (selection database, index)",
		Default: "data",
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := &Config{
		Provider:          provider,
		Model:             preset.Model,
		EmbeddingProvider: embeddingProviderFor(provider),
		EmbeddingModel:    preset.EmbeddingModel,
		SearchBackend:     searchBackend,
		SearchEndpoint:    DefaultSearchEndpoint,
		DataDir:           dataDir,
		CatalogGlob:       catalogGlob,
		Port:              port,
		MaxTokens:         2048,
		Temperature:       0.4,
	}

	// Check for API keys the chosen setup will need.
	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running routinecraft serve.\n", envVar)
	}
	if searchBackend == SearchWeb && SearchAPIKey() == "" {
		fmt.Println("Note: Set BRAVE_API_KEY (or ROUTINECRAFT_SEARCH_API_KEY) to enable web search.")
	}

	configPath := ".routinecraft.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// embeddingProviderFor returns the default embedding provider for a
// given LLM provider. OpenAI embeddings are used for cloud providers.
func embeddingProviderFor(p ProviderType) ProviderType {
	if p == ProviderOllama {
		return ProviderOllama
	}
	return ProviderOpenAI
}
