package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// SearchBackendType identifies the search-augmentation backend.
type SearchBackendType string

const (
	// SearchWeb queries a real web-search API (Brave-compatible).
	SearchWeb SearchBackendType = "web"
	// SearchLLM asks the LLM to emulate a web search and parses its
	// answer as JSON. Unreliable; kept behind explicit opt-in.
	SearchLLM SearchBackendType = "llm"
	// SearchLocal runs a semantic lookup over the product index.
	SearchLocal SearchBackendType = "local"
	// SearchNone disables search augmentation.
	SearchNone SearchBackendType = ""
)

// Config is the top-level routinecraft configuration, corresponding to
// .routinecraft.yml.
type Config struct {
	Provider          ProviderType      `yaml:"provider" koanf:"provider"`
	Model             string            `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType      `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	SearchBackend     SearchBackendType `yaml:"search_backend" koanf:"search_backend"`
	SearchEndpoint    string            `yaml:"search_endpoint" koanf:"search_endpoint"`
	DataDir           string            `yaml:"data_dir" koanf:"data_dir"`
	CatalogGlob       string            `yaml:"catalog_glob" koanf:"catalog_glob"`
	Port              int               `yaml:"port" koanf:"port"`
	MaxTokens         int               `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature       float64           `yaml:"temperature" koanf:"temperature"`
}
