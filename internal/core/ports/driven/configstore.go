package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	// ConfigEmbeddingProvider selects the embedding adapter ("openai" or "ollama").
	ConfigEmbeddingProvider = "embedding.provider"

	// ConfigEmbeddingModel is the embedding model name.
	ConfigEmbeddingModel = "embedding.model"

	// ConfigEmbeddingAPIKey is the embedding provider API key.
	ConfigEmbeddingAPIKey = "embedding.api_key"

	// ConfigEmbeddingBaseURL overrides the provider base URL (Azure, proxies).
	ConfigEmbeddingBaseURL = "embedding.base_url"

	// ConfigLLMProvider selects the LLM adapter ("openai" or "ollama").
	ConfigLLMProvider = "llm.provider"

	// ConfigLLMModel is the chat model name.
	ConfigLLMModel = "llm.model"

	// ConfigLLMAPIKey is the LLM provider API key.
	ConfigLLMAPIKey = "llm.api_key"

	// ConfigLLMBaseURL overrides the LLM base URL.
	ConfigLLMBaseURL = "llm.base_url"

	// ConfigIndexPath is the default index location.
	ConfigIndexPath = "index.path"

	// ConfigDataPath is the default dataset location.
	ConfigDataPath = "index.data_path"

	// ConfigTopK is the default number of search results.
	ConfigTopK = "search.top_k"
)
