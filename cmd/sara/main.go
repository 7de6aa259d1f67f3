// Command sara is the SARA research assistant CLI. It wires the driven
// adapters (embedding providers, LLM providers, index and eval storage)
// into the core services and hands them to the cobra command tree.
package main

import (
	"os"

	"github.com/sara-labs/sara-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/sara-labs/sara-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/sara-labs/sara-cli/internal/adapters/driven/embedding/openai"
	"github.com/sara-labs/sara-cli/internal/adapters/driven/embedding/ratelimit"
	"github.com/sara-labs/sara-cli/internal/adapters/driven/index/flat"
	ollamallm "github.com/sara-labs/sara-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/sara-labs/sara-cli/internal/adapters/driven/llm/openai"
	"github.com/sara-labs/sara-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/sara-labs/sara-cli/internal/adapters/driven/storage/sqlite"
	"github.com/sara-labs/sara-cli/internal/adapters/driving/cli"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/services"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServices(buildServices())

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices constructs the full service graph from configuration.
// Missing optional pieces (LLM provider, eval store) leave the
// corresponding service nil; commands report that instead of panicking.
func buildServices() cli.Services {
	var s cli.Services

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("Config unavailable, using defaults: %v", err)
	} else {
		s.Config = configStore
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable, using built-in prompts: %v", err)
		promptStore = nil
	}

	embedder := buildEmbedder(s.Config)
	llm := buildLLM(s.Config)

	records := jsonfile.NewRecordStore()
	indexStore := flat.NewStore()
	newIndex := func() driven.VectorIndex { return flat.New() }

	s.Index = services.NewIndexService(records, embedder, indexStore, newIndex)

	searchService := services.NewSearchService(indexStore, embedder)
	s.Search = searchService

	assistant := services.NewAssistantService(searchService, llm)
	if promptStore != nil {
		assistant.SetPromptStore(promptStore)
	}
	s.Assistant = assistant

	evalStore, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Eval store unavailable: %v", err)
	} else {
		s.EvalStore = evalStore
		evalService := services.NewEvalService(assistant, llm, evalStore)
		if promptStore != nil {
			evalService.SetPromptStore(promptStore)
		}
		s.Eval = evalService
	}

	return s
}

// buildEmbedder selects the embedding adapter from configuration. OpenAI
// needs an API key (config or OPENAI_API_KEY); without one the local
// Ollama adapter is used so build and search work out of the box.
func buildEmbedder(cfg driven.ConfigStore) driven.EmbeddingService {
	provider, model, apiKey, baseURL := providerConfig(cfg,
		driven.ConfigEmbeddingProvider, driven.ConfigEmbeddingModel,
		driven.ConfigEmbeddingAPIKey, driven.ConfigEmbeddingBaseURL)

	if provider == "" {
		if apiKey != "" {
			provider = "openai"
		} else {
			provider = "ollama"
		}
	}

	if provider == "openai" && apiKey != "" {
		embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:          apiKey,
			Model:           model,
			BaseURL:         baseURL,
			AzureAPIVersion: os.Getenv("OPENAI_API_VERSION"),
		})
		if err == nil {
			// Remote API, keep under the provider's rate limit.
			return ratelimit.Wrap(embedder)
		}
		logger.Warn("OpenAI embeddings unavailable: %v", err)
	}

	embedder, err := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL: baseURL,
		Model:   model,
	})
	if err != nil {
		logger.Warn("Ollama embeddings unavailable: %v", err)
		return nil
	}
	return embedder
}

// buildLLM selects the LLM adapter from configuration. Returns nil when
// no provider is configured; ask and eval --judge report the absence.
func buildLLM(cfg driven.ConfigStore) driven.LLMService {
	provider, model, apiKey, baseURL := providerConfig(cfg,
		driven.ConfigLLMProvider, driven.ConfigLLMModel,
		driven.ConfigLLMAPIKey, driven.ConfigLLMBaseURL)

	switch provider {
	case "openai":
		llm, err := openaillm.NewLLMService(openaillm.Config{
			APIKey:          apiKey,
			Model:           model,
			BaseURL:         baseURL,
			AzureAPIVersion: os.Getenv("OPENAI_API_VERSION"),
		})
		if err != nil {
			logger.Warn("OpenAI LLM unavailable: %v", err)
			return nil
		}
		return llm
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: baseURL,
			Model:   model,
		})
	default:
		return nil
	}
}

func providerConfig(cfg driven.ConfigStore, providerKey, modelKey, apiKeyKey, baseURLKey string) (provider, model, apiKey, baseURL string) {
	if cfg != nil {
		provider = cfg.GetString(providerKey)
		model = cfg.GetString(modelKey)
		apiKey = cfg.GetString(apiKeyKey)
		baseURL = cfg.GetString(baseURLKey)
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return provider, model, apiKey, baseURL
}
