package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, LLM provider, and index
defaults. Settings are stored in ~/.sara/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long:  `Configure the embedding provider used to vectorise records and queries.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long:  `Configure the LLM provider used by the ask and eval commands.`,
	RunE:  runSettingsLLM,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key, e.g.:

  sara settings set index.path indexes/uam.index
  sara settings set search.top_k 5`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// Providers selectable in the settings dialogs.
var knownProviders = []string{"openai", "ollama"}

// Default models per provider.
var (
	defaultEmbeddingModels = map[string]string{
		"openai": "text-embedding-3-small",
		"ollama": "nomic-embed-text",
	}
	defaultLLMModels = map[string]string{
		"openai": "gpt-4o",
		"ollama": "llama3.2",
	}
)

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProviderSection(cmd,
		configStore.GetString(driven.ConfigEmbeddingProvider),
		configStore.GetString(driven.ConfigEmbeddingModel),
		configStore.GetString(driven.ConfigEmbeddingAPIKey),
		configStore.GetString(driven.ConfigEmbeddingBaseURL))
	cmd.Println()

	cmd.Println("[LLM]")
	printProviderSection(cmd,
		configStore.GetString(driven.ConfigLLMProvider),
		configStore.GetString(driven.ConfigLLMModel),
		configStore.GetString(driven.ConfigLLMAPIKey),
		configStore.GetString(driven.ConfigLLMBaseURL))
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Path: %s\n", defaultIndexPath(""))
	if dataPath := configStore.GetString(driven.ConfigDataPath); dataPath != "" {
		cmd.Printf("  Dataset: %s\n", dataPath)
	}
	if topK := configStore.GetInt(driven.ConfigTopK); topK > 0 {
		cmd.Printf("  Top K: %d\n", topK)
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func printProviderSection(cmd *cobra.Command, provider, model, apiKey, baseURL string) {
	if provider == "" {
		cmd.Println("  Provider: (not set)")
		return
	}
	cmd.Printf("  Provider: %s\n", provider)
	cmd.Printf("  Model: %s\n", model)
	if baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider == "openai" {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureProvider(cmd, reader, providerKeys{
		provider: driven.ConfigEmbeddingProvider,
		model:    driven.ConfigEmbeddingModel,
		apiKey:   driven.ConfigEmbeddingAPIKey,
		defaults: defaultEmbeddingModels,
		label:    "embedding",
	})
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureProvider(cmd, reader, providerKeys{
		provider: driven.ConfigLLMProvider,
		model:    driven.ConfigLLMModel,
		apiKey:   driven.ConfigLLMAPIKey,
		defaults: defaultLLMModels,
		label:    "LLM",
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// providerKeys names the config keys one provider dialog writes.
type providerKeys struct {
	provider string
	model    string
	apiKey   string
	defaults map[string]string
	label    string
}

func configureProvider(cmd *cobra.Command, reader *bufio.Reader, keys providerKeys) error {
	cmd.Printf("Select %s provider:\n", keys.label)
	for i, p := range knownProviders {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(knownProviders), 1)
	provider := knownProviders[idx-1]

	defaultModel := keys.defaults[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider == "openai" {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := configStore.Set(keys.provider, provider); err != nil {
		return fmt.Errorf("save provider: %w", err)
	}
	if err := configStore.Set(keys.model, model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if apiKey != "" {
		if err := configStore.Set(keys.apiKey, apiKey); err != nil {
			return fmt.Errorf("save API key: %w", err)
		}
	}

	cmd.Printf("%s provider configured: %s (%s)\n", keys.label, provider, model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
