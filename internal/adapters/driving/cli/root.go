// Package cli implements the sara command-line interface using cobra.
// Commands are registered in init() and receive their services through
// SetServices before Execute is called.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// version is set from the composition root at startup.
var version = "dev"

// Services injected by the composition root. Commands check for nil and
// fail with a clear message rather than panic.
var (
	indexService     driving.IndexService
	searchService    driving.SearchService
	assistantService driving.AssistantService
	evalService      driving.EvalService
	evalStore        driven.EvalStore
	configStore      driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sara",
	Short: "SARA - semantic search over university researchers",
	Long: `SARA is a research assistant CLI. It builds a vector index over
researcher records, answers free-text queries by nearest-neighbour
search, and optionally generates grounded answers with an LLM.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	Index     driving.IndexService
	Search    driving.SearchService
	Assistant driving.AssistantService
	Eval      driving.EvalService
	EvalStore driven.EvalStore
	Config    driven.ConfigStore
}

// SetServices injects the application services into the command tree.
func SetServices(s Services) {
	indexService = s.Index
	searchService = s.Search
	assistantService = s.Assistant
	evalService = s.Eval
	evalStore = s.EvalStore
	configStore = s.Config
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// defaultIndexPath resolves the index location: explicit flag first,
// then configuration, then a working-directory default.
func defaultIndexPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configStore != nil {
		if path := configStore.GetString(driven.ConfigIndexPath); path != "" {
			return path
		}
	}
	return "researchers.index"
}

// defaultTopK resolves the result count: explicit flag first, then
// configuration, then zero so services apply their own default.
func defaultTopK(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configStore != nil {
		if k := configStore.GetInt(driven.ConfigTopK); k > 0 {
			return k
		}
	}
	return 0
}
