package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askTopK      int
	askIndexPath string
	askSources   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded on the researcher index",
	Long: `Retrieves the nearest researchers for the question, builds a context
block from their records, and asks the configured LLM for an answer
grounded on that context.

Requires an LLM provider; run 'sara settings llm' to configure one.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "researchers retrieved for context (default from config)")
	askCmd.Flags().StringVar(&askIndexPath, "index", "", "index path (default from config)")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the retrieved sources after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	answer, err := assistantService.Ask(
		cmd.Context(), question, defaultIndexPath(askIndexPath), defaultTopK(askTopK))
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)

	if askSources {
		cmd.Println()
		cmd.Println("Sources:")
		for i, source := range answer.Sources {
			cmd.Printf("  [%d] %s (distance %.4f)\n", i+1, source.Researcher.Name, source.Distance)
		}
	}

	return nil
}
