package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

var (
	searchLimit     int
	searchJSON      bool
	searchIndexPath string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search researchers by semantic similarity",
	Long: `Embeds the query and returns the nearest researchers from the index,
ordered by squared Euclidean distance (smaller is closer).`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchIndexPath, "index", "", "index path (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(
		cmd.Context(), query, defaultIndexPath(searchIndexPath), defaultTopK(searchLimit))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		r := result.Researcher
		cmd.Printf("  [%d] %s - %s (distance %.4f)\n", i+1, r.Name, r.Affiliation, result.Distance)
		if len(r.ResearchAreas) > 0 {
			cmd.Printf("      Areas: %s\n", strings.Join(r.ResearchAreas, ", "))
		}
		for _, p := range r.Projects {
			cmd.Printf("      %s (%s) | %.0f PLN\n", p.Title, p.Years, p.GrantAmount)
		}
		cmd.Println()
	}

	return nil
}
