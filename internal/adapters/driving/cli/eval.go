package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
)

var (
	evalTopK      int
	evalJudge     bool
	evalIndexPath string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the retrieval pipeline",
	Long: `Commands for running and inspecting evaluation runs. Each run answers
every question in a questions file through the retrieval pipeline and
persists the results.`,
}

var evalRunCmd = &cobra.Command{
	Use:   "run [questions-file]",
	Short: "Run an evaluation over a questions file",
	Long: `Answers every question in the file (one question per line; blank lines
and # comments are skipped) against the index. A failing question is
recorded and the run continues.

With --judge, the LLM scores each answer for factual accuracy and
completeness on 0-2 scales.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvalRun,
}

var evalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List evaluation runs",
	RunE:  runEvalRuns,
}

var evalResultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "Show the per-question results of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvalResults,
}

func init() {
	evalRunCmd.Flags().IntVarP(&evalTopK, "top-k", "k", 0, "researchers retrieved per question (default from config)")
	evalRunCmd.Flags().BoolVar(&evalJudge, "judge", false, "score answers with the LLM")
	evalRunCmd.Flags().StringVar(&evalIndexPath, "index", "", "index path (default from config)")
	evalCmd.AddCommand(evalRunCmd)
	evalCmd.AddCommand(evalRunsCmd)
	evalCmd.AddCommand(evalResultsCmd)
	rootCmd.AddCommand(evalCmd)
}

func runEvalRun(cmd *cobra.Command, args []string) error {
	questionsPath := args[0]

	if evalService == nil {
		return errors.New("eval service not configured")
	}

	opts := driving.EvalOptions{
		TopK:  defaultTopK(evalTopK),
		Judge: evalJudge,
	}

	run, err := evalService.Run(cmd.Context(), questionsPath, defaultIndexPath(evalIndexPath), opts)
	if err != nil {
		return fmt.Errorf("eval failed: %w", err)
	}

	cmd.Printf("Run %s complete: %d answered, %d failed\n", run.ID, run.Answered, run.Failed)
	cmd.Printf("Inspect with: sara eval results %s\n", run.ID)
	return nil
}

func runEvalRuns(cmd *cobra.Command, _ []string) error {
	if evalStore == nil {
		return errors.New("eval store not configured")
	}

	runs, err := evalStore.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No evaluation runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %s  answered=%d failed=%d  %s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04"), run.Answered, run.Failed, run.QuestionsPath)
	}
	return nil
}

func runEvalResults(cmd *cobra.Command, args []string) error {
	runID := args[0]

	if evalStore == nil {
		return errors.New("eval store not configured")
	}

	results, err := evalStore.ListResults(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}

	if len(results) == 0 {
		cmd.Printf("No results for run %s.\n", runID)
		return nil
	}

	for i, result := range results {
		cmd.Printf("[%d] Q: %s\n", i+1, result.Question)
		if result.Answer != "" {
			cmd.Printf("    A: %s\n", result.Answer)
		}
		if result.FactualAccuracy != nil && result.Completeness != nil {
			cmd.Printf("    Score: accuracy=%d completeness=%d\n", *result.FactualAccuracy, *result.Completeness)
		}
		if result.Notes != "" {
			cmd.Printf("    Notes: %s\n", result.Notes)
		}
		cmd.Println()
	}
	return nil
}
