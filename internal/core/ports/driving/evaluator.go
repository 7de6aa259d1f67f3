package driving

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// EvalOptions configures an evaluation run.
type EvalOptions struct {
	// TopK is the number of researchers retrieved per question.
	TopK int

	// Judge enables LLM scoring of each answer.
	Judge bool
}

// EvalService runs a questions file through the retrieval pipeline and
// persists the results.
type EvalService interface {
	// Run answers every question in the file at questionsPath against the
	// index at indexPath. A failure on one question is recorded and the
	// run continues.
	Run(ctx context.Context, questionsPath, indexPath string, opts EvalOptions) (domain.EvalRun, error)
}
