package driving

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// Answer is a retrieval-augmented answer with its supporting records.
type Answer struct {
	// Text is the LLM's answer.
	Text string

	// Sources are the retrieved researchers the answer was grounded on,
	// nearest first.
	Sources []domain.SearchResult
}

// AssistantService composes retrieved researchers into a context block and
// asks the LLM to answer a question grounded on it.
type AssistantService interface {
	// Ask retrieves the topK nearest researchers for the question,
	// formats them into a context block, and generates an answer.
	Ask(ctx context.Context, question, indexPath string, topK int) (Answer, error)
}
