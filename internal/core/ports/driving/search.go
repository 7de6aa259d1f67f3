package driving

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// SearchService answers free-text queries against a persisted index.
type SearchService interface {
	// Search embeds the query and returns the topK nearest researchers
	// from the index at indexPath, nearest first. topK larger than the
	// index is clamped. This is a pure read over durable state.
	Search(ctx context.Context, query, indexPath string, topK int) ([]domain.SearchResult, error)
}
