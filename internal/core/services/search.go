package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultTopK is the number of results returned when the caller does
// not say how many it wants.
const DefaultTopK = 3

// SearchService answers free-text queries against a persisted index.
type SearchService struct {
	store    driven.IndexStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.IndexStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		store:    store,
		embedder: embedder,
	}
}

// Search embeds the query and returns the topK nearest researchers from
// the index at indexPath, nearest first. The index pair on disk is never
// modified.
func (s *SearchService) Search(
	ctx context.Context, query, indexPath string, topK int,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", domain.ErrInvalidQuery)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger.Debug("TopK: %d", topK)

	index, metadata, err := s.store.Load(ctx, indexPath)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	logger.Debug("Index loaded: %d vectors, dimension %d", index.Len(), index.Dimensions())

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := index.Search(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= len(metadata) {
			return nil, fmt.Errorf("hit position %d outside metadata table of %d: %w",
				hit.Position, len(metadata), domain.ErrCorruptIndex)
		}
		results = append(results, domain.SearchResult{
			Researcher: metadata[hit.Position],
			Distance:   hit.Distance,
			Position:   hit.Position,
		})
	}

	logger.Info("Found %d results", len(results))
	return results, nil
}
