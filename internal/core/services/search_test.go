package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

func TestSearch(t *testing.T) {
	index := &mockVectorIndex{
		vectors: [][]float32{{1, 0}, {0, 1}, {1, 1}},
		dim:     2,
		hits: []driven.VectorHit{
			{Position: 2, Distance: 0.1},
			{Position: 0, Distance: 0.5},
		},
	}
	store := &mockIndexStore{
		loadIndex: index,
		loadMetadata: []domain.Researcher{
			testResearcher("Anna Kowalska"),
			testResearcher("Piotr Nowak"),
			testResearcher("Maria Wiśniewska"),
		},
	}
	embedder := &mockEmbeddingService{fallback: []float32{1, 1}}

	svc := NewSearchService(store, embedder)

	results, err := svc.Search(context.Background(), "who works on NLP?", "indexes/uam.index", 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Maria Wiśniewska", results[0].Researcher.Name)
	assert.Equal(t, 2, results[0].Position)
	assert.InDelta(t, 0.1, results[0].Distance, 1e-6)
	assert.Equal(t, "Anna Kowalska", results[1].Researcher.Name)

	// The query text itself is embedded, not a rendered record.
	require.Len(t, embedder.calls, 1)
	assert.Equal(t, "who works on NLP?", embedder.calls[0])
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewSearchService(&mockIndexStore{}, &mockEmbeddingService{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), query, "out.index", 3)
		assert.ErrorIs(t, err, domain.ErrInvalidQuery, "query %q", query)
	}
}

func TestSearch_DefaultTopK(t *testing.T) {
	index := &mockVectorIndex{
		dim:  2,
		hits: []driven.VectorHit{{Position: 0, Distance: 0}},
	}
	store := &mockIndexStore{
		loadIndex:    index,
		loadMetadata: []domain.Researcher{testResearcher("Anna Kowalska")},
	}

	svc := NewSearchService(store, &mockEmbeddingService{fallback: []float32{1, 1}})

	results, err := svc.Search(context.Background(), "query", "out.index", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_IndexNotFound(t *testing.T) {
	store := &mockIndexStore{loadErr: domain.ErrIndexNotFound}

	svc := NewSearchService(store, &mockEmbeddingService{})

	_, err := svc.Search(context.Background(), "query", "missing.index", 3)
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
}

func TestSearch_EmbedFailure(t *testing.T) {
	store := &mockIndexStore{loadIndex: &mockVectorIndex{dim: 2}}

	svc := NewSearchService(store, &mockEmbeddingService{embedErr: domain.ErrProvider})

	_, err := svc.Search(context.Background(), "query", "out.index", 3)
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestSearch_HitOutsideMetadata(t *testing.T) {
	index := &mockVectorIndex{
		dim:  2,
		hits: []driven.VectorHit{{Position: 5, Distance: 0}},
	}
	store := &mockIndexStore{
		loadIndex:    index,
		loadMetadata: []domain.Researcher{testResearcher("Anna Kowalska")},
	}

	svc := NewSearchService(store, &mockEmbeddingService{fallback: []float32{1, 1}})

	_, err := svc.Search(context.Background(), "query", "out.index", 3)
	assert.ErrorIs(t, err, domain.ErrCorruptIndex)
}
