package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an exact L2 nearest-neighbour index. Vectors are addressed by
// insertion position; the first added vector fixes the dimension.
type Index struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float32
}

// New creates an empty index. The dimension is fixed by the first Add.
func New() *Index {
	return &Index{}
}

// Add appends a vector to the index.
func (idx *Index) Add(_ context.Context, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("flat: empty embedding: %w", domain.ErrInvalidInput)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dim == 0 {
		idx.dim = len(embedding)
	} else if len(embedding) != idx.dim {
		return fmt.Errorf("flat: add at position %d: expected dimension %d, got %d: %w",
			len(idx.vectors), idx.dim, len(embedding), domain.ErrDimensionMismatch)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	idx.vectors = append(idx.vectors, vec)
	return nil
}

// Search finds the k nearest vectors to the query by ascending squared
// Euclidean distance. Ties resolve to the lower position. k larger than
// the index size is clamped.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("flat: k must be positive, got %d: %w", k, domain.ErrInvalidQuery)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.dim != 0 && len(query) != idx.dim {
		return nil, fmt.Errorf("flat: query dimension %d, index dimension %d: %w",
			len(query), idx.dim, domain.ErrDimensionMismatch)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, vec := range idx.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: squaredL2(query, vec)}
	}

	// Stable sort keeps insertion order for equal distances.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimensions returns the index dimension, or 0 if the index is empty.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dim
}

// vectorAt returns the vector at position i. Used by the persistence layer.
func (idx *Index) vectorAt(i int) []float32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.vectors[i]
}

// squaredL2 computes the squared Euclidean distance between two vectors.
// Skipping the square root preserves ordering and matches the distances
// a flat L2 index reports.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
