package driven

import "context"

// VectorIndex provides nearest-neighbour search over a set of embeddings.
// The default implementation is an exact brute-force flat index; the
// interface isolates that choice so an approximate index can replace it.
//
// Vectors are addressed by insertion position. The caller is responsible
// for keeping a metadata table aligned with those positions.
type VectorIndex interface {
	// Add appends a vector to the index. The first vector fixes the
	// index dimension; later vectors of a different length are rejected
	// with domain.ErrDimensionMismatch.
	Add(ctx context.Context, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector,
	// ordered by ascending distance. Ties resolve to the lower position.
	// k larger than the index size is clamped, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dimensions returns the index dimension, or 0 if the index is empty.
	Dimensions() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the insertion position of the matched vector.
	Position int

	// Distance is the squared Euclidean distance to the query.
	Distance float32
}
