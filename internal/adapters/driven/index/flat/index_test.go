package flat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

func TestIndex_Add_FixesDimension(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, []float32{1, 2, 3}))
	assert.Equal(t, 3, idx.Dimensions())
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_Add_RejectsDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, []float32{1, 2, 3}))
	err := idx.Add(ctx, []float32{1, 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "expected dimension 3")
	assert.Contains(t, err.Error(), "got 2")
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_Add_RejectsEmptyEmbedding(t *testing.T) {
	idx := New()

	err := idx.Add(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_Add_CopiesInput(t *testing.T) {
	ctx := context.Background()
	idx := New()

	vec := []float32{1, 0}
	require.NoError(t, idx.Add(ctx, vec))
	vec[0] = 99

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), hits[0].Distance)
}

func TestIndex_Search_AscendingDistance(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, []float32{0, 0})) // distance 25
	require.NoError(t, idx.Add(ctx, []float32{3, 4})) // distance 0
	require.NoError(t, idx.Add(ctx, []float32{3, 3})) // distance 1

	hits, err := idx.Search(ctx, []float32{3, 4}, 3)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
	assert.LessOrEqual(t, hits[1].Distance, hits[2].Distance)
}

func TestIndex_Search_TieBreaksByPosition(t *testing.T) {
	ctx := context.Background()
	idx := New()

	// Positions 2 and 5 are equidistant from the query.
	vectors := [][]float32{
		{10, 0}, {0, 10}, {1, 0}, {-10, 0}, {0, -10}, {-1, 0},
	}
	for _, vec := range vectors {
		require.NoError(t, idx.Add(ctx, vec))
	}

	hits, err := idx.Search(ctx, []float32{0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, 2, hits[0].Position)
	assert.Equal(t, 5, hits[1].Position)
	assert.Equal(t, hits[0].Distance, hits[1].Distance)
}

func TestIndex_Search_ClampsK(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, []float32{1}))
	require.NoError(t, idx.Add(ctx, []float32{2}))

	hits, err := idx.Search(ctx, []float32{0}, 10)
	require.NoError(t, err)

	assert.Len(t, hits, 2)
}

func TestIndex_Search_RejectsNonPositiveK(t *testing.T) {
	idx := New()

	_, err := idx.Search(context.Background(), []float32{1}, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestIndex_Search_RejectsQueryDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := New()

	require.NoError(t, idx.Add(ctx, []float32{1, 2, 3}))

	_, err := idx.Search(ctx, []float32{1, 2}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "query dimension 2")
	assert.Contains(t, err.Error(), "index dimension 3")
}

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"unit apart", []float32{0, 0}, []float32{1, 0}, 1},
		{"pythagorean", []float32{0, 0}, []float32{3, 4}, 25},
		{"negative components", []float32{-1, -1}, []float32{1, 1}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, squaredL2(tt.a, tt.b), 1e-6)
		})
	}
}
