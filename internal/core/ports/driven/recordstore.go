package driven

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// RecordStore loads researcher records from an external dataset.
// The canonical implementation reads a JSON array produced by the
// collection pipeline; an in-memory implementation exists for tests.
type RecordStore interface {
	// Load reads all researcher records from the dataset at path,
	// preserving their order.
	Load(ctx context.Context, path string) ([]domain.Researcher, error)
}
