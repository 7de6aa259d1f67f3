package driven

import (
	"context"

	"github.com/sara-labs/sara-cli/internal/core/domain"
)

// IndexStore persists a vector index together with its positional metadata
// table as a single logical unit. The vector file lives at the given path
// and the metadata sidecar at a location derived deterministically from it.
//
// An index pair is immutable once written; a changed dataset requires a
// full rebuild-and-overwrite of both artifacts.
type IndexStore interface {
	// Save writes the index and metadata to durable storage. The write is
	// staged through temporary files and renamed into place only on full
	// success, so a failed save never clobbers a previously good pair.
	Save(ctx context.Context, index VectorIndex, metadata []domain.Researcher, path string) error

	// Load reads a previously saved pair. It fails with
	// domain.ErrIndexNotFound if either file is missing, and with
	// domain.ErrCorruptIndex if the vector count does not match the
	// metadata count.
	Load(ctx context.Context, path string) (VectorIndex, []domain.Researcher, error)
}
