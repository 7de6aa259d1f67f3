package driving

import "context"

// BuildStats reports what an index build produced.
type BuildStats struct {
	// Indexed is the number of records embedded and added to the index.
	Indexed int

	// Skipped is the number of degenerate records left out.
	Skipped int

	// Dimensions is the embedding dimension of the built index.
	Dimensions int
}

// IndexService builds vector indexes from researcher datasets.
type IndexService interface {
	// BuildIndex reads researcher records from dataPath, embeds each one,
	// and writes the index pair at indexPath. The build is all-or-nothing:
	// any embedding failure aborts without touching a previously persisted
	// index.
	BuildIndex(ctx context.Context, dataPath, indexPath string) (BuildStats, error)
}
