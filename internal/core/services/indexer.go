package services

import (
	"context"
	"fmt"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
	"github.com/sara-labs/sara-cli/internal/core/ports/driving"
	"github.com/sara-labs/sara-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexFactory produces an empty vector index for a build.
// Injected so the service stays independent of the index implementation.
type IndexFactory func() driven.VectorIndex

// IndexService builds vector indexes from researcher datasets.
type IndexService struct {
	records  driven.RecordStore
	embedder driven.EmbeddingService
	store    driven.IndexStore
	newIndex IndexFactory
}

// NewIndexService creates a new index build service.
func NewIndexService(
	records driven.RecordStore,
	embedder driven.EmbeddingService,
	store driven.IndexStore,
	newIndex IndexFactory,
) *IndexService {
	return &IndexService{
		records:  records,
		embedder: embedder,
		store:    store,
		newIndex: newIndex,
	}
}

// BuildIndex reads the dataset at dataPath, embeds every usable record,
// and persists the index pair at indexPath.
//
// The build is all-or-nothing: any embedding failure aborts before the
// save, and the save itself is staged so a previously persisted pair
// survives a failed build.
func (s *IndexService) BuildIndex(ctx context.Context, dataPath, indexPath string) (driving.BuildStats, error) {
	logger.Section("Index Build")
	logger.Debug("Dataset: %s", dataPath)
	logger.Debug("Index: %s", indexPath)

	records, err := s.records.Load(ctx, dataPath)
	if err != nil {
		return driving.BuildStats{}, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Loaded %d records", len(records))

	if len(records) == 0 {
		return driving.BuildStats{}, fmt.Errorf("dataset %s: %w", dataPath, domain.ErrEmptyDataset)
	}

	index := s.newIndex()
	kept := make([]domain.Researcher, 0, len(records))
	skipped := 0

	for i, record := range records {
		if record.IsDegenerate() {
			logger.Warn("Skipping degenerate record %d (%q)", i, record.Name)
			skipped++
			continue
		}

		text := record.EmbeddingText()
		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return driving.BuildStats{}, fmt.Errorf("embed record %d (%q): %w", i, record.Name, err)
		}

		// Position in the index must equal position in the metadata
		// table, so append to both or neither.
		if err := index.Add(ctx, embedding); err != nil {
			return driving.BuildStats{}, fmt.Errorf("add record %d (%q): %w", i, record.Name, err)
		}
		kept = append(kept, record)
	}

	if index.Len() == 0 {
		return driving.BuildStats{}, fmt.Errorf("all %d records degenerate: %w", len(records), domain.ErrEmptyDataset)
	}

	if err := s.store.Save(ctx, index, kept, indexPath); err != nil {
		return driving.BuildStats{}, fmt.Errorf("save index: %w", err)
	}

	stats := driving.BuildStats{
		Indexed:    index.Len(),
		Skipped:    skipped,
		Dimensions: index.Dimensions(),
	}
	logger.Info("Indexed %d records (%d skipped), dimension %d", stats.Indexed, stats.Skipped, stats.Dimensions)

	return stats, nil
}
