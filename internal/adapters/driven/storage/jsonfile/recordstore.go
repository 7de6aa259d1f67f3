// Package jsonfile reads researcher datasets from JSON files.
// The dataset is a UTF-8 JSON array of researcher objects, the format
// produced by the external collection pipeline.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is a file-based implementation of driven.RecordStore.
type RecordStore struct{}

// NewRecordStore creates a JSON file record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Load reads all researcher records from the dataset at path,
// preserving their order.
func (s *RecordStore) Load(_ context.Context, path string) ([]domain.Researcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("jsonfile: dataset %q: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("jsonfile: read dataset %q: %w", path, err)
	}

	var records []domain.Researcher
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("jsonfile: decode dataset %q: %w", path, domain.ErrInvalidInput)
	}
	return records, nil
}
