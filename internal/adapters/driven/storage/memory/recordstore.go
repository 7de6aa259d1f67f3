// Package memory provides in-memory storage adapters, used in tests and
// anywhere a durable backend is unnecessary.
package memory

import (
	"context"
	"sync"

	"github.com/sara-labs/sara-cli/internal/core/domain"
	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Datasets are registered per path; Load ignores the filesystem entirely.
type RecordStore struct {
	mu       sync.RWMutex
	datasets map[string][]domain.Researcher
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		datasets: make(map[string][]domain.Researcher),
	}
}

// Put registers a dataset under the given path.
func (s *RecordStore) Put(path string, records []domain.Researcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[path] = records
}

// Load returns the dataset registered under path.
func (s *RecordStore) Load(_ context.Context, path string) ([]domain.Researcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.datasets[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return records, nil
}
