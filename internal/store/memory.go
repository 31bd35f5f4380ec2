package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

// MemoryStore is the in-process backend used when persistence is disabled.
// Everything is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.ExperimentRecord
	order   []string // newest first
	logger  *zerolog.Logger
}

func NewMemoryStore(logger *zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.ExperimentRecord),
		logger:  logger,
	}
}

func (s *MemoryStore) SaveExperiment(_ context.Context, record models.ExperimentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; !exists {
		s.order = append([]string{record.ID}, s.order...)
	}
	s.records[record.ID] = record
	return nil
}

func (s *MemoryStore) GetExperiment(_ context.Context, id string) (*models.ExperimentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *MemoryStore) RecentExperiments(_ context.Context, limit int) ([]models.ExperimentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit = normalizeLimit(limit)
	if limit > len(s.order) {
		limit = len(s.order)
	}

	records := make([]models.ExperimentRecord, 0, limit)
	for _, id := range s.order[:limit] {
		record := s.records[id]
		record.Summary.Results = nil
		records = append(records, record)
	}
	return records, nil
}

func (s *MemoryStore) Close() {}
