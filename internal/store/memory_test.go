package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func sampleRecord(id string) models.ExperimentRecord {
	return models.ExperimentRecord{
		ID:       id,
		Prompt:   "Explain how tides work",
		ModelID:  "gemini-2.0-flash",
		RunCount: 2,
		Summary: models.ExperimentSummary{
			Results: []models.ScoredResponse{
				{
					Result:  models.GeneratedResult{Content: "a response", Source: models.SourceMock},
					Metrics: models.QualityMetrics{OverallScore: 0.5},
				},
			},
			Average:   models.QualityMetrics{OverallScore: 0.5},
			Attempted: 2,
			Produced:  1,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore(newTestLogger())
	ctx := context.Background()

	record := sampleRecord("id-1")
	if err := s.SaveExperiment(ctx, record); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, err := s.GetExperiment(ctx, "id-1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.Prompt != record.Prompt || got.Summary.Produced != 1 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if len(got.Summary.Results) != 1 {
		t.Errorf("GetExperiment should return full results, got %d", len(got.Summary.Results))
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	s := NewMemoryStore(newTestLogger())

	_, err := s.GetExperiment(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_RecentNewestFirst(t *testing.T) {
	s := NewMemoryStore(newTestLogger())
	ctx := context.Background()

	for i := range 5 {
		if err := s.SaveExperiment(ctx, sampleRecord(fmt.Sprintf("id-%d", i))); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	records, err := s.RecentExperiments(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"id-4", "id-3", "id-2"} {
		if records[i].ID != want {
			t.Errorf("records[%d].ID = %s, want %s", i, records[i].ID, want)
		}
	}
	for _, record := range records {
		if record.Summary.Results != nil {
			t.Errorf("recent listing should not carry per-run results: %s", record.ID)
		}
	}
}

func TestMemoryStore_RecentDefaultLimit(t *testing.T) {
	s := NewMemoryStore(newTestLogger())
	ctx := context.Background()

	for i := range 15 {
		s.SaveExperiment(ctx, sampleRecord(fmt.Sprintf("id-%d", i)))
	}

	records, err := s.RecentExperiments(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != defaultRecentLimit {
		t.Errorf("expected default limit %d, got %d", defaultRecentLimit, len(records))
	}
}

func TestMemoryStore_ResaveKeepsOnePosition(t *testing.T) {
	s := NewMemoryStore(newTestLogger())
	ctx := context.Background()

	s.SaveExperiment(ctx, sampleRecord("id-1"))
	s.SaveExperiment(ctx, sampleRecord("id-1"))

	records, err := s.RecentExperiments(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("resaving the same id should not duplicate it, got %d entries", len(records))
	}
}

func TestNewFactorySelectsBackend(t *testing.T) {
	logger := newTestLogger()

	for _, backend := range []string{"memory", "disabled", ""} {
		s, err := New(context.Background(), Config{Backend: backend}, logger)
		if err != nil {
			t.Fatalf("backend %q: unexpected error: %v", backend, err)
		}
		if _, ok := s.(*MemoryStore); !ok {
			t.Errorf("backend %q should map to the memory store, got %T", backend, s)
		}
	}

	if _, err := New(context.Background(), Config{Backend: "cassandra"}, logger); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
