package api

import "github.com/promptlab/promptlab/internal/models"

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ScoreRequest scores one already-generated text against a prompt.
type ScoreRequest struct {
	Content string `json:"content"`
	Prompt  string `json:"prompt"`
}

type ScoreResult struct {
	Metrics models.QualityMetrics         `json:"metrics"`
	Details map[string]models.MetricScore `json:"details"`
}

// AggregateRequest averages a client-supplied metrics list.
type AggregateRequest struct {
	Metrics []models.QualityMetrics `json:"metrics"`
}

type AggregateResult struct {
	Average models.QualityMetrics `json:"average"`
	Count   int                   `json:"count"`
}

// RecentExperimentsResponse lists light records, newest first.
type RecentExperimentsResponse struct {
	Experiments []models.ExperimentRecord `json:"experiments"`
}
