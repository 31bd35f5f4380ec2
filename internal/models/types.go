package models

import (
	"time"
)

type ResultSource string

const (
	SourceRemote ResultSource = "remote"
	SourceMock   ResultSource = "mock"
)

// Bounds is a closed interval for a float-valued generation parameter.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntBounds is a closed interval for an integer-valued generation parameter.
type IntBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ParameterRange bounds the space an experiment samples from.
type ParameterRange struct {
	Temperature Bounds    `json:"temperature"`
	TopP        Bounds    `json:"top_p"`
	MaxTokens   IntBounds `json:"max_tokens"`
}

// DefaultParameterRange is used when a request leaves the range empty.
func DefaultParameterRange() ParameterRange {
	return ParameterRange{
		Temperature: Bounds{Min: 0.1, Max: 0.9},
		TopP:        Bounds{Min: 0.7, Max: 1.0},
		MaxTokens:   IntBounds{Min: 100, Max: 500},
	}
}

// GenerationParameters is one sampled tuple.
type GenerationParameters struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
	ModelID     string  `json:"model_id,omitempty"`
}

// GeneratedResult is what a generator resolves with. Content may come from
// the remote provider or from the mock fallback; Source records which.
type GeneratedResult struct {
	Content          string               `json:"content"`
	TokensUsed       int                  `json:"tokens_used"`
	GenerationTimeMs int64                `json:"generation_time_ms"`
	Parameters       GenerationParameters `json:"parameters"`
	ModelID          string               `json:"model_id"`
	Source           ResultSource         `json:"source"`
}

// One metric's output with diagnostics.
type MetricScore struct {
	Score       float64            `json:"score"`
	Explanation string             `json:"explanation"`
	Formula     string             `json:"formula"`
	Factors     map[string]float64 `json:"factors,omitempty"`
}

// QualityMetrics bundles the four sub-scores and the weighted overall.
type QualityMetrics struct {
	Coherence    float64 `json:"coherence"`
	Completeness float64 `json:"completeness"`
	Readability  float64 `json:"readability"`
	Relevance    float64 `json:"relevance"`
	OverallScore float64 `json:"overall_score"`
}

// ScoredResponse pairs one generated result with its metrics.
type ScoredResponse struct {
	Result  GeneratedResult        `json:"result"`
	Metrics QualityMetrics         `json:"metrics"`
	Details map[string]MetricScore `json:"details,omitempty"`
}

// GenerationOutcome is the orchestrator's output. Attempted counts every
// sampled tuple, Produced only those that yielded a result.
type GenerationOutcome struct {
	Results   []GeneratedResult `json:"results"`
	Attempted int               `json:"attempted"`
	Produced  int               `json:"produced"`
}

// Input message
type ExperimentRequest struct {
	Prompt         string         `json:"prompt" jsonschema:"required,description=Prompt every sampled run is generated against"`
	ModelID        string         `json:"model_id,omitempty" jsonschema:"description=Preferred model; the fallback ladder applies when it fails"`
	RunCount       int            `json:"run_count" jsonschema:"required,description=Number of parameter tuples to sample (1-20)"`
	ParameterRange ParameterRange `json:"parameter_range"`
}

// Final output of one experiment run
type ExperimentSummary struct {
	Results   []ScoredResponse `json:"results"`
	Average   QualityMetrics   `json:"average"`
	Attempted int              `json:"attempted"`
	Produced  int              `json:"produced"`
}

// Persisted form of a completed experiment.
type ExperimentRecord struct {
	ID        string            `json:"id"`
	Prompt    string            `json:"prompt"`
	ModelID   string            `json:"model_id"`
	RunCount  int               `json:"run_count"`
	Summary   ExperimentSummary `json:"summary"`
	CreatedAt time.Time         `json:"created_at"`
}
