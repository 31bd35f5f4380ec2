package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/promptlab/promptlab/internal/aggregator"
	"github.com/promptlab/promptlab/internal/experiment/mocks"
	"github.com/promptlab/promptlab/internal/models"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func validRequest() models.ExperimentRequest {
	return models.ExperimentRequest{
		Prompt:         "Explain how rainbows form",
		ModelID:        "gemini-2.0-flash",
		RunCount:       2,
		ParameterRange: models.DefaultParameterRange(),
	}
}

func TestRunExperiment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ExperimentRequest)
		field  string
	}{
		{
			name:   "empty prompt",
			mutate: func(r *models.ExperimentRequest) { r.Prompt = "" },
			field:  "prompt",
		},
		{
			name:   "whitespace prompt",
			mutate: func(r *models.ExperimentRequest) { r.Prompt = "   \n\t" },
			field:  "prompt",
		},
		{
			name:   "run count zero",
			mutate: func(r *models.ExperimentRequest) { r.RunCount = 0 },
			field:  "run_count",
		},
		{
			name:   "run count above limit",
			mutate: func(r *models.ExperimentRequest) { r.RunCount = 21 },
			field:  "run_count",
		},
		{
			name:   "missing range",
			mutate: func(r *models.ExperimentRequest) { r.ParameterRange = models.ParameterRange{} },
			field:  "parameter_range",
		},
		{
			name: "negative temperature",
			mutate: func(r *models.ExperimentRequest) {
				r.ParameterRange.Temperature.Min = -0.1
			},
			field: "parameter_range.temperature",
		},
		{
			name: "inverted temperature bounds",
			mutate: func(r *models.ExperimentRequest) {
				r.ParameterRange.Temperature = models.Bounds{Min: 0.9, Max: 0.1}
			},
			field: "parameter_range.temperature",
		},
		{
			name: "top_p above one",
			mutate: func(r *models.ExperimentRequest) {
				r.ParameterRange.TopP.Max = 1.5
			},
			field: "parameter_range.top_p",
		},
		{
			name: "max tokens below one",
			mutate: func(r *models.ExperimentRequest) {
				r.ParameterRange.MaxTokens.Min = 0
			},
			field: "parameter_range.max_tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No expectations registered: any sampler/runner call would
			// fail the test, which is the point of rejecting up front.
			service := NewService(
				mocks.NewMockParameterSampler(ctrl),
				mocks.NewMockGenerationRunner(ctrl),
				mocks.NewMockResponseScorer(ctrl),
				mocks.NewMockMetricsAggregator(ctrl),
				mocks.NewMockResultStore(ctrl),
				testLogger(),
			)

			req := validRequest()
			tt.mutate(&req)

			_, err := service.RunExperiment(context.Background(), req)
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			if !IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}

			var validationErr *ValidationError
			errors.As(err, &validationErr)
			if validationErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", validationErr.Field, tt.field)
			}
		})
	}
}

func TestRunExperiment_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := validRequest()
	params := []models.GenerationParameters{
		{Temperature: 0.3, TopP: 0.8, MaxTokens: 200, ModelID: req.ModelID},
		{Temperature: 0.7, TopP: 0.9, MaxTokens: 300, ModelID: req.ModelID},
	}
	results := []models.GeneratedResult{
		{Content: "first answer", ModelID: req.ModelID, Source: models.SourceRemote, Parameters: params[0]},
		{Content: "second answer", ModelID: "mock", Source: models.SourceMock, Parameters: params[1]},
	}
	metrics := models.QualityMetrics{Coherence: 0.8, Completeness: 0.6, Readability: 0.4, Relevance: 0.9, OverallScore: 0.69}
	average := models.QualityMetrics{Coherence: 0.8, Completeness: 0.6, Readability: 0.4, Relevance: 0.9, OverallScore: 0.69}

	sampler := mocks.NewMockParameterSampler(ctrl)
	runner := mocks.NewMockGenerationRunner(ctrl)
	scorer := mocks.NewMockResponseScorer(ctrl)
	agg := mocks.NewMockMetricsAggregator(ctrl)
	store := mocks.NewMockResultStore(ctrl)

	sampler.EXPECT().Sample(req.ParameterRange, 2, req.ModelID).Return(params)
	runner.EXPECT().Run(gomock.Any(), req.Prompt, params).
		Return(models.GenerationOutcome{Results: results, Attempted: 2, Produced: 2})
	scorer.EXPECT().ScoreResponse("first answer", req.Prompt).Return(metrics, map[string]models.MetricScore{})
	scorer.EXPECT().ScoreResponse("second answer", req.Prompt).Return(metrics, map[string]models.MetricScore{})
	agg.EXPECT().Aggregate([]models.QualityMetrics{metrics, metrics}).Return(average, nil)
	store.EXPECT().SaveExperiment(gomock.Any(), gomock.Any()).Return(nil)

	service := NewService(sampler, runner, scorer, agg, store, testLogger())
	record, err := service.RunExperiment(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(record.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", record.ID, err)
	}
	if record.Prompt != req.Prompt || record.ModelID != req.ModelID || record.RunCount != 2 {
		t.Errorf("request fields not echoed: %+v", record)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	summary := record.Summary
	if summary.Attempted != 2 || summary.Produced != 2 {
		t.Errorf("attempted/produced = %d/%d, want 2/2", summary.Attempted, summary.Produced)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected 2 scored results, got %d", len(summary.Results))
	}
	if summary.Results[0].Result.Content != "first answer" || summary.Results[1].Result.Content != "second answer" {
		t.Error("result order not preserved")
	}
	if summary.Average != average {
		t.Errorf("Average = %+v, want %+v", summary.Average, average)
	}
}

func TestRunExperiment_StoreFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := validRequest()
	req.RunCount = 1
	params := []models.GenerationParameters{{Temperature: 0.5, TopP: 0.9, MaxTokens: 150}}
	results := []models.GeneratedResult{{Content: "only answer", Source: models.SourceMock}}

	sampler := mocks.NewMockParameterSampler(ctrl)
	runner := mocks.NewMockGenerationRunner(ctrl)
	scorer := mocks.NewMockResponseScorer(ctrl)
	agg := mocks.NewMockMetricsAggregator(ctrl)
	store := mocks.NewMockResultStore(ctrl)

	sampler.EXPECT().Sample(gomock.Any(), 1, req.ModelID).Return(params)
	runner.EXPECT().Run(gomock.Any(), req.Prompt, params).
		Return(models.GenerationOutcome{Results: results, Attempted: 1, Produced: 1})
	scorer.EXPECT().ScoreResponse("only answer", req.Prompt).
		Return(models.QualityMetrics{OverallScore: 0.5}, nil)
	agg.EXPECT().Aggregate(gomock.Any()).Return(models.QualityMetrics{OverallScore: 0.5}, nil)
	store.EXPECT().SaveExperiment(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	service := NewService(sampler, runner, scorer, agg, store, testLogger())
	record, err := service.RunExperiment(context.Background(), req)
	if err != nil {
		t.Fatalf("a failed save must not fail the experiment: %v", err)
	}
	if record == nil || record.Summary.Produced != 1 {
		t.Errorf("record should carry the run despite the failed save: %+v", record)
	}
}

func TestRunExperiment_NoResultsProduced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := validRequest()
	req.RunCount = 1
	params := []models.GenerationParameters{{Temperature: 0.5, TopP: 0.9, MaxTokens: 150}}

	sampler := mocks.NewMockParameterSampler(ctrl)
	runner := mocks.NewMockGenerationRunner(ctrl)
	scorer := mocks.NewMockResponseScorer(ctrl)
	agg := mocks.NewMockMetricsAggregator(ctrl)

	sampler.EXPECT().Sample(gomock.Any(), 1, req.ModelID).Return(params)
	runner.EXPECT().Run(gomock.Any(), req.Prompt, params).
		Return(models.GenerationOutcome{Attempted: 1, Produced: 0})
	agg.EXPECT().Aggregate(gomock.Any()).Return(models.QualityMetrics{}, aggregator.ErrNoData)

	// nil store: persistence disabled.
	service := NewService(sampler, runner, scorer, agg, nil, testLogger())
	record, err := service.RunExperiment(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.Summary.Attempted != 1 || record.Summary.Produced != 0 {
		t.Errorf("attempted/produced = %d/%d, want 1/0", record.Summary.Attempted, record.Summary.Produced)
	}
	if record.Summary.Average != (models.QualityMetrics{}) {
		t.Errorf("Average should be zero when nothing was produced: %+v", record.Summary.Average)
	}
}

func TestScoreResponsePassthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scorer := mocks.NewMockResponseScorer(ctrl)
	want := models.QualityMetrics{OverallScore: 0.42}
	details := map[string]models.MetricScore{"coherence": {Score: 0.42}}
	scorer.EXPECT().ScoreResponse("text", "prompt").Return(want, details)

	service := NewService(nil, nil, scorer, nil, nil, testLogger())
	got, gotDetails := service.ScoreResponse("text", "prompt")
	if got != want {
		t.Errorf("metrics = %+v, want %+v", got, want)
	}
	if gotDetails["coherence"].Score != 0.42 {
		t.Errorf("details not forwarded: %+v", gotDetails)
	}
}

func TestAggregatePassthrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	agg := mocks.NewMockMetricsAggregator(ctrl)
	agg.EXPECT().Aggregate(gomock.Any()).Return(models.QualityMetrics{}, aggregator.ErrNoData)

	service := NewService(nil, nil, nil, agg, nil, testLogger())
	_, err := service.Aggregate(nil)
	if !errors.Is(err, aggregator.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
