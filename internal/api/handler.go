package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/api/middleware"
	"github.com/promptlab/promptlab/internal/experiment"
	"github.com/promptlab/promptlab/internal/export"
	"github.com/promptlab/promptlab/internal/models"
	"github.com/promptlab/promptlab/internal/store"
)

// ExperimentService is the slice of the experiment service the API needs.
type ExperimentService interface {
	RunExperiment(ctx context.Context, req models.ExperimentRequest) (*models.ExperimentRecord, error)
	ScoreResponse(content string, prompt string) (models.QualityMetrics, map[string]models.MetricScore)
	Aggregate(metrics []models.QualityMetrics) (models.QualityMetrics, error)
}

// ExperimentReader reads persisted experiments.
type ExperimentReader interface {
	GetExperiment(ctx context.Context, id string) (*models.ExperimentRecord, error)
	RecentExperiments(ctx context.Context, limit int) ([]models.ExperimentRecord, error)
}

type Handler struct {
	service ExperimentService
	reader  ExperimentReader
	logger  *zerolog.Logger
}

func NewHandler(service ExperimentService, reader ExperimentReader, logger *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		reader:  reader,
		logger:  logger,
	}
}

// POST /api/v1/experiments
// Body: models.ExperimentRequest
// Returns: models.ExperimentRecord
func (h *Handler) RunExperiment(req *restful.Request, resp *restful.Response) {
	var expRequest models.ExperimentRequest
	if err := req.ReadEntity(&expRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	// An omitted range means "use the defaults", a present-but-broken one
	// is rejected by the service.
	if expRequest.ParameterRange == (models.ParameterRange{}) {
		expRequest.ParameterRange = models.DefaultParameterRange()
	}

	h.logger.Info().
		Str("model", expRequest.ModelID).
		Int("run_count", expRequest.RunCount).
		Msg("Start experiment")

	ctx := req.Request.Context()
	record, err := h.service.RunExperiment(ctx, expRequest)
	if err != nil {
		if experiment.IsValidationError(err) {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("Experiment failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("experiment_id", record.ID).
		Int("produced", record.Summary.Produced).
		Float64("overall", record.Summary.Average.OverallScore).
		Msg("Experiment complete")

	resp.WriteHeaderAndEntity(http.StatusOK, record)
}

// POST /api/v1/score
func (h *Handler) Score(req *restful.Request, resp *restful.Response) {
	var scoreRequest ScoreRequest
	if err := req.ReadEntity(&scoreRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	metrics, details := h.service.ScoreResponse(scoreRequest.Content, scoreRequest.Prompt)

	resp.WriteHeaderAndEntity(http.StatusOK, ScoreResult{
		Metrics: metrics,
		Details: details,
	})
}

// POST /api/v1/metrics/aggregate
func (h *Handler) AggregateMetrics(req *restful.Request, resp *restful.Response) {
	var aggregateRequest AggregateRequest
	if err := req.ReadEntity(&aggregateRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	average, err := h.service.Aggregate(aggregateRequest.Metrics)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, AggregateResult{
		Average: average,
		Count:   len(aggregateRequest.Metrics),
	})
}

// GET /api/v1/experiments/recent
func (h *Handler) RecentExperiments(req *restful.Request, resp *restful.Response) {
	limit := 0
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			middleware.HandleError(resp, fmt.Errorf("invalid limit: %q", limitStr), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.reader.RecentExperiments(req.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list experiments")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.ExperimentRecord{}
	}

	resp.WriteHeaderAndEntity(http.StatusOK, RecentExperimentsResponse{Experiments: records})
}

// GET /api/v1/experiments/{experiment_id}
func (h *Handler) GetExperiment(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("experiment_id")

	record, err := h.reader.GetExperiment(req.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("experiment_id", id).Msg("Failed to load experiment")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, record)
}

// GET /api/v1/experiments/{experiment_id}/export?format=csv|json
func (h *Handler) ExportExperiment(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("experiment_id")
	format := req.QueryParameter("format")
	if format == "" {
		format = "json"
	}
	if format != "csv" && format != "json" {
		middleware.HandleError(resp, fmt.Errorf("unsupported format: %q", format), http.StatusBadRequest)
		return
	}

	record, err := h.reader.GetExperiment(req.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("experiment_id", id).Msg("Failed to load experiment")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	switch format {
	case "csv":
		resp.AddHeader("Content-Type", "text/csv")
		resp.AddHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "experiment-"+id+".csv"))
		resp.WriteHeader(http.StatusOK)
		err = export.CSV(resp.ResponseWriter, *record)
	case "json":
		resp.AddHeader("Content-Type", restful.MIME_JSON)
		resp.WriteHeader(http.StatusOK)
		err = export.JSON(resp.ResponseWriter, *record)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("experiment_id", id).Msg("Export failed mid-stream")
	}
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
