package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/promptlab/promptlab/internal/api/middleware"
	"github.com/promptlab/promptlab/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/experiments").
			To(handler.RunExperiment).
			Doc("Run a prompt experiment: sample parameters, generate, score").
			Metadata(restfulspec.KeyOpenAPITags, []string{"experiments"}).
			Reads(models.ExperimentRequest{}).
			Writes(models.ExperimentRecord{}).
			Returns(200, "OK", models.ExperimentRecord{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/experiments/recent").
			To(handler.RecentExperiments).
			Doc("List recent experiments, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"experiments"}).
			Param(ws.QueryParameter("limit", "Maximum records to return (default: 10)").DataType("integer").Required(false)).
			Writes(RecentExperimentsResponse{}).
			Returns(200, "OK", RecentExperimentsResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/experiments/{experiment_id}").
			To(handler.GetExperiment).
			Doc("Fetch one experiment with its per-run results").
			Metadata(restfulspec.KeyOpenAPITags, []string{"experiments"}).
			Param(ws.PathParameter("experiment_id", "Experiment id").DataType("string")).
			Writes(models.ExperimentRecord{}).
			Returns(200, "OK", models.ExperimentRecord{}).
			Returns(404, "Experiment Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/experiments/{experiment_id}/export").
			To(handler.ExportExperiment).
			Doc("Download one experiment as csv or json").
			Metadata(restfulspec.KeyOpenAPITags, []string{"experiments"}).
			Param(ws.PathParameter("experiment_id", "Experiment id").DataType("string")).
			Param(ws.QueryParameter("format", "Export format: csv or json (default: json)").DataType("string").Required(false)).
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Experiment Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/score").
			To(handler.Score).
			Doc("Score one text against a prompt without generating").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scoring"}).
			Reads(ScoreRequest{}).
			Writes(ScoreResult{}).
			Returns(200, "OK", ScoreResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/metrics/aggregate").
			To(handler.AggregateMetrics).
			Doc("Average a list of quality metrics").
			Metadata(restfulspec.KeyOpenAPITags, []string{"scoring"}).
			Reads(AggregateRequest{}).
			Writes(AggregateResult{}).
			Returns(200, "OK", AggregateResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	container.Add(ws)
}
