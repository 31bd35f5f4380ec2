package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/promptlab/promptlab/internal/experiment"
	"github.com/promptlab/promptlab/internal/models"
)

// RunExperimentInput is the MCP tool input schema (matches HTTP API field names).
type RunExperimentInput struct {
	Prompt         string                `json:"prompt" jsonschema:"prompt every sampled run is generated against"`
	ModelID        string                `json:"model_id,omitempty" jsonschema:"preferred model, the fallback ladder applies when it fails"`
	RunCount       int                   `json:"run_count" jsonschema:"number of parameter tuples to sample (1-20)"`
	ParameterRange models.ParameterRange `json:"parameter_range,omitempty" jsonschema:"sampling bounds, defaults apply when omitted"`
}

// ScoreInput is the MCP tool input schema for standalone scoring.
type ScoreInput struct {
	Content string `json:"content" jsonschema:"generated text to score"`
	Prompt  string `json:"prompt" jsonschema:"prompt the text was generated against"`
}

// ScoreOutput bundles the four metrics with per-metric diagnostics.
type ScoreOutput struct {
	Metrics models.QualityMetrics         `json:"metrics"`
	Details map[string]models.MetricScore `json:"details"`
}

// NewRunExperimentHandler returns a tool handler that uses the given service.
// Pass the returned function to mcp.AddTool.
func NewRunExperimentHandler(svc *experiment.Service) func(context.Context, *mcp.CallToolRequest, RunExperimentInput) (*mcp.CallToolResult, models.ExperimentRecord, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RunExperimentInput) (*mcp.CallToolResult, models.ExperimentRecord, error) {
		return RunExperiment(ctx, svc, req, input)
	}
}

// RunExperiment runs the full experiment pipeline and returns the record.
func RunExperiment(
	ctx context.Context,
	svc *experiment.Service,
	req *mcp.CallToolRequest,
	input RunExperimentInput,
) (*mcp.CallToolResult, models.ExperimentRecord, error) {
	expRequest := models.ExperimentRequest{
		Prompt:         input.Prompt,
		ModelID:        input.ModelID,
		RunCount:       input.RunCount,
		ParameterRange: input.ParameterRange,
	}

	// An omitted range means "use the defaults", same as the HTTP API.
	if expRequest.ParameterRange == (models.ParameterRange{}) {
		expRequest.ParameterRange = models.DefaultParameterRange()
	}

	record, err := svc.RunExperiment(ctx, expRequest)
	if err != nil {
		return nil, models.ExperimentRecord{}, err
	}

	return nil, *record, nil
}

// NewScoreHandler returns a tool handler for scoring one text without
// generating. Pass the returned function to mcp.AddTool.
func NewScoreHandler(svc *experiment.Service) func(context.Context, *mcp.CallToolRequest, ScoreInput) (*mcp.CallToolResult, ScoreOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ScoreInput) (*mcp.CallToolResult, ScoreOutput, error) {
		return Score(ctx, svc, req, input)
	}
}

// Score runs the heuristic metrics against an already-generated text.
func Score(
	ctx context.Context,
	svc *experiment.Service,
	req *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	metrics, details := svc.ScoreResponse(input.Content, input.Prompt)

	return nil, ScoreOutput{
		Metrics: metrics,
		Details: details,
	}, nil
}
