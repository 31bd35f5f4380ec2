package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/promptlab/promptlab/internal/llm"
)

// safetySettings hold every harm category at the most permissive threshold
// that still leaves moderation enabled.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
}

type Client struct {
	client       *genai.Client
	defaultModel string
}

func NewClient(ctx context.Context, apiKey string, defaultModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return &Client{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (c *Client) GenerateText(ctx context.Context, request llm.Request) (*llm.Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(request.MaxTokens),
		SafetySettings:  safetySettings,
	}

	if request.Temperature > 0 {
		temp := float32(request.Temperature)
		config.Temperature = &temp
	}
	if request.TopP > 0 {
		topP := float32(request.TopP)
		config.TopP = &topP
	}
	if request.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.System}},
		}
	}

	model := request.ModelID
	if model == "" {
		model = c.defaultModel
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genai.Text(request.Prompt), config)
	if err != nil {
		return nil, mapError(err)
	}

	response := &llm.Response{
		Content: result.Text(),
	}
	if result.UsageMetadata != nil {
		response.TokensUsed = int(result.UsageMetadata.TotalTokenCount)
	}
	if len(result.Candidates) > 0 {
		response.StopReason = string(result.Candidates[0].FinishReason)
	}

	return response, nil
}

func mapError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{
			Provider:   "gemini",
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &llm.ProviderError{
		Provider: "gemini",
		Message:  err.Error(),
		Err:      err,
	}
}
