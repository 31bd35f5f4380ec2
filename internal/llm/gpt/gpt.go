package gpt

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/promptlab/promptlab/internal/llm"
)

func (c *Client) GenerateText(ctx context.Context, request llm.Request) (*llm.Response, error) {
	model := request.ModelID
	if model == "" {
		model = c.defaultModel
	}

	messages := []openai.ChatCompletionMessage{}
	if request.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: request.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: request.Prompt,
	})

	output, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               model,
		Messages:            messages,
		MaxCompletionTokens: request.MaxTokens,
		Temperature:         float32(request.Temperature),
		TopP:                float32(request.TopP),
	})
	if err != nil {
		return nil, mapError(err)
	}

	if len(output.Choices) == 0 {
		return nil, &llm.ProviderError{Provider: "openai", Message: "no choices in response"}
	}

	choice := output.Choices[0]
	return &llm.Response{
		Content:    choice.Message.Content,
		TokensUsed: output.Usage.TotalTokens,
		StopReason: string(choice.FinishReason),
	}, nil
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &llm.ProviderError{
			Provider:   "openai",
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	return &llm.ProviderError{
		Provider: "openai",
		Message:  err.Error(),
		Err:      err,
	}
}
