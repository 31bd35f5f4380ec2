package gpt

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client       *openai.Client
	defaultModel string
}

func NewClient(apiKey string, defaultModel string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if defaultModel == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}

	return &Client{
		client:       openai.NewClient(apiKey),
		defaultModel: defaultModel,
	}, nil
}
