package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	client       *bedrockruntime.Client
	defaultModel string
}

func NewClient(ctx context.Context, region string, defaultModel string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		client:       bedrockruntime.NewFromConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}
