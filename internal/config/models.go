package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelsConfig tunes the generation path: which provider serves requests,
// the fallback ladder, backoff, and pacing.
type ModelsConfig struct {
	Provider       string        `yaml:"provider"`
	DefaultModel   string        `yaml:"default_model"`
	FallbackModels []string      `yaml:"fallback_models"`
	RequestTimeout int           `yaml:"request_timeout_ms"`
	Backoff        BackoffConfig `yaml:"backoff"`
	Pacing         PacingConfig  `yaml:"pacing"`
}

type BackoffConfig struct {
	BaseDelayMs int     `yaml:"base_delay_ms"`
	Factor      float64 `yaml:"factor"`
	MaxDelayMs  int     `yaml:"max_delay_ms"`
}

type PacingConfig struct {
	RequestDelayMs int `yaml:"request_delay_ms"`
	FailureDelayMs int `yaml:"failure_delay_ms"`
}

// LoadModelsConfig reads configs/models.yaml (or MODELS_CONFIG_PATH). A
// missing file is not an error: the built-in defaults describe a working
// gemini setup.
func LoadModelsConfig() (*ModelsConfig, error) {
	path := os.Getenv("MODELS_CONFIG_PATH")
	if path == "" {
		path = "configs/models.yaml"
	}

	var cfg ModelsConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *ModelsConfig) {
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-2.0-flash"
	}
	if len(cfg.FallbackModels) == 0 {
		cfg.FallbackModels = []string{"gemini-2.0-flash", "gemini-2.0-pro", "gemini-1.5-flash"}
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30000
	}
	if cfg.Backoff.BaseDelayMs == 0 {
		cfg.Backoff.BaseDelayMs = 1000
	}
	if cfg.Backoff.Factor == 0 {
		cfg.Backoff.Factor = 2
	}
	if cfg.Backoff.MaxDelayMs == 0 {
		cfg.Backoff.MaxDelayMs = 5000
	}
	if cfg.Pacing.RequestDelayMs == 0 {
		cfg.Pacing.RequestDelayMs = 1000
	}
	if cfg.Pacing.FailureDelayMs == 0 {
		cfg.Pacing.FailureDelayMs = 3000
	}
}

func (c *ModelsConfig) Validate() error {
	switch c.Provider {
	case "gemini", "bedrock", "openai", "mock":
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout_ms must not be negative, got %d", c.RequestTimeout)
	}
	if c.Backoff.Factor < 1 {
		return fmt.Errorf("backoff factor must be at least 1, got %g", c.Backoff.Factor)
	}
	if c.Pacing.RequestDelayMs < 0 || c.Pacing.FailureDelayMs < 0 {
		return errors.New("pacing delays must not be negative")
	}
	return nil
}
