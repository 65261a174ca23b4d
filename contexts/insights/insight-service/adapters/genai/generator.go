package genaiadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// RetryConfig holds retry configuration for generation requests.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per request.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// Generator implements ports.TextGenerator against the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
	retry  RetryConfig
	logger *slog.Logger
}

func NewGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{
		client: client,
		model:  model,
		retry:  DefaultRetryConfig(),
		logger: logger,
	}, nil
}

func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	backoff := g.retry.BackoffBase
	var lastErr error
	for attempt := 1; attempt <= g.retry.MaxAttempts; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err == nil {
			text := resp.Text()
			if strings.TrimSpace(text) != "" {
				return text, nil
			}
			err = fmt.Errorf("empty response from model %s", g.model)
		}
		lastErr = err
		g.logger.Warn("generation attempt failed",
			"event", "genai_attempt_failed",
			"module", "insights/insight-service",
			"layer", "adapter_genai",
			"attempt", attempt,
			"error", err.Error(),
		)
		if attempt == g.retry.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * g.retry.BackoffMultiplier)
		if backoff > g.retry.MaxBackoff {
			backoff = g.retry.MaxBackoff
		}
	}
	return "", fmt.Errorf("generate content after %d attempts: %w", g.retry.MaxAttempts, lastErr)
}
