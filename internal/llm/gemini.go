package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Gemini is a provider for Google Gemini
type Gemini struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	timeout  time.Duration
	attempts uint
	logger   logger.Logger
}

// NewGemini creates a Gemini client that is reused for every completion.
func NewGemini(ctx context.Context, model string, cfg Config, log logger.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(float32(cfg.Temperature))

	return &Gemini{
		client:   client,
		model:    m,
		timeout:  cfg.Timeout,
		attempts: cfg.MaxAttempts,
		logger:   log,
	}, nil
}

func (g *Gemini) Name() string {
	return ProviderGemini
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// Complete generates a response for prompt using Gemini
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, ProviderGemini, g.attempts, g.logger, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}

		if len(resp.Candidates) == 0 {
			return "", fmt.Errorf("no candidates returned from Gemini")
		}

		candidate := resp.Candidates[0]
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			return "", fmt.Errorf("empty content returned from Gemini")
		}

		if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
			return string(txt), nil
		}

		return "", fmt.Errorf("unexpected response format from Gemini")
	})
}
