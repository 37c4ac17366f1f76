package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Ollama is a provider for a local Ollama server
type Ollama struct {
	baseURL     string
	model       string
	temperature float64
	attempts    uint
	httpClient  *http.Client
	logger      logger.Logger
}

func NewOllama(baseURL, model string, cfg Config, httpClient *http.Client, log logger.Logger) *Ollama {
	return &Ollama{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: cfg.Temperature,
		attempts:    cfg.MaxAttempts,
		httpClient:  httpClient,
		logger:      log,
	}
}

func (o *Ollama) Name() string {
	return ProviderOllama
}

// Complete runs a non-streaming /api/generate call
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": o.temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	return withRetry(ctx, ProviderOllama, o.attempts, o.logger, func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(requestBody))
		if err != nil {
			return "", fmt.Errorf("failed to create new request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return "", &statusError{Code: resp.StatusCode, Body: string(body)}
		}

		var response struct {
			Response string `json:"response"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
			return "", fmt.Errorf("failed to decode response body: %w", err)
		}

		return response.Response, nil
	})
}
