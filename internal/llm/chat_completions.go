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

// ChatCompletions talks to any OpenAI-compatible /chat/completions endpoint (Groq, OpenAI).
type ChatCompletions struct {
	name        string
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	attempts    uint
	httpClient  *http.Client
	logger      logger.Logger
}

func NewChatCompletions(name, baseURL, model string, cfg Config, httpClient *http.Client, log logger.Logger) *ChatCompletions {
	return &ChatCompletions{
		name:        name,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		attempts:    cfg.MaxAttempts,
		httpClient:  httpClient,
		logger:      log,
	}
}

func (c *ChatCompletions) Name() string {
	return c.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *ChatCompletions) Complete(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	return withRetry(ctx, c.name, c.attempts, c.logger, func() (string, error) {
		return c.send(ctx, requestBody)
	})
}

func (c *ChatCompletions) send(ctx context.Context, requestBody []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &statusError{Code: resp.StatusCode, Body: string(body)}
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from %s", c.name)
	}

	return response.Choices[0].Message.Content, nil
}
