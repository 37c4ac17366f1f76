// Package llm provides text-completion clients for the language model backends we support.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/pkg/httputil"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Provider turns a prompt into a single text response.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	MaxAttempts uint
}

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	groqBaseURL   = "https://api.groq.com/openai/v1"
	openAIBaseURL = "https://api.openai.com/v1"
	ollamaBaseURL = "http://localhost:11434"
)

// New builds the provider named by cfg.Provider.
func New(ctx context.Context, cfg Config, log logger.Logger) (Provider, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.LLMTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = constants.LLMMaxAttempts
	}
	httpClient := httputil.NewHTTPClient(cfg.Timeout)

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGroq:
		if cfg.APIKey == "" {
			return nil, apperrors.NewAPIKeyMissingError(ProviderGroq)
		}
		return NewChatCompletions(ProviderGroq, withDefault(cfg.BaseURL, groqBaseURL), withDefault(cfg.Model, constants.DefaultGroqModel), cfg, httpClient, log), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, apperrors.NewAPIKeyMissingError(ProviderOpenAI)
		}
		return NewChatCompletions(ProviderOpenAI, withDefault(cfg.BaseURL, openAIBaseURL), withDefault(cfg.Model, constants.DefaultOpenAIModel), cfg, httpClient, log), nil
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, apperrors.NewAPIKeyMissingError(ProviderGemini)
		}
		return NewGemini(ctx, withDefault(cfg.Model, constants.DefaultGeminiModel), cfg, log)
	case ProviderOllama:
		return NewOllama(withDefault(cfg.BaseURL, ollamaBaseURL), withDefault(cfg.Model, constants.DefaultOllamaModel), cfg, httpClient, log), nil
	default:
		return nil, apperrors.NewConfigurationError(fmt.Sprintf("unknown LLM provider %q", cfg.Provider), nil)
	}
}

// Close releases provider resources when the provider holds any.
func Close(p Provider) error {
	if c, ok := p.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// statusError is returned for non-2xx provider responses.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("received non-200 status code: %d - %s", e.Code, e.Body)
}

func (e *statusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
