package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// tmdbStatusError carries a non-2xx TMDB answer.
type tmdbStatusError struct {
	Code    int
	Message string
}

func (e *tmdbStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDB API error: status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("TMDB API error: status %d", e.Code)
}

func newBreaker(name string, log logger.Logger) *gobreaker.CircuitBreaker[[]byte] {
	metrics.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    constants.BreakerInterval,
		Timeout:     constants.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.BreakerFailureThreshold
		},
		// 4xx answers mean the provider is up; only transport errors and 5xx count.
		IsSuccessful: func(err error) bool {
			var se *tmdbStatusError
			if errors.As(err, &se) {
				return se.Code < 500 && se.Code != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("[TMDB] circuit breaker %s: %s -> %s", name, from, to)
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

func (t *TMDB) validateAPIKey() error {
	if t.apiKey == "" {
		return apperrors.NewAPIKeyMissingError("tmdb")
	}
	return nil
}

// getJSON performs a rate limited, breaker protected GET and decodes the body into out.
func (t *TMDB) getJSON(ctx context.Context, operation, path string, params url.Values, out interface{}) error {
	if err := t.validateAPIKey(); err != nil {
		return err
	}

	body, err := t.breaker.Execute(func() ([]byte, error) {
		return t.fetch(ctx, path, params)
	})
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("tmdb", operation).Inc()
		return apperrors.NewUpstreamError("tmdb "+operation, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamFailures.WithLabelValues("tmdb", operation).Inc()
		return apperrors.NewMalformedResponseError("tmdb "+operation, err)
	}
	return nil
}

func (t *TMDB) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := t.buildRequest(ctx, path, params)
	if err != nil {
		return nil, err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.TMDBErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return nil, &tmdbStatusError{Code: resp.StatusCode, Message: apiErr.StatusMessage}
	}
	return body, nil
}

// buildRequest authenticates with a v4 bearer token when one is configured, otherwise
// with the v3 api_key query parameter.
func (t *TMDB) buildRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if !t.bearer {
		q.Set("api_key", t.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if t.bearer {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	return req, nil
}

// posterURL joins a TMDB poster path onto the image base, or returns nil.
func posterURL(base, posterPath string) *string {
	if posterPath == "" {
		return nil
	}
	u := base + posterPath
	return &u
}
