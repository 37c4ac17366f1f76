// Package constants defines timeout values and retry limits used throughout the application.
package constants

import "time"

const (
	// Per-call timeout for TMDB requests
	TMDBTimeout = 10 * time.Second

	// Per-call timeout for language model completions
	LLMTimeout = 30 * time.Second

	// LLM retries on transient failures
	LLMMaxAttempts = 3
	LLMRetryDelay  = 500 * time.Millisecond

	// Circuit breaker settings for the catalog provider
	BreakerFailureThreshold = 5
	BreakerOpenTimeout      = 30 * time.Second
	BreakerInterval         = 60 * time.Second

	// HTTP server
	ReadHeaderTimeout = 10 * time.Second

	// Long enough for an in-flight model call to finish
	ShutdownTimeout = LLMTimeout + 5*time.Second
)
