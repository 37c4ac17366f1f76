package llm

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"

	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// withRetry runs call, retrying network failures, 429s and 5xx with exponential backoff.
// Other 4xx responses fail immediately.
func withRetry(ctx context.Context, name string, attempts uint, log logger.Logger, call func() (string, error)) (string, error) {
	if attempts == 0 {
		attempts = 1
	}
	return retry.DoWithData(
		func() (string, error) {
			out, err := call()
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				return "", retry.Unrecoverable(err)
			}
			return out, err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(constants.LLMRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("[%s] attempt %d failed: %v", name, n+1, err)
		}),
	)
}
