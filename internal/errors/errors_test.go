package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceErrorMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewUpstreamError("tmdb", cause)

	assert.Equal(t, "UPSTREAM_UNAVAILABLE: tmdb request failed (caused by: connection refused)", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestTypeOfWrapped(t *testing.T) {
	err := fmt.Errorf("recommend: %w", NewInvalidRequestError("movie_title is required"))

	assert.Equal(t, ErrorTypeInvalidRequest, TypeOf(err))
	assert.True(t, IsType(err, ErrorTypeInvalidRequest))
	assert.Equal(t, "", TypeOf(stderrors.New("plain")))
}

func TestErrorWithoutCause(t *testing.T) {
	assert.Equal(t, "API_KEY_MISSING: API key missing for tmdb", NewAPIKeyMissingError("tmdb").Error())
}

func TestTimeoutErrorKeepsCause(t *testing.T) {
	err := NewTimeoutError("language model request", context.DeadlineExceeded)

	assert.Equal(t, ErrorTypeTimeout, TypeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "language model request timed out")
}
