// Package errors defines custom error types for better error handling and debugging.
// ServiceError carries a type classification used to pick the HTTP status.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ServiceError represents errors raised while building recommendations
type ServiceError struct {
	Type    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeAPIKeyMissing        = "API_KEY_MISSING"
	ErrorTypeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	ErrorTypeMalformedResponse    = "MALFORMED_RESPONSE"
	ErrorTypeInvalidRequest       = "INVALID_REQUEST"
	ErrorTypeTimeout              = "TIMEOUT"
)

// NewServiceError creates a new ServiceError
func NewServiceError(errorType, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewAPIKeyMissingError creates an API key missing error
func NewAPIKeyMissingError(service string) *ServiceError {
	return NewServiceError(ErrorTypeAPIKeyMissing, fmt.Sprintf("API key missing for %s", service), nil)
}

// NewUpstreamError reports a provider that could not be reached or answered with a failure status
func NewUpstreamError(provider string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeUpstreamUnavailable, fmt.Sprintf("%s request failed", provider), cause)
}

// NewMalformedResponseError reports a provider response that could not be decoded
func NewMalformedResponseError(provider string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeMalformedResponse, fmt.Sprintf("unexpected %s response", provider), cause)
}

// NewInvalidRequestError creates a client input error
func NewInvalidRequestError(message string) *ServiceError {
	return NewServiceError(ErrorTypeInvalidRequest, message, nil)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string, cause error) *ServiceError {
	return NewServiceError(ErrorTypeTimeout, fmt.Sprintf("%s timed out", operation), cause)
}

// TypeOf returns the ServiceError type found in err's chain, or "" if there is none.
func TypeOf(err error) string {
	var se *ServiceError
	if stderrors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsType reports whether err wraps a ServiceError of the given type.
func IsType(err error, errorType string) bool {
	return TypeOf(err) == errorType
}
