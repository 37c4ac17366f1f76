package security

import (
	"regexp"
	"strings"
)

var (
	validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	unsafeKeyChars  = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	hexPattern      = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// APIKeyValidator provides validation and safe logging of provider API keys
type APIKeyValidator struct {
	minLength int
	maxLength int
}

// NewAPIKeyValidator creates a new API key validator with reasonable defaults
func NewAPIKeyValidator() *APIKeyValidator {
	return &APIKeyValidator{
		minLength: 8,
		maxLength: 512,
	}
}

// ValidateAPIKey validates API key format and length
func (v *APIKeyValidator) ValidateAPIKey(apiKey string) bool {
	if len(apiKey) < v.minLength || len(apiKey) > v.maxLength {
		return false
	}
	return validKeyPattern.MatchString(apiKey)
}

// SanitizeAPIKey trims whitespace and drops characters that could inject into URLs or headers
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	return unsafeKeyChars.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// MaskAPIKey creates a masked version for logging (shows only first/last few chars)
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}

	if len(apiKey) <= 8 {
		return "[***]"
	}

	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// IsValidTMDBKey validates the v3 TMDB API key format (32 hex characters).
// v4 read access tokens are JWTs and are accepted by IsValidBearerToken instead.
func (v *APIKeyValidator) IsValidTMDBKey(apiKey string) bool {
	if !v.ValidateAPIKey(apiKey) || len(apiKey) != 32 {
		return false
	}
	return hexPattern.MatchString(apiKey)
}

// IsValidBearerToken validates a JWT-shaped bearer token (three dot-separated segments).
func (v *APIKeyValidator) IsValidBearerToken(token string) bool {
	if !v.ValidateAPIKey(token) {
		return false
	}
	return strings.Count(token, ".") == 2
}
