package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/filmyfim/filmyfim/internal/errors"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TMDB_API_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "gsk_test", cfg.LLMAPIKey())
	assert.Equal(t, "Persian", cfg.Recommend.TargetLanguage)
	assert.Equal(t, 12, cfg.Recommend.MaxBackfillAttempts)
	assert.True(t, cfg.Recommend.FeaturedLocalize)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("TARGET_LANGUAGE", "French")
	t.Setenv("MAX_BACKFILL_ATTEMPTS", "4")
	t.Setenv("FEATURED_LOCALIZE", "false")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gem-key", cfg.LLMAPIKey())
	assert.Equal(t, "French", cfg.Recommend.TargetLanguage)
	assert.Equal(t, 4, cfg.Recommend.MaxBackfillAttempts)
	assert.False(t, cfg.Recommend.FeaturedLocalize)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)

	llmCfg := cfg.LLMClientConfig()
	assert.Equal(t, "gemini", llmCfg.Provider)
	assert.Equal(t, "gem-key", llmCfg.APIKey)
	assert.Equal(t, uint(3), llmCfg.MaxAttempts)
}

func TestLoadYAMLFileBelowEnv(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
recommend:
  target_language: German
log:
  level: debug
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("TARGET_LANGUAGE", "Spanish")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "Spanish", cfg.Recommend.TargetLanguage)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingTMDBKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TMDB_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAPIKeyMissing))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.TMDB.APIKey = "key"
		cfg.LLM.GroqAPIKey = "gsk"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		errType string
	}{
		{"missing llm key", func(c *Config) { c.LLM.GroqAPIKey = "" }, apperrors.ErrorTypeAPIKeyMissing},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, apperrors.ErrorTypeConfigurationInvalid},
		{"bad port", func(c *Config) { c.Server.Port = "http" }, apperrors.ErrorTypeConfigurationInvalid},
		{"temperature range", func(c *Config) { c.LLM.Temperature = 3 }, apperrors.ErrorTypeConfigurationInvalid},
		{"backfill range", func(c *Config) { c.Recommend.MaxBackfillAttempts = 0 }, apperrors.ErrorTypeConfigurationInvalid},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, apperrors.ErrorTypeConfigurationInvalid},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, apperrors.ErrorTypeConfigurationInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.errType))
		})
	}
}

func TestOllamaNeedsNoKey(t *testing.T) {
	cfg := defaultConfig()
	cfg.TMDB.APIKey = "key"
	cfg.LLM.Provider = "ollama"

	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.LLMAPIKey())
}
