// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/llm"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

const (
	// ConfigPathEnvVar points at an optional YAML configuration file.
	ConfigPathEnvVar = "CONFIG_PATH"
	// Default configuration file name
	defaultConfigFile = "config.yaml"
)

// Config holds the application configuration.
// Values are layered: defaults, then an optional YAML file, then environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	LLM       LLMConfig       `koanf:"llm"`
	Recommend RecommendConfig `koanf:"recommend"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port        string   `koanf:"port"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	Timeout      time.Duration `koanf:"timeout"`
}

// LLMConfig selects the language model backend. APIKey wins over the
// provider-specific keys when both are set.
type LLMConfig struct {
	Provider     string        `koanf:"provider"`
	APIKey       string        `koanf:"api_key"`
	GroqAPIKey   string        `koanf:"groq_api_key"`
	OpenAIAPIKey string        `koanf:"openai_api_key"`
	GeminiAPIKey string        `koanf:"gemini_api_key"`
	Model        string        `koanf:"model"`
	BaseURL      string        `koanf:"base_url"`
	Temperature  float64       `koanf:"temperature"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxAttempts  int           `koanf:"max_attempts"`
}

type RecommendConfig struct {
	TargetLanguage      string `koanf:"target_language"`
	MaxBackfillAttempts int    `koanf:"max_backfill_attempts"`
	FeaturedLocalize    bool   `koanf:"featured_localize"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: constants.DefaultPort},
		TMDB: TMDBConfig{
			BaseURL:      constants.TMDBBaseURL,
			ImageBaseURL: constants.TMDBImageBaseURL,
			Timeout:      constants.TMDBTimeout,
		},
		LLM: LLMConfig{
			Provider:    constants.DefaultLLMProvider,
			Temperature: 0.7,
			Timeout:     constants.LLMTimeout,
			MaxAttempts: constants.LLMMaxAttempts,
		},
		Recommend: RecommendConfig{
			TargetLanguage:      constants.DefaultTargetLanguage,
			MaxBackfillAttempts: constants.DefaultMaxBackfill,
			FeaturedLocalize:    true,
		},
		Log: LogConfig{Level: constants.DefaultLogLevel, Format: "console"},
	}
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"port":                  "server.port",
	"cors_origins":          "server.cors_origins",
	"tmdb_api_key":          "tmdb.api_key",
	"tmdb_base_url":         "tmdb.base_url",
	"tmdb_image_base_url":   "tmdb.image_base_url",
	"http_timeout":          "tmdb.timeout",
	"llm_provider":          "llm.provider",
	"llm_api_key":           "llm.api_key",
	"groq_api_key":          "llm.groq_api_key",
	"openai_api_key":        "llm.openai_api_key",
	"gemini_api_key":        "llm.gemini_api_key",
	"llm_model":             "llm.model",
	"llm_base_url":          "llm.base_url",
	"llm_temperature":       "llm.temperature",
	"llm_timeout":           "llm.timeout",
	"llm_max_attempts":      "llm.max_attempts",
	"target_language":       "recommend.target_language",
	"max_backfill_attempts": "recommend.max_backfill_attempts",
	"featured_localize":     "recommend.featured_localize",
	"log_level":             "log.level",
	"log_format":            "log.format",
	"log_file":              "log.file",
}

// envTransformFunc maps an environment variable to its config path.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load reads .env (if present), the optional YAML file and the environment.
// Environment variables take precedence over file values.
// Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Server.CORSOrigins = splitOrigins(cfg.Server.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// splitOrigins flattens comma-separated entries and drops blanks.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Validate checks required keys and value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		return apperrors.NewAPIKeyMissingError("TMDB")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return apperrors.NewConfigurationError(fmt.Sprintf("invalid port %q", c.Server.Port), err)
	}

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	switch c.LLM.Provider {
	case llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderGemini:
		if c.LLMAPIKey() == "" {
			return apperrors.NewAPIKeyMissingError(c.LLM.Provider)
		}
	case llm.ProviderOllama:
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown LLM provider %q", c.LLM.Provider), nil)
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return apperrors.NewConfigurationError(fmt.Sprintf("LLM temperature %.2f out of range [0,2]", c.LLM.Temperature), nil)
	}
	if c.LLM.MaxAttempts < 1 {
		return apperrors.NewConfigurationError("LLM max attempts must be at least 1", nil)
	}
	if c.Recommend.MaxBackfillAttempts < 1 {
		return apperrors.NewConfigurationError("max backfill attempts must be at least 1", nil)
	}
	if c.TMDB.Timeout <= 0 || c.LLM.Timeout <= 0 {
		return apperrors.NewConfigurationError("timeouts must be positive", nil)
	}
	if strings.TrimSpace(c.Recommend.TargetLanguage) == "" {
		return apperrors.NewConfigurationError("target language must not be empty", nil)
	}
	if !logger.ValidLevel(c.Log.Level) {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown log level %q", c.Log.Level), nil)
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown log format %q", c.Log.Format), nil)
	}

	return nil
}

// LLMAPIKey returns the key for the selected provider.
func (c *Config) LLMAPIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	switch c.LLM.Provider {
	case llm.ProviderGroq:
		return c.LLM.GroqAPIKey
	case llm.ProviderOpenAI:
		return c.LLM.OpenAIAPIKey
	case llm.ProviderGemini:
		return c.LLM.GeminiAPIKey
	}
	return ""
}

// LLMClientConfig converts the LLM section into the client configuration.
func (c *Config) LLMClientConfig() llm.Config {
	return llm.Config{
		Provider:    c.LLM.Provider,
		APIKey:      c.LLMAPIKey(),
		Model:       c.LLM.Model,
		BaseURL:     c.LLM.BaseURL,
		Temperature: c.LLM.Temperature,
		Timeout:     c.LLM.Timeout,
		MaxAttempts: uint(c.LLM.MaxAttempts),
	}
}

// LoggerOptions converts the log section into logger options.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}
