// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/environment-evaluator/internal/llm"
)

// Config represents the service configuration. Values come from defaults,
// an optional JSON/YAML file and environment variables, in increasing
// order of precedence.
type Config struct {
	// Server
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	// Database
	DatabaseURL       string        `mapstructure:"database_url"`
	DBMaxConns        int32         `mapstructure:"db_max_conns" validate:"min=0"`
	DBMinConns        int32         `mapstructure:"db_min_conns" validate:"min=0"`
	DBMaxConnLifetime time.Duration `mapstructure:"db_max_conn_lifetime"`

	// LLM
	LLMProvider    string  `mapstructure:"llm_provider" validate:"oneof=bedrock gemini"`
	BedrockModelID string  `mapstructure:"bedrock_model_id"`
	AWSRegion      string  `mapstructure:"aws_region"`
	GeminiAPIKey   string  `mapstructure:"gemini_api_key"`
	GeminiModel    string  `mapstructure:"gemini_model"`
	MaxTokens      int     `mapstructure:"max_tokens" validate:"min=1"`
	Temperature    float32 `mapstructure:"temperature" validate:"min=0,max=1"`
	TopP           float32 `mapstructure:"top_p" validate:"min=0,max=1"`

	// Behavior
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// envKeys maps configuration keys to the environment variables that set them.
var envKeys = map[string]string{
	"port":                 "PORT",
	"database_url":         "DATABASE_URL",
	"db_max_conns":         "DB_MAX_CONNS",
	"db_min_conns":         "DB_MIN_CONNS",
	"db_max_conn_lifetime": "DB_MAX_CONN_LIFETIME",
	"llm_provider":         "LLM_PROVIDER",
	"bedrock_model_id":     "BEDROCK_MODEL_ID",
	"aws_region":           "AWS_REGION",
	"gemini_api_key":       "GEMINI_API_KEY",
	"gemini_model":         "GEMINI_MODEL",
	"max_tokens":           "LLM_MAX_TOKENS",
	"temperature":          "LLM_TEMPERATURE",
	"top_p":                "LLM_TOP_P",
	"log_level":            "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	bedrock := llm.DefaultConfig(llm.ProviderBedrock)
	gemini := llm.DefaultConfig(llm.ProviderGemini)

	v.SetDefault("port", 8080)
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_min_conns", 0)
	v.SetDefault("db_max_conn_lifetime", time.Hour)
	v.SetDefault("llm_provider", string(llm.ProviderBedrock))
	v.SetDefault("bedrock_model_id", bedrock.Model)
	v.SetDefault("aws_region", bedrock.Region)
	v.SetDefault("gemini_model", gemini.Model)
	v.SetDefault("max_tokens", bedrock.MaxTokens)
	v.SetDefault("temperature", bedrock.Temperature)
	v.SetDefault("top_p", bedrock.TopP)
	v.SetDefault("log_level", "info")
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// The database URL is checked separately by RequireDatabase since not every
// command needs it.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.DBMinConns > c.DBMaxConns && c.DBMaxConns > 0 {
		return fmt.Errorf("config error: 'db_min_conns' must not exceed 'db_max_conns'")
	}
	return nil
}

// RequireDatabase returns an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return nil
}

// RequireLLM returns an error when the selected provider lacks credentials.
func (c *Config) RequireLLM() error {
	if c.LLMProvider == string(llm.ProviderGemini) && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required for the gemini provider")
	}
	return nil
}

// LLMConfig converts the settings into an llm.Config.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLMProvider)
	if err != nil {
		return nil, err
	}

	cfg := llm.DefaultConfig(provider)
	switch provider {
	case llm.ProviderBedrock:
		cfg.Model = c.BedrockModelID
		cfg.Region = c.AWSRegion
	case llm.ProviderGemini:
		cfg.Model = c.GeminiModel
	}
	cfg.MaxTokens = c.MaxTokens
	cfg.Temperature = c.Temperature
	cfg.TopP = c.TopP
	return cfg, nil
}
