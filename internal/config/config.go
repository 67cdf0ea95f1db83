package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for costpilot.
type Config struct {
	CatalogPath string          `mapstructure:"catalog_path"`
	Server      ServerConfig    `mapstructure:"server"`
	Extractor   ExtractorConfig `mapstructure:"extractor"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Anthropic   AnthropicConfig `mapstructure:"anthropic"`
	LogLevel    string          `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	RateLimitEnabled bool   `mapstructure:"rate_limit_enabled"`
	OptimizePerMin   int    `mapstructure:"optimize_per_min"`
	ReadsPerMin      int    `mapstructure:"reads_per_min"`
}

// ExtractorConfig holds LLM-backed requirement extraction settings.
type ExtractorConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   string `mapstructure:"timeout"`
}

// TimeoutDuration parses the extractor timeout, falling back to 10s.
func (e ExtractorConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic-specific settings.
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from file, environment, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("catalog_path", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.rate_limit_enabled", true)
	v.SetDefault("server.optimize_per_min", 20)
	v.SetDefault("server.reads_per_min", 60)
	v.SetDefault("extractor.enabled", false)
	v.SetDefault("extractor.provider", "openai")
	v.SetDefault("extractor.model", "gpt-4o-mini")
	v.SetDefault("extractor.max_tokens", 300)
	v.SetDefault("extractor.timeout", "10s")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("anthropic.base_url", "https://api.anthropic.com/v1")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/costpilot")
	}

	// Environment variables
	v.SetEnvPrefix("COSTPILOT")
	v.AutomaticEnv()

	// Bind specific env vars
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", "COSTPILOT_OPENAI_BASE_URL")
	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("anthropic.base_url", "COSTPILOT_ANTHROPIC_BASE_URL")
	_ = v.BindEnv("extractor.enabled", "COSTPILOT_EXTRACTOR_ENABLED")
	_ = v.BindEnv("extractor.provider", "COSTPILOT_EXTRACTOR_PROVIDER")
	_ = v.BindEnv("extractor.model", "COSTPILOT_EXTRACTOR_MODEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Resolve catalog path to absolute when set
	if cfg.CatalogPath != "" && !filepath.IsAbs(cfg.CatalogPath) {
		abs, err := filepath.Abs(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("resolving catalog path: %w", err)
		}
		cfg.CatalogPath = abs
	}

	return &cfg, nil
}
