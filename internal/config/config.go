package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
}

// ServerConfig configures the HTTP API surface
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// HTTPConfig configures outbound fetching (documents and evidence pages)
type HTTPConfig struct {
	DocumentTimeout time.Duration `yaml:"document_timeout" mapstructure:"document_timeout"`
	PageTimeout     time.Duration `yaml:"page_timeout" mapstructure:"page_timeout"`
	UserAgent       string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// SearchConfig configures web evidence collection
type SearchConfig struct {
	NumResults    int     `yaml:"num_results" mapstructure:"num_results"`
	MaxExcerpt    int     `yaml:"max_excerpt" mapstructure:"max_excerpt"`
	FetchRate     float64 `yaml:"fetch_rate" mapstructure:"fetch_rate"` // page fetches per second
	RespectRobots bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// AnalysisConfig configures document chunking and sizing
type AnalysisConfig struct {
	ChunkSize     int     `yaml:"chunk_size" mapstructure:"chunk_size"`
	TokenLimit    int     `yaml:"token_limit" mapstructure:"token_limit"`
	CharsPerToken float64 `yaml:"chars_per_token" mapstructure:"chars_per_token"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			DocumentTimeout: 30 * time.Second,
			PageTimeout:     16 * time.Second,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			MaxBodyBytes:    10_000_000,
		},
		Search: SearchConfig{
			NumResults:    5,
			MaxExcerpt:    3000,
			FetchRate:     2, // one fetch every 500ms
			RespectRobots: true,
		},
		Analysis: AnalysisConfig{
			ChunkSize:     30000,
			TokenLimit:    128_000,
			CharsPerToken: 4.0,
		},
		LLM: LLMConfig{
			Provider:  "gemini",
			Model:     "gemma-3-27b-it",
			Timeout:   120 * time.Second,
			MaxTokens: 4096,
		},
	}
}

// FromViper overlays values bound in viper (flags, env, config file)
// onto the defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Analysis.ChunkSize <= 0 {
		return fmt.Errorf("analysis.chunk_size must be positive, got %d", c.Analysis.ChunkSize)
	}
	if c.Analysis.CharsPerToken <= 0 {
		return fmt.Errorf("analysis.chars_per_token must be positive, got %v", c.Analysis.CharsPerToken)
	}
	if c.Analysis.TokenLimit <= 0 {
		return fmt.Errorf("analysis.token_limit must be positive, got %d", c.Analysis.TokenLimit)
	}
	if c.Search.NumResults <= 0 {
		return fmt.Errorf("search.num_results must be positive, got %d", c.Search.NumResults)
	}
	switch c.LLM.Provider {
	case "gemini", "openai", "anthropic", "claude", "ollama":
	default:
		return fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai, anthropic, ollama)", c.LLM.Provider)
	}
	return nil
}
