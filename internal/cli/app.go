package cli

import (
	"fmt"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/viper"

	"github.com/nmalahov/clarus/internal/analyze"
	"github.com/nmalahov/clarus/internal/config"
	"github.com/nmalahov/clarus/internal/document"
	"github.com/nmalahov/clarus/internal/evidence"
	"github.com/nmalahov/clarus/internal/llm"
	"github.com/nmalahov/clarus/internal/search"
	"github.com/nmalahov/clarus/internal/util"
	"github.com/nmalahov/clarus/internal/verify"
)

// loadConfig assembles the effective configuration from defaults, the config
// file, CLARUS_* environment variables, and well-known provider key vars.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}

	// Fall back to the provider's conventional env var for the API key.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "ollama":
			if base := os.Getenv("OLLAMA_BASE_URL"); base != "" && cfg.LLM.BaseURL == "" {
				cfg.LLM.BaseURL = base
			}
		}
	}

	return cfg, nil
}

// newLogger builds the process logger. Verbose mode lowers the level and
// switches to human-readable console output.
func newLogger() *log.Logger {
	logger := &log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
	}
	if verbose {
		logger.Level = log.DebugLevel
		logger.Writer = &log.ConsoleWriter{ColorOutput: true, EndWithMessage: true}
	}
	return logger
}

// buildProvider constructs the configured LLM provider.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Timeout:   cfg.LLM.Timeout,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return provider, nil
}

// buildAnalyzer wires the document analysis pipeline.
func buildAnalyzer(cfg *config.Config, provider llm.Provider, logger *log.Logger) *analyze.Analyzer {
	retriever := document.NewRetriever(cfg.HTTP.DocumentTimeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)
	return analyze.New(retriever, provider, analyze.Options{
		ChunkSize:     cfg.Analysis.ChunkSize,
		TokenLimit:    cfg.Analysis.TokenLimit,
		CharsPerToken: cfg.Analysis.CharsPerToken,
	}, logger)
}

// buildVerifier wires the claim verification pipeline.
func buildVerifier(cfg *config.Config, provider llm.Provider, logger *log.Logger) *verify.Verifier {
	searcher := search.NewDuckDuckGo(cfg.HTTP.PageTimeout, cfg.HTTP.UserAgent)

	var robots *util.RobotsChecker
	if cfg.Search.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.PageTimeout)
	}

	collector := evidence.NewCollector(searcher, evidence.Options{
		PageTimeout: cfg.HTTP.PageTimeout,
		UserAgent:   cfg.HTTP.UserAgent,
		MaxExcerpt:  cfg.Search.MaxExcerpt,
		MaxBytes:    cfg.HTTP.MaxBodyBytes,
		FetchRate:   cfg.Search.FetchRate,
		Robots:      robots,
	}, logger)

	return verify.New(collector, provider, cfg.Search.NumResults, logger)
}
