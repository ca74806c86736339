package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	explainTimeout time.Duration
	explainJSON    bool
)

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain <pdf-url>",
	Short: "Explain a legal document in plain language",
	Long: `Explain downloads a PDF, extracts its text, and produces a plain-language
explanation of the legal content. Large documents are split into excerpts
and explained excerpt by excerpt.

Example:
  clarus explain https://example.com/contract.pdf
  clarus explain https://example.com/contract.pdf --json
  clarus explain https://example.com/contract.pdf --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().DurationVar(&explainTimeout, "timeout", 15*time.Minute, "overall analysis timeout")
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "print the full result as JSON")
}

func runExplain(cmd *cobra.Command, args []string) error {
	pdfURL := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), explainTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	analyzer := buildAnalyzer(cfg, provider, logger)

	result, err := analyzer.AnalyzeDocument(ctx, pdfURL)
	if err != nil {
		return err
	}

	if explainJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Explanation)
	if result.Metadata != nil && verbose {
		fmt.Fprintf(os.Stderr, "\nestimated tokens: %d, chunks: %d, within limit: %v\n",
			result.Metadata.EstimatedTokens, result.Metadata.ChunksProcessed, result.Metadata.WithinTokenLimit)
	}
	return nil
}
