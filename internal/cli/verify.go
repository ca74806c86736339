package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmalahov/clarus/internal/worker"
)

var (
	verifyTimeout time.Duration
	verifyJSON    bool
	verifyFile    string
	verifyWorkers int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a claim against live web evidence",
	Long: `Verify searches the web for a claim, scrapes the top results, and asks
an LLM to classify the claim as TRUE, FALSE, PARTIALLY TRUE, or UNCERTAIN,
citing the collected sources. A FALSE verdict includes a detailed
explanation of why the claim is misleading.

With --file, claims are read from a file (one per line) and verified
concurrently.

Example:
  clarus verify "the earth is flat"
  clarus verify "drinking water cures cancer" --json
  clarus verify --file claims.txt --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "verification timeout (whole batch in --file mode)")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "print the full result as JSON")
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "read claims from a file, one per line")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", runtime.NumCPU(), "concurrent workers for --file mode")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if verifyFile == "" && len(args) == 0 {
		return fmt.Errorf("provide a claim argument or --file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	verifier := buildVerifier(cfg, provider, logger)

	if verifyFile != "" {
		return runVerifyBatch(verifier, verifyFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	result, err := verifier.VerifyClaim(ctx, args[0])
	if err != nil {
		return err
	}

	if verifyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Classification: %s\n\n%s\n", result.Classification, result.Explanation)
	if result.DetailedExplanation != "" {
		fmt.Printf("\nDetailed explanation:\n%s\n", result.DetailedExplanation)
	}
	fmt.Printf("\nSources (%d):\n", result.SourcesCount)
	for _, src := range result.Sources {
		fmt.Printf("  - %s (%s)\n", src.Title, src.URL)
	}
	return nil
}

func runVerifyBatch(verifier worker.ClaimVerifier, path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	batch := worker.NewBatchVerifier(verifier, verifyWorkers)
	results, err := batch.ProcessFile(ctx, path)
	if err != nil {
		return err
	}

	if verifyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	var failed int
	for _, res := range results {
		if res.Err() != nil {
			failed++
			fmt.Printf("FAILED          %s: %v\n", res.Claim, res.Err())
			continue
		}
		fmt.Printf("%-15s %s\n", res.Result.Classification, res.Claim)
	}
	fmt.Fprintf(os.Stderr, "\n%d claims, %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d claims failed", failed, len(results))
	}
	return nil
}
