package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nmalahov/clarus/internal/model"
)

// ClaimVerifier verifies a single claim.
type ClaimVerifier interface {
	VerifyClaim(ctx context.Context, query string) (*model.VerificationResult, error)
}

// VerifyJob verifies one claim as a pool job.
type VerifyJob struct {
	Claim    string
	Verifier ClaimVerifier
}

// Execute runs the verification and wraps the outcome.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	result, err := j.Verifier.VerifyClaim(ctx, j.Claim)
	return &VerifyResult{
		Claim:  j.Claim,
		Result: result,
		Error:  err,
	}
}

// VerifyResult pairs a claim with its verification outcome.
type VerifyResult struct {
	Claim  string
	Result *model.VerificationResult
	Error  error
}

// Err returns the verification error, if any.
func (r *VerifyResult) Err() error {
	return r.Error
}

// BatchVerifier verifies multiple claims concurrently.
type BatchVerifier struct {
	verifier    ClaimVerifier
	concurrency int
}

// NewBatchVerifier creates a batch verifier with the given concurrency.
func NewBatchVerifier(verifier ClaimVerifier, concurrency int) *BatchVerifier {
	return &BatchVerifier{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies the given claims on the pool and returns one result
// per claim, in input order.
func (b *BatchVerifier) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&VerifyJob{Claim: claim, Verifier: b.verifier})
	}

	// Jobs complete in arbitrary order; reorder by claim. Claims are unique
	// within a batch (ReadClaimsFromFile dedupes, and duplicate inputs map
	// to the same result anyway).
	byClaim := make(map[string]*VerifyResult, len(claims))
	for _, res := range pool.Wait() {
		vr := res.(*VerifyResult)
		byClaim[vr.Claim] = vr
	}

	out := make([]*VerifyResult, 0, len(claims))
	for _, claim := range claims {
		if vr, ok := byClaim[claim]; ok {
			out = append(out, vr)
		}
	}
	return out
}

// ProcessFile reads claims from a file and verifies them concurrently.
func (b *BatchVerifier) ProcessFile(ctx context.Context, path string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads one claim per line, skipping blanks, comment lines
// and duplicates.
func ReadClaimsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
