// Package verify orchestrates misinformation checks: collect web evidence,
// classify the claim with an LLM, and assemble a sourced verdict.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/nmalahov/clarus/internal/llm"
	"github.com/nmalahov/clarus/internal/model"
)

// EvidenceCollector gathers web evidence for a query.
type EvidenceCollector interface {
	Collect(ctx context.Context, query string, numResults int) ([]model.EvidenceSource, error)
}

// Verifier classifies free-text claims against collected web evidence.
type Verifier struct {
	collector  EvidenceCollector
	provider   llm.Provider
	numResults int
	logger     *log.Logger
}

// New creates a Verifier that collects numResults evidence sources per claim.
func New(collector EvidenceCollector, provider llm.Provider, numResults int, logger *log.Logger) *Verifier {
	if numResults <= 0 {
		numResults = 5
	}
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Verifier{
		collector:  collector,
		provider:   provider,
		numResults: numResults,
		logger:     logger,
	}
}

// VerifyClaim runs the full verification flow for query. Empty evidence
// short-circuits with model.ErrNoEvidence before any LLM call. A FALSE
// classification triggers a second LLM call for a detailed misleading-claim
// explanation over the same evidence.
func (v *Verifier) VerifyClaim(ctx context.Context, query string) (*model.VerificationResult, error) {
	sources, err := v.collector.Collect(ctx, query, v.numResults)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, model.ErrNoEvidence
	}

	v.logger.Info().Str("query", query).Int("sources", len(sources)).Msg("verifying claim")

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: buildClassifyPrompt(query, sources),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: classify claim: %v", model.ErrUpstream, err)
	}

	label := ExtractLabel(resp.Text)

	var detailed string
	if label == model.LabelFalse {
		detailResp, err := v.provider.Complete(ctx, llm.CompletionRequest{
			Prompt: buildDetailPrompt(query, sources),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: detailed explanation: %v", model.ErrUpstream, err)
		}
		detailed = detailResp.Text
	}

	return &model.VerificationResult{
		Status:              model.StatusSuccess,
		Classification:      label,
		Explanation:         resp.Text,
		DetailedExplanation: detailed,
		Sources:             model.Refs(sources),
		SourcesCount:        len(sources),
	}, nil
}

// buildClassifyPrompt serializes the claim and the full evidence list into a
// single classification instruction.
func buildClassifyPrompt(query string, sources []model.EvidenceSource) string {
	var sb strings.Builder
	sb.WriteString("You are a fact-checking assistant. Analyze the claim below against the ")
	sb.WriteString("provided web evidence and classify it as TRUE, FALSE, or PARTIALLY TRUE. ")
	sb.WriteString("If the evidence is insufficient, say UNCERTAIN.\n\n")
	sb.WriteString("Claim: " + query + "\n\n")
	sb.WriteString(evidenceBlock(sources))
	sb.WriteString("\nTask: State your classification clearly, then explain your reasoning ")
	sb.WriteString("in plain English, citing which sources support or contradict the claim.")
	return sb.String()
}

// buildDetailPrompt asks for a deeper explanation of why a claim judged
// FALSE is misleading.
func buildDetailPrompt(query string, sources []model.EvidenceSource) string {
	var sb strings.Builder
	sb.WriteString("The following claim has been classified as FALSE:\n\n")
	sb.WriteString("Claim: " + query + "\n\n")
	sb.WriteString(evidenceBlock(sources))
	sb.WriteString("\nTask: Explain in detail why this claim is false or misleading, ")
	sb.WriteString("what the evidence actually shows, and how the claim misrepresents it. ")
	sb.WriteString("Reference the sources above. Write for a general audience.")
	return sb.String()
}

// evidenceBlock renders the numbered evidence list included in prompts.
func evidenceBlock(sources []model.EvidenceSource) string {
	var sb strings.Builder
	sb.WriteString("Evidence:\n")
	for i, s := range sources {
		sb.WriteString(fmt.Sprintf("\nSource %d: %s\nURL: %s\n%s\n", i+1, s.Title, s.URL, s.Content))
	}
	return sb.String()
}
