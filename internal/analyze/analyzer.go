// Package analyze orchestrates plain-language explanation of legal documents:
// retrieve, size, chunk, and explain each chunk through an LLM in order.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/phuslu/log"

	"github.com/nmalahov/clarus/internal/llm"
	"github.com/nmalahov/clarus/internal/model"
	"github.com/nmalahov/clarus/internal/textproc"
)

// DocumentRetriever fetches a document by URL and returns its extracted text.
type DocumentRetriever interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Options configures an Analyzer.
type Options struct {
	ChunkSize     int     // chunk length in characters
	TokenLimit    int     // documents estimated above this are chunked
	CharsPerToken float64 // character-to-token ratio for estimates
}

// Analyzer produces plain-language explanations of legal documents.
type Analyzer struct {
	retriever DocumentRetriever
	provider  llm.Provider
	opts      Options
	logger    *log.Logger
}

// New creates an Analyzer. Zero-value options fall back to defaults.
func New(retriever DocumentRetriever, provider llm.Provider, opts Options, logger *log.Logger) *Analyzer {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = textproc.DefaultChunkSize
	}
	if opts.TokenLimit <= 0 {
		opts.TokenLimit = 128_000
	}
	if opts.CharsPerToken <= 0 {
		opts.CharsPerToken = textproc.DefaultCharsPerToken
	}
	if logger == nil {
		logger = &log.DefaultLogger
	}

	return &Analyzer{
		retriever: retriever,
		provider:  provider,
		opts:      opts,
		logger:    logger,
	}
}

// AnalyzeDocument downloads the PDF at pdfURL, extracts its text, splits it
// into chunks when the token estimate exceeds the limit, and asks the LLM to
// explain each chunk in order. Chunk order is preserved in the final
// explanation; chunks are joined with a blank line.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, pdfURL string) (*model.AnalysisResult, error) {
	text, err := a.retriever.FetchText(ctx, pdfURL)
	if err != nil {
		return nil, err
	}

	estimatedTokens := textproc.EstimateTokens(text, a.opts.CharsPerToken)
	withinLimit := estimatedTokens <= a.opts.TokenLimit

	var chunks []string
	if withinLimit {
		chunks = []string{text}
	} else {
		chunks = textproc.SplitText(text, a.opts.ChunkSize)
	}

	a.logger.Info().
		Str("url", pdfURL).
		Int("estimated_tokens", estimatedTokens).
		Int("chunks", len(chunks)).
		Msg("analyzing document")

	responses := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
			Prompt: buildChunkPrompt(chunk, i+1, len(chunks)),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: explain excerpt %d of %d: %v", model.ErrUpstream, i+1, len(chunks), err)
		}
		responses = append(responses, resp.Text)
	}

	return &model.AnalysisResult{
		Status:      model.StatusSuccess,
		Explanation: strings.Join(responses, "\n\n"),
		Metadata: &model.AnalysisMetadata{
			EstimatedTokens:  estimatedTokens,
			ChunksProcessed:  len(chunks),
			WithinTokenLimit: withinLimit,
		},
	}, nil
}

// buildChunkPrompt renders the fixed explanation instruction for one excerpt.
// The excerpt index and total are 1-based so the model can reference its
// position in the document.
func buildChunkPrompt(chunk string, index, total int) string {
	return fmt.Sprintf(
		"You are a helpful assistant that explains legal documents in plain, "+
			"bite-sized bulleted chunks. Demystify technical/legal language while "+
			"preserving the legal meaning and any obligations. Flag ambiguous parts "+
			"or items that need human/legal review.\n\n"+
			"Excerpt %d of %d:\n\n%s\n\n"+
			"Task: Explain the excerpt in simple, bite-sized bullet points. "+
			"For each bullet, indicate if it references clause numbers, parties, deadlines, "+
			"or obligations. If a section requires special attention or a lawyer, say so. "+
			"Finish with a short plain-English summary of the excerpt.",
		index, total, chunk)
}
