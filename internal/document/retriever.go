// Package document downloads remote PDFs and extracts their text.
package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/nmalahov/clarus/internal/model"
)

// Retriever fetches a PDF from a URL and extracts plain text from its pages.
// The downloaded file is a scoped resource: it is removed after extraction
// on both success and failure paths.
type Retriever struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	tmpDir     string
}

// NewRetriever creates a Retriever with the given fetch configuration.
func NewRetriever(timeout time.Duration, userAgent string, maxBytes int64) *Retriever {
	return &Retriever{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		tmpDir:    os.TempDir(),
	}
}

// FetchText downloads the PDF at rawURL and returns the concatenated text of
// all its pages, pages joined with a blank line. Pages yielding no text are
// skipped. A document with no extractable text at all returns
// model.ErrNoTextExtracted.
func (r *Retriever) FetchText(ctx context.Context, rawURL string) (string, error) {
	path, err := r.download(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrRetrieval, err)
	}
	defer os.Remove(path)

	text, err := extractText(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrExtraction, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", model.ErrNoTextExtracted
	}

	return text, nil
}

// download fetches the document bytes to a request-unique temporary file and
// returns its path. The caller owns removal.
func (r *Retriever) download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Unique name per request so concurrent downloads never collide.
	path := filepath.Join(r.tmpDir, "clarus-"+uuid.NewString()+".pdf")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	_, err = io.Copy(f, io.LimitReader(resp.Body, r.maxBytes))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}

	return path, nil
}

// extractText reads every page of the PDF at path, skipping pages that fail
// to extract or contain no text.
func extractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n"), nil
}
