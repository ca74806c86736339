// Package evidence collects web evidence for claim verification: it searches
// for a query, scrapes each result page, and returns bounded excerpts.
package evidence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/net/html/charset"

	"github.com/nmalahov/clarus/internal/model"
	"github.com/nmalahov/clarus/internal/search"
	"github.com/nmalahov/clarus/internal/util"
)

// Options configures a Collector.
type Options struct {
	PageTimeout time.Duration       // per-page fetch timeout
	UserAgent   string
	MaxExcerpt  int                 // max scraped characters per source
	MaxBytes    int64               // max response bytes read per page
	FetchRate   float64             // page fetches per second
	Robots      *util.RobotsChecker // nil disables robots checking
}

// Collector turns a free-text query into a list of evidence sources.
type Collector struct {
	searcher   search.Searcher
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *util.HostLimiter
	userAgent  string
	maxExcerpt int
	maxBytes   int64
	logger     *log.Logger
}

// NewCollector creates a Collector over the given searcher.
func NewCollector(searcher search.Searcher, opts Options, logger *log.Logger) *Collector {
	if opts.PageTimeout == 0 {
		opts.PageTimeout = 16 * time.Second
	}
	if opts.MaxExcerpt == 0 {
		opts.MaxExcerpt = 3000
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = 2_000_000
	}
	if opts.FetchRate == 0 {
		opts.FetchRate = 2 // one fetch every 500ms
	}
	if logger == nil {
		logger = &log.DefaultLogger
	}

	return &Collector{
		searcher:   searcher,
		httpClient: &http.Client{Timeout: opts.PageTimeout},
		robots:     opts.Robots,
		limiter:    util.NewHostLimiter(opts.FetchRate, 1),
		userAgent:  opts.UserAgent,
		maxExcerpt: opts.MaxExcerpt,
		maxBytes:   opts.MaxBytes,
		logger:     logger,
	}
}

// Collect searches for query and scrapes up to numResults result pages
// sequentially. A per-source fetch or parse failure degrades that source to
// snippet-only content and never aborts the batch. A failed search returns an
// empty list, not an error: callers treat "no evidence" uniformly whether the
// search found nothing or the search service was down.
func (c *Collector) Collect(ctx context.Context, query string, numResults int) ([]model.EvidenceSource, error) {
	results, err := c.searcher.Search(ctx, query, numResults)
	if err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("web search failed, returning no evidence")
		return []model.EvidenceSource{}, nil
	}

	sources := make([]model.EvidenceSource, 0, len(results))
	for _, res := range results {
		content := res.Snippet

		excerpt, err := c.fetchExcerpt(ctx, res.URL)
		if err != nil {
			c.logger.Debug().Err(err).Str("url", res.URL).Msg("page fetch failed, using snippet only")
		} else if excerpt != "" {
			content = res.Snippet + "\n\nFull content: " + excerpt
		}

		sources = append(sources, model.EvidenceSource{
			Title:   res.Title,
			URL:     res.URL,
			Content: content,
			Snippet: res.Snippet,
		})
	}

	return sources, nil
}

// fetchExcerpt fetches a single result page and extracts its readable text.
// Fetches are paced per host so result batches do not hammer a single site.
func (c *Collector) fetchExcerpt(ctx context.Context, pageURL string) (string, error) {
	if c.robots != nil && !c.robots.IsAllowed(ctx, pageURL) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	if err := c.limiter.Wait(ctx, pageURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Normalize non-UTF-8 pages before parsing.
	body, err := charset.NewReader(io.LimitReader(resp.Body, c.maxBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode charset: %w", err)
	}

	return ExtractReadableText(body, c.maxExcerpt)
}
