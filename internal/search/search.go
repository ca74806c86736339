// Package search provides the web text search capability used for
// evidence collection.
package search

import "context"

// Result is a single search engine hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Searcher issues a text search for a query, capped at max results.
// Implementations return results in engine order; no deduplication or
// re-ranking is performed.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]Result, error)
}
