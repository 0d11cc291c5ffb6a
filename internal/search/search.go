// Package search provides the web-result lookup used to augment routine
// generation and follow-up questions with citations.
package search

import "context"

// Result is a single search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Backend performs a search and returns up to max results.
type Backend interface {
	// Search runs the query. Implementations return at most max results
	// and never more; a nil slice means no results.
	Search(ctx context.Context, query string, max int) ([]Result, error)
	// Name identifies the backend in logs and error messages.
	Name() string
}
