package search

import (
	"context"
	"fmt"

	"routinecraft/internal/catalog"
)

// ProductIndex is the subset of the semantic index the local backend
// needs. Satisfied by *semindex.Index.
type ProductIndex interface {
	Query(ctx context.Context, query string, limit int) ([]catalog.Product, error)
}

// LocalBackend answers searches from the semantic product index instead
// of the open web. Snippets are truncated descriptions; URLs point at
// the catalog API so citations stay resolvable offline.
type LocalBackend struct {
	index ProductIndex
}

// NewLocalBackend creates a catalog-backed search backend.
func NewLocalBackend(index ProductIndex) *LocalBackend {
	return &LocalBackend{index: index}
}

func (b *LocalBackend) Name() string { return "local" }

const snippetLimit = 200

func (b *LocalBackend) Search(ctx context.Context, query string, max int) ([]Result, error) {
	products, err := b.index.Query(ctx, query, max)
	if err != nil {
		return nil, fmt.Errorf("local search: %w", err)
	}

	var results []Result
	for _, p := range products {
		snippet := p.Description
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit] + "…"
		}
		results = append(results, Result{
			Title:   fmt.Sprintf("%s (%s)", p.Name, p.Brand),
			Snippet: snippet,
			URL:     "/api/catalog/" + p.ID,
		})
	}
	return results, nil
}
