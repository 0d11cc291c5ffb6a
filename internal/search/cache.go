package search

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

// CachedBackend wraps another backend with an LRU cache keyed by the
// query and result count. Search providers bill per query; the same
// product names get looked up on every regenerate.
type CachedBackend struct {
	inner Backend
	cache *lru.Cache[string, []Result]
}

// NewCachedBackend wraps inner with an LRU of the given size (<= 0 uses
// the default).
func NewCachedBackend(inner Backend, size int) (*CachedBackend, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, []Result](size)
	if err != nil {
		return nil, fmt.Errorf("creating search cache: %w", err)
	}
	return &CachedBackend{inner: inner, cache: cache}, nil
}

func (b *CachedBackend) Name() string { return b.inner.Name() }

func (b *CachedBackend) Search(ctx context.Context, query string, max int) ([]Result, error) {
	key := fmt.Sprintf("%d|%s", max, query)
	if results, ok := b.cache.Get(key); ok {
		return results, nil
	}

	results, err := b.inner.Search(ctx, query, max)
	if err != nil {
		return nil, err
	}
	b.cache.Add(key, results)
	return results, nil
}
