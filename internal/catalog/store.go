package catalog

import (
	"log"
	"strings"
)

// Store holds the loaded product catalog and answers filter queries.
// All methods are synchronous; Load is called once at startup. A load
// failure surfaces as an empty catalog, never as a handler error.
type Store struct {
	products []Product
	byID     map[string]*Product
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Product)}
}

// Load populates the store from catalog files matching the glob pattern.
// On failure the store stays empty and the error is logged once.
func (s *Store) Load(pattern string) error {
	products, err := LoadFiles(pattern)
	if err != nil {
		log.Printf("catalog: load failed, serving empty catalog: %v", err)
		return err
	}
	s.replace(products)
	return nil
}

// Replace swaps in an already-loaded product list (used by tests and the
// MCP server, which load catalogs out of band).
func (s *Store) Replace(products []Product) {
	s.replace(products)
}

func (s *Store) replace(products []Product) {
	s.products = products
	s.byID = make(map[string]*Product, len(products))
	for i := range s.products {
		s.byID[s.products[i].ID] = &s.products[i]
	}
}

// All returns every product in catalog order.
func (s *Store) All() []Product {
	return s.products
}

// Get returns the product with the given id, or nil if unknown.
func (s *Store) Get(id string) *Product {
	return s.byID[id]
}

// Len returns the number of loaded products.
func (s *Store) Len() int { return len(s.products) }

// Filter returns the subsequence of products whose category equals the
// given value (or all, when category is empty) and whose name contains
// the search term case-insensitively. Catalog order is preserved.
func (s *Store) Filter(category, term string) []Product {
	lowTerm := strings.ToLower(term)
	var out []Product
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if lowTerm != "" && !strings.Contains(strings.ToLower(p.Name), lowTerm) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct product categories in first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// View projects a filtered product list into ProductViews carrying the
// match spans for the active search term.
func View(products []Product, term string) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p, MatchSpans: MatchSpans(p.Name, term)}
	}
	return views
}
