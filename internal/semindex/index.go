// Package semindex maintains a semantic embedding index over the product
// catalog, backing the semantic catalog endpoint and the "local" search
// backend.
package semindex

import (
	"context"
	"fmt"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"routinecraft/internal/catalog"
	"routinecraft/internal/embeddings"
)

const collectionName = "products"

// indexFileName is the export chromem writes under the data directory.
const indexFileName = "products.gob.gz"

// Index is a chromem-backed semantic product index.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	catalog    *catalog.Store
	embedFunc  chromem.EmbeddingFunc
}

// New creates an empty in-memory index over the given catalog.
func New(cat *catalog.Store, embedder embeddings.Embedder) (*Index, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{db: db, collection: col, catalog: cat, embedFunc: ef}, nil
}

// embedText is what gets embedded per product: every field the filter UI
// exposes contributes to the vector.
func embedText(p catalog.Product) string {
	return fmt.Sprintf("%s\n%s\n%s\n%s", p.Name, p.Brand, p.Category, p.Description)
}

// Build embeds every catalog product into the collection, reporting each
// product name through report (may be nil).
func (x *Index) Build(ctx context.Context, report func(i int, name string)) error {
	products := x.catalog.All()
	for i, p := range products {
		if report != nil {
			report(i, p.Name)
		}
		doc := chromem.Document{
			ID:      p.ID,
			Content: embedText(p),
			Metadata: map[string]string{
				"category": p.Category,
				"brand":    p.Brand,
			},
		}
		if err := x.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
			return fmt.Errorf("indexing product %s: %w", p.ID, err)
		}
	}
	return nil
}

// Query returns up to limit products ranked by semantic similarity.
func (x *Index) Query(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	count := x.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	results, err := x.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	var products []catalog.Product
	for _, r := range results {
		if p := x.catalog.Get(r.ID); p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}

// Count returns the number of indexed products.
func (x *Index) Count() int {
	return x.collection.Count()
}

// Persist exports the index under dir.
func (x *Index) Persist(dir string) error {
	return x.db.ExportToFile(filepath.Join(dir, indexFileName), true, "")
}

// Load restores a previously exported index from dir.
func (x *Index) Load(dir string) error {
	if err := x.db.ImportFromFile(filepath.Join(dir, indexFileName), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := x.db.GetCollection(collectionName, x.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	x.collection = col
	return nil
}
