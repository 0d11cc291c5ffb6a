package semindex

import (
	"context"
	"strings"
	"testing"

	"routinecraft/internal/catalog"
)

// keywordEmbedder produces deterministic vectors from keyword counts so
// similarity ranking is predictable without a real model.
type keywordEmbedder struct{}

var keywords = []string{"gel", "cream", "serum", "mask"}

func (keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(keywords)+1)
		vec[len(keywords)] = 0.1 // keep the norm non-zero
		lower := strings.ToLower(text)
		for k, kw := range keywords {
			vec[k] = float32(strings.Count(lower, kw))
		}
		out[i] = vec
	}
	return out, nil
}

func (keywordEmbedder) Dimensions() int { return len(keywords) + 1 }
func (keywordEmbedder) Name() string    { return "keyword" }

func testCatalog() *catalog.Store {
	store := catalog.NewStore()
	store.Replace([]catalog.Product{
		{ID: "gel", Name: "Cleansing Gel", Brand: "Pure", Category: "cleanser", Description: "Foaming gel for daily use."},
		{ID: "cream", Name: "Night Cream", Brand: "Pure", Category: "moisturizer", Description: "Rich cream for overnight repair."},
		{ID: "serum", Name: "Vitamin C Serum", Brand: "Glow", Category: "serum", Description: "Brightening serum."},
	})
	return store
}

func buildIndex(t *testing.T) *Index {
	t.Helper()
	index, err := New(testCatalog(), keywordEmbedder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := index.Build(context.Background(), nil); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return index
}

func TestBuildReportsProgress(t *testing.T) {
	index, err := New(testCatalog(), keywordEmbedder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var names []string
	err = index.Build(context.Background(), func(i int, name string) {
		names = append(names, name)
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("report fired %d times, want 3", len(names))
	}
	if index.Count() != 3 {
		t.Errorf("Count = %d, want 3", index.Count())
	}
}

func TestQueryRanksBySimilarity(t *testing.T) {
	index := buildIndex(t)

	products, err := index.Query(context.Background(), "foaming gel gel gel", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].ID != "gel" {
		t.Errorf("top result = %s, want gel", products[0].ID)
	}
}

func TestQueryEmptyIndex(t *testing.T) {
	index, err := New(testCatalog(), keywordEmbedder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	products, err := index.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if products != nil {
		t.Errorf("got %v, want nil for an empty index", products)
	}
}

func TestQueryLimitClamped(t *testing.T) {
	index := buildIndex(t)

	products, err := index.Query(context.Background(), "cream serum gel", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("got %d products, want all 3", len(products))
	}
}

func TestPersistAndLoad(t *testing.T) {
	dir := t.TempDir()

	index := buildIndex(t)
	if err := index.Persist(dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	restored, err := New(testCatalog(), keywordEmbedder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := restored.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Count() != 3 {
		t.Errorf("Count after load = %d, want 3", restored.Count())
	}

	products, err := restored.Query(context.Background(), "overnight cream", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(products) != 1 || products[0].ID != "cream" {
		t.Errorf("top result = %v, want the cream", products)
	}
}

func TestLoadMissingFile(t *testing.T) {
	index, err := New(testCatalog(), keywordEmbedder{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := index.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for a missing index file")
	}
}
