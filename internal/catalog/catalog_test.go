package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
)

func testProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Hydrating Cream Cleanser", Brand: "Pure", Category: "cleanser", Description: "Gentle daily cleanser."},
		{ID: "p2", Name: "Renewal Night Cream", Brand: "Pure", Category: "moisturizer", Description: "Rich overnight repair."},
		{ID: "p3", Name: "Vitamin C Serum", Brand: "Glow", Category: "serum", Description: "Brightening antioxidant serum."},
		{ID: "p4", Name: "Clay Mask", Brand: "Glow", Category: "mask", Description: "Deep-pore clay treatment."},
	}
}

func setupCatalog(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	store.Replace(testProducts())
	return store
}

func TestUnmarshalStringID(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":"abc","name":"Toner"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != "abc" {
		t.Errorf("ID = %q, want %q", p.ID, "abc")
	}
	if p.Name != "Toner" {
		t.Errorf("Name = %q, want %q", p.Name, "Toner")
	}
}

func TestUnmarshalNumericID(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":42,"name":"Toner"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != "42" {
		t.Errorf("ID = %q, want %q", p.ID, "42")
	}
}

func TestUnmarshalBadID(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":{"nested":true}}`), &p); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestMatchSpans(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []Span
	}{
		{"Hydrating Cream Cleanser", "cream", []Span{{10, 15}}},
		{"Hydrating Cream Cleanser", "re", []Span{{11, 13}}},
		{"Renewal Night Cream", "re", []Span{{0, 2}, {15, 17}}},
		{"Hydrating Cream Cleanser", "", nil},
		{"Hydrating Cream Cleanser", "xyz", nil},
		{"aaa", "aa", []Span{{0, 2}}},
		{"CREAM", "cream", []Span{{0, 5}}},
	}
	for _, tt := range tests {
		got := MatchSpans(tt.name, tt.term)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("MatchSpans(%q, %q) = %v, want %v", tt.name, tt.term, got, tt.want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	store := setupCatalog(t)

	got := store.Filter("cleanser", "")
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("Filter(cleanser) = %v, want [p1]", got)
	}

	if got := store.Filter("", ""); len(got) != 4 {
		t.Errorf("Filter(all) returned %d products, want 4", len(got))
	}
}

func TestFilterByTerm(t *testing.T) {
	store := setupCatalog(t)

	got := store.Filter("", "cream")
	if len(got) != 2 {
		t.Fatalf("Filter(cream) returned %d products, want 2", len(got))
	}
	// Catalog order must be preserved.
	if got[0].ID != "p1" || got[1].ID != "p2" {
		t.Errorf("Filter(cream) order = [%s %s], want [p1 p2]", got[0].ID, got[1].ID)
	}

	// Term matches names only, not descriptions.
	if got := store.Filter("", "antioxidant"); len(got) != 0 {
		t.Errorf("Filter(antioxidant) matched %d products, want 0", len(got))
	}
}

func TestFilterCombined(t *testing.T) {
	store := setupCatalog(t)

	got := store.Filter("moisturizer", "cream")
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("Filter(moisturizer, cream) = %v, want [p2]", got)
	}
	if got := store.Filter("serum", "cream"); len(got) != 0 {
		t.Errorf("Filter(serum, cream) = %v, want empty", got)
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	store := setupCatalog(t)
	want := []string{"cleanser", "moisturizer", "serum", "mask"}
	if got := store.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestViewCarriesSpans(t *testing.T) {
	store := setupCatalog(t)
	views := View(store.Filter("", "cream"), "cream")
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if len(views[0].MatchSpans) != 1 {
		t.Fatalf("expected 1 span on %q, got %v", views[0].Name, views[0].MatchSpans)
	}
	span := views[0].MatchSpans[0]
	if views[0].Name[span.Start:span.End] != "Cream" {
		t.Errorf("span slice = %q, want %q", views[0].Name[span.Start:span.End], "Cream")
	}
}

func TestLoadFilesMergesAndDedups(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, filepath.Join(dir, "a.json"), `{"products":[{"id":"p1","name":"One"},{"id":"p2","name":"Two"}]}`)
	writeCatalog(t, filepath.Join(dir, "b.json"), `{"products":[{"id":"p2","name":"Dup"},{"id":"p3","name":"Three"}]}`)

	products, err := LoadFiles(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	// First occurrence wins for duplicate ids.
	if products[1].Name != "Two" {
		t.Errorf("p2 name = %q, want %q", products[1].Name, "Two")
	}
}

func TestLoadFilesNoMatches(t *testing.T) {
	if _, err := LoadFiles(filepath.Join(t.TempDir(), "*.json")); err == nil {
		t.Fatal("expected error for empty glob")
	}
}

func TestStoreLoadFailureStaysEmpty(t *testing.T) {
	store := NewStore()
	if err := store.Load(filepath.Join(t.TempDir(), "*.json")); err == nil {
		t.Fatal("expected load error")
	}
	if store.Len() != 0 {
		t.Errorf("store has %d products after failed load, want 0", store.Len())
	}
}

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func setupRouter(store *Store, index SemanticIndex) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, store, index)
	return r
}

func TestListEndpoint(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog?q=cream", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Products []ProductView `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(body.Products))
	}
	if len(body.Products[0].MatchSpans) == 0 {
		t.Error("expected match spans on filtered products")
	}
}

func TestListEndpointEmptyIsArray(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog?q=nosuchproduct", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if string(body["products"]) != "[]" {
		t.Errorf("products = %s, want []", body["products"])
	}
}

func TestGetEndpoint(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog/p3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var p Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if p.Name != "Vitamin C Serum" {
		t.Errorf("Name = %q, want %q", p.Name, "Vitamin C Serum")
	}
}

func TestGetEndpointUnknown(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSemanticEndpointWithoutIndex(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog/semantic?q=hydration", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	r := setupRouter(setupCatalog(t), nil)

	req := httptest.NewRequest("GET", "/api/catalog/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Categories) != 4 {
		t.Errorf("expected 4 categories, got %v", body.Categories)
	}
}
