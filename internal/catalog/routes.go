package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// SemanticIndex is implemented by the semantic product index. It is
// optional; when nil the semantic endpoint reports that no index is
// configured.
type SemanticIndex interface {
	Query(ctx context.Context, query string, limit int) ([]Product, error)
}

// RegisterRoutes mounts the catalog API.
func RegisterRoutes(r chi.Router, store *Store, index SemanticIndex) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/categories", handleCategories(store))
		r.Get("/semantic", handleSemantic(index))
		r.Get("/{id}", handleGet(store))
	})
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		term := r.URL.Query().Get("q")

		products := store.Filter(category, term)
		views := View(products, term)
		if views == nil {
			views = []ProductView{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"products": views})
	}
}

func handleCategories(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats := store.Categories()
		if cats == nil {
			cats = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"categories": cats})
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		p := store.Get(id)
		if p == nil {
			http.Error(w, `{"error":"product not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	}
}

func handleSemantic(index SemanticIndex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if index == nil {
			http.Error(w, `{"error":"semantic index is not configured"}`, http.StatusBadRequest)
			return
		}
		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, `{"error":"q is required"}`, http.StatusBadRequest)
			return
		}
		limit := 10
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		products, err := index.Query(r.Context(), q, limit)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if products == nil {
			products = []Product{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"products": products})
	}
}
