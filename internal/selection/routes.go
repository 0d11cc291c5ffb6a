package selection

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"routinecraft/internal/catalog"
)

// RegisterRoutes mounts the selection API.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/selection", func(r chi.Router) {
		r.Get("/", handleGet(store))
		r.Post("/toggle", handleToggle(store))
		r.Delete("/", handleClear(store))
		r.Delete("/{id}", handleRemove(store))
	})
}

type selectionResponse struct {
	IDs      []string          `json:"ids"`
	Products []catalog.Product `json:"products"`
}

func writeSelection(w http.ResponseWriter, store *Store) {
	resp := selectionResponse{IDs: store.IDs(), Products: store.Products()}
	if resp.IDs == nil {
		resp.IDs = []string{}
	}
	if resp.Products == nil {
		resp.Products = []catalog.Product{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSelection(w, store)
	}
}

type toggleRequest struct {
	ID string `json:"id"`
}

func handleToggle(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, `{"error":"id is required"}`, http.StatusBadRequest)
			return
		}

		if _, err := store.Toggle(r.Context(), req.ID); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		writeSelection(w, store)
	}
}

func handleRemove(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Remove(r.Context(), chi.URLParam(r, "id"))
		writeSelection(w, store)
	}
}

func handleClear(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.Clear(r.Context())
		writeSelection(w, store)
	}
}
