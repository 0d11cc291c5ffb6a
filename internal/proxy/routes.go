// Package proxy implements the stateless relay endpoints that hold the
// provider credentials: clients POST a message or transcript and get
// back normalized JSON, never touching the provider API directly.
package proxy

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"routinecraft/internal/llm"
	"routinecraft/internal/search"
)

const (
	// maxChatResults caps the results folded into a /chat prompt.
	maxChatResults = 6
	// maxSearchResults caps a /search response.
	maxSearchResults = 8
)

// Handler serves the proxy endpoints.
type Handler struct {
	provider llm.Provider
	model    string
	backend  search.Backend // nil means search is not configured
}

// NewHandler creates a proxy handler. backend may be nil.
func NewHandler(provider llm.Provider, model string, backend search.Backend) *Handler {
	return &Handler{provider: provider, model: model, backend: backend}
}

// RegisterRoutes mounts the proxy endpoints at the router root, matching
// the paths external clients already use.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/search", h.handleSearch)
}

type chatRequest struct {
	Message  string        `json:"message"`
	Messages []llm.Message `json:"messages"`
}

type chatResponse struct {
	Reply      string          `json:"reply"`
	WebResults []search.Result `json:"web_results"`
	OpenAI     json.RawMessage `json:"openai"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Assemble the transcript: an explicit message becomes a single user
	// turn; otherwise the client sent the whole transcript.
	messages := req.Messages
	query := req.Message
	if req.Message != "" {
		messages = []llm.Message{{Role: llm.RoleUser, Content: req.Message}}
	} else {
		query = lastUserContent(messages)
	}
	if len(messages) == 0 {
		writeError(w, http.StatusBadRequest, "message or messages is required")
		return
	}

	// Search augmentation is best-effort: a failed lookup downgrades the
	// reply, it does not fail it.
	var webResults []search.Result
	if h.backend != nil && query != "" {
		results, err := h.backend.Search(r.Context(), query, maxChatResults)
		if err != nil {
			log.Printf("proxy: %s search failed: %v", h.backend.Name(), err)
		} else if len(results) > 0 {
			webResults = results
			messages = append([]llm.Message{
				{Role: llm.RoleSystem, Content: formatResultsBlock(results)},
			}, messages...)
		}
	}

	prompt := flattenTranscript(messages)
	resp, err := h.provider.Complete(r.Context(), llm.CompletionRequest{
		Model:    h.model,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply := resp.Content
	if reply == "" {
		reply = llm.ExtractText(resp.Raw)
	}
	if webResults == nil {
		webResults = []search.Result{}
	}
	raw := resp.Raw
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{
		Reply:      reply,
		WebResults: webResults,
		OpenAI:     raw,
	})
}

type searchRequest struct {
	Q string `json:"q"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	if h.backend == nil {
		writeError(w, http.StatusBadRequest, "no search backend is configured")
		return
	}

	results, err := h.backend.Search(r.Context(), req.Q, maxSearchResults)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

// decodeJSON rejects non-JSON bodies with a 400 and decodes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			writeError(w, http.StatusBadRequest, "request body must be JSON")
			return false
		}
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
