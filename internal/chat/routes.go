package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"routinecraft/internal/search"
)

// RegisterRoutes mounts the conversation API.
func RegisterRoutes(r chi.Router, pipeline *Pipeline) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/generate", handleGenerate(pipeline))
		r.Post("/followup", handleFollowUp(pipeline))
		r.Get("/ws", handleWebSocket(pipeline))
		r.Get("/{session_id}/transcript", handleTranscript(pipeline))
	})
}

type generateRequest struct {
	SessionID string `json:"session_id"`
}

func handleGenerate(pipeline *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		reply, err := pipeline.Generate(r.Context(), req.SessionID)
		if err != nil {
			writeChatError(w, err)
			return
		}
		writeReply(w, reply)
	}
}

type followUpRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

func handleFollowUp(pipeline *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req followUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Question == "" {
			http.Error(w, `{"error":"question is required"}`, http.StatusBadRequest)
			return
		}

		reply, err := pipeline.FollowUp(r.Context(), req.SessionID, req.Question)
		if err != nil {
			writeChatError(w, err)
			return
		}
		writeReply(w, reply)
	}
}

func handleTranscript(pipeline *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := pipeline.Sessions().Get(chi.URLParam(r, "session_id"))
		if sess == nil {
			http.Error(w, `{"error":"unknown session id"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"session_id": sess.ID,
			"messages":   sess.Transcript(),
		})
	}
}

func writeReply(w http.ResponseWriter, reply *Reply) {
	if reply.Citations == nil {
		reply.Citations = []search.Result{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}

// writeChatError maps pipeline errors to inline JSON notices. User
// mistakes (nothing selected, no routine yet, bad session) are 400s;
// everything else, including upstream failures, is a 500 with the
// captured error text.
func writeChatError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrEmptySelection) || errors.Is(err, ErrNoRoutine) || errors.Is(err, ErrUnknownSession) {
		status = http.StatusBadRequest
	}
	http.Error(w, `{"error":"`+jsonEscape(err.Error())+`"}`, status)
}

// jsonEscape escapes a string for direct embedding in a JSON literal.
func jsonEscape(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}
