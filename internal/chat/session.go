package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"routinecraft/internal/llm"
)

// Session holds one routine conversation. The transcript is append-only,
// lives only in memory, and is reset wholesale by Generate. The per-
// session mutex makes transcript mutation strictly sequential: a second
// generate or follow-up for the same session waits for the first.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu               sync.Mutex
	transcript       []llm.Message
	routineGenerated bool
}

// Transcript returns a copy of the session's messages.
func (s *Session) Transcript() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// RoutineGenerated reports whether a routine has been generated.
func (s *Session) RoutineGenerated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.routineGenerated
}

// Sessions is the in-memory session registry.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Create issues a new session with a fresh uuid.
func (r *Sessions) Create() *Session {
	s := &Session{ID: uuid.New().String(), CreatedAt: time.Now().UTC()}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil.
func (r *Sessions) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// GetOrCreate returns the session with the given id, creating a new one
// when id is empty or unknown.
func (r *Sessions) GetOrCreate(id string) *Session {
	if id != "" {
		if s := r.Get(id); s != nil {
			return s
		}
	}
	return r.Create()
}
