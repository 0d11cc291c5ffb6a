package chat

import (
	"context"
	"log"

	"routinecraft/internal/llm"
	"routinecraft/internal/search"
	"routinecraft/internal/selection"
)

// maxAugmentResults caps how many web results are folded into a prompt.
const maxAugmentResults = 6

// Pipeline turns the current selection into routine requests and relays
// follow-up questions, maintaining one transcript per session.
type Pipeline struct {
	sessions    *Sessions
	selection   *selection.Store
	provider    llm.Provider
	model       string
	backend     search.Backend // nil disables augmentation
	maxTokens   int
	temperature float64
}

// NewPipeline creates a conversation pipeline. backend may be nil.
func NewPipeline(sessions *Sessions, sel *selection.Store, provider llm.Provider, model string, backend search.Backend, maxTokens int, temperature float64) *Pipeline {
	return &Pipeline{
		sessions:    sessions,
		selection:   sel,
		provider:    provider,
		model:       model,
		backend:     backend,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Sessions exposes the registry for handlers that need transcripts.
func (p *Pipeline) Sessions() *Sessions { return p.sessions }

// Generate builds a routine for the current selection. The session's
// transcript is reset to [system, products]; web results, when any, are
// appended as one more system turn before the provider call. An empty
// selection returns ErrEmptySelection before any network activity.
func (p *Pipeline) Generate(ctx context.Context, sessionID string) (*Reply, error) {
	products := p.selection.Products()
	if len(products) == 0 {
		return nil, ErrEmptySelection
	}

	sess := p.sessions.GetOrCreate(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.transcript = []llm.Message{
		{Role: llm.RoleSystem, Content: systemInstruction},
		{Role: llm.RoleUser, Content: buildProductsMessage(products)},
	}
	sess.routineGenerated = false

	citations := p.augment(ctx, sess, searchQueryFor(products))

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:       p.model,
		Messages:    sess.transcript,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return nil, err
	}

	sess.transcript = append(sess.transcript, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
	sess.routineGenerated = true

	return &Reply{
		SessionID: sess.ID,
		Reply:     resp.Content,
		ReplyHTML: renderMarkdown(resp.Content),
		Citations: citations,
	}, nil
}

// FollowUp appends a free-text question to the session transcript and
// returns the assistant's answer. Requires a prior successful Generate.
func (p *Pipeline) FollowUp(ctx context.Context, sessionID, question string) (*Reply, error) {
	sess := p.sessions.Get(sessionID)
	if sess == nil {
		return nil, ErrUnknownSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.routineGenerated {
		return nil, ErrNoRoutine
	}

	sess.transcript = append(sess.transcript, llm.Message{Role: llm.RoleUser, Content: question})
	citations := p.augment(ctx, sess, question)

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model:       p.model,
		Messages:    sess.transcript,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		// The question stays on the transcript; the user can retry and
		// the exchange keeps its order.
		return nil, err
	}

	sess.transcript = append(sess.transcript, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})

	return &Reply{
		SessionID: sess.ID,
		Reply:     resp.Content,
		ReplyHTML: renderMarkdown(resp.Content),
		Citations: citations,
	}, nil
}

// augment runs the search backend and, when results come back, appends
// them to the transcript as a system turn. Failures are soft: the
// routine still generates, just without citations. Callers hold sess.mu.
func (p *Pipeline) augment(ctx context.Context, sess *Session, query string) []search.Result {
	if p.backend == nil || query == "" {
		return nil
	}

	results, err := p.backend.Search(ctx, query, maxAugmentResults)
	if err != nil {
		log.Printf("chat: %s search failed, continuing without results: %v", p.backend.Name(), err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	sess.transcript = append(sess.transcript, llm.Message{Role: llm.RoleSystem, Content: buildSearchMessage(results)})
	return results
}
