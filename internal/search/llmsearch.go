package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"routinecraft/internal/llm"
)

// LLMBackend asks a language model to emulate a web search and parses
// its free-text answer as JSON. There is no guarantee the model actually
// searched anything; results may be stale or invented. Kept behind an
// explicit config opt-in, with the web backend preferred.
type LLMBackend struct {
	provider llm.Provider
	model    string
}

// NewLLMBackend creates a pseudo-search backend over the given provider.
func NewLLMBackend(provider llm.Provider, model string) *LLMBackend {
	return &LLMBackend{provider: provider, model: model}
}

func (b *LLMBackend) Name() string { return "llm" }

const llmSearchSystem = `You are a web search engine. For the user's query, respond with ONLY a JSON array of result objects, each with "title", "snippet", and "url" string fields. No prose, no code fences.`

func (b *LLMBackend) Search(ctx context.Context, query string, max int) ([]Result, error) {
	resp, err := b.provider.Complete(ctx, llm.CompletionRequest{
		Model: b.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: llmSearchSystem},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Search the web for: %s\nReturn at most %d results.", query, max)},
		},
		MaxTokens:   1024,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("llm search: %w", err)
	}

	results := parseResultsJSON(resp.Content)
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// parseResultsJSON tolerantly extracts a JSON array of results from model
// output: code fences are stripped and the outermost [...] is isolated.
// Anything unparseable yields no results rather than an error.
func parseResultsJSON(content string) []Result {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return nil
	}

	var results []Result
	if err := json.Unmarshal([]byte(s[start:end+1]), &results); err != nil {
		return nil
	}

	// Drop entries with no usable content.
	out := results[:0]
	for _, r := range results {
		if r.Title == "" && r.Snippet == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
