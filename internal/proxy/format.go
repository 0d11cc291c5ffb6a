package proxy

import (
	"fmt"
	"strings"

	"routinecraft/internal/llm"
	"routinecraft/internal/search"
)

// flattenTranscript renders a transcript as a single prompt: one
// "ROLE: content" line per turn, joined by blank lines.
func flattenTranscript(messages []llm.Message) string {
	parts := make([]string, len(messages))
	for i, m := range messages {
		parts[i] = fmt.Sprintf("%s: %s", strings.ToUpper(string(m.Role)), m.Content)
	}
	return strings.Join(parts, "\n\n")
}

// formatResultsBlock renders search results as the text block prepended
// to the prompt as a system message.
func formatResultsBlock(results []search.Result) string {
	var b strings.Builder
	b.WriteString("Web search results:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n%s\n%s\n", i+1, r.Title, r.Snippet, r.URL)
	}
	return b.String()
}

// lastUserContent returns the content of the last user turn, or "".
func lastUserContent(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
