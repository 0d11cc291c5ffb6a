package chat

import (
	"fmt"
	"strings"

	"routinecraft/internal/catalog"
	"routinecraft/internal/llm"
	"routinecraft/internal/search"
)

// systemInstruction is always the first transcript entry.
const systemInstruction = `You are a knowledgeable product advisor. The user has picked products from a catalog and wants a practical usage routine: what to use, in what order, how often, and anything to watch out for when combining them. Be concrete and concise, use markdown, and only discuss the listed products unless asked otherwise.`

// RoutineMessages builds the two-turn transcript seed for a routine
// request over an explicit product list. Used by callers that bypass
// the selection store, like the MCP generate_routine tool.
func RoutineMessages(products []catalog.Product) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemInstruction},
		{Role: llm.RoleUser, Content: buildProductsMessage(products)},
	}
}

// buildProductsMessage renders the selected products as the structured
// user message that seeds a routine request.
func buildProductsMessage(products []catalog.Product) string {
	var b strings.Builder
	b.WriteString("Build a usage routine for these products:\n")
	for i, p := range products {
		fmt.Fprintf(&b, "\n%d. %s", i+1, p.Name)
		if p.Brand != "" {
			fmt.Fprintf(&b, " by %s", p.Brand)
		}
		if p.Category != "" {
			fmt.Fprintf(&b, " (%s)", p.Category)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "\n   %s", p.Description)
		}
	}
	return b.String()
}

// buildSearchMessage summarizes web results as a system message so the
// model can ground its reply and cite sources.
func buildSearchMessage(results []search.Result) string {
	var b strings.Builder
	b.WriteString("Relevant web search results. Use them where helpful and cite the source URL:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n   %s", i+1, r.Title, r.Snippet, r.URL)
	}
	return b.String()
}

// searchQueryFor builds the augmentation query for a generate call from
// the selected product names.
func searchQueryFor(products []catalog.Product) string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return strings.Join(names, " ")
}
