package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"routinecraft/internal/catalog"
	"routinecraft/internal/chat"
	"routinecraft/internal/llm"
)

// handleSearchProducts filters the catalog by name substring and category.
func (s *Server) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	category := request.GetString("category", "")

	products := s.catalog.Filter(category, query)
	if len(products) == 0 {
		return mcp.NewToolResultText("No products match."), nil
	}

	return mcp.NewToolResultText(formatProducts(products)), nil
}

// handleGetProduct returns the full record for one product.
func (s *Server) handleGetProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	p := s.catalog.Get(id)
	if p == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no product with id %q", id)), nil
	}

	return mcp.NewToolResultText(formatProducts([]catalog.Product{*p})), nil
}

// handleListCategories lists the catalog's distinct categories.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats := s.catalog.Categories()
	if len(cats) == 0 {
		return mcp.NewToolResultText("The catalog has no categories (is it loaded?)."), nil
	}
	return mcp.NewToolResultText(strings.Join(cats, "\n")), nil
}

// handleGenerateRoutine runs a one-shot routine generation for an
// explicit product-id list, without touching the server's selection.
func (s *Server) handleGenerateRoutine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.provider == nil {
		return mcp.NewToolResultError("no LLM provider is configured"), nil
	}

	idsStr, err := request.RequireString("product_ids")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: product_ids"), nil
	}

	var products []catalog.Product
	for _, id := range strings.Split(idsStr, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p := s.catalog.Get(id)
		if p == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no product with id %q", id)), nil
		}
		products = append(products, *p)
	}
	if len(products) == 0 {
		return mcp.NewToolResultError("product_ids must name at least one product"), nil
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model:    s.model,
		Messages: chat.RoutineMessages(products),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("routine generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(resp.Content), nil
}

// formatProducts renders products one per block for tool output.
func formatProducts(products []catalog.Product) string {
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s", p.ID, p.Name)
		if p.Brand != "" {
			fmt.Fprintf(&b, " by %s", p.Brand)
		}
		if p.Category != "" {
			fmt.Fprintf(&b, "\nCategory: %s", p.Category)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "\n%s", p.Description)
		}
	}
	return b.String()
}
