package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"routinecraft/internal/catalog"
	"routinecraft/internal/llm"
)

// mockProvider implements llm.Provider for testing.
type mockProvider struct {
	reply   string
	lastReq llm.CompletionRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.lastReq = req
	return &llm.CompletionResponse{Content: m.reply}, nil
}

func testCatalog() *catalog.Store {
	store := catalog.NewStore()
	store.Replace([]catalog.Product{
		{ID: "gel", Name: "Cleansing Gel", Brand: "Pure", Category: "cleanser", Description: "Daily foaming gel."},
		{ID: "cream", Name: "Night Cream", Brand: "Pure", Category: "moisturizer"},
		{ID: "serum", Name: "Vitamin C Serum", Brand: "Glow", Category: "serum"},
	})
	return store
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_products", searchProductsTool, "search_products"},
		{"get_product", getProductTool, "get_product"},
		{"list_categories", listCategoriesTool, "list_categories"},
		{"generate_routine", generateRoutineTool, "generate_routine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	cat := testCatalog()
	srv := NewServer(cat, &mockProvider{}, "test-model")

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.catalog != cat {
		t.Error("catalog not set correctly")
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleSearchProducts(t *testing.T) {
	srv := NewServer(testCatalog(), nil, "")
	ctx := context.Background()

	t.Run("by name", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "cream"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := toolText(t, result)
		if !strings.Contains(text, "Night Cream") {
			t.Errorf("result missing Night Cream: %q", text)
		}
		if strings.Contains(text, "Vitamin C Serum") {
			t.Errorf("result should not include serum: %q", text)
		}
	})

	t.Run("by category", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"category": "serum"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(toolText(t, result), "Vitamin C Serum") {
			t.Error("expected the serum in category results")
		}
	})

	t.Run("no matches", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "zzz"}

		result, err := srv.handleSearchProducts(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(toolText(t, result), "No products match") {
			t.Error("expected the no-match message")
		}
	})
}

func TestHandleGetProduct(t *testing.T) {
	srv := NewServer(testCatalog(), nil, "")
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"id": "gel"}

	result, err := srv.handleGetProduct(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := toolText(t, result)
	if !strings.Contains(text, "Cleansing Gel") || !strings.Contains(text, "Daily foaming gel.") {
		t.Errorf("result missing product fields: %q", text)
	}

	req.Params.Arguments = map[string]any{"id": "missing"}
	result, err = srv.handleGetProduct(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for an unknown id")
	}
}

func TestHandleListCategories(t *testing.T) {
	srv := NewServer(testCatalog(), nil, "")

	result, err := srv.handleListCategories(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := toolText(t, result)
	for _, want := range []string{"cleanser", "moisturizer", "serum"} {
		if !strings.Contains(text, want) {
			t.Errorf("categories missing %q: %q", want, text)
		}
	}
}

func TestHandleGenerateRoutine(t *testing.T) {
	provider := &mockProvider{reply: "Morning: gel, then serum."}
	srv := NewServer(testCatalog(), provider, "test-model")
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"product_ids": "gel, serum"}

	result, err := srv.handleGenerateRoutine(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if toolText(t, result) != provider.reply {
		t.Errorf("result = %q, want the provider reply", toolText(t, result))
	}

	// The provider sees the system instruction plus the product list.
	if len(provider.lastReq.Messages) != 2 {
		t.Fatalf("provider saw %d messages, want 2", len(provider.lastReq.Messages))
	}
	if !strings.Contains(provider.lastReq.Messages[1].Content, "Cleansing Gel") {
		t.Error("products message missing the gel")
	}
}

func TestHandleGenerateRoutineErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		srv := NewServer(testCatalog(), &mockProvider{}, "m")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"product_ids": "gel,missing"}

		result, err := srv.handleGenerateRoutine(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected a tool error for an unknown id")
		}
	})

	t.Run("no provider", func(t *testing.T) {
		srv := NewServer(testCatalog(), nil, "")
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"product_ids": "gel"}

		result, err := srv.handleGenerateRoutine(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected a tool error without a provider")
		}
	})
}
