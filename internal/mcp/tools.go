package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchProductsTool defines the search_products MCP tool.
var searchProductsTool = mcp.NewTool("search_products",
	mcp.WithDescription("Search the product catalog by name and category. Returns matching products with brand, category, and description."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive substring to match in product names"),
	),
	mcp.WithString("category",
		mcp.Description("Exact category to filter by; omit for all categories"),
	),
)

// getProductTool defines the get_product MCP tool.
var getProductTool = mcp.NewTool("get_product",
	mcp.WithDescription("Get the full record for a single product by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Product id"),
	),
)

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List the distinct product categories in the catalog."),
)

// generateRoutineTool defines the generate_routine MCP tool.
var generateRoutineTool = mcp.NewTool("generate_routine",
	mcp.WithDescription("Generate a usage routine for a list of product ids."),
	mcp.WithString("product_ids",
		mcp.Required(),
		mcp.Description("Comma-separated product ids to build the routine from"),
	),
)
