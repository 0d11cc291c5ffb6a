package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routinecraft/internal/catalog"
	"routinecraft/internal/config"
	mcpserver "routinecraft/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing product search and routine generation tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cat := catalog.NewStore()
		if err := cat.Load(cfg.CatalogGlob); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load catalog from %s: %v\n", cfg.CatalogGlob, err)
			fmt.Fprintf(os.Stderr, "Tool results will be empty until the catalog loads.\n")
		}

		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "routinecraft MCP server started on stdio (products=%d)\n", cat.Len())

		srv := mcpserver.NewServer(cat, provider, cfg.Model)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
