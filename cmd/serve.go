package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"routinecraft/internal/catalog"
	"routinecraft/internal/chat"
	"routinecraft/internal/config"
	"routinecraft/internal/db"
	"routinecraft/internal/proxy"
	"routinecraft/internal/selection"
	"routinecraft/internal/semindex"
	"routinecraft/internal/server"
)

var (
	servePort int
	proxyOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the routinecraft HTTP server",
	Long:  `Starts the routinecraft server with the catalog, selection, and chat APIs plus the /chat and /search proxy endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		// Create LLM provider.
		provider, err := createLLMProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		// Load the catalog. An empty catalog is not fatal; the server
		// still answers, routine generation just rejects requests.
		cat := catalog.NewStore()
		if err := cat.Load(cfg.CatalogGlob); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load catalog from %s: %v\n", cfg.CatalogGlob, err)
		}

		// Open database and restore the persisted selection.
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dbPath := databasePath(cfg)
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		sel := selection.NewStore(cat, database)
		if err := sel.Rehydrate(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not restore selection: %v\n", err)
		}

		// The semantic index needs an embedding key, so only load it
		// when something in the config actually asks for it.
		var semIndex *semindex.Index
		if cfg.SearchBackend == config.SearchLocal || cfg.EmbeddingProvider != "" {
			semIndex = loadSemanticIndex(cfg, cat)
		}

		backend := buildSearchBackend(cfg, provider, semIndex)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: true,
		})
		r := srv.Router()

		proxyHandler := proxy.NewHandler(provider, cfg.Model, backend)
		proxyHandler.RegisterRoutes(r)

		if !proxyOnly {
			// A nil interface must stay nil; wrapping a nil pointer
			// would defeat the handler's index check.
			var catIndex catalog.SemanticIndex
			if semIndex != nil {
				catIndex = semIndex
			}
			catalog.RegisterRoutes(r, cat, catIndex)
			selection.RegisterRoutes(r, sel)

			sessions := chat.NewSessions()
			pipeline := chat.NewPipeline(sessions, sel, provider, cfg.Model, backend, cfg.MaxTokens, cfg.Temperature)
			chat.RegisterRoutes(r, pipeline)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "routinecraft v%s listening on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Products: %d\n", cat.Len())
		if backend != nil {
			fmt.Fprintf(os.Stderr, "  Search:   %s\n", backend.Name())
		}

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&proxyOnly, "proxy-only", false, "Serve only the /chat and /search proxy endpoints")
	rootCmd.AddCommand(serveCmd)
}
