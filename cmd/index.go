package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routinecraft/internal/catalog"
	"routinecraft/internal/config"
	"routinecraft/internal/progress"
	"routinecraft/internal/semindex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic product index",
	Long:  `Embeds every catalog product and writes the index to the data directory for semantic search and the local search backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cat := catalog.NewStore()
		if err := cat.Load(cfg.CatalogGlob); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		if cat.Len() == 0 {
			return fmt.Errorf("no products matched %s", cfg.CatalogGlob)
		}

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		index, err := semindex.New(cat, embedder)
		if err != nil {
			return fmt.Errorf("creating index: %w", err)
		}

		reporter := progress.NewReporter()
		reporter.Start(cat.Len())
		err = index.Build(cmd.Context(), func(i int, name string) {
			reporter.Update(i, name)
		})
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("building index: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		if err := index.Persist(cfg.DataDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Indexed %d products into %s\n", index.Count(), cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
