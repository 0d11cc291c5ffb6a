package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "routinecraft",
	Short: "Product picker backend with an AI routine assistant",
	Long: `Routinecraft serves a filterable product catalog, tracks the user's
selection, and generates AI usage routines for the selected products,
optionally grounded in web search results. Provider credentials stay
server-side; clients only ever talk to this service.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".routinecraft.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
