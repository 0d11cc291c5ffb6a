package cmd

import (
	"github.com/spf13/cobra"

	"routinecraft/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize routinecraft configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure routinecraft and generates a .routinecraft.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
