package main

import (
	"github.com/spf13/cobra"

	// Register the translation engines.
	_ "github.com/phamtrung99/subtrans/internal/engine/claude"
	_ "github.com/phamtrung99/subtrans/internal/engine/gemini"
	_ "github.com/phamtrung99/subtrans/internal/engine/openai"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "subtrans",
		Short:         "Translate subtitle files with LLM engines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Configuration file path")

	rootCmd.AddCommand(newTranslateCommand(&configFlag))
	rootCmd.AddCommand(newWatchCommand(&configFlag))
	rootCmd.AddCommand(newEnginesCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
