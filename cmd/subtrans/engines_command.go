package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phamtrung99/subtrans/internal/engine"
)

func newEnginesCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List available translation engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			defaultEngine := cfg.DefaultEngine()
			for _, name := range engine.Names() {
				status := "no API key"
				if cfg.EngineConfigured(name) {
					status = "configured"
				}
				marker := " "
				if name == defaultEngine {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %s\n", marker, name, status)
			}

			return nil
		},
	}
}
