package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phamtrung99/subtrans/internal/config"
)

func newConfigCommand(configFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update the configuration file",
	}

	cmd.AddCommand(newConfigSetKeyCommand(configFlag))
	cmd.AddCommand(newConfigShowCommand(configFlag))

	return cmd
}

func newConfigSetKeyCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <engine> <key>",
		Short: "Store an API key for a translation engine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOrInitConfig(*configFlag)
			if err != nil {
				return err
			}

			if err := cfg.SetAPIKey(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(*configFlag); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved %s key to %s\n", args[0], *configFlag)
			return nil
		},
	}
}

func newConfigShowCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with keys redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			redacted := *cfg
			redacted.Engines.Gemini.APIKeys = redactAll(cfg.Engines.Gemini.APIKeys)
			redacted.Engines.OpenAI.APIKey = redact(cfg.Engines.OpenAI.APIKey)
			redacted.Engines.Claude.APIKey = redact(cfg.Engines.Claude.APIKey)

			out, err := yaml.Marshal(&redacted)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// loadOrInitConfig starts from defaults when the file does not exist
// yet, so set-key works on a fresh machine.
func loadOrInitConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &config.Config{}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	return "****"
}

func redactAll(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = redact(k)
	}
	return out
}
