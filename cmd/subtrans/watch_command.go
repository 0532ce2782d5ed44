package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/extract"
	"github.com/phamtrung99/subtrans/internal/translator"
	"github.com/phamtrung99/subtrans/internal/watcher"
	"github.com/phamtrung99/subtrans/pkg/executor"
)

func newWatchCommand(configFlag *string) *cobra.Command {
	var engineFlag string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and translate new subtitle files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			if err := ensureDirectories(cfg); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}

			eng, err := openEngine(cfg, log, engineFlag)
			if err != nil {
				return err
			}

			tr := translator.New(cfg, eng, log, translator.Options{})
			extractor := extract.New(executor.New(), log, cfg.Paths.Temp, 0)

			handler := func(ctx context.Context, path string) error {
				input := path
				if extract.IsVideo(path) {
					var err error
					input, err = extractor.Extract(ctx, path)
					if err != nil {
						return fmt.Errorf("extract: %w", err)
					}
				}

				if _, err := tr.Translate(ctx, input); err != nil {
					return err
				}

				return archive(cfg, path)
			}

			w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			log.Info(ctx, "subtrans watch mode ready")
			log.Info(ctx, "Engine: %s", eng.Name())
			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Press Ctrl+C to stop")

			if err := w.Start(ctx); err != nil && err != context.Canceled {
				return err
			}

			log.Info(ctx, "subtrans stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&engineFlag, "engine", "e", "", "Translation engine (gemini, openai, claude)")

	return cmd
}

// archive moves a processed input file out of the watched directory so
// it is not picked up again.
func archive(cfg *config.Config, path string) error {
	dest := filepath.Join(cfg.Paths.Archived, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("archive input: %w", err)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
