package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phamtrung99/subtrans/internal/export"
	"github.com/phamtrung99/subtrans/internal/extract"
	"github.com/phamtrung99/subtrans/internal/subtitle"
	"github.com/phamtrung99/subtrans/internal/translator"
	"github.com/phamtrung99/subtrans/pkg/executor"
)

func newTranslateCommand(configFlag *string) *cobra.Command {
	var (
		engineFlag    string
		fromFlag      string
		toFlag        string
		outputDirFlag string
		promptFlag    string
		docxFlag      bool
		streamFlag    int
	)

	cmd := &cobra.Command{
		Use:   "translate <file>...",
		Short: "Translate subtitle files (or videos with embedded subtitles)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, log, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			eng, err := openEngine(cfg, log, engineFlag)
			if err != nil {
				return err
			}

			tr := translator.New(cfg, eng, log, translator.Options{
				TargetDir:      outputDirFlag,
				SourceLanguage: fromFlag,
				TargetLanguage: toFlag,
				Prompt:         promptFlag,
				Progress: func(done, total int) {
					fmt.Fprintf(cmd.OutOrStdout(), "\rchunks: %d/%d", done, total)
					if done == total {
						fmt.Fprintln(cmd.OutOrStdout())
					}
				},
			})

			extractor := extract.New(executor.New(), log, cfg.Paths.Temp, streamFlag)

			for _, path := range args {
				input := path
				if extract.IsVideo(path) {
					input, err = extractor.Extract(ctx, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				}

				outPath, err := tr.Translate(ctx, input)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "translated %s -> %s\n", path, outPath)

				if docxFlag {
					docxPath, err := writeTranscript(outPath)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "transcript %s\n", docxPath)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&engineFlag, "engine", "e", "", "Translation engine (gemini, openai, claude)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Source language (overrides configuration)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Target language (overrides configuration)")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Output directory (overrides configuration)")
	cmd.Flags().StringVar(&promptFlag, "prompt", "", "Translation prompt (overrides configuration)")
	cmd.Flags().BoolVar(&docxFlag, "docx", false, "Also write a docx transcript of the translation")
	cmd.Flags().IntVar(&streamFlag, "subtitle-stream", 0, "Embedded subtitle stream index for video inputs")

	return cmd
}

func writeTranscript(subtitlePath string) (string, error) {
	doc, err := subtitle.Load(subtitlePath)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(subtitlePath), filepath.Ext(subtitlePath))
	docxPath := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath)) + ".docx"

	if err := export.WriteTranscript(stem, doc.Cues, docxPath); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return docxPath, nil
}
