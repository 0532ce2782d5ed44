package translator

import (
	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/logger"
)

// Options override per-run settings from the configuration file.
type Options struct {
	TargetDir      string
	SourceLanguage string
	TargetLanguage string
	Prompt         string
	Progress       Progress
}

type implTranslator struct {
	cfg    *config.Config
	engine engine.Engine
	logger logger.Logger
	opts   Options
}

// New creates a new Translator instance
func New(cfg *config.Config, eng engine.Engine, log logger.Logger, opts Options) Translator {
	if opts.TargetDir == "" {
		opts.TargetDir = cfg.Paths.Output
	}
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = cfg.Translation.SourceLanguage
	}
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = cfg.Translation.TargetLanguage
	}
	if opts.Prompt == "" {
		opts.Prompt = cfg.Translation.Prompt
	}

	return &implTranslator{
		cfg:    cfg,
		engine: eng,
		logger: log,
		opts:   opts,
	}
}
