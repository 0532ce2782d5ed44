package main

import (
	"fmt"

	"github.com/phamtrung99/subtrans/internal/config"
	"github.com/phamtrung99/subtrans/internal/engine"
	"github.com/phamtrung99/subtrans/internal/logger"
)

func loadConfig(path string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.Logging.Level), nil
}

// openEngine resolves the engine name (flag first, then configuration)
// and builds it.
func openEngine(cfg *config.Config, log logger.Logger, flagValue string) (engine.Engine, error) {
	name := flagValue
	if name == "" {
		name = cfg.DefaultEngine()
	}
	if name == "" {
		return nil, fmt.Errorf("no engine configured; run `subtrans config set-key <engine> <key>` first")
	}
	return engine.Open(name, cfg, log)
}
