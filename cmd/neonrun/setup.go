package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback. The returned closer releases the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closer = func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, err
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "neonrun",
		Level:           level,
	})
	return logger, closer, nil
}

// loadRunnerConfig loads the config and applies the CLI overrides.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyRunnerPreset(&cfg, preset)

	if flagEvolution != "" {
		cfg.Evolution.Provider = flagEvolution
	}
	return cfg, nil
}

// newGenerator creates the configured sector provider. A provider that
// cannot start (usually a missing API key) degrades to offline so every
// milestone shows the fallback sector.
func newGenerator(ctx context.Context, cfg config.RunnerConfig, logger *log.Logger) (evolution.Generator, error) {
	name := cfg.Evolution.Provider
	if !evolution.Exists(name) {
		return nil, fmt.Errorf("unknown evolution provider %q (have %v)", name, evolution.List())
	}

	gen, err := evolution.Create(ctx, name, cfg)
	if err != nil {
		logger.Warn("evolution provider unavailable, running offline", "provider", name, "err", err)
		return evolution.OfflineGenerator{}, nil
	}
	logger.Debug("evolution provider ready", "provider", name)
	return gen, nil
}

// openStore opens the scores database. A failure is logged and the game
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// scoreStore adapts a possibly nil store to the orchestrator interface.
func scoreStore(store *storage.Store) orchestrator.ScoreStore {
	if store == nil {
		return nil
	}
	return store
}

// playerName identifies local runs in the score history.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
