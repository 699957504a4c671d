package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/platform/window"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open an 800x500 window and start a run.

Controls are the same as in the terminal: Space/Up/W to jump, Enter/R to
start, P/Esc to pause, Q to quit.

Examples:
  neonrun window
  neonrun window --scale 1.5`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to 800x500")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadRunnerConfig()
	if err != nil {
		fail("%v", err)
	}

	gen, err := newGenerator(context.Background(), cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := window.Run(window.Options{
		Config:    cfg,
		Generator: gen,
		Store:     scoreStore(store),
		Logger:    logger,
		Player:    playerName(),
		Runtime:   core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed},
		Scale:     flagScale,
	}); err != nil {
		logger.Error("window closed with error", "err", err)
		fail("running game: %v", err)
	}
}
