package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/W  - Jump (starts a run on the title screen)
  Enter/R     - Start, or reboot after game over
  P/Esc       - Pause
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at base speed, speeds up every 100m
  normal - Start 30% faster
  hard   - Start 70% faster
  fixed  - Never speed up

Examples:
  neonrun play
  neonrun play --difficulty hard
  neonrun play --evolution static
  neonrun play --config ./my-runner.yaml --log-file run.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
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

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	store := openStore(logger)

	runErr := tui.Run(tui.Options{
		Config:    cfg,
		Generator: gen,
		Store:     scoreStore(store),
		Logger:    logger,
		Player:    playerName(),
		Runtime:   rt,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
