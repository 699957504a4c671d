package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

var (
	flagTicks     int
	flagRealtime  bool
	flagLookahead float64
	flagSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless with an autopilot",
	Long: `Run the game without a display. An autopilot jumps over ground
hazards; after each game over a new run starts until the frame budget is
spent. Frames advance on a simulated clock unless --realtime is set.

The evolution provider defaults to offline so that no requests are made.

Examples:
  neonrun simulate
  neonrun simulate --ticks 200000 --seed 42
  neonrun simulate --realtime --evolution static --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 10000, "Number of frames to run")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Fire frames from a wall-clock ticker at --fps")
	simulateCmd.Flags().Float64Var(&flagLookahead, "lookahead", 8, "Autopilot reaction distance in ticks of travel")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record finished runs in the scores database")
}

// simStats summarises a simulation.
type simStats struct {
	Frames       int
	Runs         int
	Best         int
	Milestones   int
	MaxObstacles int
	MaxParticles int
}

func runSimulate(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadRunnerConfig()
	if err != nil {
		fail("%v", err)
	}
	if !cmd.Flags().Changed("evolution") {
		cfg.Evolution.Provider = "offline"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	var store orchestrator.ScoreStore
	if flagSave {
		if s := openStore(logger); s != nil {
			defer s.Close()
			store = s
		}
	}

	stats := simulate(ctx, cfg, gen, store, logger)

	fmt.Printf("Frames:          %d\n", stats.Frames)
	fmt.Printf("Runs:            %d\n", stats.Runs)
	fmt.Printf("Best distance:   %06dm\n", stats.Best)
	fmt.Printf("Milestones:      %d\n", stats.Milestones)
	fmt.Printf("Peak obstacles:  %d\n", stats.MaxObstacles)
	fmt.Printf("Peak particles:  %d\n", stats.MaxParticles)
}

// simulate drives frames until the budget is spent or ctx is cancelled.
func simulate(ctx context.Context, cfg config.RunnerConfig, gen evolution.Generator, store orchestrator.ScoreStore, logger *log.Logger) simStats {
	var stats simStats

	sched := runner.NewFrameScheduler()
	orch := orchestrator.New(orchestrator.Options{
		Config:    cfg,
		Scheduler: sched,
		Generator: gen,
		Store:     store,
		Logger:    logger,
		Player:    "autopilot",
		Seed:      flagSeed,
		Pilot:     runner.Autopilot{Lookahead: flagLookahead},
		OnGameOver: func(final int) {
			stats.Runs++
			stats.Best = max(stats.Best, final)
		},
	})
	defer orch.Close()

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	step := time.Second / time.Duration(fps)

	var ticker *time.Ticker
	if flagRealtime {
		ticker = time.NewTicker(step)
		defer ticker.Stop()
	}

	now := time.Now()
	lastEvolutions := 0
	for stats.Frames < flagTicks {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return stats
			case now = <-ticker.C:
			}
		} else {
			if ctx.Err() != nil {
				return stats
			}
			now = now.Add(step)
		}

		if !orch.Active() {
			lastEvolutions = 0
			orch.Start()
		}
		sched.Fire(now)
		stats.Frames++

		snap := orch.Snapshot()
		if snap.Evolutions > lastEvolutions {
			stats.Milestones += snap.Evolutions - lastEvolutions
			lastEvolutions = snap.Evolutions
		}
		stats.MaxObstacles = max(stats.MaxObstacles, snap.Obstacles)
		stats.MaxParticles = max(stats.MaxParticles, snap.Particles)
	}
	return stats
}
