package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/evolution"
)

func TestSimulate_RunsFrameBudget(t *testing.T) {
	flagTicks, flagSeed, flagFPS, flagRealtime, flagLookahead = 3000, 42, 60, false, 8
	cfg := config.DefaultRunnerConfig()
	cfg.Milestones.First = 500
	cfg.Milestones.Step = 500

	stats := simulate(context.Background(), cfg, evolution.StaticGenerator{Step: 500}, nil, log.New(io.Discard))

	assert.Equal(t, 3000, stats.Frames)
	assert.Positive(t, stats.Best+stats.Milestones, "autopilot should make progress")
	assert.Less(t, stats.MaxObstacles, 20, "despawned obstacles must not accumulate")
	assert.LessOrEqual(t, stats.MaxParticles, 2*cfg.Particles.BurstCount*int(1/cfg.Particles.Decay+1))
}

func TestSimulate_StopsOnCancel(t *testing.T) {
	flagTicks, flagSeed, flagFPS, flagRealtime = 1000, 1, 60, false
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := simulate(ctx, config.DefaultRunnerConfig(), evolution.OfflineGenerator{}, nil, log.New(io.Discard))
	assert.Zero(t, stats.Frames)
}

func TestLoadRunnerConfig_Overrides(t *testing.T) {
	t.Cleanup(func() { flagConfig, flagDifficulty, flagEvolution = "", "", "" })

	flagDifficulty, flagEvolution = "fixed", "static"
	cfg, err := loadRunnerConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Difficulty.Enabled)
	assert.Equal(t, "static", cfg.Evolution.Provider)

	flagDifficulty = "nightmare"
	_, err = loadRunnerConfig()
	assert.Error(t, err)
}

func TestNewGenerator(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	logger := log.New(io.Discard)

	cfg.Evolution.Provider = "nope"
	_, err := newGenerator(context.Background(), cfg, logger)
	assert.Error(t, err)

	// Without a key the Gemini provider degrades to offline.
	cfg.Evolution.Provider = "gemini"
	cfg.Evolution.APIKeyEnv = "NEONRUN_TEST_MISSING_KEY"
	t.Setenv("NEONRUN_TEST_MISSING_KEY", "")
	gen, err := newGenerator(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, evolution.OfflineGenerator{}, gen)
}
