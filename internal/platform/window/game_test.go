package window

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(Options{
		Config:    config.DefaultRunnerConfig(),
		Generator: evolution.OfflineGenerator{},
		Runtime:   core.RuntimeConfig{Seed: 7},
	})
	t.Cleanup(g.orch.Close)
	return g
}

func TestGame_LayoutMatchesWorld(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 500, h)
}

func TestGame_StartAndRun(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, runner.PhaseIdle, g.Snapshot().Phase)

	require.NoError(t, g.step([]core.Action{core.ActionJump}, t0))
	assert.Equal(t, runner.PhaseRunning, g.Snapshot().Phase)

	for i := 1; i <= 10; i++ {
		require.NoError(t, g.step(nil, t0.Add(time.Duration(i)*16*time.Millisecond)))
	}
	assert.Equal(t, 11, g.Snapshot().Score)
}

func TestGame_Pause(t *testing.T) {
	g := newTestGame(t)

	require.NoError(t, g.step([]core.Action{core.ActionPause}, t0))
	assert.False(t, g.paused, "pause is ignored before a run")

	require.NoError(t, g.step([]core.Action{core.ActionStart}, t0))
	require.NoError(t, g.step([]core.Action{core.ActionPause}, t0))
	assert.True(t, g.paused)

	score := g.Snapshot().Score
	for range 5 {
		require.NoError(t, g.step([]core.Action{core.ActionJump}, t0))
	}
	assert.Equal(t, score, g.Snapshot().Score)

	require.NoError(t, g.step([]core.Action{core.ActionPause}, t0))
	assert.False(t, g.paused)
	assert.Equal(t, score+1, g.Snapshot().Score)
}

func TestGame_PauseDuringEvolutionKeepsPanel(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Milestones.First = 10
	cfg.Milestones.Step = 10
	g := NewGame(Options{Config: cfg, Generator: evolution.OfflineGenerator{}, Runtime: core.RuntimeConfig{Seed: 7}})
	t.Cleanup(g.orch.Close)

	require.NoError(t, g.step([]core.Action{core.ActionStart}, t0))
	at := t0
	for i := 1; i < 10; i++ {
		at = t0.Add(time.Duration(i) * 16 * time.Millisecond)
		require.NoError(t, g.step(nil, at))
	}
	require.Equal(t, runner.PhaseSuspended, g.Snapshot().Phase)

	require.NoError(t, g.step([]core.Action{core.ActionPause}, at.Add(time.Second)))
	require.True(t, g.paused)
	require.NoError(t, g.step([]core.Action{core.ActionPause}, at.Add(11*time.Second)))
	require.False(t, g.paused)
	assert.Equal(t, runner.PhaseSuspended, g.Snapshot().Phase, "time spent paused does not shorten the panel")

	deadline := time.Now().Add(2 * time.Second)
	for g.Snapshot().Phase == runner.PhaseSuspended && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		require.NoError(t, g.step(nil, at.Add(14600*time.Millisecond)))
	}
	assert.Equal(t, runner.PhaseRunning, g.Snapshot().Phase)
}

func TestGame_QuitTerminates(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.step([]core.Action{core.ActionStart}, t0))

	err := g.step([]core.Action{core.ActionQuit}, t0)
	assert.ErrorIs(t, err, ebiten.Termination)
	assert.False(t, g.orch.Active())
}

func TestImageCanvas_NotReadyWithoutTarget(t *testing.T) {
	var c ImageCanvas
	assert.False(t, c.Ready())

	var nilCanvas *ImageCanvas
	assert.False(t, nilCanvas.Ready())
}
