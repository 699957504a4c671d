package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

type memStore struct {
	high    int
	saved   []int
	highErr error
}

func (m *memStore) HighScore() (int, error) { return m.high, m.highErr }

func (m *memStore) SaveScore(_ string, score int) (int64, error) {
	m.saved = append(m.saved, score)
	if score > m.high {
		m.high = score
	}
	return int64(len(m.saved)), nil
}

// blocker overlaps the player's resting box.
var blocker = runner.Obstacle{X: 90, Y: 350, Width: 80, Height: 50, Kind: runner.KindGround}

type harness struct {
	o     *Orchestrator
	sched *runner.FrameScheduler
	now   time.Time
	overs []int
}

func newHarness(t *testing.T, cfg config.RunnerConfig, gen evolution.Generator, mutate func(*Options)) *harness {
	t.Helper()
	h := &harness{sched: runner.NewFrameScheduler(), now: t0}
	opts := Options{
		Config:     cfg,
		Scheduler:  h.sched,
		Generator:  gen,
		Seed:       1,
		Spawner:    runner.NopSpawner{},
		OnGameOver: func(s int) { h.overs = append(h.overs, s) },
	}
	if mutate != nil {
		mutate(&opts)
	}
	h.o = New(opts)
	t.Cleanup(h.o.Close)
	return h
}

// frame advances the fake clock by one frame and fires the scheduler.
func (h *harness) frame() bool {
	h.now = h.now.Add(frameStep)
	return h.sched.Fire(h.now)
}

// frameAt fires one frame at an absolute time.
func (h *harness) frameAt(at time.Time) bool {
	h.now = at
	return h.sched.Fire(at)
}

// waitForRecord fires frames without advancing the clock until the pending
// evolution record has been applied.
func (h *harness) waitForRecord(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.o.Snapshot().Pending {
		if time.Now().After(deadline) {
			t.Fatal("evolution record never arrived")
		}
		time.Sleep(time.Millisecond)
		h.sched.Fire(h.now)
	}
}

func smallMilestones() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Milestones.First = 10
	cfg.Milestones.Step = 10
	return cfg
}

func TestNewStartsIdle(t *testing.T) {
	h := newHarness(t, config.DefaultRunnerConfig(), nil, nil)

	snap := h.o.Snapshot()
	assert.Equal(t, runner.PhaseIdle, snap.Phase)
	assert.Equal(t, core.ColorNeon, snap.Theme)
	assert.False(t, h.o.Active())
	assert.False(t, h.sched.Pending())
}

func TestMilestoneAtThousand(t *testing.T) {
	var calls atomic.Int32
	gen := evolution.GeneratorFunc(func(_ context.Context, score int) (evolution.Record, error) {
		calls.Add(1)
		assert.Equal(t, 1000, score)
		return evolution.StaticGenerator{}.Generate(context.Background(), score)
	})
	h := newHarness(t, config.DefaultRunnerConfig(), gen, nil)
	h.o.Start()

	for i := 0; i < 1000; i++ {
		require.True(t, h.frame())
	}

	snap := h.o.Snapshot()
	assert.Equal(t, 1000, snap.Score)
	assert.Equal(t, runner.PhaseSuspended, snap.Phase)
	assert.True(t, snap.Evolving)
	assert.Empty(t, h.overs)

	// Frames while suspended do not score.
	for i := 0; i < 100; i++ {
		h.frame()
	}
	assert.Equal(t, 1000, h.o.Snapshot().Score)

	h.waitForRecord(t)
	assert.Equal(t, int32(1), calls.Load(), "milestone must trigger exactly once")
	assert.Equal(t, 1, h.o.Snapshot().Evolutions)
}

func TestFailedFetchShowsFallbackAndResumes(t *testing.T) {
	h := newHarness(t, smallMilestones(), evolution.OfflineGenerator{}, nil)
	h.o.Start()

	for i := 0; i < 10; i++ {
		h.frame()
	}
	triggeredAt := h.now
	require.Equal(t, runner.PhaseSuspended, h.o.Snapshot().Phase)

	h.waitForRecord(t)
	snap := h.o.Snapshot()
	require.NotNil(t, snap.Evolution)
	assert.Equal(t, evolution.Fallback(), *snap.Evolution)
	assert.Equal(t, core.ColorGlitch, snap.Theme)

	h.frameAt(triggeredAt.Add(4499 * time.Millisecond))
	assert.Equal(t, runner.PhaseSuspended, h.o.Snapshot().Phase)

	h.frameAt(triggeredAt.Add(4500 * time.Millisecond))
	snap = h.o.Snapshot()
	assert.Equal(t, runner.PhaseRunning, snap.Phase)
	assert.False(t, snap.Evolving)
	assert.Equal(t, 20, snap.NextMilestone)

	h.frame()
	assert.Equal(t, 11, h.o.Snapshot().Score)
	// the record's theme outlives the overlay
	assert.Equal(t, core.ColorGlitch, h.o.Snapshot().Theme)
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	returned := make(chan struct{})
	var calls atomic.Int32
	gen := evolution.GeneratorFunc(func(context.Context, int) (evolution.Record, error) {
		if calls.Add(1) > 1 {
			return evolution.Record{}, errors.New("unexpected second request")
		}
		defer close(returned)
		<-release // ignores cancellation on purpose
		return evolution.Record{
			SectorName:     "Old Sector",
			Description:    "From a previous run.",
			MutationEffect: "Stale",
			ColorTheme:     "#123456",
		}, nil
	})

	cfg := smallMilestones()
	cfg.Milestones.First = 50
	h := newHarness(t, cfg, gen, nil)
	h.o.Start()
	for i := 0; i < 50; i++ {
		h.frame()
	}
	require.True(t, h.o.Snapshot().Pending)

	h.o.Start()
	close(release)
	<-returned

	for i := 0; i < 20; i++ {
		time.Sleep(time.Millisecond)
		h.frame()
	}

	snap := h.o.Snapshot()
	assert.Equal(t, uint64(2), snap.Generation)
	assert.Equal(t, runner.PhaseRunning, snap.Phase)
	assert.Nil(t, snap.Evolution)
	assert.False(t, snap.Evolving)
	assert.Equal(t, core.ColorNeon, snap.Theme)
	assert.Equal(t, 20, snap.Score)
}

func TestReceiveIgnoresOtherRequests(t *testing.T) {
	h := newHarness(t, smallMilestones(), evolution.OfflineGenerator{}, nil)
	h.o.Start()
	h.o.pending = true
	h.o.fetch = &fetch{gen: h.o.generation, seq: 7, cancel: func() {}, abandon: make(chan struct{})}

	h.o.receive(fetchResult{gen: h.o.generation - 1, seq: 7, rec: evolution.Fallback()})
	assert.Nil(t, h.o.evolution)
	assert.True(t, h.o.pending)

	h.o.receive(fetchResult{gen: h.o.generation, seq: 6, rec: evolution.Fallback()})
	assert.Nil(t, h.o.evolution, "an earlier request of the same run")
	assert.True(t, h.o.pending)

	h.o.receive(fetchResult{gen: h.o.generation, seq: 7, rec: evolution.Fallback()})
	assert.NotNil(t, h.o.evolution)
	assert.False(t, h.o.pending)
	assert.Nil(t, h.o.fetch)
}

func TestReceiveWithoutRequestIsIgnored(t *testing.T) {
	h := newHarness(t, smallMilestones(), evolution.OfflineGenerator{}, nil)
	h.o.Start()
	h.o.pending = true

	h.o.receive(fetchResult{gen: h.o.generation, rec: evolution.Fallback()})
	assert.Nil(t, h.o.evolution)
}

func TestOverdueFetchFallsBack(t *testing.T) {
	hang := make(chan struct{})
	t.Cleanup(func() { close(hang) })
	gen := evolution.GeneratorFunc(func(context.Context, int) (evolution.Record, error) {
		<-hang
		return evolution.Record{}, errors.New("too late")
	})

	h := newHarness(t, smallMilestones(), gen, nil)
	h.o.Start()
	for i := 0; i < 10; i++ {
		h.frame()
	}
	triggeredAt := h.now

	h.frameAt(triggeredAt.Add(5 * time.Second))
	assert.True(t, h.o.Snapshot().Pending, "still waiting within the grace period")
	assert.Equal(t, runner.PhaseSuspended, h.o.Snapshot().Phase)

	h.frameAt(triggeredAt.Add(9 * time.Second))
	snap := h.o.Snapshot()
	assert.Equal(t, runner.PhaseRunning, snap.Phase)
	require.NotNil(t, snap.Evolution)
	assert.Equal(t, evolution.Fallback(), *snap.Evolution)
}

func TestOverdueFetchDoesNotAnswerNextMilestone(t *testing.T) {
	releaseFirst := make(chan struct{})
	firstReturned := make(chan struct{})
	releaseSecond := make(chan struct{})
	var calls atomic.Int32
	gen := evolution.GeneratorFunc(func(context.Context, int) (evolution.Record, error) {
		if calls.Add(1) == 1 {
			defer close(firstReturned)
			<-releaseFirst // ignores cancellation on purpose
			return evolution.Record{
				SectorName:     "Old Sector",
				Description:    "Answer to the first milestone.",
				MutationEffect: "Late",
				ColorTheme:     "#123456",
			}, nil
		}
		<-releaseSecond
		return evolution.Record{
			SectorName:     "New Sector",
			Description:    "Answer to the second milestone.",
			MutationEffect: "On time",
			ColorTheme:     "#654321",
		}, nil
	})

	h := newHarness(t, smallMilestones(), gen, nil)
	h.o.Start()
	for i := 0; i < 10; i++ {
		h.frame()
	}
	require.True(t, h.o.Snapshot().Pending)

	h.frameAt(h.now.Add(9 * time.Second))
	snap := h.o.Snapshot()
	require.Equal(t, runner.PhaseRunning, snap.Phase)
	require.NotNil(t, snap.Evolution)
	require.Equal(t, evolution.Fallback(), *snap.Evolution)

	for i := 0; i < 10; i++ {
		h.frame()
	}
	snap = h.o.Snapshot()
	require.Equal(t, 20, snap.Score)
	require.True(t, snap.Pending)
	require.Equal(t, runner.PhaseSuspended, snap.Phase)

	close(releaseFirst)
	<-firstReturned
	for i := 0; i < 5; i++ {
		time.Sleep(time.Millisecond)
		h.sched.Fire(h.now)
	}

	snap = h.o.Snapshot()
	assert.True(t, snap.Pending, "the first request must not answer the second milestone")
	require.NotNil(t, snap.Evolution)
	assert.Equal(t, evolution.Fallback(), *snap.Evolution)
	assert.Equal(t, 1, snap.Evolutions)

	close(releaseSecond)
	h.waitForRecord(t)
	snap = h.o.Snapshot()
	require.NotNil(t, snap.Evolution)
	assert.Equal(t, "New Sector", snap.Evolution.SectorName)
	assert.Equal(t, 2, snap.Evolutions)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPauseExtendsSuspension(t *testing.T) {
	h := newHarness(t, smallMilestones(), evolution.OfflineGenerator{}, nil)
	h.o.Start()
	for i := 0; i < 10; i++ {
		h.frame()
	}
	triggeredAt := h.now
	h.waitForRecord(t)

	h.o.Pause(triggeredAt.Add(time.Second))
	h.o.Unpause(triggeredAt.Add(11 * time.Second))

	h.frameAt(triggeredAt.Add(14 * time.Second))
	assert.Equal(t, runner.PhaseSuspended, h.o.Snapshot().Phase, "paused time does not count")
	assert.True(t, h.o.Snapshot().Evolving)

	h.frameAt(triggeredAt.Add(14500 * time.Millisecond))
	snap := h.o.Snapshot()
	assert.Equal(t, runner.PhaseRunning, snap.Phase)
	assert.False(t, snap.Evolving)
}

func TestPauseWhileRunningKeepsMilestones(t *testing.T) {
	h := newHarness(t, smallMilestones(), evolution.OfflineGenerator{}, nil)
	h.o.Start()
	h.o.Pause(h.now)
	h.o.Pause(h.now.Add(time.Second))
	h.o.Unpause(h.now.Add(time.Minute))
	h.o.Unpause(h.now.Add(2 * time.Minute))

	for i := 0; i < 10; i++ {
		h.frame()
	}
	snap := h.o.Snapshot()
	assert.Equal(t, runner.PhaseSuspended, snap.Phase)
	assert.Equal(t, 10, snap.Score)
}

func TestGameOverSavesAndStopsLoop(t *testing.T) {
	store := &memStore{high: 5}
	cfg := config.DefaultRunnerConfig()
	h := newHarness(t, cfg, nil, func(o *Options) {
		o.Store = store
		o.Player = "ada"
	})
	require.Equal(t, 5, h.o.Snapshot().HighScore)

	h.o.Start()
	for i := 0; i < 30; i++ {
		h.frame()
	}
	// drop a hazard straight onto the player
	h.o.ctrl.Session().Obstacles = append(h.o.ctrl.Session().Obstacles, blocker, blocker)
	h.frame()
	assert.False(t, h.sched.Pending(), "no further frames after game over")

	assert.Equal(t, []int{30}, h.overs)
	assert.Equal(t, []int{30}, store.saved)
	snap := h.o.Snapshot()
	assert.Equal(t, runner.PhaseEnded, snap.Phase)
	assert.Equal(t, 30, snap.HighScore)
	assert.True(t, snap.NewHighScore)
	assert.False(t, h.o.Active())
	assert.False(t, h.sched.Pending())

	// Jump restarts from the game-over screen.
	assert.True(t, h.o.Press(core.ActionJump))
	snap = h.o.Snapshot()
	assert.Equal(t, runner.PhaseRunning, snap.Phase)
	assert.Zero(t, snap.Score)
	assert.False(t, snap.NewHighScore)
	assert.True(t, h.sched.Pending())
}

func TestZeroScoreIsNotSaved(t *testing.T) {
	store := &memStore{}
	h := newHarness(t, config.DefaultRunnerConfig(), nil, func(o *Options) {
		o.Store = store
		o.Spawner = &onceSpawner{o: blocker}
	})
	h.o.Start()
	h.frame()

	assert.Equal(t, []int{0}, h.overs)
	assert.Empty(t, store.saved)
	assert.False(t, h.o.Snapshot().NewHighScore)
}

func TestBrokenStoreStartsAtZero(t *testing.T) {
	store := &memStore{high: 99, highErr: errors.New("corrupt")}
	h := newHarness(t, config.DefaultRunnerConfig(), nil, func(o *Options) { o.Store = store })
	assert.Zero(t, h.o.Snapshot().HighScore)
}

func TestPress(t *testing.T) {
	h := newHarness(t, config.DefaultRunnerConfig(), nil, nil)

	assert.False(t, h.o.Press(core.ActionPause))
	assert.True(t, h.o.Press(core.ActionStart))
	assert.Equal(t, runner.PhaseRunning, h.o.Snapshot().Phase)

	assert.False(t, h.o.Press(core.ActionStart), "start is ignored mid-run")
	assert.True(t, h.o.Press(core.ActionJump))
	h.frame()
	assert.False(t, h.o.Press(core.ActionJump), "no double jump")
}

func TestAutopilotJumps(t *testing.T) {
	h := newHarness(t, config.DefaultRunnerConfig(), nil, func(o *Options) {
		o.Pilot = runner.Autopilot{}
	})
	h.o.Start()
	h.o.ctrl.Session().Obstacles = append(h.o.ctrl.Session().Obstacles,
		runner.Obstacle{X: 190, Y: 360, Width: 30, Height: 40, Speed: 7, Kind: runner.KindGround})

	h.frame()
	assert.False(t, h.o.ctrl.Session().Player.Grounded)
}

func TestRenderDoesNotPanicOnNilCanvas(t *testing.T) {
	h := newHarness(t, config.DefaultRunnerConfig(), nil, nil)
	assert.NotPanics(t, func() { h.o.Render(nil) })
}

// onceSpawner emits one obstacle on the first tick of each run.
type onceSpawner struct {
	o    runner.Obstacle
	done bool
}

func (s *onceSpawner) Reset(sess *runner.Session) {
	s.done = false
	sess.SpawnTimer = 0
}

func (s *onceSpawner) Tick(*runner.Session) (runner.Obstacle, bool) {
	if s.done {
		return runner.Obstacle{}, false
	}
	s.done = true
	return s.o, true
}
