// Package orchestrator runs a session on top of the runner controller: it
// schedules frames, suspends the run at score milestones while evolution
// content is fetched in the background, resumes after a fixed delay and
// keeps the high score.
//
// All methods must be called from the goroutine that fires the scheduler.
// The only other goroutine is the evolution fetch, which talks back over a
// channel drained at the start of each frame.
package orchestrator

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// ScoreStore persists finished runs. *storage.Store satisfies it.
type ScoreStore interface {
	HighScore() (int, error)
	SaveScore(player string, score int) (int64, error)
}

// Options configures an Orchestrator. Config and Scheduler are required.
type Options struct {
	Config    config.RunnerConfig
	Scheduler runner.Scheduler
	Generator evolution.Generator // nil always yields the fallback record
	Store     ScoreStore          // nil disables persistence
	Logger    *log.Logger
	Player    string // recorded with every saved run
	Seed      int64  // 0 picks a time-based seed
	Spawner   runner.Spawner
	Pilot     runner.Pilot // jumps automatically when set

	OnScoreUpdate func(score int)
	OnGameOver    func(finalScore int)
}

// Snapshot is the published, display-only view of the session.
type Snapshot struct {
	Phase         runner.Phase
	Score         int
	HighScore     int
	NewHighScore  bool // the last finished run beat the previous record
	Speed         float64
	NextSpeed     float64 // speed after the next difficulty step
	Theme         core.Color
	Evolution     *evolution.Record // latest record of this run, nil before the first
	Evolutions    int               // milestones reached this run
	Evolving      bool              // suspended for a milestone
	Pending       bool              // waiting for the milestone's record
	NextMilestone int
	Generation    uint64
	Grounded      bool // the player is standing on the ground
	Obstacles     int
	Particles     int
}

type fetchResult struct {
	gen uint64
	seq uint64
	rec evolution.Record
	err error
}

// fetch is the outstanding evolution request.
type fetch struct {
	gen     uint64
	seq     uint64 // unique per request, across runs
	score   int
	cancel  context.CancelFunc
	abandon chan struct{}
}

// Orchestrator owns one player's session.
type Orchestrator struct {
	cfg       config.RunnerConfig
	log       *log.Logger
	generator evolution.Generator
	store     ScoreStore
	player    string
	pilot     runner.Pilot
	ctrl      *runner.Controller
	renderer  *runner.Renderer
	loop      *runner.Loop

	onScore func(int)
	onOver  func(int)

	ctx     context.Context
	cancel  context.CancelFunc
	results chan fetchResult
	fetch   *fetch
	seq     uint64

	generation    uint64
	nextMilestone int
	resumeAt      time.Time
	evolving      bool
	pending       bool
	evolution     *evolution.Record
	evolutions    int
	highScore     int
	newHighScore  bool
	paused        bool
	pausedAt      time.Time
}

// New creates an orchestrator with an idle session and loads the high score.
// A failing store is logged and treated as an empty one.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		cfg:           opts.Config,
		log:           logger,
		generator:     opts.Generator,
		store:         opts.Store,
		player:        opts.Player,
		pilot:         opts.Pilot,
		onScore:       opts.OnScoreUpdate,
		onOver:        opts.OnGameOver,
		ctx:           ctx,
		cancel:        cancel,
		results:       make(chan fetchResult, 4),
		nextMilestone: opts.Config.Milestones.First,
	}

	ctrlOpts := []runner.Option{
		runner.WithRand(rand.New(rand.NewSource(seed))),
		runner.WithCallbacks(runner.Callbacks{
			OnScoreUpdate: o.handleScoreUpdate,
			OnGameOver:    o.handleGameOver,
		}),
	}
	if opts.Spawner != nil {
		ctrlOpts = append(ctrlOpts, runner.WithSpawner(opts.Spawner))
	}
	o.ctrl = runner.NewController(opts.Config, ctrlOpts...)
	o.renderer = runner.NewRenderer(opts.Config, rand.New(rand.NewSource(seed+1)))
	o.loop = runner.NewLoop(opts.Scheduler, o.frame)

	o.loadHighScore()
	return o
}

func (o *Orchestrator) loadHighScore() {
	if o.store == nil {
		return
	}
	high, err := o.store.HighScore()
	if err != nil {
		o.log.Warn("high score unavailable, starting from zero", "err", err)
		return
	}
	o.highScore = high
	o.log.Debug("high score loaded", "score", high)
}

// Start begins a new run, discarding the current one and any outstanding
// evolution request.
func (o *Orchestrator) Start() {
	o.abandonFetch()
	o.drain()

	o.generation++
	o.nextMilestone = o.cfg.Milestones.First
	o.evolving = false
	o.pending = false
	o.evolution = nil
	o.evolutions = 0
	o.newHighScore = false
	o.paused = false

	o.ctrl.SetTheme(core.ColorNeon)
	o.ctrl.Start()
	o.loop.Start()
	o.log.Info("run started", "generation", o.generation, "player", o.player)
}

// Pause records that the host stopped firing frames at now. Time spent
// paused does not count towards a milestone's resume delay.
func (o *Orchestrator) Pause(now time.Time) {
	if o.paused {
		return
	}
	o.paused = true
	o.pausedAt = now
}

// Unpause ends a pause begun with Pause.
func (o *Orchestrator) Unpause(now time.Time) {
	if !o.paused {
		return
	}
	o.paused = false
	if o.evolving {
		if d := now.Sub(o.pausedAt); d > 0 {
			o.resumeAt = o.resumeAt.Add(d)
		}
	}
}

// Jump forwards a jump command. Returns whether the player jumped.
func (o *Orchestrator) Jump() bool {
	return o.ctrl.Jump()
}

// Press handles a frontend action. Jump or start on the title and game-over
// screens begins a run; jump during a run jumps.
func (o *Orchestrator) Press(a core.Action) bool {
	switch o.ctrl.Phase() {
	case runner.PhaseIdle, runner.PhaseEnded:
		if a == core.ActionJump || a == core.ActionStart {
			o.Start()
			return true
		}
	case runner.PhaseRunning:
		if a == core.ActionJump {
			return o.Jump()
		}
	}
	return false
}

// frame is the loop body. It returns false once the run has ended.
func (o *Orchestrator) frame(now time.Time) bool {
	o.drain()

	switch o.ctrl.Phase() {
	case runner.PhaseRunning:
		if o.pilot != nil && o.pilot.ShouldJump(o.ctrl.Session()) {
			o.ctrl.Jump()
		}
		o.ctrl.Tick()
		if o.ctrl.Phase() == runner.PhaseRunning && o.ctrl.Score() >= o.nextMilestone {
			o.triggerMilestone(now)
		}
	case runner.PhaseSuspended:
		o.maybeResume(now)
	}

	return o.ctrl.Phase() != runner.PhaseEnded && o.ctrl.Phase() != runner.PhaseIdle
}

// Render draws the current frame. Safe to call in any phase.
func (o *Orchestrator) Render(c runner.Canvas) {
	o.renderer.Draw(c, o.ctrl.Session())
}

// Snapshot returns the display state.
func (o *Orchestrator) Snapshot() Snapshot {
	s := o.ctrl.Session()
	snap := Snapshot{
		Phase:         s.Phase,
		Score:         s.Score,
		HighScore:     o.highScore,
		NewHighScore:  o.newHighScore,
		Speed:         s.Speed,
		NextSpeed:     o.ctrl.NextSpeed(),
		Theme:         s.Theme,
		Evolutions:    o.evolutions,
		Evolving:      o.evolving,
		Pending:       o.pending,
		NextMilestone: o.nextMilestone,
		Generation:    o.generation,
		Grounded:      s.Player.Grounded,
		Obstacles:     len(s.Obstacles),
		Particles:     len(s.Particles),
	}
	if o.evolution != nil {
		rec := *o.evolution
		snap.Evolution = &rec
	}
	return snap
}

// Active reports whether frames are still being requested.
func (o *Orchestrator) Active() bool {
	return o.loop.Active()
}

// Close stops the loop and cancels any outstanding request.
func (o *Orchestrator) Close() {
	o.loop.Stop()
	o.abandonFetch()
	o.cancel()
}

func (o *Orchestrator) handleScoreUpdate(score int) {
	o.log.Debug("score", "score", score, "speed", o.ctrl.Session().Speed)
	if o.onScore != nil {
		o.onScore(score)
	}
}

func (o *Orchestrator) handleGameOver(final int) {
	o.log.Info("run ended", "score", final, "generation", o.generation)

	if final > o.highScore {
		o.log.Info("new high score", "score", final, "previous", o.highScore)
		o.highScore = final
		o.newHighScore = true
	}
	if o.store != nil && final > 0 {
		if _, err := o.store.SaveScore(o.player, final); err != nil {
			o.log.Error("failed to save score", "err", err)
		}
	}

	if o.onOver != nil {
		o.onOver(final)
	}
}
