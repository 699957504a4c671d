package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Callbacks are invoked synchronously from inside Tick.
type Callbacks struct {
	OnScoreUpdate func(score int)      // every World.ReportEvery ticks
	OnGameOver    func(finalScore int) // exactly once per run
}

// Controller owns a Session and moves it through its phases.
// It is not safe for concurrent use; hosts call it from one goroutine.
type Controller struct {
	cfg        config.RunnerConfig
	physics    Physics
	particles  *ParticleSystem
	spawner    Spawner
	difficulty *config.DifficultyManager
	callbacks  Callbacks
	theme      core.Color
	session    Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpawner replaces the default obstacle spawner.
func WithSpawner(s Spawner) Option {
	return func(c *Controller) {
		c.spawner = s
	}
}

// WithRand sets the random source for the default spawner and particles.
func WithRand(r Rand) Option {
	return func(c *Controller) {
		c.particles = NewParticleSystem(c.cfg.Particles, r)
		c.spawner = NewObstacleSpawner(c.cfg, r)
	}
}

// WithCallbacks registers score and game-over callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(c *Controller) {
		c.callbacks = cb
	}
}

// NewController creates a controller with an idle session.
// Options are applied in order, so WithSpawner should follow WithRand.
func NewController(cfg config.RunnerConfig, opts ...Option) *Controller {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	c := &Controller{
		cfg:        cfg,
		physics:    NewPhysics(cfg),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		theme:      core.ColorNeon,
	}
	c.particles = NewParticleSystem(cfg.Particles, rng)
	c.spawner = NewObstacleSpawner(cfg, rng)

	for _, opt := range opts {
		opt(c)
	}

	c.reset()
	c.session.Phase = PhaseIdle
	return c
}

// reset rebuilds the session from scratch.
func (c *Controller) reset() {
	s := &c.session
	s.Player = newPlayer(c.cfg, c.theme)
	s.Obstacles = s.Obstacles[:0]
	s.Particles = s.Particles[:0]
	s.Score = 0
	s.Speed = c.difficulty.StartSpeed(c.cfg.World.BaseSpeed)
	s.Theme = c.theme
	c.spawner.Reset(s)
}

// Start begins a new run from any phase. The previous run, if any, is
// discarded.
func (c *Controller) Start() {
	c.reset()
	c.session.Phase = PhaseRunning
}

// Jump applies a jump command. It is a no-op unless the run is ticking and
// the player is grounded. Returns whether the jump happened.
func (c *Controller) Jump() bool {
	s := &c.session
	if s.Phase != PhaseRunning {
		return false
	}
	if !c.physics.Jump(&s.Player) {
		return false
	}

	p := s.Player
	s.Particles = c.particles.Burst(s.Particles, p.X+p.Width/2, c.cfg.Canvas.GroundY, s.Theme)
	return true
}

// Tick advances a running session by one step. Returns false if the session
// is not running.
//
// Order: player gravity, spawn, obstacle movement, collision, pruning, score
// and difficulty, particles. A colliding tick ends the run with the score it
// had before the tick.
func (c *Controller) Tick() bool {
	s := &c.session
	if s.Phase != PhaseRunning {
		return false
	}

	c.physics.Integrate(&s.Player)

	if o, ok := c.spawner.Tick(s); ok {
		s.Obstacles = append(s.Obstacles, o)
	}

	c.physics.AdvanceObstacles(s.Obstacles, s.Speed)

	cx, cy := s.Player.Rect().Center()
	hits := c.physics.Overlapping(s.Player, s.Obstacles, func(Obstacle) {
		s.Particles = c.particles.Burst(s.Particles, cx, cy, core.ColorAlert)
	})
	if hits > 0 {
		s.Particles = c.particles.Update(s.Particles)
		c.end()
		return true
	}

	s.Obstacles = c.physics.PruneObstacles(s.Obstacles)

	s.Score++
	s.Speed = c.difficulty.Advance(s.Speed, s.Score)
	if every := c.cfg.World.ReportEvery; every > 0 && s.Score%every == 0 && c.callbacks.OnScoreUpdate != nil {
		c.callbacks.OnScoreUpdate(s.Score)
	}

	s.Particles = c.particles.Update(s.Particles)
	return true
}

// end moves the session to PhaseEnded and reports the final score once.
func (c *Controller) end() {
	if c.session.Phase == PhaseEnded {
		return
	}
	c.session.Phase = PhaseEnded
	if c.callbacks.OnGameOver != nil {
		c.callbacks.OnGameOver(c.session.Score)
	}
}

// Suspend freezes a running session. Returns false from any other phase.
func (c *Controller) Suspend() bool {
	if c.session.Phase != PhaseRunning {
		return false
	}
	c.session.Phase = PhaseSuspended
	return true
}

// Resume continues a suspended session. Returns false from any other phase.
func (c *Controller) Resume() bool {
	if c.session.Phase != PhaseSuspended {
		return false
	}
	c.session.Phase = PhaseRunning
	return true
}

// SetTheme changes the colour used for the player, the ground and newly
// spawned obstacles. Obstacles already on screen keep their spawn colour.
func (c *Controller) SetTheme(col core.Color) {
	c.theme = col
	c.session.Theme = col
	c.session.Player.Color = col
}

// Phase returns the current session phase.
func (c *Controller) Phase() Phase {
	return c.session.Phase
}

// Score returns the current score.
func (c *Controller) Score() int {
	return c.session.Score
}

// Session exposes the live session for rendering and inspection.
// Callers must treat it as read-only.
func (c *Controller) Session() *Session {
	return &c.session
}

// NextSpeed returns the world speed after the next difficulty step. It equals
// the current speed once progression is off or capped.
func (c *Controller) NextSpeed() float64 {
	next := c.difficulty.SpeedAt(c.cfg.World.BaseSpeed, c.session.Score+c.cfg.Difficulty.StepEvery)
	return math.Max(c.session.Speed, next)
}
