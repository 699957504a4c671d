package runner

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// Rand is the source of randomness used by the simulation.
// *math/rand.Rand satisfies it; tests supply fixed sequences.
type Rand interface {
	Float64() float64 // in [0, 1)
}

// Spawner decides when obstacles enter the world.
type Spawner interface {
	// Reset prepares a fresh session's spawn countdown.
	Reset(s *Session)
	// Tick advances the countdown by one tick and may return a new obstacle.
	Tick(s *Session) (Obstacle, bool)
}

// ObstacleSpawner is the default spawner: a countdown that shrinks as the
// world speeds up, with weighted random obstacle kinds.
type ObstacleSpawner struct {
	timing  config.SpawnerConfig
	shape   config.ObstacleConfig
	groundY float64
	rng     Rand
}

// NewObstacleSpawner creates a spawner drawing from rng.
func NewObstacleSpawner(cfg config.RunnerConfig, rng Rand) *ObstacleSpawner {
	return &ObstacleSpawner{
		timing:  cfg.Spawner,
		shape:   cfg.Obstacles,
		groundY: cfg.Canvas.GroundY,
		rng:     rng,
	}
}

// Reset sets the countdown to its initial value.
func (sp *ObstacleSpawner) Reset(s *Session) {
	s.SpawnTimer = sp.timing.InitialTimer
}

// Tick decrements the countdown and spawns exactly one obstacle when it runs out.
func (sp *ObstacleSpawner) Tick(s *Session) (Obstacle, bool) {
	s.SpawnTimer--
	if s.SpawnTimer > 0 {
		return Obstacle{}, false
	}

	o := sp.Spawn(s)
	s.SpawnTimer = sp.NextInterval(s.Speed)
	return o, true
}

// NextInterval returns the ticks until the next spawn at the given speed.
// Faster worlds get shorter gaps on average.
func (sp *ObstacleSpawner) NextInterval(speed float64) float64 {
	return sp.timing.BaseInterval + sp.rng.Float64()*sp.timing.IntervalJitter - speed*sp.timing.SpeedFactor
}

// ChooseKind picks an obstacle kind according to the configured weights.
func (sp *ObstacleSpawner) ChooseKind() ObstacleKind {
	w := sp.shape.Weights
	total := w.Total()
	if total <= 0 {
		return KindGround
	}

	pick := int(math.Floor(sp.rng.Float64() * float64(total)))
	switch {
	case pick < w.Ground:
		return KindGround
	case pick < w.Ground+w.Flying:
		return KindFlying
	default:
		return KindBeam
	}
}

// Spawn builds one obstacle at the right-hand spawn line. It inherits the
// session's current theme colour and world speed.
func (sp *ObstacleSpawner) Spawn(s *Session) Obstacle {
	o := Obstacle{
		X:     sp.shape.SpawnX,
		Width: sp.shape.Width,
		Speed: s.Speed,
		Kind:  sp.ChooseKind(),
		Color: s.Theme,
	}

	switch o.Kind {
	case KindFlying:
		o.Height = sp.shape.FlyingHeight
		o.Y = sp.shape.FlyingMinY + sp.rng.Float64()*sp.shape.FlyingYJitter
	case KindBeam:
		o.Width = sp.shape.BeamWidth
		o.Height = sp.shape.BeamHeight
		o.Y = sp.shape.BeamY
	default:
		o.Height = sp.shape.GroundMinHeight + sp.rng.Float64()*sp.shape.GroundHeightJitter
		o.Y = sp.groundY - o.Height
	}
	return o
}

// NopSpawner never spawns anything. Useful for scripted sessions.
type NopSpawner struct{}

// Reset implements Spawner.
func (NopSpawner) Reset(s *Session) { s.SpawnTimer = 0 }

// Tick implements Spawner.
func (NopSpawner) Tick(*Session) (Obstacle, bool) { return Obstacle{}, false }
