// Package runner implements the endless-runner simulation: entities, the
// constant-gravity integrator, obstacle spawning, particles, the session state
// machine and a read-only renderer.
//
// Nothing in this package touches a terminal, a window or the network. Hosts
// drive it one frame at a time through a Scheduler and draw it through a
// Canvas.
package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Player is the jumping character. X never changes during a run.
type Player struct {
	X, Y      float64
	Width     float64
	Height    float64
	DY        float64 // vertical velocity, positive = down
	JumpForce float64
	Grounded  bool
	IsJumping bool
	Color     core.Color
}

// Rect returns the player's collision box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Bottom returns the y coordinate of the player's lower edge.
func (p Player) Bottom() float64 {
	return p.Y + p.Height
}

// newPlayer returns a player resting on the ground.
func newPlayer(cfg config.RunnerConfig, theme core.Color) Player {
	return Player{
		X:         cfg.Player.X,
		Y:         cfg.Canvas.GroundY - cfg.Player.Height,
		Width:     cfg.Player.Width,
		Height:    cfg.Player.Height,
		JumpForce: cfg.Player.JumpForce,
		Grounded:  true,
		Color:     theme,
	}
}

// ObstacleKind tags what an obstacle looks like and where it spawns.
// Collision treats all kinds the same.
type ObstacleKind int

const (
	KindGround ObstacleKind = iota // sits on the ground, must be jumped over
	KindFlying                     // floats above a grounded player
	KindBeam                       // reserved; only spawned when its weight is raised
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindFlying:
		return "flying"
	case KindBeam:
		return "beam"
	default:
		return "unknown"
	}
}

// Obstacle is a hazard scrolling from right to left.
type Obstacle struct {
	X, Y   float64
	Width  float64
	Height float64
	Speed  float64 // world speed when spawned
	Kind   ObstacleKind
	Color  core.Color
}

// Rect returns the obstacle's collision box.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Right returns the x coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Particle is a short-lived visual effect fragment.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1.0 at birth, removed at <= 0
	Color  core.Color
}
