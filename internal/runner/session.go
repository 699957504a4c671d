package runner

import "github.com/vovakirdan/neon-runner/internal/core"

// Phase is the session state machine.
type Phase int

const (
	PhaseIdle      Phase = iota // waiting for the first start command
	PhaseRunning                // ticking
	PhaseSuspended              // frozen for a milestone; still rendered
	PhaseEnded                  // collided; no more ticks until restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseSuspended:
		return "suspended"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session is the complete mutable state of one run.
// It is owned by a Controller; everything else only reads it during a frame.
type Session struct {
	Player     Player
	Obstacles  []Obstacle
	Particles  []Particle
	Score      int     // ticks survived
	Speed      float64 // world speed, never decreases within a run
	SpawnTimer float64 // ticks until the next spawn
	Theme      core.Color
	Phase      Phase
}
