package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
)

// Physics advances bodies with a constant-gravity integrator tuned for feel.
type Physics struct {
	gravity  float64
	groundY  float64
	despawnX float64
}

// NewPhysics creates the integrator for the given configuration.
func NewPhysics(cfg config.RunnerConfig) Physics {
	return Physics{
		gravity:  cfg.Physics.Gravity,
		groundY:  cfg.Canvas.GroundY,
		despawnX: cfg.Obstacles.DespawnX,
	}
}

// Integrate applies one tick of gravity to the player and clamps it to the
// ground. Touching the ground exactly counts as landed.
func (ph Physics) Integrate(p *Player) {
	p.DY += ph.gravity
	p.Y += p.DY

	if p.Bottom() >= ph.groundY {
		p.Y = ph.groundY - p.Height
		p.DY = 0
		p.Grounded = true
		p.IsJumping = false
	}
}

// Jump starts a jump if the player is on the ground.
// Returns false (and changes nothing) while airborne.
func (ph Physics) Jump(p *Player) bool {
	if !p.Grounded {
		return false
	}
	p.DY = -p.JumpForce
	p.Grounded = false
	p.IsJumping = true
	return true
}

// AdvanceObstacles moves every obstacle left by the speed it was spawned
// with. Obstacles without a speed of their own travel at the world speed.
func (ph Physics) AdvanceObstacles(obstacles []Obstacle, worldSpeed float64) {
	for i := range obstacles {
		v := obstacles[i].Speed
		if v <= 0 {
			v = worldSpeed
		}
		obstacles[i].X -= v
	}
}

// PruneObstacles removes obstacles whose right edge has passed the despawn
// threshold. Filters in place and returns the shortened slice.
func (ph Physics) PruneObstacles(obstacles []Obstacle) []Obstacle {
	valid := obstacles[:0]
	for _, o := range obstacles {
		if o.Right() >= ph.despawnX {
			valid = append(valid, o)
		}
	}
	clear(obstacles[len(valid):])
	return valid
}

// Overlapping calls fn for every obstacle whose box overlaps the player and
// returns how many did.
func (ph Physics) Overlapping(p Player, obstacles []Obstacle, fn func(Obstacle)) int {
	box := p.Rect()
	hits := 0
	for _, o := range obstacles {
		if box.Intersects(o.Rect()) {
			hits++
			if fn != nil {
				fn(o)
			}
		}
	}
	return hits
}
