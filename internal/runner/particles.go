package runner

import (
	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// ParticleSystem creates and ages burst particles.
type ParticleSystem struct {
	count  int
	spread float64
	decay  float64
	rng    Rand
}

// NewParticleSystem creates a particle system drawing velocities from rng.
func NewParticleSystem(cfg config.ParticleConfig, rng Rand) *ParticleSystem {
	return &ParticleSystem{
		count:  cfg.BurstCount,
		spread: cfg.Spread,
		decay:  cfg.Decay,
		rng:    rng,
	}
}

// Burst appends a burst of particles centred on (x, y) to dst.
func (ps *ParticleSystem) Burst(dst []Particle, x, y float64, c core.Color) []Particle {
	for i := 0; i < ps.count; i++ {
		dst = append(dst, Particle{
			X:     x,
			Y:     y,
			VX:    (ps.rng.Float64() - 0.5) * ps.spread,
			VY:    (ps.rng.Float64() - 0.5) * ps.spread,
			Life:  1.0,
			Color: c,
		})
	}
	return dst
}

// Update moves every particle, drains its life and drops the dead ones.
// Filters in place and returns the shortened slice.
func (ps *ParticleSystem) Update(particles []Particle) []Particle {
	alive := particles[:0]
	for _, p := range particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= ps.decay
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	clear(particles[len(alive):])
	return alive
}
