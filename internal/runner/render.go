package runner

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Canvas is a drawing surface in logical canvas units.
type Canvas interface {
	// Ready reports whether the surface can be drawn to yet.
	Ready() bool
	Clear(c core.Color)
	FillRect(r core.Rect, c core.Color, alpha float64)
	Line(x0, y0, x1, y1, width float64, c core.Color)
}

const (
	glitchChance   = 0.98 // per obstacle per frame
	glitchOverhang = 5
	glitchHeight   = 2
	eyeSize        = 8
	eyeInsetX      = 15
	eyeInsetY      = 10
	groundWidth    = 3
)

// Renderer draws a Session onto a Canvas. It never mutates the session.
type Renderer struct {
	canvas   config.CanvasConfig
	particle float64
	rng      Rand
}

// NewRenderer creates a renderer. rng only drives cosmetic glitches and
// should be separate from the simulation's source.
func NewRenderer(cfg config.RunnerConfig, rng Rand) *Renderer {
	return &Renderer{
		canvas:   cfg.Canvas,
		particle: cfg.Particles.Size,
		rng:      rng,
	}
}

// Draw renders one frame. A nil or not-ready canvas is skipped.
func (r *Renderer) Draw(c Canvas, s *Session) {
	if c == nil || s == nil || !c.Ready() {
		return
	}

	c.Clear(core.ColorBackground)
	r.drawGrid(c, s.Score)

	c.Line(0, r.canvas.GroundY, r.canvas.Width, r.canvas.GroundY, groundWidth, s.Theme)

	p := s.Player
	c.FillRect(p.Rect(), p.Color, 1)
	c.FillRect(core.NewRect(p.X+p.Width-eyeInsetX, p.Y+eyeInsetY, eyeSize, eyeSize), core.ColorEye, 1)

	for _, o := range s.Obstacles {
		col := o.Color
		if o.Kind == KindFlying {
			col = core.ColorNeutral
		}
		c.FillRect(o.Rect(), col, 1)

		if r.rng != nil && r.rng.Float64() > glitchChance {
			bar := core.NewRect(o.X-glitchOverhang, o.Y, o.Width+2*glitchOverhang, glitchHeight)
			c.FillRect(bar, core.ColorGlitch, 1)
		}
	}

	for _, pt := range s.Particles {
		c.FillRect(core.NewRect(pt.X, pt.Y, r.particle, r.particle), pt.Color, pt.Life)
	}
}

// drawGrid draws the background grid. Vertical lines scroll with the score.
func (r *Renderer) drawGrid(c Canvas, score int) {
	tile := r.canvas.Tile
	if tile <= 0 {
		return
	}
	offset := math.Mod(float64(score), tile)
	for x := 0.0; x < r.canvas.Width; x += tile {
		c.Line(x-offset, 0, x-offset, r.canvas.Height, 1, core.ColorGrid)
	}
	for y := 0.0; y < r.canvas.Height; y += tile {
		c.Line(0, y, r.canvas.Width, y, 1, core.ColorGrid)
	}
}
