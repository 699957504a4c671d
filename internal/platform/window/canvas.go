package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// ImageCanvas draws the world onto an ebiten image. The window layout
// matches the world size, so coordinates map one to one.
type ImageCanvas struct {
	dst *ebiten.Image
}

// SetTarget sets the image drawn by subsequent calls.
func (c *ImageCanvas) SetTarget(dst *ebiten.Image) {
	c.dst = dst
}

// Ready implements runner.Canvas.
func (c *ImageCanvas) Ready() bool {
	return c != nil && c.dst != nil
}

// Clear implements runner.Canvas.
func (c *ImageCanvas) Clear(col core.Color) {
	c.dst.Fill(col.NRGBA(1))
}

// FillRect implements runner.Canvas.
func (c *ImageCanvas) FillRect(r core.Rect, col core.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col.NRGBA(alpha), false)
}

// Line implements runner.Canvas.
func (c *ImageCanvas) Line(x0, y0, x1, y1, width float64, col core.Color) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col.NRGBA(1), false)
}
