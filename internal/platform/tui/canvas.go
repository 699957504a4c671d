package tui

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// ScreenCanvas draws the logical world onto a rectangular area of a Screen.
// Every cell covers (worldW/cols) x (worldH/rows) world units. Translucent
// fills are blended against the background since cells have no alpha.
type ScreenCanvas struct {
	screen     *core.Screen
	top, left  int
	cols, rows int
	worldW     float64
	worldH     float64
	bg         core.Color
}

// NewScreenCanvas creates a canvas for a worldW x worldH world.
func NewScreenCanvas(screen *core.Screen, worldW, worldH float64) *ScreenCanvas {
	return &ScreenCanvas{
		screen: screen,
		worldW: worldW,
		worldH: worldH,
		bg:     core.ColorBackground,
	}
}

// SetArea places the canvas at (left, top) with the given size in cells.
func (c *ScreenCanvas) SetArea(left, top, cols, rows int) {
	c.left, c.top = left, top
	c.cols, c.rows = max(cols, 0), max(rows, 0)
}

// Ready implements runner.Canvas.
func (c *ScreenCanvas) Ready() bool {
	return c != nil && c.screen != nil && c.cols > 0 && c.rows > 0 && c.worldW > 0 && c.worldH > 0
}

// Clear implements runner.Canvas.
func (c *ScreenCanvas) Clear(col core.Color) {
	c.bg = col
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			c.screen.SetCell(c.left+x, c.top+y, core.Cell{Rune: ' ', Color: col})
		}
	}
}

// FillRect implements runner.Canvas. Any rectangle with a visible area covers
// at least one cell.
func (c *ScreenCanvas) FillRect(r core.Rect, col core.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	x0, x1 := c.span(r.X, r.Right(), c.worldW, c.cols)
	y0, y1 := c.span(r.Y, r.Bottom(), c.worldH, c.rows)
	if alpha < 1 {
		col = col.Blend(c.bg, alpha)
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetCell(c.left+x, c.top+y, core.Cell{Rune: '█', Color: col})
		}
	}
}

// Line implements runner.Canvas for axis-aligned lines.
func (c *ScreenCanvas) Line(x0, y0, x1, y1, width float64, col core.Color) {
	switch {
	case y0 == y1:
		row := c.row(y0)
		if row < 0 || row >= c.rows {
			return
		}
		from, to := c.span(math.Min(x0, x1), math.Max(x0, x1), c.worldW, c.cols)
		r := '─'
		if width >= 2 {
			r = '━'
		}
		for x := from; x < to; x++ {
			c.plot(x, row, r, col)
		}
	case x0 == x1:
		col0 := c.col(x0)
		if col0 < 0 || col0 >= c.cols {
			return
		}
		from, to := c.span(math.Min(y0, y1), math.Max(y0, y1), c.worldH, c.rows)
		for y := from; y < to; y++ {
			c.plot(col0, y, '│', col)
		}
	}
}

// plot draws a line cell. Crossing lines become a junction; lines never
// overwrite solid fills.
func (c *ScreenCanvas) plot(x, y int, r rune, col core.Color) {
	cur := c.screen.GetCell(c.left+x, c.top+y)
	switch {
	case cur.Rune == '█':
		return
	case (cur.Rune == '│' && r == '─') || (cur.Rune == '─' && r == '│'):
		r = '┼'
	}
	c.screen.SetCell(c.left+x, c.top+y, core.Cell{Rune: r, Color: col})
}

func (c *ScreenCanvas) col(x float64) int {
	return int(math.Floor(x * float64(c.cols) / c.worldW))
}

func (c *ScreenCanvas) row(y float64) int {
	return int(math.Floor(y * float64(c.rows) / c.worldH))
}

// span converts a world interval into a clipped half-open cell range.
func (c *ScreenCanvas) span(from, to, world float64, cells int) (int, int) {
	scale := float64(cells) / world
	lo := int(math.Floor(from * scale))
	hi := int(math.Ceil(to * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return core.Clamp(lo, 0, cells), core.Clamp(hi, 0, cells)
}
