package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Painter converts Screen buffers to styled strings. Styles are created on
// first use per colour and cached.
type Painter struct {
	renderer *lipgloss.Renderer

	mu     sync.Mutex
	styles map[core.Color]lipgloss.Style
}

// NewPainter creates a painter for the given lipgloss renderer.
// A nil renderer uses the default one for stdout.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[core.Color]lipgloss.Style),
	}
}

// Style returns the foreground style for a colour.
func (p *Painter) Style(c core.Color) lipgloss.Style {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.styles[c]
	if !ok {
		st = p.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		p.styles[c] = st
	}
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
