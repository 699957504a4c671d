package tui

import (
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/platform/hud"
)

// hudRows is the height of the status area above the playfield.
const hudRows = 2

// drawHUD draws the status line and scores across the top rows.
func drawHUD(scr *core.Screen, snap orchestrator.Snapshot, paused bool) {
	scr.SetPen(core.ColorGray)
	scr.DrawText(1, 0, "SYSTEM STATUS")
	scr.SetPen(snap.Theme)
	scr.DrawText(1, 1, hud.Status(snap, paused))

	if sector := hud.Sector(snap); sector != "" {
		scr.SetPen(snap.Theme)
		scr.DrawTextCentered(0, sector)
	}
	if speed := hud.Speed(snap); speed != "" {
		scr.SetPen(core.ColorGray)
		scr.DrawTextCentered(1, speed)
	}

	for i, l := range hud.Scores(snap) {
		scr.SetPen(l.Color)
		x := scr.Width() - len([]rune(l.Text)) - 1
		scr.DrawText(x, i, l.Text)
	}
	scr.SetPen(core.ColorNeutral)
}

// drawPanel draws a bordered panel centred in the given area.
func drawPanel(scr *core.Screen, p hud.Panel, top, height int) {
	w := min(p.Width()+6, scr.Width())
	h := min(len(p.Lines)+4, height)
	x := (scr.Width() - w) / 2
	y := top + (height-h)/2

	scr.SetPen(core.ColorBackground)
	scr.FillRect(x, y, w, h, ' ')
	scr.SetPen(p.Border)
	scr.DrawBox(x, y, w, h)

	for i, l := range p.Lines {
		row := y + 2 + i
		if row >= y+h-1 {
			break
		}
		scr.SetPen(l.Color)
		lx := x + (w-len([]rune(l.Text)))/2
		scr.DrawText(max(lx, x+1), row, l.Text)
	}
	scr.SetPen(core.ColorNeutral)
}
