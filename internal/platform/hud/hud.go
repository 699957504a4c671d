// Package hud builds the text shown on top of the playfield. Frontends decide
// how to draw it; the content is the same in the terminal and in the window.
package hud

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// Line is one line of overlay text.
type Line struct {
	Text  string
	Color core.Color
}

// Panel is a centred overlay box.
type Panel struct {
	Lines  []Line
	Border core.Color
}

// Width returns the widest line in runes.
func (p Panel) Width() int {
	w := 0
	for _, l := range p.Lines {
		w = max(w, len([]rune(l.Text)))
	}
	return w
}

// Distance formats a score the way the scoreboard shows it.
func Distance(score int) string {
	return fmt.Sprintf("%06dm", score)
}

// Status is the one-word system status.
func Status(snap orchestrator.Snapshot, paused bool) string {
	switch {
	case paused && snap.Phase != runner.PhaseEnded && snap.Phase != runner.PhaseIdle:
		return "PAUSED"
	case snap.Phase == runner.PhaseIdle:
		return "START"
	case snap.Phase == runner.PhaseSuspended:
		return "EVOLVING"
	case snap.Phase == runner.PhaseEnded:
		return "GAMEOVER"
	default:
		return "RUNNING"
	}
}

// Speed shows the world speed during a run and, while it is still rising,
// the speed after the next step.
func Speed(snap orchestrator.Snapshot) string {
	if snap.Phase != runner.PhaseRunning && snap.Phase != runner.PhaseSuspended {
		return ""
	}
	if snap.NextSpeed > snap.Speed {
		return fmt.Sprintf("SPEED %.1f > %.1f", snap.Speed, snap.NextSpeed)
	}
	return fmt.Sprintf("SPEED %.1f", snap.Speed)
}

// Scores returns the right-hand HUD: current distance and the record.
func Scores(snap orchestrator.Snapshot) []Line {
	return []Line{
		{Text: "DISTANCE " + Distance(snap.Score), Color: core.ColorNeutral},
		{Text: "HI-RECORD " + Distance(snap.HighScore), Color: core.ColorGray},
	}
}

// Sector returns the current sector label, or "" before the first evolution.
func Sector(snap orchestrator.Snapshot) string {
	if snap.Evolution == nil {
		return ""
	}
	return "SECTOR " + strings.ToUpper(snap.Evolution.SectorName)
}

// Overlay returns the panel for the current state, if any.
func Overlay(snap orchestrator.Snapshot, paused bool) (Panel, bool) {
	switch snap.Phase {
	case runner.PhaseIdle:
		return startPanel(), true
	case runner.PhaseEnded:
		return gameOverPanel(snap), true
	case runner.PhaseSuspended:
		return evolvingPanel(snap), true
	}
	if paused {
		return Panel{
			Lines: []Line{
				{Text: "PAUSED", Color: core.ColorNeon},
				{Text: "press P to resume", Color: core.ColorGray},
			},
			Border: core.ColorNeon,
		}, true
	}
	return Panel{}, false
}

func startPanel() Panel {
	return Panel{
		Lines: []Line{
			{Text: "N E O N   R U N N E R", Color: core.ColorNeon},
			{Text: "A.I. NEURAL RUNNER v3.0", Color: core.ColorGray},
			{},
			{Text: "[ ENTER ]  INITIATE SEQUENCE", Color: core.ColorNeon},
			{},
			{Text: "PRESS [SPACE] TO JUMP", Color: core.ColorGray},
		},
		Border: core.ColorNeon,
	}
}

func evolvingPanel(snap orchestrator.Snapshot) Panel {
	lines := []Line{{Text: "EVOLUTION TRIGGERED", Color: core.ColorNeon}, {}}
	if snap.Pending || snap.Evolution == nil {
		lines = append(lines, Line{Text: "scanning sector...", Color: core.ColorGray})
		return Panel{Lines: lines, Border: core.ColorNeon}
	}

	rec := snap.Evolution
	lines = append(lines,
		Line{Text: rec.SectorName, Color: rec.Theme()},
		Line{Text: `"` + rec.Description + `"`, Color: core.ColorGray},
		Line{},
		Line{Text: "MUTATION: " + strings.ToUpper(rec.MutationEffect), Color: core.ColorNeutral},
	)
	return Panel{Lines: lines, Border: rec.Theme()}
}

func gameOverPanel(snap orchestrator.Snapshot) Panel {
	lines := []Line{
		{Text: "CONNECTION LOST", Color: core.ColorAlert},
		{Text: "Critical System Failure detected", Color: core.ColorGray},
		{},
		{Text: fmt.Sprintf("FINAL SCORE  %d", snap.Score), Color: core.ColorNeutral},
		{Text: fmt.Sprintf("PEAK EVOLUTION  #SCTR-%d", snap.Evolutions), Color: core.ColorNeutral},
	}
	if snap.NewHighScore {
		lines = append(lines, Line{Text: "NEW HI-RECORD", Color: core.ColorGlitch})
	}
	lines = append(lines, Line{}, Line{Text: "[ R ]  REBOOT SYSTEM", Color: core.ColorAlert})
	return Panel{Lines: lines, Border: core.ColorAlert}
}
