package hud

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "000000m"},
		{42, "000042m"},
		{1234567, "1234567m"},
	}
	for _, tc := range tests {
		if got := Distance(tc.score); got != tc.want {
			t.Errorf("Distance(%d) = %q, expected %q", tc.score, got, tc.want)
		}
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		phase  runner.Phase
		paused bool
		want   string
	}{
		{runner.PhaseIdle, false, "START"},
		{runner.PhaseIdle, true, "START"},
		{runner.PhaseRunning, false, "RUNNING"},
		{runner.PhaseRunning, true, "PAUSED"},
		{runner.PhaseSuspended, false, "EVOLVING"},
		{runner.PhaseEnded, true, "GAMEOVER"},
	}
	for _, tc := range tests {
		got := Status(orchestrator.Snapshot{Phase: tc.phase}, tc.paused)
		if got != tc.want {
			t.Errorf("Status(%v, paused=%v) = %q, expected %q", tc.phase, tc.paused, got, tc.want)
		}
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		snap orchestrator.Snapshot
		want string
	}{
		{orchestrator.Snapshot{Phase: runner.PhaseIdle, Speed: 7, NextSpeed: 7.1}, ""},
		{orchestrator.Snapshot{Phase: runner.PhaseRunning, Speed: 7, NextSpeed: 7.1}, "SPEED 7.0 > 7.1"},
		{orchestrator.Snapshot{Phase: runner.PhaseSuspended, Speed: 8, NextSpeed: 8.1}, "SPEED 8.0 > 8.1"},
		{orchestrator.Snapshot{Phase: runner.PhaseRunning, Speed: 9, NextSpeed: 9}, "SPEED 9.0"},
		{orchestrator.Snapshot{Phase: runner.PhaseEnded, Speed: 9, NextSpeed: 9}, ""},
	}
	for _, tc := range tests {
		if got := Speed(tc.snap); got != tc.want {
			t.Errorf("Speed(%v) = %q, expected %q", tc.snap.Phase, got, tc.want)
		}
	}
}

func TestOverlayPerPhase(t *testing.T) {
	if _, ok := Overlay(orchestrator.Snapshot{Phase: runner.PhaseRunning}, false); ok {
		t.Error("running game should have no overlay")
	}
	if p, ok := Overlay(orchestrator.Snapshot{Phase: runner.PhaseRunning}, true); !ok || p.Lines[0].Text != "PAUSED" {
		t.Error("paused game should show the pause panel")
	}
	if p, ok := Overlay(orchestrator.Snapshot{Phase: runner.PhaseIdle}, false); !ok || !strings.Contains(p.Lines[0].Text, "N E O N") {
		t.Error("idle game should show the start panel")
	}
}

func TestEvolvingPanel(t *testing.T) {
	pending := orchestrator.Snapshot{Phase: runner.PhaseSuspended, Evolving: true, Pending: true}
	p, _ := Overlay(pending, false)
	if !strings.Contains(p.Lines[len(p.Lines)-1].Text, "scanning") {
		t.Errorf("pending evolution should say it is scanning: %+v", p.Lines)
	}

	rec := evolution.Fallback()
	shown := orchestrator.Snapshot{Phase: runner.PhaseSuspended, Evolving: true, Evolution: &rec}
	p, _ = Overlay(shown, false)

	var text []string
	for _, l := range p.Lines {
		text = append(text, l.Text)
	}
	joined := strings.Join(text, "\n")
	for _, want := range []string{"System Glitch", `"Reality destabilizes as the code rewrites itself."`, "MUTATION: CHAOS THEORY"} {
		if !strings.Contains(joined, want) {
			t.Errorf("evolving panel missing %q:\n%s", want, joined)
		}
	}
	if p.Border != core.ColorGlitch {
		t.Errorf("border = %v, expected the record's theme", p.Border)
	}
}

func TestGameOverPanel(t *testing.T) {
	p, _ := Overlay(orchestrator.Snapshot{Phase: runner.PhaseEnded, Score: 321, Evolutions: 2, NewHighScore: true}, false)
	if p.Lines[0].Text != "CONNECTION LOST" {
		t.Errorf("title = %q", p.Lines[0].Text)
	}
	if p.Width() < len("Critical System Failure detected") {
		t.Errorf("Width() = %d too small", p.Width())
	}

	var found bool
	for _, l := range p.Lines {
		if l.Text == "NEW HI-RECORD" {
			found = true
		}
	}
	if !found {
		t.Error("new high score not announced")
	}
}
