package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/platform/hud"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// Options configures a terminal game.
type Options struct {
	Config    config.RunnerConfig
	Generator evolution.Generator
	Store     orchestrator.ScoreStore // nil disables persistence
	Logger    *log.Logger
	Player    string
	Runtime   core.RuntimeConfig // initial terminal size, tick rate and seed
	Renderer  *lipgloss.Renderer // per-session renderer for SSH
}

// Model is the Bubble Tea model for one player's run.
type Model struct {
	orch     *orchestrator.Orchestrator
	sched    *runner.FrameScheduler
	screen   *core.Screen
	canvas   *ScreenCanvas
	painter  *Painter
	keys     KeyMap
	help     help.Model
	input    core.InputFrame
	log      *log.Logger
	tickRate int
	paused   bool
	jumpHeld bool // a jump was queued on the previous tick
	quitting bool
}

// NewModel creates a model with an idle session.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	def := core.DefaultConfig()
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = def.TickRate
	}

	sched := runner.NewFrameScheduler()
	orch := orchestrator.New(orchestrator.Options{
		Config:    opts.Config,
		Scheduler: sched,
		Generator: opts.Generator,
		Store:     opts.Store,
		Logger:    logger,
		Player:    opts.Player,
		Seed:      rt.Seed,
	})

	screen := core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1))
	m := Model{
		orch:     orch,
		sched:    sched,
		screen:   screen,
		canvas:   NewScreenCanvas(screen, opts.Config.Canvas.Width, opts.Config.Canvas.Height),
		painter:  NewPainter(opts.Renderer),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
		log:      logger,
		tickRate: rt.TickRate,
	}
	m.layout()
	return m
}

// layout fits the playfield below the HUD.
func (m *Model) layout() {
	m.canvas.SetArea(0, hudRows, m.screen.Width(), m.screen.Height()-hudRows)
	m.help.Width = m.screen.Width()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records actions for the next tick. Quit and capture act at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a := m.keys.MapKey(msg); a {
	case core.ActionQuit:
		m.quitting = true
		m.orch.Close()
		return m, tea.Quit
	case core.ActionCapture:
		m.saveScreenshot()
	case core.ActionNone:
	default:
		m.input.Set(a)
	}
	return m, nil
}

// handleTick applies buffered input and fires one frame unless paused.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	snap := m.orch.Snapshot()
	if m.input.Has(core.ActionPause) && (snap.Phase == runner.PhaseRunning || snap.Phase == runner.PhaseSuspended) {
		m.paused = !m.paused
		if m.paused {
			m.orch.Pause(now)
		} else {
			m.orch.Unpause(now)
		}
		m.log.Debug("pause toggled", "paused", m.paused)
	}

	// Terminals report a held key as repeated presses. Only the first
	// press of a run of consecutive ticks counts as a jump.
	jump := m.input.Has(core.ActionJump)
	repeat := jump && m.jumpHeld
	m.jumpHeld = jump

	if !m.paused {
		if m.input.Has(core.ActionStart) {
			m.orch.Press(core.ActionStart)
		}
		if jump && !repeat {
			m.orch.Press(core.ActionJump)
		}
		m.sched.Fire(now)
	}

	m.input.Clear()
	return m, tickCmd(m.tickRate)
}

// draw renders the world and overlays into the screen buffer.
func (m Model) draw() {
	snap := m.orch.Snapshot()
	m.screen.SetPen(core.ColorNeutral)
	m.screen.Clear()

	m.orch.Render(m.canvas)
	drawHUD(m.screen, snap, m.paused)
	if p, ok := hud.Overlay(snap, m.paused); ok {
		drawPanel(m.screen, p, hudRows, m.screen.Height()-hudRows)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".neonrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}

	name := fmt.Sprintf("neonrun_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return m.painter.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot exposes the session state, mainly for tests.
func (m Model) Snapshot() orchestrator.Snapshot {
	return m.orch.Snapshot()
}

// Run starts the Bubble Tea program in the current terminal.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	model.orch.Close()
	return err
}
