// Package window is the desktop frontend: an ebiten game that fires the
// runner's frame scheduler once per update and draws the world at its
// native 800x500 resolution.
package window

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/evolution"
	"github.com/vovakirdan/neon-runner/internal/orchestrator"
	"github.com/vovakirdan/neon-runner/internal/platform/hud"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// Debug font metrics.
const (
	glyphW = 6
	lineH  = 16
)

// keyBindings maps keys to actions, checked in order.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyArrowUp, core.ActionJump},
	{ebiten.KeyW, core.ActionJump},
	{ebiten.KeyEnter, core.ActionStart},
	{ebiten.KeyR, core.ActionStart},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyEscape, core.ActionPause},
	{ebiten.KeyQ, core.ActionQuit},
}

// Options configures a window game.
type Options struct {
	Config    config.RunnerConfig
	Generator evolution.Generator
	Store     orchestrator.ScoreStore // nil disables persistence
	Logger    *log.Logger
	Player    string
	Runtime   core.RuntimeConfig // ScreenW/ScreenH in pixels override Scale
	Scale     float64            // window size relative to the world; 0 means 1
}

// Game implements ebiten.Game.
type Game struct {
	orch   *orchestrator.Orchestrator
	sched  *runner.FrameScheduler
	canvas ImageCanvas
	log    *log.Logger
	width  int
	height int
	paused bool
	now    func() time.Time
}

// NewGame creates a game with an idle session.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sched := runner.NewFrameScheduler()
	return &Game{
		orch: orchestrator.New(orchestrator.Options{
			Config:    opts.Config,
			Scheduler: sched,
			Generator: opts.Generator,
			Store:     opts.Store,
			Logger:    logger,
			Player:    opts.Player,
			Seed:      opts.Runtime.Seed,
		}),
		sched:  sched,
		log:    logger,
		width:  int(opts.Config.Canvas.Width),
		height: int(opts.Config.Canvas.Height),
		now:    time.Now,
	}
}

// Update polls the keyboard and advances one frame.
func (g *Game) Update() error {
	var actions []core.Action
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			actions = append(actions, b.action)
		}
	}
	return g.step(actions, g.now())
}

// step applies the frame's actions then fires the scheduler unless paused.
// It returns ebiten.Termination on quit.
func (g *Game) step(actions []core.Action, now time.Time) error {
	for _, a := range actions {
		switch a {
		case core.ActionQuit:
			g.orch.Close()
			return ebiten.Termination
		case core.ActionPause:
			phase := g.orch.Snapshot().Phase
			if phase == runner.PhaseRunning || phase == runner.PhaseSuspended {
				g.paused = !g.paused
				if g.paused {
					g.orch.Pause(now)
				} else {
					g.orch.Unpause(now)
				}
			}
		default:
			if !g.paused {
				g.orch.Press(a)
			}
		}
	}

	if !g.paused {
		g.sched.Fire(now)
	}
	return nil
}

// Draw renders the world, the HUD and any overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.SetTarget(screen)
	g.orch.Render(&g.canvas)

	snap := g.orch.Snapshot()
	ebitenutil.DebugPrintAt(screen, "SYSTEM STATUS\n"+hud.Status(snap, g.paused), 20, 16)
	if sector := hud.Sector(snap); sector != "" {
		ebitenutil.DebugPrintAt(screen, sector, (g.width-len(sector)*glyphW)/2, 16)
	}
	if speed := hud.Speed(snap); speed != "" {
		ebitenutil.DebugPrintAt(screen, speed, (g.width-len(speed)*glyphW)/2, 16+lineH)
	}
	for i, l := range hud.Scores(snap) {
		ebitenutil.DebugPrintAt(screen, l.Text, g.width-20-len(l.Text)*glyphW, 16+i*lineH)
	}

	if p, ok := hud.Overlay(snap, g.paused); ok {
		g.drawPanel(screen, p)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, p hud.Panel) {
	w := float32((p.Width() + 8) * glyphW)
	h := float32((len(p.Lines) + 3) * lineH)
	x := (float32(g.width) - w) / 2
	y := (float32(g.height) - h) / 2

	vector.DrawFilledRect(screen, x, y, w, h, core.ColorBackground.NRGBA(0.9), false)
	vector.StrokeRect(screen, x, y, w, h, 2, p.Border.NRGBA(1), false)

	for i, l := range p.Lines {
		lx := (g.width - len([]rune(l.Text))*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, l.Text, lx, int(y)+lineH+i*lineH)
	}
}

// Layout returns the world size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Snapshot exposes the session state, mainly for tests.
func (g *Game) Snapshot() orchestrator.Snapshot {
	return g.orch.Snapshot()
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := NewGame(opts)
	defer g.orch.Close()

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	tps := opts.Runtime.TickRate
	if tps <= 0 {
		tps = core.DefaultConfig().TickRate
	}
	winW, winH := int(float64(g.width)*scale), int(float64(g.height)*scale)
	if opts.Runtime.ScreenW > 0 && opts.Runtime.ScreenH > 0 {
		winW, winH = opts.Runtime.ScreenW, opts.Runtime.ScreenH
	}

	ebiten.SetWindowSize(winW, winH)
	ebiten.SetWindowTitle("NEON RUNNER")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	g.log.Info("window opened", "width", g.width, "height", g.height, "tps", tps)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
