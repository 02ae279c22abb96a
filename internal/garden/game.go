// Package garden is the whack-a-mole game as the terminal platform sees it.
//
// It wraps a session.Controller and plays the host's part around it: a simulated
// surface scan stands in for AR plane detection, a cursor over the holes stands in
// for tap hit-testing, and the board draws moles, bursts and the overlay as text.
package garden

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-whackamole/internal/config"
	"github.com/vovakirdan/tui-whackamole/internal/core"
	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/overlay"
	"github.com/vovakirdan/tui-whackamole/internal/session"
)

// Option configures a Game.
type Option func(*Game)

// WithHost adds a host that receives every session event alongside the board.
func WithHost(h session.Host) Option {
	return func(g *Game) {
		if h != nil {
			g.extra = append(g.extra, h)
		}
	}
}

// WithLogger sets the logger handed to the session controller.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game implements the platform's game interface for one garden layout.
type Game struct {
	cfg    config.WhackConfig
	layout layout.Layout
	extra  []session.Host
	logger *log.Logger

	ctrl    *session.Controller
	board   *board
	overlay *overlay.Overlay
	rng     *rand.Rand

	frame  float64 // seconds per Step
	clock  float64 // host clock handed to TrySpawn
	cursor int
	paused bool

	// Simulated surface scan
	scanElapsed float64
	scanAt      float64

	screenW int
	screenH int
}

// New creates a garden for the given config and layout. Reset must be called
// before the first Step.
func New(cfg config.WhackConfig, l layout.Layout, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		layout: l,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the score key for this layout.
func (g *Game) ID() string {
	return layout.ScoreKey(g.layout.ID)
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Whack-a-Mole: " + g.layout.Title
}

// Reset builds a fresh session. It starts back at surface scanning.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.frame = rc.FrameSeconds()
	g.clock = 0
	g.cursor = (g.layout.Slots() - 1) / 2
	g.paused = false
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.overlay = overlay.New(float64(rc.ScreenW), float64(rc.ScreenH))
	g.overlay.ShowFindSurface(true)
	g.board = newBoard(g.overlay)

	hosts := append(session.MultiHost{g.board}, g.extra...)
	g.ctrl = session.NewController(g.cfg.Settings(g.layout.Slots()),
		session.WithRand(rand.New(rand.NewSource(rc.Seed+1))),
		session.WithHost(hosts),
		session.WithLogger(g.logger),
	)
	g.overlay.SetTime(g.ctrl.SecondsRemaining())
	g.overlay.SetScore(g.ctrl.Score())

	g.scanElapsed = 0
	g.scanAt = g.cfg.Surface.ScanMin + g.rng.Float64()*(g.cfg.Surface.ScanMax-g.cfg.Surface.ScanMin)
}

// Resize adapts to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.overlay != nil {
		g.overlay.Resize(float64(w), float64(h))
	}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.handleInput(in)

	if !g.paused {
		dt := g.frame
		g.scan(dt)
		g.ctrl.OnTick(dt)
		g.clock += dt
		g.ctrl.TrySpawn(g.clock)
		g.board.update(dt)
	}

	g.overlay.SetTime(g.ctrl.SecondsRemaining())
	g.overlay.SetScore(g.ctrl.Score())

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	state := g.ctrl.State()

	if in.Has(core.ActionPause) && (state == session.CountingDown || state == session.Running) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	switch {
	case in.Has(core.ActionUp):
		g.cursor = g.layout.Move(g.cursor, 0, -1)
	case in.Has(core.ActionDown):
		g.cursor = g.layout.Move(g.cursor, 0, 1)
	case in.Has(core.ActionLeft):
		g.cursor = g.layout.Move(g.cursor, -1, 0)
	case in.Has(core.ActionRight):
		g.cursor = g.layout.Move(g.cursor, 1, 0)
	}

	switch state {
	case session.Idle, session.Placing:
		// A tap anywhere places the garden and then presses start
		if in.Has(core.ActionConfirm) || in.Has(core.ActionWhack) {
			g.confirm(state)
		}
	case session.Running:
		if slot := in.Slot(); slot != core.NoSlot {
			if slot < g.layout.Slots() {
				g.cursor = slot
				g.whack(slot)
			}
		} else if in.Has(core.ActionWhack) {
			g.whack(g.cursor)
		}
	case session.Finished:
		// The restart control is not there yet
		if !g.board.restartVisible() {
			return
		}
		if in.Has(core.ActionRestart) {
			g.ctrl.OnRestartRequested()
		} else if in.Has(core.ActionConfirm) {
			g.ctrl.OnFinishAcknowledged()
		}
	}
}

func (g *Game) confirm(state session.State) {
	switch state {
	case session.Idle:
		g.ctrl.OnSurfaceConfirmed()
	case session.Placing:
		g.ctrl.OnStartRequested()
	}
}

// whack hit-tests a hole: the occupant's kind is what the tap struck.
func (g *Game) whack(slot int) {
	mole, ok := g.ctrl.Occupant(slot)
	if !ok {
		g.board.miss(slot)
		return
	}
	g.ctrl.OnHit(mole.Kind, slot)
}

// scan pretends to look for a surface until the scan time is up.
func (g *Game) scan(dt float64) {
	if g.ctrl.State() != session.Idle {
		return
	}
	if _, ok := g.ctrl.Anchor(); ok {
		return
	}
	g.scanElapsed += dt
	if g.scanElapsed < g.scanAt {
		return
	}

	pose := core.Pose{
		Position: core.Vec3{
			X: g.rng.Float64() - 0.5,
			Y: -1.2,
			Z: -1 - g.rng.Float64()*0.5,
		},
		Yaw: g.rng.Float64() * 2 * math.Pi,
	}
	g.ctrl.SetAnchor(pose)
	g.overlay.ShowFindSurface(false)
	g.overlay.ShowPlacePrompt(true)
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:       g.ctrl.Score(),
		SecondsLeft: g.ctrl.SecondsRemaining(),
		Phase:       g.ctrl.State().String(),
		GameOver:    g.ctrl.State() == session.Finished,
		Paused:      g.paused,
	}
}

// Summary returns the result of the current run.
func (g *Game) Summary() core.RunSummary {
	stats := g.ctrl.Stats()
	return core.RunSummary{
		Layout:      g.layout.ID,
		Score:       g.ctrl.Score(),
		Spawned:     stats.Spawned,
		BenignHits:  stats.BenignHits,
		HostileHits: stats.HostileHits,
		Missed:      stats.Escaped,
		Duration:    g.cfg.Game.Duration,
	}
}

// Session exposes the controller.
func (g *Game) Session() *session.Controller {
	return g.ctrl
}

// Cursor returns the slot under the cursor.
func (g *Game) Cursor() int {
	return g.cursor
}
