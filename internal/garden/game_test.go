package garden

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-whackamole/internal/config"
	"github.com/vovakirdan/tui-whackamole/internal/core"
	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/overlay"
	"github.com/vovakirdan/tui-whackamole/internal/platform/tui"
	"github.com/vovakirdan/tui-whackamole/internal/session"
)

var (
	_ tui.Game        = (*Game)(nil)
	_ tui.Resizer     = (*Game)(nil)
	_ tui.RunReporter = (*Game)(nil)
)

func testConfig() config.WhackConfig {
	cfg := config.DefaultWhackConfig()
	cfg.Game.Duration = 3
	return cfg
}

func newTestGame(t *testing.T, cfg config.WhackConfig, opts ...Option) *Game {
	t.Helper()
	l, err := layout.Get("classic")
	if err != nil {
		t.Fatal(err)
	}
	g := New(cfg, l, opts...)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

// runUntil steps until the session reaches phase or the frame budget runs out.
func runUntil(t *testing.T, g *Game, phase session.State, budget int) {
	t.Helper()
	for i := 0; i < budget; i++ {
		if g.Session().State() == phase {
			return
		}
		g.Step(core.NewInputFrame())
	}
	if g.Session().State() != phase {
		t.Fatalf("never reached %s, stuck in %s", phase, g.Session().State())
	}
}

// startedGame returns a game whose run has just begun.
func startedGame(t *testing.T, cfg config.WhackConfig, opts ...Option) *Game {
	t.Helper()
	g := newTestGame(t, cfg, opts...)
	stepN(g, 200) // longer than the slowest scan
	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionConfirm))
	runUntil(t, g, session.Running, 300)
	return g
}

func TestIDAndTitle(t *testing.T) {
	g := newTestGame(t, testConfig())
	if g.ID() != "whack_classic" {
		t.Errorf("ID() = %q", g.ID())
	}
	if !strings.Contains(g.Title(), "Classic") {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestSurfaceScan(t *testing.T) {
	g := newTestGame(t, testConfig())

	if !g.overlay.Label(overlay.FindSurfacePrompt).Visible {
		t.Fatal("find prompt should show while scanning")
	}

	// Confirming before a surface is found does nothing
	g.Step(press(core.ActionConfirm))
	if g.Session().State() != session.Idle {
		t.Fatalf("confirm without a surface moved to %s", g.Session().State())
	}

	stepN(g, 200)
	if _, ok := g.Session().Anchor(); !ok {
		t.Fatal("scan should have found a surface within 2.5 s")
	}
	if g.overlay.Label(overlay.FindSurfacePrompt).Visible || !g.overlay.Label(overlay.PlacePrompt).Visible {
		t.Error("prompts should switch from find to place")
	}

	g.Step(press(core.ActionWhack)) // a tap places too
	if g.Session().State() != session.Placing {
		t.Fatalf("expected Placing, got %s", g.Session().State())
	}
	if g.overlay.Label(overlay.PlacePrompt).Visible {
		t.Error("place prompt should hide once placed")
	}
	if !g.overlay.Label(overlay.TimeLabel).Visible || !g.overlay.Label(overlay.ScoreLabel).Visible {
		t.Error("time and score should show once placed")
	}
}

func TestWhackOccupant(t *testing.T) {
	g := startedGame(t, testConfig())

	var moles []session.Mole
	for i := 0; i < 60 && len(moles) == 0; i++ {
		g.Step(core.NewInputFrame())
		moles = g.Session().ActiveMoles()
	}
	if len(moles) == 0 {
		t.Fatal("no mole came up")
	}
	m := moles[0]

	in := core.NewInputFrame()
	in.SetSlot(m.Slot)
	g.Step(in)

	want := 10
	if m.Kind == session.Hostile {
		want = -50
	}
	if g.State().Score != want {
		t.Errorf("score = %d after whacking a %s, expected %d", g.State().Score, m.Kind, want)
	}
	if g.Cursor() != m.Slot {
		t.Errorf("cursor should follow the numbered whack, at %d", g.Cursor())
	}
	if st := g.Session().Stats(); st.BenignHits+st.HostileHits != 1 {
		t.Errorf("expected exactly one hit, stats = %+v", st)
	}
}

func TestWhackEmptyHoleIsHarmless(t *testing.T) {
	g := startedGame(t, testConfig())
	before := g.State().Score

	// Out-of-range numbers and empty holes change nothing
	in := core.NewInputFrame()
	in.SetSlot(42)
	g.Step(in)
	for slot := 0; slot < 9; slot++ {
		if _, ok := g.Session().Occupant(slot); ok {
			continue
		}
		in := core.NewInputFrame()
		in.SetSlot(slot)
		g.Step(in)
		break
	}
	if g.State().Score != before {
		t.Errorf("score changed from %d to %d", before, g.State().Score)
	}
}

func TestCursorMoves(t *testing.T) {
	g := startedGame(t, testConfig())
	if g.Cursor() != 4 {
		t.Fatalf("cursor starts in the middle, got %d", g.Cursor())
	}
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionLeft))
	if g.Cursor() != 0 {
		t.Errorf("cursor = %d, expected 0", g.Cursor())
	}
	g.Step(press(core.ActionLeft))
	if g.Cursor() != 0 {
		t.Errorf("cursor should stop at the edge, got %d", g.Cursor())
	}
}

func TestPauseFreezesTheRun(t *testing.T) {
	g := startedGame(t, testConfig())
	secs := g.State().SecondsLeft

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	stepN(g, 180)
	if g.State().SecondsLeft != secs {
		t.Errorf("timer ran while paused: %d -> %d", secs, g.State().SecondsLeft)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestFinishAndRestart(t *testing.T) {
	g := startedGame(t, testConfig())
	runUntil(t, g, session.Finished, 400)

	st := g.State()
	if !st.GameOver || st.Phase != "finished" || st.SecondsLeft != 0 {
		t.Fatalf("state at finish = %+v", st)
	}

	// The restart control is not visible yet
	g.Step(press(core.ActionRestart))
	if g.Session().State() != session.Finished {
		t.Fatalf("restart before the control shows should be ignored, got %s", g.Session().State())
	}

	stepN(g, 40)
	g.Step(press(core.ActionRestart))
	if g.State().Phase != "restarting" {
		t.Fatalf("expected restarting, got %s", g.State().Phase)
	}
	if g.State().Score != 0 || g.State().SecondsLeft != 3 {
		t.Errorf("restart should reset score and time, got %+v", g.State())
	}

	runUntil(t, g, session.CountingDown, 30)
	runUntil(t, g, session.Running, 300)
}

func TestEnterAcknowledgesFinish(t *testing.T) {
	g := startedGame(t, testConfig())
	runUntil(t, g, session.Finished, 400)
	stepN(g, 40)

	g.Step(press(core.ActionConfirm))
	if g.Session().State() != session.Restarting {
		t.Fatalf("expected Restarting, got %s", g.Session().State())
	}
}

type countingHost struct {
	session.NopHost
	spawns int
	states []session.State
}

func (h *countingHost) SpawnMole(session.Mole)           { h.spawns++ }
func (h *countingHost) StateChanged(_, to session.State) { h.states = append(h.states, to) }

func TestExtraHostSeesEvents(t *testing.T) {
	h := &countingHost{}
	g := startedGame(t, testConfig(), WithHost(h))
	stepN(g, 60)

	if h.spawns == 0 {
		t.Error("extra host saw no spawns")
	}
	want := []session.State{session.Placing, session.CountingDown, session.Running}
	if len(h.states) < len(want) {
		t.Fatalf("states = %v", h.states)
	}
	for i, s := range want {
		if h.states[i] != s {
			t.Errorf("states[%d] = %s, expected %s", i, h.states[i], s)
		}
	}
}

func TestRender(t *testing.T) {
	g := startedGame(t, testConfig())
	stepN(g, 5)

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()

	for _, want := range []string{"Time: ", "Score: ", "┌1", "♫"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, testConfig())
	s := core.NewScreen(20, 6)
	g.Render(s)
	if !strings.Contains(s.String(), "Terminal too small") {
		t.Errorf("expected the too-small notice:\n%s", s.String())
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := startedGame(t, testConfig())
	stepN(g, 30)
	before := g.State()

	g.Resize(120, 40)
	if g.State() != before {
		t.Errorf("resize changed the game state: %+v -> %+v", before, g.State())
	}
	if x := g.overlay.Label(overlay.TimeLabel).X; x != 15 {
		t.Errorf("time label x = %v after resize, expected 15", x)
	}
}

func TestSummary(t *testing.T) {
	g := startedGame(t, testConfig())
	runUntil(t, g, session.Finished, 400)

	sum := g.Summary()
	if sum.Layout != "classic" || sum.Duration != 3 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Spawned == 0 {
		t.Error("expected spawns during a 3 s run")
	}
	stats := g.Session().Stats()
	if sum.Missed != stats.Escaped || sum.BenignHits != stats.BenignHits || sum.HostileHits != stats.HostileHits {
		t.Errorf("summary %+v does not match session stats %+v", sum, stats)
	}
	if g.ID() != layout.ScoreKey("classic") {
		t.Errorf("ID() = %q", g.ID())
	}
}
