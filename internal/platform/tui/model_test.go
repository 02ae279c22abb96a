package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-whackamole/internal/core"
	"github.com/vovakirdan/tui-whackamole/internal/layout"
	"github.com/vovakirdan/tui-whackamole/internal/storage"
)

// fakeGame is a scriptable Game that records what the model asks of it.
type fakeGame struct {
	state   core.GameState
	resets  int
	resized [2]int
	steps   int
	slots   []int
	actions []core.Action
}

func (g *fakeGame) ID() string               { return layout.ScoreKey("classic") }
func (g *fakeGame) Title() string            { return "fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.Clear(); dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	if in.Slot() != core.NoSlot {
		g.slots = append(g.slots, in.Slot())
	}
	for a := core.ActionUp; a <= core.ActionQuit; a++ {
		if in.Has(a) {
			g.actions = append(g.actions, a)
		}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Summary() core.RunSummary {
	return core.RunSummary{
		Layout:      "classic",
		Score:       g.state.Score,
		Spawned:     7,
		BenignHits:  2,
		HostileHits: 3,
		Missed:      2,
		Duration:    90,
	}
}

// resetOnlyGame has no Resize, so the model must fall back to Reset.
type resetOnlyGame struct {
	resets int
}

func (g *resetOnlyGame) ID() string                           { return "reset_only" }
func (g *resetOnlyGame) Title() string                        { return "reset only" }
func (g *resetOnlyGame) Reset(core.RuntimeConfig)             { g.resets++ }
func (g *resetOnlyGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *resetOnlyGame) Render(*core.Screen)                  {}
func (g *resetOnlyGame) State() core.GameState                { return core.GameState{} }

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelReservesHelpLine(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig(), nil)

	if m.screen.Height() != 23 {
		t.Errorf("expected game height 23, got %d", m.screen.Height())
	}

	m.Init()
	if g.resets != 1 {
		t.Errorf("expected Init to reset once, got %d", g.resets)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{state: core.GameState{Phase: "running"}}
	m := NewModel(g, nil, testConfig(), nil)
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if g.resets != 1 {
		t.Errorf("resize should not reset a resizable game, resets=%d", g.resets)
	}
	if g.resized != [2]int{120, 39} {
		t.Errorf("expected resize to 120x39, got %v", g.resized)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelResizeFallsBackToReset(t *testing.T) {
	g := &resetOnlyGame{}
	m := NewModel(g, nil, testConfig(), nil)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("expected reset on resize, got %d", g.resets)
	}
}

func TestModelDeliversInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig(), nil)

	m, _ = update(t, m, runeKey('3'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, TickMsg{})

	if len(g.slots) != 1 || g.slots[0] != 2 {
		t.Errorf("expected slot 2 delivered, got %v", g.slots)
	}
	if len(g.actions) != 1 || g.actions[0] != core.ActionWhack {
		t.Errorf("expected whack delivered, got %v", g.actions)
	}

	// Input is cleared after each tick.
	update(t, m, TickMsg{})
	if len(g.slots) != 1 || len(g.actions) != 1 {
		t.Errorf("input leaked into next tick: slots=%v actions=%v", g.slots, g.actions)
	}
}

func TestModelRecordsRunOncePerFinish(t *testing.T) {
	store := openTestStore(t)
	g := &fakeGame{state: core.GameState{Score: -30, Phase: "finished", GameOver: true}}
	m := NewModel(g, store, testConfig(), nil)

	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores(g.ID(), 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != -30 {
		t.Fatalf("expected one score of -30, got %+v", scores)
	}

	runs, err := store.RecentRuns("classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].RunID != m.LastRunID() {
		t.Errorf("expected last run id %q, got %q", runs[0].RunID, m.LastRunID())
	}
	if runs[0].HostileHits != 3 || runs[0].Missed != 2 || runs[0].Duration != 90 {
		t.Errorf("unexpected run: %+v", runs[0])
	}

	// A restart followed by another finish is a new run.
	g.state = core.GameState{Phase: "running"}
	m, _ = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 40, Phase: "finished", GameOver: true}
	update(t, m, TickMsg{})

	scores, _ = store.TopScores(g.ID(), 10)
	if len(scores) != 2 {
		t.Errorf("expected 2 scores, got %d", len(scores))
	}
}

func TestModelBackOnlyWhenSafe(t *testing.T) {
	g := &fakeGame{state: core.GameState{Phase: "running"}}
	m := NewModel(g, nil, testConfig(), nil)
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while running")
	}

	g.state = core.GameState{Phase: "running", Paused: true}
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("back should be allowed while paused")
	}
	if cmd != nil {
		t.Error("back inside a session should not quit the program")
	}
}

func TestModelStandaloneBackQuits(t *testing.T) {
	g := &fakeGame{state: core.GameState{Phase: "finished", GameOver: true}}
	m := NewModel(g, nil, testConfig(), nil)
	m.standalone = true
	m, _ = update(t, m, TickMsg{})

	m, cmd := update(t, m, runeKey('b'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("standalone back should quit")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig(), nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}
