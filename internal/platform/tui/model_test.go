package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

// scriptedGame records what the host feeds it and ends when told to.
type scriptedGame struct {
	resets  int
	seeds   []int64
	steps   int
	lastDt  time.Duration
	held    []core.KeyState
	endAt   int // Step count that ends the run, 0 = never
	won     bool
	resized [2]int
	state   core.GameState
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.steps = 0
	g.state = core.GameState{Lives: 3}
}

func (g *scriptedGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.state}
	}
	g.steps++
	g.lastDt = dt
	g.held = append(g.held, in.Held.Clone())
	g.state.Score += 10
	if g.endAt > 0 && g.steps >= g.endAt {
		g.state.GameOver = true
		g.state.Won = g.won
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

func (g *scriptedGame) RunStats() (kills, coinPct int, elapsed time.Duration) {
	return 2, 75, 1500 * time.Millisecond
}

func (g *scriptedGame) Resize(width, height int) { g.resized = [2]int{width, height} }

func init() {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{} })
}

func newTestModel(t *testing.T, g *scriptedGame, store *storage.Store) GameModel {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewGameModel(g, cfg, GameOptions{Store: store, Player: "alice"})
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelLatchFeedsHeld(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)
	t0 := time.Now()

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRight}, t0)
	m = next.(GameModel)

	m = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))
	m = update(t, m, TickMsg(t0.Add(time.Second)))

	if len(g.held) != 2 {
		t.Fatalf("Steps = %d, expected 2", len(g.held))
	}
	if !g.held[0].Held(core.ActionRight) {
		t.Error("Right should be held right after the press")
	}
	if g.held[1].Held(core.ActionRight) {
		t.Error("Right should be released without repeats")
	}
	if g.lastDt != time.Second-16*time.Millisecond {
		t.Errorf("dt = %v, expected wall-clock gap between ticks", g.lastDt)
	}
}

func TestGameModelBombTapReplaysOnce(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)
	t0 := time.Now()

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, t0)
	m = next.(GameModel)

	for i := 1; i <= 62; i++ {
		m = update(t, m, TickMsg(t0.Add(time.Duration(i)*16*time.Millisecond)))
	}

	downFrames, firstDown := 0, -1
	for i, keys := range g.held {
		if keys.Held(core.ActionBomb) {
			downFrames++
			if firstDown < 0 {
				firstDown = i
			}
		}
	}
	if downFrames != 1 {
		t.Fatalf("Bomb key down for %d frames, expected one frame for a tap", downFrames)
	}
	if at := time.Duration(firstDown+1) * 16 * time.Millisecond; at < DefaultBombDelay {
		t.Errorf("Tap replayed at %v, before a repeat could have arrived", at)
	}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	g := &scriptedGame{endAt: 3, won: true}
	m := newTestModel(t, g, store)
	t0 := time.Now()

	for i := range 6 {
		m = update(t, m, TickMsg(t0.Add(time.Duration(i)*16*time.Millisecond)))
	}

	runs, err := store.TopRuns("scripted", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("Saved runs = %d, expected 1", len(runs))
	}

	r := runs[0]
	if r.Player != "alice" || r.Score != 30 || r.Outcome != storage.OutcomeWon {
		t.Errorf("Run = %+v", r)
	}
	if r.Kills != 2 || r.CoinPct != 75 || r.DurationMS != 1500 {
		t.Errorf("Run stats = %d kills, %d%%, %dms", r.Kills, r.CoinPct, r.DurationMS)
	}
}

func TestGameModelRestartReseeds(t *testing.T) {
	g := &scriptedGame{endAt: 1}
	m := newTestModel(t, g, nil)
	t0 := time.Now()

	m = update(t, m, TickMsg(t0))
	if !m.gameState.GameOver {
		t.Fatal("Run should be over")
	}

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg(t0.Add(16*time.Millisecond)))

	if g.resets != 2 {
		t.Fatalf("Resets = %d, expected 2", g.resets)
	}
	if g.seeds[0] == g.seeds[1] {
		t.Error("Restart should use a fresh seed")
	}
	if m.gameState.GameOver || m.runSaved {
		t.Error("Restart should start a new unsaved run")
	}
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	g := &scriptedGame{endAt: 1}
	m := newTestModel(t, g, nil)

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("Back should be ignored while running")
	}

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("Back should work after game over")
	}
}

func TestGameModelResize(t *testing.T) {
	g := &scriptedGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resized != [2]int{100, 40} {
		t.Errorf("Resize = %v", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("Resize support should avoid a reset, resets = %d", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("Screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(t, &scriptedGame{}, nil)
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit with an empty view")
	}
}

func TestPaletteRender(t *testing.T) {
	p := NewPalette(lipgloss.NewRenderer(io.Discard))
	s := core.NewScreen(6, 3)
	s.DrawText(0, 0, "ab")
	s.SetColored(1, 2, '@', core.ColorYellow)

	got := p.Render(s)
	want := "ab\n\n @"
	if got != want {
		t.Errorf("Render = %q, expected %q", got, want)
	}
}

func TestPaletteCoversEveryColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	p := NewPalette(r)

	for _, c := range core.Colors() {
		if _, ok := ansiCodes[c]; !ok {
			t.Errorf("Color %v has no palette entry", c)
			continue
		}
		s := core.NewScreen(1, 1)
		s.SetColored(0, 0, '@', c)
		if got := p.Render(s); !strings.Contains(got, "\x1b[") {
			t.Errorf("Color %v rendered without an escape: %q", c, got)
		}
	}
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Unix(100, 0)
	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want time.Duration
	}{
		{"first tick", time.Time{}, t0, time.Second / 60},
		{"normal", t0, t0.Add(20 * time.Millisecond), 20 * time.Millisecond},
		{"clock went back", t0, t0.Add(-time.Second), time.Second / 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frameDelta(tc.prev, tc.now, 60); got != tc.want {
				t.Errorf("frameDelta = %v, expected %v", got, tc.want)
			}
		})
	}
}

func session(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(store, cfg, "bob")
	if !strings.Contains(m.View(), "B O M B M A Z E") {
		t.Fatal("Session should open on the menu")
	}

	m = session(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("Tab should open the leaderboard, screen = %d", m.screen)
	}
	m = session(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("b should return to the menu, screen = %d", m.screen)
	}

	// Move the cursor onto the scripted entry
	for i, item := range m.menu.items {
		if item.MazeID == "scripted" {
			m.menu.cursor = i
		}
	}
	m = session(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("Enter should start a run, screen = %d", m.screen)
	}
	if m.gameModel.player != "bob" {
		t.Errorf("Player = %q", m.gameModel.player)
	}

	m = session(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 {
		t.Errorf("Session config width = %d", m.config.ScreenW)
	}

	m = session(t, m, runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q should end the session")
	}
}
