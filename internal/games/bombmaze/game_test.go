package bombmaze

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
)

const frame = 16 * time.Millisecond

func newTestGame(t *testing.T, w, h int) *Game {
	t.Helper()
	g := New(Mazes[0])
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 60, Seed: 12345})
	if g.World() == nil {
		t.Fatalf("Reset left no world: %v", g.Err())
	}
	return g
}

func TestMazesRegistered(t *testing.T) {
	for _, m := range Mazes {
		if !registry.Exists(m.ID) {
			t.Errorf("Maze %q is not registered", m.ID)
		}
		g, err := registry.Create(m.ID)
		if err != nil {
			t.Fatal(err)
		}
		if g.Title() != m.Title {
			t.Errorf("Title = %q, expected %q", g.Title(), m.Title)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%90 < 40:
			inputs[i].Held[core.ActionRight] = true
		case i%90 < 70:
			inputs[i].Held[core.ActionDown] = true
		case i%90 < 75:
			inputs[i].Held[core.ActionBomb] = true
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, 80, 24)
		for _, in := range inputs {
			if res := g.Step(in, frame); res.State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != snap2.Tick || snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: tick %d/%d score %d/%d", snap1.Tick, snap2.Tick, snap1.Score, snap2.Score)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 80, 24)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res := g.Step(in, frame)
	if !res.State.Paused {
		t.Fatal("Expected paused state")
	}

	held := core.NewInputFrame()
	held.Held[core.ActionRight] = true
	for range 10 {
		g.Step(held, frame)
	}
	if g.World().Tick() != 0 {
		t.Errorf("World advanced while paused: tick %d", g.World().Tick())
	}

	res = g.Step(in, frame)
	if res.State.Paused || g.World().Tick() != 1 {
		t.Errorf("Unpause should resume stepping: paused=%v tick=%d", res.State.Paused, g.World().Tick())
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, 80, 24)
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	// Restart is ignored while running
	g.Step(restart, frame)
	if g.World().Tick() != 1 {
		t.Fatalf("Tick = %d, expected the step to run", g.World().Tick())
	}

	g.World().status = StatusLost
	res := g.Step(restart, frame)
	if res.State.GameOver {
		t.Error("Restart should start a fresh session")
	}
	if g.World().Tick() != 0 || res.State.Lives != 3 || res.State.Score != 0 {
		t.Errorf("Restarted state: tick=%d %+v", g.World().Tick(), res.State)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := newTestGame(t, 30, 10)

	in := core.NewInputFrame()
	in.Held[core.ActionRight] = true
	g.Step(in, frame)
	if g.World().Tick() != 0 {
		t.Error("Simulation should not run in a too small window")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("Expected the too small message, got:\n%s", screen.String())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 80, 24)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Lives: 3", "Score: 0", "Exit: LOCKED", string(PlayerChar), string(WallChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
}

func TestGameHUDMessage(t *testing.T) {
	g := newTestGame(t, 80, 24)
	g.World().monsters = nil
	g.hooks().OnExitActivated()
	if g.message != "The exit is open!" {
		t.Fatalf("Message = %q", g.message)
	}

	in := core.NewInputFrame()
	for range 130 {
		g.Step(in, frame)
	}
	if g.message != "" {
		t.Errorf("Message should expire, still %q", g.message)
	}
}

func TestGameResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, 30, 10)
	world := g.World()

	g.Resize(80, 24)
	if g.World() != world {
		t.Fatal("Resize should keep the running world")
	}

	g.Step(core.NewInputFrame(), frame)
	if g.World().Tick() != 1 {
		t.Errorf("Tick = %d, simulation should run after growing the window", g.World().Tick())
	}

	g.Resize(30, 10)
	g.Step(core.NewInputFrame(), frame)
	if g.World().Tick() != 1 {
		t.Error("Simulation should stop again after shrinking the window")
	}
}

func TestGameRunStats(t *testing.T) {
	g := newTestGame(t, 80, 24)
	g.World().monsters = nil

	for range 10 {
		g.Step(core.NewInputFrame(), frame)
	}

	kills, pct, elapsed := g.RunStats()
	if kills != 0 || pct != 0 {
		t.Errorf("Stats = %d kills, %d%%", kills, pct)
	}
	if elapsed != 10*frame {
		t.Errorf("Elapsed = %v, expected %v", elapsed, 10*frame)
	}
}
