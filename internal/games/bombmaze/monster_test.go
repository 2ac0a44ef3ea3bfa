package bombmaze

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// deadEnd ends the corridor in a wall on the right with no side exits.
var deadEnd = []string{
	"#######",
	"#S...E#",
	"#######",
}

// junction adds a passage down from the last corridor cell.
var junction = []string{
	"#######",
	"#S...E#",
	"#####.#",
	"#.....#",
	"#######",
}

func newTestMonster(t *testing.T, kind MonsterKind, pos core.Vec, g *Grid, mutate func(*config.MonstersConfig)) *Monster {
	t.Helper()
	cfg := config.DefaultBombMazeConfig().Monsters
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := NewMonster(kind, pos, cfg, g, NewSimpleRNG(1))
	if err != nil {
		t.Fatalf("NewMonster() failed: %v", err)
	}
	return m
}

func TestMonsterKinds(t *testing.T) {
	if k, err := ParseMonsterKind("patrol"); err != nil || k != MonsterPatrol {
		t.Errorf("ParseMonsterKind(patrol) = %v, %v", k, err)
	}
	if _, err := ParseMonsterKind("ghost"); !errors.Is(err, ErrUnknownMonsterKind) {
		t.Errorf("ParseMonsterKind(ghost) = %v, expected ErrUnknownMonsterKind", err)
	}

	g := mustGrid(t, corridor)
	m, err := NewMonster(MonsterKind(9), core.V(60, 60), config.DefaultBombMazeConfig().Monsters, g, NewSimpleRNG(1))
	if !errors.Is(err, ErrUnknownMonsterKind) {
		t.Errorf("NewMonster(9) error = %v, expected ErrUnknownMonsterKind", err)
	}
	if m != nil {
		t.Error("NewMonster must not return a monster with an error")
	}
}

func TestFreezeExclusivity(t *testing.T) {
	g := mustGrid(t, corridor)
	m := newTestMonster(t, MonsterHunter, core.V(180, 60), g, nil)

	if !m.Freeze(5000) {
		t.Fatal("First freeze should apply")
	}
	m.Update(1000, core.V(60, 60), g, NewSimpleRNG(1))
	if m.FrozenMS != 4000 {
		t.Fatalf("FrozenMS = %v, expected 4000", m.FrozenMS)
	}

	// Neither refreshes nor shortens
	for _, d := range []float64{5000, 100} {
		if m.Freeze(d) {
			t.Errorf("Freeze(%v) applied to a frozen monster", d)
		}
		if m.FrozenMS != 4000 {
			t.Errorf("FrozenMS = %v after Freeze(%v), expected 4000", m.FrozenMS, d)
		}
	}
}

func TestFrozenMonsterDoesNotMove(t *testing.T) {
	g := mustGrid(t, corridor)
	m := newTestMonster(t, MonsterHunter, core.V(180, 60), g, nil)
	player := core.V(60, 60)
	rng := NewSimpleRNG(1)

	m.Freeze(100)
	m.Update(60, player, g, rng)
	if m.Pos != core.V(180, 60) || !m.Frozen {
		t.Fatalf("Frozen monster moved or thawed early: %+v frozen=%v", m.Pos, m.Frozen)
	}

	// Thawing tick still skips movement
	m.Update(60, player, g, rng)
	if m.Frozen {
		t.Fatal("Monster should thaw once the countdown runs out")
	}
	if m.Pos != core.V(180, 60) {
		t.Errorf("Monster moved on the thawing tick: %+v", m.Pos)
	}

	m.Update(16, player, g, rng)
	if m.Pos.X >= 180 {
		t.Errorf("Thawed hunter should chase, X = %v", m.Pos.X)
	}
}

func TestHunterChase(t *testing.T) {
	g := mustGrid(t, corridor)
	m := newTestMonster(t, MonsterHunter, core.V(140, 60), g, nil)

	m.Update(16, core.V(60, 60), g, NewSimpleRNG(1))
	if m.Pos != core.V(136.5, 60) {
		t.Errorf("Pos = %+v, expected (136.5,60)", m.Pos)
	}

	// On top of the player there is no direction to move in
	m = newTestMonster(t, MonsterHunter, core.V(60, 60), g, nil)
	m.Update(16, core.V(60, 60), g, NewSimpleRNG(1))
	if m.Pos != core.V(60, 60) {
		t.Errorf("Pos = %+v, expected no movement", m.Pos)
	}
}

func TestHunterWander(t *testing.T) {
	g := mustGrid(t, Mazes[2].Layout)
	far := core.V(10000, 10000) // Out of chase range
	start := g.CellCenter(7, 9)

	still := newTestMonster(t, MonsterHunter, start, g, func(c *config.MonstersConfig) {
		c.Hunter.WanderChance = 0
	})
	rng := NewSimpleRNG(3)
	for range 100 {
		still.Update(16, far, g, rng)
	}
	if still.Pos != start {
		t.Errorf("Hunter with zero wander chance moved to %+v", still.Pos)
	}

	jumpy := newTestMonster(t, MonsterHunter, start, g, func(c *config.MonstersConfig) {
		c.Hunter.WanderChance = 1
	})
	jump := jumpy.Speed * 5
	for i := range 50 {
		before := jumpy.Pos
		jumpy.Update(16, far, g, rng)
		d := jumpy.Pos.Sub(before)
		moved := math.Abs(d.X) + math.Abs(d.Y)
		if moved != 0 && moved != jump {
			t.Fatalf("Jump %d moved %v, expected 0 or %v", i, moved, jump)
		}
		if d.X != 0 && d.Y != 0 {
			t.Fatalf("Jump %d was not cardinal: %+v", i, d)
		}
		if g.ProbeBlocked(jumpy.Pos.X, jumpy.Pos.Y, jumpy.Size) {
			t.Fatalf("Jump %d ended inside a wall at %+v", i, jumpy.Pos)
		}
	}
}

func TestPatrolInitialHeading(t *testing.T) {
	g := mustGrid(t, deadEnd)

	for seed := int64(1); seed <= 20; seed++ {
		m, err := NewMonster(MonsterPatrol, g.CellCenter(1, 3), config.DefaultBombMazeConfig().Monsters, g, NewSimpleRNG(seed))
		if err != nil {
			t.Fatal(err)
		}
		if m.Heading != DirLeft && m.Heading != DirRight {
			t.Errorf("Seed %d: heading %+v points into a wall", seed, m.Heading)
		}
	}
}

func TestPatrolRepickAtWall(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
		want   Direction
	}{
		{"dead end reverses", deadEnd, DirLeft},
		{"junction turns into the open cell", junction, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.layout)

			for seed := int64(1); seed <= 20; seed++ {
				// Right edge one speed step short of the wall
				pos := core.V(226, 60)
				m := newTestMonster(t, MonsterPatrol, pos, g, nil)
				m.Heading = DirRight

				m.Update(16, core.V(60, 60), g, NewSimpleRNG(seed))

				if m.Heading != tc.want {
					t.Errorf("Seed %d: heading = %+v, expected %+v", seed, m.Heading, tc.want)
				}
				if m.Pos != pos {
					t.Errorf("Seed %d: patrol moved on the repick tick to %+v", seed, m.Pos)
				}
			}
		})
	}
}

func TestPatrolNeverTunnels(t *testing.T) {
	for _, mz := range Mazes {
		t.Run(mz.ID, func(t *testing.T) {
			g := mustGrid(t, mz.Layout)
			rng := NewSimpleRNG(11)
			m, err := NewMonster(MonsterPatrol, g.CellCenter(1, 5), config.DefaultBombMazeConfig().Monsters, g, rng)
			if err != nil {
				t.Fatal(err)
			}

			moved := false
			start := m.Pos
			for i := range 3000 {
				m.Update(16, core.V(60, 60), g, rng)
				if g.ProbeBlocked(m.Pos.X, m.Pos.Y, m.Size) {
					t.Fatalf("Tick %d: patrol at %+v overlaps a wall", i, m.Pos)
				}
				if m.Pos != start {
					moved = true
				}
			}
			if !moved {
				t.Error("Patrol never moved")
			}
			if m.PathMS != 3000*16 {
				t.Errorf("PathMS = %v, expected %v", m.PathMS, 3000*16)
			}
		})
	}
}
