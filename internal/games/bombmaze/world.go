// Package bombmaze implements the maze chase simulation: a player collects
// coins to unlock an exit while hunter and patrol monsters roam the maze
// and bombs freeze or destroy them.
//
// World is the simulation root. It owns every entity and is advanced one
// frame at a time by Step. Game adapts a World to the registry.
package bombmaze

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
)

// Exit is the level completion zone.
type Exit struct {
	Pos    core.Vec
	Size   float64
	Active bool // Set once by the coin threshold, never cleared
}

// World is the complete state of one maze session.
type World struct {
	cfg   config.BombMazeConfig
	grid  *Grid
	probe WallProbe
	start core.Vec

	player   *Player
	monsters []*Monster
	hazards  *HazardField
	coins    *CoinField
	effects  *Effects
	exit     Exit
	rng      SimpleRNG

	status    Status
	score     int
	kills     int
	crushes   int
	tick      uint64
	elapsedMS float64

	events  []Event // Raised by the step in progress
	skipped int

	hooks  Hooks
	logger *log.Logger
}

// NewWorld builds a session for maze from cfg. The logger may be nil.
func NewWorld(cfg config.BombMazeConfig, maze Maze, seed int64, logger *log.Logger) (*World, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	grid, err := ParseGrid(maze.Layout, cfg.Grid.CellSize)
	if err != nil {
		return nil, fmt.Errorf("bombmaze: maze %q: %w", maze.ID, err)
	}

	startCell := grid.Start()
	exitCell := grid.Exit()
	start := grid.CellCenter(startCell.Row, startCell.Col)

	w := &World{
		cfg:     cfg,
		grid:    grid,
		probe:   grid,
		start:   start,
		player:  NewPlayer(start, cfg.Player),
		hazards: NewHazardField(cfg.Bombs, cfg.Explosions),
		effects: NewEffects(cfg.Effects),
		exit: Exit{
			Pos:  grid.CellCenter(exitCell.Row, exitCell.Col),
			Size: cfg.Rules.ExitSize,
		},
		rng:    *NewSimpleRNG(seed),
		logger: logger,
	}

	reserved := func(row, col int) bool {
		inStart := row <= startCell.Row && row >= startCell.Row-1 &&
			col <= startCell.Col && col >= startCell.Col-1
		return inStart || (row == exitCell.Row && col == exitCell.Col)
	}
	w.coins = NewCoinField(grid, reserved, cfg.Coins.PickupRadius, cfg.Coins.UnlockThreshold)

	for _, name := range cfg.Monsters.Spawn {
		kind, err := ParseMonsterKind(name)
		if err != nil {
			return nil, err
		}
		m, err := NewMonster(kind, w.spawnPosition(), cfg.Monsters, grid, &w.rng)
		if err != nil {
			return nil, err
		}
		w.monsters = append(w.monsters, m)
	}

	w.logger.Debug("world created",
		"maze", maze.ID,
		"coins", w.coins.Total,
		"monsters", len(w.monsters),
		"seed", seed,
	)

	return w, nil
}

// spawnPosition draws random cells until one is open and far enough from
// the player. When the attempts run out the configured fallback cell is
// used; if that cell is not open the open cell farthest from the player
// is used instead.
func (w *World) spawnPosition() core.Vec {
	place := w.cfg.Monsters.Placement
	for range place.Attempts {
		row := w.rng.Intn(w.grid.Rows())
		col := w.rng.Intn(w.grid.Cols())
		if !w.grid.IsOpen(row, col) {
			continue
		}
		pos := w.grid.CellCenter(row, col)
		if core.Dist(pos, w.player.Pos) > place.MinDistance {
			return pos
		}
	}

	if w.grid.IsOpen(place.FallbackRow, place.FallbackCol) {
		w.logger.Warn("spawn attempts exhausted, using fallback cell",
			"row", place.FallbackRow,
			"col", place.FallbackCol,
		)
		return w.grid.CellCenter(place.FallbackRow, place.FallbackCol)
	}

	var best core.Vec
	bestDist := -1.0
	for _, cell := range w.grid.OpenCells() {
		pos := w.grid.CellCenter(cell.Row, cell.Col)
		if d := core.Dist(pos, w.player.Pos); d > bestDist {
			best, bestDist = pos, d
		}
	}
	w.logger.Warn("fallback spawn cell is blocked, using farthest open cell",
		"row", place.FallbackRow,
		"col", place.FallbackCol,
	)
	return best
}

// SetHooks installs host callbacks.
func (w *World) SetHooks(h Hooks) {
	w.hooks = h
}

// Grid returns the static maze.
func (w *World) Grid() *Grid { return w.grid }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Monsters returns the live monsters.
func (w *World) Monsters() []*Monster { return w.monsters }

// Hazards returns the bomb and explosion field.
func (w *World) Hazards() *HazardField { return w.hazards }

// Coins returns the coin field.
func (w *World) Coins() *CoinField { return w.coins }

// Effects returns the cosmetic effects.
func (w *World) Effects() *Effects { return w.effects }

// Exit returns the exit zone.
func (w *World) Exit() Exit { return w.exit }

// Start returns the player spawn point.
func (w *World) Start() core.Vec { return w.start }

// Status returns the session outcome so far.
func (w *World) Status() Status { return w.status }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Kills returns the number of monsters removed so far.
func (w *World) Kills() int { return w.kills }

// Tick returns the number of committed steps.
func (w *World) Tick() uint64 { return w.tick }

// ElapsedMS returns the simulated time of all committed steps.
func (w *World) ElapsedMS() float64 { return w.elapsedMS }

// clone returns a deep copy used to roll back a failed step. The grid is
// immutable and shared.
func (w *World) clone() *World {
	c := *w

	p := *w.player
	c.player = &p

	c.monsters = make([]*Monster, len(w.monsters))
	for i, m := range w.monsters {
		if m == nil {
			continue
		}
		mc := *m
		c.monsters[i] = &mc
	}

	c.hazards = w.hazards.clone()
	c.coins = w.coins.clone()
	c.effects = w.effects.clone()
	c.events = nil
	return &c
}

// restore replaces the mutable state of w with that of a clone.
func (w *World) restore(from *World) {
	hooks, logger := w.hooks, w.logger
	*w = *from
	w.hooks, w.logger = hooks, logger
}

func (w *World) emit(kind EventKind, value int) {
	w.events = append(w.events, Event{Kind: kind, Value: value})
}
