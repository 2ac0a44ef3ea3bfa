package bombmaze

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bombmaze/internal/config"
	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
)

// How long HUD messages stay visible, in simulated milliseconds.
const messageMS = 2000

// configPath stores the custom config path set via CLI
var configPath string

// logger receives simulation warnings and errors. Discards by default.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by new sessions.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	for _, m := range Mazes {
		registry.Register(m.ID, func() registry.Game { return New(m) })
	}
}

// Game adapts a World to the registry. It adds pause, restart and the HUD
// message line on top of the simulation.
type Game struct {
	maze    Maze
	runtime core.RuntimeConfig
	cfg     config.BombMazeConfig
	world   *World
	paused  bool
	lastErr error

	message   string
	messageMS float64
	lastPct   int

	tooSmall bool
}

// New creates a session for maze. Call Reset before stepping.
func New(maze Maze) *Game {
	return &Game{maze: maze}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.maze.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.maze.Title
}

// Reset initializes or restarts the session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBombMaze(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "error", err)
		cfg = config.DefaultBombMazeConfig()
	}
	g.cfg = cfg

	world, err := NewWorld(cfg, g.maze, runtime.Seed, logger)
	if err != nil {
		logger.Error("cannot build world, retrying with defaults", "maze", g.maze.ID, "error", err)
		g.cfg = config.DefaultBombMazeConfig()
		world, err = NewWorld(g.cfg, g.maze, runtime.Seed, logger)
	}
	g.world = world
	g.lastErr = err
	g.paused = false
	g.message = ""
	g.messageMS = 0
	g.lastPct = 0

	if world != nil {
		world.SetHooks(g.hooks())
		g.Resize(runtime.ScreenW, runtime.ScreenH)
	}
}

// Resize adapts the session to a new screen size. The simulation is
// suspended while the maze does not fit.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.world == nil {
		return
	}
	grid := g.world.Grid()
	g.tooSmall = width < grid.Cols()*cellCols || height < grid.Rows()+hudRows
}

// hooks routes simulation notifications to the HUD message line.
func (g *Game) hooks() Hooks {
	return Hooks{
		OnExitActivated: func() {
			g.say("The exit is open!")
		},
		OnLivesChanged: func(lives int) {
			g.say(fmt.Sprintf("Lives: %d", lives))
		},
		OnCollectionProgress: func(percent int) {
			if g.lastPct < 50 && percent >= 50 {
				g.say("Halfway there")
			}
			g.lastPct = percent
		},
		OnGameOver: func() {
			g.say("Caught!")
		},
		OnGameWon: func() {
			g.say("Escaped!")
		},
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageMS = messageMS
}

// Step advances the session by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.world == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	status := g.world.Status()

	// Handle restart
	if in.Has(core.ActionRestart) && status.Terminal() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !status.Terminal() {
		g.paused = !g.paused
	}

	if g.paused || status.Terminal() {
		return core.StepResult{State: g.State()}
	}

	ms := float64(dt) / float64(time.Millisecond)
	res := g.world.Step(ms, in.Held)
	if res.Err != nil {
		g.lastErr = res.Err
	}

	if g.messageMS > 0 {
		g.messageMS -= clampFrame(ms, g.cfg.Rules.MaxFrameMS)
		if g.messageMS <= 0 {
			g.message = ""
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{GameOver: true}
	}
	status := g.world.Status()
	return core.GameState{
		Score:    g.world.Score(),
		Lives:    g.world.Player().Lives,
		GameOver: status.Terminal(),
		Won:      status == StatusWon,
		Paused:   g.paused,
	}
}

// World returns the underlying simulation.
func (g *Game) World() *World {
	return g.world
}

// RunStats reports the leaderboard details of the session.
func (g *Game) RunStats() (kills, coinPct int, elapsed time.Duration) {
	if g.world == nil {
		return 0, 0, 0
	}
	elapsed = time.Duration(g.world.ElapsedMS() * float64(time.Millisecond))
	return g.world.Kills(), g.world.Coins().Percentage(), elapsed
}

// Err returns the last simulation failure, if any.
func (g *Game) Err() error {
	return g.lastErr
}
