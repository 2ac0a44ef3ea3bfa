package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

// runReporter is implemented by games that can describe a finished run
// beyond its score.
type runReporter interface {
	RunStats() (kills, coinPct int, elapsed time.Duration)
}

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(width, height int)
}

// GameModel is the Bubble Tea model for one maze session.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	palette    *Palette
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	keys       *KeyMapper
	latch      *KeyLatch
	bomb       *HoldReplay
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	standalone bool // Owns its program; leaving quits it
	runSaved   bool // Whether the current run has been recorded
}

// GameOptions carries the optional collaborators of a GameModel.
type GameOptions struct {
	Store   *storage.Store
	Logger  *log.Logger
	Palette *Palette
	Player  string // Name stored with finished runs
}

// NewGameModel creates a model for game. Reset is called by Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Palette == nil {
		opts.Palette = NewPalette(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    opts.Palette,
		store:      opts.Store,
		logger:     opts.Logger,
		player:     opts.Player,
		config:     cfg,
		keys:       NewKeyMapper(),
		latch:      NewKeyLatch(),
		bomb:       NewHoldReplay(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys go to the latch and
// the bomb key to its hold replay; everything else is a one-shot action
// for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case action == core.ActionBomb:
		m.bomb.Press(now)
	case isHoldable(action):
		m.latch.Press(action, now)
	case action == core.ActionBack:
		// Back to menu only when the game is not running
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without resize support restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.latch.Reset()
		m.bomb.Reset()
		m.lastTick = time.Time{}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Fresh seed for each new run
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.latch.Reset()
		m.bomb.Reset()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.inputFrame.Held = m.latch.Held(now)
	if m.bomb.Held(now) {
		m.inputFrame.Held[core.ActionBomb] = true
	}
	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run in the leaderboard.
func (m GameModel) saveRun() {
	if m.store == nil {
		return
	}

	run := storage.Run{
		MazeID:  m.game.ID(),
		Player:  m.player,
		Score:   m.gameState.Score,
		Outcome: storage.OutcomeLost,
	}
	if m.gameState.Won {
		run.Outcome = storage.OutcomeWon
	}
	if r, ok := m.game.(runReporter); ok {
		kills, pct, elapsed := r.RunStats()
		run.Kills = kills
		run.CoinPct = pct
		run.DurationMS = elapsed.Milliseconds()
	}

	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "maze", run.MazeID, "error", err)
		return
	}
	m.logger.Info("run saved",
		"id", id,
		"maze", run.MazeID,
		"player", run.Player,
		"score", run.Score,
		"outcome", run.Outcome,
	)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for game.
// It returns true if the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (bool, error) {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
