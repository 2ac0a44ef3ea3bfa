package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

// SSHServerConfig configures the multi-session SSH host.
type SSHServerConfig struct {
	// Address is host:port, e.g. ":23234".
	Address string

	// HostKeyPath locates the server key, generated on first use.
	// Empty means ~/.bombmaze/host_key.
	HostKeyPath string

	// IdleTimeout closes sessions with no input for this long.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Logger receives server and session events. Defaults to stderr.
	Logger *log.Logger
}

// shutdownGrace bounds how long open sessions may keep the server up.
const shutdownGrace = 10 * time.Second

// DefaultSSHServerConfig listens on :23234 at 60 ticks per second.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server hosting independent maze sessions.
// All sessions share one in-memory leaderboard.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a server from cfg. Sessions share one in-memory
// leaderboard; if it cannot be opened they play without one.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bombmaze-ssh",
		})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	if srv.store, err = storage.Open(); err != nil {
		logger.Warn("could not open leaderboard, runs will not be recorded", "error", err)
	}
	return srv, nil
}

// resolveHostKey returns the host key location, defaulting to
// ~/.bombmaze/host_key, and makes sure its directory exists. wish
// generates the key on first use.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".bombmaze", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler gives each SSH session its own menu, sized to its PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, cfg, sess.User())
	model.palette = NewPalette(bubbletea.MakeRenderer(sess))
	model.logger = s.logger.With("session", model.sessionID)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware records when sessions open and close.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started")
		defer func() {
			l.Info("session ended", "duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// ListenAndServe serves until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve accepts sessions until ctx is done or the listener fails, then
// shuts the server down. The leaderboard goes with it.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	failed := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case serveErr = <-failed:
		if serveErr != nil {
			s.logger.Error("server error", "error", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Shutdown stops accepting sessions, waits for open ones up to ctx and
// closes the leaderboard.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if s.store != nil {
		if closeErr := s.store.Close(); closeErr != nil {
			s.logger.Warn("closing leaderboard", "error", closeErr)
		}
	}
	return err
}

// Addr is the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu -> game or
// scoreboard -> menu. This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	sessionID  string
	palette    *Palette
	logger     *log.Logger
	screen     sessionScreen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel opens a session for username on the maze picker.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:     store,
		config:    cfg,
		username:  username,
		sessionID: uuid.NewString(),
		logger:    log.New(io.Discard),
		menu:      newEmbeddedMenu(store, cfg),
	}
}

func newEmbeddedMenu(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	menu := NewMenuModel(store, cfg)
	menu.embedded = true
	return menu
}

// Init starts on the maze picker.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to whichever screen is showing.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Every screen built later inherits the latest terminal size
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu starts a run or opens the leaderboard once the picker decides.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard.embedded = true
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.MazeID)
		if err != nil {
			// Shouldn't happen since menu only shows registered mazes
			m.logger.Error("cannot create maze", "maze", selected.MazeID, "error", err)
			m.menu = newEmbeddedMenu(m.store, m.config)
			return m, nil
		}

		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()

		gameModel := NewGameModel(game, m.config, GameOptions{
			Store:   m.store,
			Logger:  m.logger,
			Palette: m.palette,
			Player:  m.username,
		})
		m.gameModel = &gameModel
		m.screen = screenGame
		m.logger.Info("maze started", "maze", selected.MazeID)

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame forwards to the running maze until it asks to leave.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = newEmbeddedMenu(m.store, m.config)
}

// View draws the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScoreboard:
		return m.scoreboard.View()
	}

	return m.menu.View()
}
