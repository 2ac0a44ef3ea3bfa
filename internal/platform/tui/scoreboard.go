package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 110 // Minimum width to show the stats panel
	sidebarWidth       = 22  // Width of the stats panel
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMaze key.Binding
	PrevMaze key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMaze, k.NextMaze, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMaze: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next maze")),
		PrevMaze: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev maze")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	mazes       []registry.GameInfo // Registered mazes
	mazeCursor  int                 // Currently selected maze index
	store       *storage.Store      // Run leaderboard
	runs        []storage.Run
	stats       *storage.MazeStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the stats panel
	embedded    bool // Hosted by a session; never quits the program
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		mazes:       registry.List(),
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	if len(m.mazes) > 0 {
		m.loadRuns(m.mazes[0].ID)
	}

	return m
}

// runColumns lists the table columns. Player takes the spare width.
func runColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "Result", Width: 6},
		{Title: "Coins", Width: 5},
		{Title: "Kills", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Played", Width: 12},
	}
}

// createTable sizes the runs table for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := runColumns()

	room := m.width - 4
	if m.showSidebar {
		room -= sidebarWidth + 4
	}
	for _, c := range columns {
		room -= c.Width + 2
	}
	if room > 0 {
		columns[1].Width += min(room, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(boardBorder).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(boardAccent).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return t
}

// loadRuns loads the leaderboard and stats of the given maze.
func (m *ScoreboardModel) loadRuns(mazeID string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(mazeID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(mazeID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			r.Outcome,
			fmt.Sprintf("%d%%", r.CoinPct),
			fmt.Sprintf("%d", r.Kills),
			formatRunTime(r.DurationMS),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectMaze moves the maze cursor by delta, wrapping around.
func (m *ScoreboardModel) selectMaze(delta int) {
	if len(m.mazes) == 0 {
		return
	}
	m.mazeCursor = (m.mazeCursor + delta + len(m.mazes)) % len(m.mazes)
	m.loadRuns(m.mazes[m.mazeCursor].ID)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMaze):
			m.selectMaze(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMaze):
			m.selectMaze(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardBorder = lipgloss.Color("240")
	boardAccent = lipgloss.Color("229")
	boardMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(boardAccent)
	boardBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(boardBorder).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(boardAccent).Background(lipgloss.Color("57")).Padding(0, 1)
	idleTab     = boardMuted.Padding(0, 1)
)

// View renders the scoreboard: maze tabs, the runs table and, on wide
// terminals, a stats panel for the selected maze.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerStyled(boardTitle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.mazeTabs(), m.width))
	b.WriteString("\n\n")

	board := boardBox.Render(m.runsView())
	if m.showSidebar {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.statsPanel())
	} else {
		b.WriteString(centerText(m.statsLine(), m.width))
		b.WriteString("\n")
	}
	b.WriteString(board)

	b.WriteString("\n")
	b.WriteString(boardMuted.Render(m.help.View(m.keys)))
	return b.String()
}

// mazeTabs lists every maze, highlighting the selected one. When the
// tabs do not fit only the selected maze is shown.
func (m ScoreboardModel) mazeTabs() string {
	if len(m.mazes) == 0 {
		return boardMuted.Render("No mazes registered")
	}
	tabs := make([]string, len(m.mazes))
	for i, mz := range m.mazes {
		style := idleTab
		if i == m.mazeCursor {
			style = activeTab
		}
		tabs[i] = style.Render(mz.Title)
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = activeTab.Render("< " + m.mazes[m.mazeCursor].Title + " >")
	}
	return line
}

// statsLine summarizes the selected maze on one line.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "No runs yet"
	}
	return fmt.Sprintf("Runs: %d  Wins: %d  Best: %d  Avg: %.0f  Kills: %d",
		m.stats.Runs, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalKills)
}

// statsPanel is the wide-layout summary of the selected maze.
func (m ScoreboardModel) statsPanel() string {
	panel := boardBox.Width(sidebarWidth)
	if m.stats == nil || m.stats.Runs == 0 {
		return panel.Render(boardMuted.Render("No runs yet"))
	}

	st := m.stats
	winRate := 100 * st.Wins / st.Runs
	lines := []string{
		boardTitle.Render("Maze stats"),
		"",
		fmt.Sprintf("Runs     %d", st.Runs),
		fmt.Sprintf("Wins     %d (%d%%)", st.Wins, winRate),
		fmt.Sprintf("Best     %d", st.HighScore),
		fmt.Sprintf("Average  %.0f", st.AvgScore),
		fmt.Sprintf("Kills    %d", st.TotalKills),
	}
	if !st.LastPlayed.IsZero() {
		lines = append(lines, "", boardMuted.Render("Last "+st.LastPlayed.Format("15:04:05")))
	}
	return panel.Render(strings.Join(lines, "\n"))
}

// runsView is the runs table, or a hint when the maze has none.
func (m ScoreboardModel) runsView() string {
	if len(m.runs) == 0 {
		return boardMuted.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nFinish a maze to get on the board!")
	}
	return m.table.View()
}

// formatRunTime renders a run duration as m:ss.
func formatRunTime(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
