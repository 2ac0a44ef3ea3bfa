package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bombmaze/internal/core"
	"github.com/vovakirdan/bombmaze/internal/registry"
	"github.com/vovakirdan/bombmaze/internal/storage"
)

// MenuItem is one maze on the picker together with its leaderboard record.
type MenuItem struct {
	MazeID string
	Title  string
	Runs   int
	Wins   int
	Best   int
}

// MenuModel is the Bubble Tea model for the maze picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
	embedded       bool // Hosted by a session; never quits the program
}

// NewMenuModel lists every registered maze with whatever the store knows
// about it. A nil or failing store leaves the records empty.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.MazeStats
	if store != nil {
		stats, _ = store.AllStats()
	}

	var items []MenuItem
	for _, mz := range registry.List() {
		item := MenuItem{MazeID: mz.ID, Title: mz.Title}
		if st, ok := stats[mz.ID]; ok {
			item.Runs, item.Wins, item.Best = st.Runs, st.Wins, st.HighScore
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

// leave ends the menu program unless a session hosts it.
func (m MenuModel) leave() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// pick marks the maze at index i as chosen.
func (m MenuModel) pick(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.items) {
		return m, nil
	}
	m.cursor = i
	item := m.items[i]
	m.selected = &item
	return m, m.leave()
}

// handleKey moves the cursor with wrap-around. Digits 1-9 start the
// matching maze directly.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			return m.pick(int(r - '1'))
		}
	}

	n := len(m.items)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case MenuActionSelect:
		return m.pick(m.cursor)
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.leave()
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCard       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 2)
)

// record summarises a maze's leaderboard line for the picker.
func (it MenuItem) record() string {
	if it.Runs == 0 {
		return "unplayed"
	}
	return fmt.Sprintf("best %d, %d/%d won", it.Best, it.Wins, it.Runs)
}

// mazeList renders the numbered maze entries, highlighting the cursor.
func (m MenuModel) mazeList() string {
	lines := make([]string, 0, len(m.items))
	for i, it := range m.items {
		entry, marker := fmt.Sprintf("%d. %-14s", i+1, it.Title), "  "
		if i == m.cursor {
			entry, marker = menuCursor.Render(entry), menuCursor.Render("> ")
		}
		lines = append(lines, marker+entry+" "+menuHintStyle.Render(it.record()))
	}
	return strings.Join(lines, "\n")
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		"",
		centerStyled(menuTitleStyle.Render("  B O M B M A Z E  "), m.width),
		"",
		centerText("Collect coins, open the exit, bomb what chases you", m.width),
		"",
	}
	if len(m.items) == 0 {
		sections = append(sections, centerText("No mazes registered", m.width))
	} else {
		sections = append(sections, centerStyled(menuCard.Render(m.mazeList()), m.width))
	}
	sections = append(sections,
		"",
		centerStyled(menuHintStyle.Render("Up/Down: Navigate  |  1-9/Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width),
		centerStyled(menuHintStyle.Render("In game: arrows/WASD move, tap Space freeze bomb, hold Space bomb"), m.width),
		"",
	)
	return strings.Join(sections, "\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// centerStyled centers already styled text, measuring its visible width.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	MazeID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result reports what the player chose. Leaving without a choice quits.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config, WantsScoreboard: m.openScoreboard}
	switch {
	case res.WantsScoreboard:
	case m.selected != nil && !m.quitting:
		res.MazeID = m.selected.MazeID
	default:
		res.Quit = true
	}
	return res
}

// RunMenu shows the picker on the alternate screen until the player chooses.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
