package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// maxReplays caps how many replays the browser loads.
const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Verify, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored replays.
type ReplaysModel struct {
	gameID    string
	store     *storage.Store
	verify    ReplayVerifier
	replays   []storage.Replay
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewReplaysModel creates a replay browser for one game.
func NewReplaysModel(store *storage.Store, verify ReplayVerifier, gameID string, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		gameID: gameID,
		store:  store,
		verify: verify,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized for the current window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Score", Width: 8},
		{Title: "Outcome", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Date", Width: 14},
	}

	height := m.height - 9 // Title, status, help and borders
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the replay list from the store.
func (m *ReplaysModel) loadReplays() {
	if m.store == nil {
		m.replays = nil
		m.status = "No replay database."
		m.updateTableRows()
		return
	}

	replays, err := m.store.ListReplays(m.gameID, maxReplays)
	if err != nil {
		m.replays = nil
		m.status = fmt.Sprintf("Could not load replays: %v", err)
	} else {
		m.replays = replays
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current replays.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			shortID(r.ID),
			fmt.Sprintf("%d", r.Score),
			r.Outcome,
			fmt.Sprintf("%d", r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// selectedReplay returns the replay under the cursor.
func (m ReplaysModel) selectedReplay() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// verifySelected loads and re-simulates the replay under the cursor.
func (m *ReplaysModel) verifySelected() {
	sel, ok := m.selectedReplay()
	if !ok || m.store == nil {
		return
	}
	if m.verify == nil {
		m.status = "Verification unavailable."
		return
	}
	r, err := m.store.LoadReplay(sel.ID)
	if err != nil {
		m.status = fmt.Sprintf("Could not load %s: %v", shortID(sel.ID), err)
		return
	}
	if err := m.verify(r); err != nil {
		m.status = fmt.Sprintf("%s: FAILED (%v)", shortID(sel.ID), err)
		return
	}
	m.status = fmt.Sprintf("%s: verified, score %d", shortID(sel.ID), r.Score)
}

// deleteSelected removes the replay under the cursor.
func (m *ReplaysModel) deleteSelected() {
	sel, ok := m.selectedReplay()
	if !ok || m.store == nil {
		return
	}
	err := m.store.DeleteReplay(sel.ID)
	switch {
	case errors.Is(err, storage.ErrReplayNotFound):
		m.status = "Replay already gone."
	case err != nil:
		m.status = fmt.Sprintf("Could not delete %s: %v", shortID(sel.ID), err)
	default:
		m.status = fmt.Sprintf("Deleted %s.", shortID(sel.ID))
	}
	m.loadReplays()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "REPLAYS"
	b.WriteString(centerText(titleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// Status returns the last status line.
func (m ReplaysModel) Status() string {
	return m.status
}

// RunReplays runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplays(store *storage.Store, verify ReplayVerifier, gameID string, width, height int) (goBack bool, err error) {
	model := NewReplaysModel(store, verify, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
