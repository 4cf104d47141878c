package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/core"
)

// MenuChoice is what the user picked in the menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceReplays
	MenuChoiceQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// menuPresets are the difficulties the Play entry cycles through.
var menuPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	title      string
	items      []MenuItem
	cursor     int
	preset     int // Index into menuPresets
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	quitting   bool
	selected   *MenuItem
	hasReplays bool
}

// NewMenuModel creates a new menu model. withReplays adds the replay
// browser entry.
func NewMenuModel(title string, cfg core.RuntimeConfig, preset config.DifficultyPreset, withReplays bool) MenuModel {
	items := []MenuItem{{Choice: MenuChoicePlay, Title: "Play"}}
	if withReplays {
		items = append(items, MenuItem{Choice: MenuChoiceReplays, Title: "Replays"})
	}
	items = append(items, MenuItem{Choice: MenuChoiceQuit, Title: "Quit"})

	idx := 1
	for i, p := range menuPresets {
		if p == preset {
			idx = i
		}
	}

	return MenuModel{
		title:      title,
		items:      items,
		preset:     idx,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hasReplays: withReplays,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.items[m.cursor].Choice == MenuChoicePlay && m.preset > 0 {
			m.preset--
		}

	case MenuActionRight:
		if m.items[m.cursor].Choice == MenuChoicePlay && m.preset < len(menuPresets)-1 {
			m.preset++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == MenuChoiceQuit {
			m.quitting = true
		}
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(m.title), m.width, len(m.title)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := item.Title
		if item.Choice == MenuChoicePlay {
			label = fmt.Sprintf("%s  < %s >", item.Title, menuPresets[m.preset])
		}
		line := "  " + label
		if i == m.cursor {
			line = menuActiveStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width, len(label)+2))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Preset returns the chosen difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return menuPresets[m.preset]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text of visible length n within width.
func centerText(text string, width, n int) string {
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(title string, cfg core.RuntimeConfig, preset config.DifficultyPreset, withReplays bool) (MenuResult, error) {
	model := NewMenuModel(title, cfg, preset, withReplays)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Choice: MenuChoiceQuit}, nil
	}

	result := MenuResult{
		Config:     m.Config(),
		Difficulty: m.Preset(),
		Choice:     MenuChoiceQuit,
	}
	if sel := m.Selected(); sel != nil {
		result.Choice = sel.Choice
	}
	return result, nil
}
