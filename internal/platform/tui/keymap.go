package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubble-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Retry      key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding

	// Menu navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "aim left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "aim right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
	}
}

// ShortHelp implements help.KeyMap for the in-game footer.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return []key.Binding{km.Left, km.Right, km.Fire, km.Pause, km.Retry, km.Quit}
}

// FullHelp implements help.KeyMap.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Right, km.Fire},
		{km.Pause, km.Retry, km.Back},
		{km.Screenshot, km.Quit},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.Fire):
		return core.ActionFire, false
	case msg.String() == "enter":
		return core.ActionConfirm, false
	case key.Matches(msg, km.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.Retry):
		return core.ActionRestart, false
	case key.Matches(msg, km.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.Select):
		return MenuActionSelect
	case key.Matches(msg, km.Up):
		return MenuActionUp
	case key.Matches(msg, km.Down):
		return MenuActionDown
	case key.Matches(msg, km.Left):
		return MenuActionLeft
	case key.Matches(msg, km.Right):
		return MenuActionRight
	case msg.String() == "esc", key.Matches(msg, km.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
