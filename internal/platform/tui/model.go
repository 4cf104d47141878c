package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/core"
	bubblescore "github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/registry"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// helpHeight is the number of lines reserved below the game for key help.
const helpHeight = 1

// SoundLoader opens the sound output. It runs off the UI loop.
type SoundLoader func() (bubblescore.SoundSink, error)

// GameFactory creates a game for the chosen difficulty.
type GameFactory func(preset config.DifficultyPreset) (registry.Game, error)

// ReplayVerifier re-simulates a stored replay.
type ReplayVerifier func(r storage.Replay) error

// Options carries the collaborators of a terminal session. Every field is
// optional.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	Sound   SoundLoader
	NewGame GameFactory
	Verify  ReplayVerifier
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// assetLoader is implemented by games that wait for sound before play.
type assetLoader interface {
	AwaitAssets()
	AssetsReady(sink bubblescore.SoundSink)
}

// resizer is implemented by games that adapt to a new screen size in place.
type resizer interface {
	Resize(w, h int)
}

// replaySource is implemented by games that can be stored as replays.
type replaySource interface {
	Replay() (storage.Replay, error)
}

// soundReadyMsg reports the outcome of the sound loader.
type soundReadyMsg struct {
	sink bubblescore.SoundSink
	err  error
}

func loadSoundCmd(load SoundLoader) tea.Cmd {
	return func() tea.Msg {
		sink, err := load()
		return soundReadyMsg{sink: sink, err: err}
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	opts        Options
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	help        help.Model
	quitting    bool
	backToMenu  bool
	embedded    bool // Running inside a SessionModel; Back returns to the menu
	replaySaved bool // Whether the replay has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
}

func gameHeight(h int) int {
	if h <= helpHeight {
		return 0
	}
	return h - helpHeight
}

// gameConfig is the runtime config as the game sees it.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickDuration())}
	if l, ok := m.game.(assetLoader); ok && m.opts.Sound != nil {
		l.AwaitAssets()
		cmds = append(cmds, loadSoundCmd(m.opts.Sound))
	}
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case soundReadyMsg:
		return m.handleSound(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns pointer motion into aim and a left click into a shot.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.inputFrame.PointAt(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.inputFrame.PointAt(msg.X, msg.Y)
			m.inputFrame.Set(core.ActionFire)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
		return m, nil
	}

	// Games without in-place resize start over at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}
	return m, nil
}

// handleSound attaches the sound output once it is ready. A failed loader
// leaves the game silent but still releases it.
func (m Model) handleSound(msg soundReadyMsg) (tea.Model, tea.Cmd) {
	l, ok := m.game.(assetLoader)
	if !ok {
		return m, nil
	}
	if msg.err != nil || msg.sink == nil {
		m.opts.logger().Warn("sound unavailable, playing silently", "error", msg.err)
		l.AssetsReady(nil)
		return m, nil
	}
	l.AssetsReady(msg.sink)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.replaySaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickDuration())
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save replay on game over (once)
	if m.gameState.GameOver && !m.replaySaved {
		m.saveReplay()
		m.replaySaved = true
	}
	if !m.gameState.GameOver {
		m.replaySaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickDuration())
}

// saveReplay stores the finished game. Failures are logged; play goes on.
func (m *Model) saveReplay() {
	src, ok := m.game.(replaySource)
	if !ok || m.opts.Store == nil {
		return
	}
	logger := m.opts.logger()
	r, err := src.Replay()
	if err != nil {
		logger.Warn("could not build replay", "game", m.game.ID(), "error", err)
		return
	}
	id, err := m.opts.Store.SaveReplay(r)
	if err != nil {
		logger.Warn("could not save replay", "game", m.game.ID(), "error", err)
		return
	}
	logger.Info("replay saved", "id", id, "score", r.Score, "outcome", r.Outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aims without a held button
	)

	_, err := p.Run()
	return err
}
