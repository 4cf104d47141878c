package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bubble-arcade/internal/core"
	bubblescore "github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets   int
	resized  [2]int
	last     core.InputFrame
	state    core.GameState
	awaiting bool
	sink     bubblescore.SoundSink
	released bool
	replays  int
}

func (g *fakeGame) ID() string { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *fakeGame) AwaitAssets() { g.awaiting = true }
func (g *fakeGame) AssetsReady(s bubblescore.SoundSink) { g.sink = s; g.released = true }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = in.Clone()
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Replay() (storage.Replay, error) {
	g.replays++
	return storage.Replay{GameID: "fake", Seed: 1, Ticks: 10, Score: g.state.Score, Outcome: "over", Data: []byte{1}}, nil
}

func testModel(g *fakeGame, opts Options) Model {
	return NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1}, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysBecomeActions(t *testing.T) {
	g := &fakeGame{}
	m := testModel(g, Options{})
	m.Init()

	m = update(t, m, keyMsg("left"))
	m = update(t, m, keyMsg(" "))
	m = update(t, m, TickMsg{})

	assert.True(t, g.last.Has(core.ActionLeft))
	assert.True(t, g.last.Has(core.ActionFire))

	m = update(t, m, TickMsg{})
	assert.False(t, g.last.Has(core.ActionFire), "input must be cleared between ticks")
}

func TestQuitKey(t *testing.T) {
	m := testModel(&fakeGame{}, Options{})
	next, cmd := m.Update(keyMsg("q"))
	assert.True(t, next.(Model).IsQuitting())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMouseAimsAndFires(t *testing.T) {
	g := &fakeGame{}
	m := testModel(g, Options{})

	m = update(t, m, tea.MouseMsg{X: 5, Y: 7, Action: tea.MouseActionMotion})
	m = update(t, m, TickMsg{})
	assert.Equal(t, core.Pointer{X: 5, Y: 7, Valid: true}, g.last.Pointer)
	assert.False(t, g.last.Has(core.ActionFire))

	m = update(t, m, tea.MouseMsg{X: 9, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg{})
	assert.Equal(t, 9, g.last.Pointer.X)
	assert.True(t, g.last.Has(core.ActionFire))
}

func TestResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := testModel(g, Options{})
	m.Init()
	require.Equal(t, 1, g.resets)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 1, g.resets)
	assert.Equal(t, [2]int{100, 40 - helpHeight}, g.resized)
}

func TestSoundGate(t *testing.T) {
	g := &fakeGame{}
	m := testModel(g, Options{Sound: func() (bubblescore.SoundSink, error) {
		return bubblescore.NopSink{}, nil
	}})
	m.Init()
	assert.True(t, g.awaiting)

	update(t, m, soundReadyMsg{sink: bubblescore.NopSink{}})
	assert.True(t, g.released)
	assert.NotNil(t, g.sink)
}

func TestSoundFailureReleasesSilently(t *testing.T) {
	g := &fakeGame{}
	m := testModel(g, Options{Sound: func() (bubblescore.SoundSink, error) {
		return nil, errors.New("no device")
	}})
	m.Init()

	update(t, m, soundReadyMsg{err: errors.New("no device")})
	assert.True(t, g.released)
	assert.Nil(t, g.sink)
}

func TestReplaySavedOnceOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	defer store.Close()

	g := &fakeGame{}
	m := testModel(g, Options{Store: store})

	g.state = core.GameState{GameOver: true, Score: 120}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	assert.Equal(t, 1, g.replays)

	list, err := store.ListReplays("fake", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 120, list[0].Score)

	// Restart clears the flag for the next game.
	m = update(t, m, keyMsg("r"))
	g.state = core.GameState{}
	m = update(t, m, TickMsg{})
	assert.Equal(t, 1, g.resets)
	assert.False(t, m.replaySaved)
}

func TestBackOnlyWhenEmbedded(t *testing.T) {
	g := &fakeGame{state: core.GameState{Paused: true}}
	m := testModel(g, Options{})
	m = update(t, m, TickMsg{})

	m = update(t, m, keyMsg("b"))
	assert.False(t, m.BackToMenu())

	m.embedded = true
	m = update(t, m, keyMsg("b"))
	assert.True(t, m.BackToMenu())
}

func TestViewIncludesHelp(t *testing.T) {
	m := testModel(&fakeGame{}, Options{})
	view := m.View()
	assert.Contains(t, view, "fake")
	assert.Contains(t, view, "aim left")
}
