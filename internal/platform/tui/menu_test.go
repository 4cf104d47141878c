package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/core"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(MenuModel)
	require.True(t, ok)
	return out
}

func TestMenuDifficultyAndSelect(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	m := NewMenuModel("BUBBLES", cfg, config.DifficultyNormal, true)
	assert.Equal(t, config.DifficultyNormal, m.Preset())

	m = menuUpdate(t, m, keyMsg("right"))
	assert.Equal(t, config.DifficultyHard, m.Preset())
	m = menuUpdate(t, m, keyMsg("right"))
	assert.Equal(t, config.DifficultyHard, m.Preset(), "cycling stops at the last preset")
	m = menuUpdate(t, m, keyMsg("left"))
	m = menuUpdate(t, m, keyMsg("left"))
	assert.Equal(t, config.DifficultyEasy, m.Preset())
	assert.Contains(t, m.View(), "easy")

	m = menuUpdate(t, m, keyMsg("j"))
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, MenuChoiceReplays, m.Selected().Choice)
	assert.False(t, m.IsQuitting())
}

func TestMenuWithoutReplays(t *testing.T) {
	m := NewMenuModel("BUBBLES", core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, config.DifficultyHard, false)
	m = menuUpdate(t, m, keyMsg("j"))
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, MenuChoiceQuit, m.Selected().Choice)
	assert.True(t, m.IsQuitting())
}

func TestReplaysVerifyAndDelete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	require.NoError(t, err)
	defer store.Close()

	good, err := store.SaveReplay(storage.Replay{GameID: "bubbles", Score: 50, Outcome: "clear", Data: []byte{1}})
	require.NoError(t, err)

	calls := 0
	verify := func(r storage.Replay) error {
		calls++
		if r.Score != 50 {
			return errors.New("mismatch")
		}
		return nil
	}

	m := NewReplaysModel(store, verify, "bubbles", 80, 24)
	require.Len(t, m.replays, 1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ReplaysModel)
	assert.Equal(t, 1, calls)
	assert.Contains(t, m.Status(), "verified")

	next, _ = m.Update(keyMsg("d"))
	m = next.(ReplaysModel)
	assert.Contains(t, m.Status(), "Deleted")
	assert.Empty(t, m.replays)

	_, err = store.LoadReplay(good)
	assert.ErrorIs(t, err, storage.ErrReplayNotFound)
}
