package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	in := Replay{
		GameID:    "bubbles",
		Seed:      -42,
		Ticks:     1234,
		Score:     90,
		Outcome:   "clear",
		StateHash: 0xfedcba9876543210,
		Data:      []byte{0x93, 0x01, 0x02, 0x03},
	}
	id, err := store.SaveReplay(in)
	require.NoError(t, err)
	require.Len(t, id, 36, "IDs are UUIDs")

	out, err := store.LoadReplay(id)
	require.NoError(t, err)
	assert.Equal(t, id, out.ID)
	assert.Equal(t, in.Seed, out.Seed)
	assert.Equal(t, in.Ticks, out.Ticks)
	assert.Equal(t, in.Score, out.Score)
	assert.Equal(t, in.Outcome, out.Outcome)
	assert.Equal(t, in.StateHash, out.StateHash, "hash survives the signed column")
	assert.Equal(t, in.Data, out.Data)
}

func TestSaveReplayKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveReplay(Replay{ID: "fixed", GameID: "bubbles", Outcome: "over", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = store.SaveReplay(Replay{ID: "fixed", GameID: "bubbles", Outcome: "over", Data: []byte{1}})
	assert.Error(t, err, "duplicate IDs are rejected")
}

func TestLoadReplayNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.LoadReplay("missing")
	assert.ErrorIs(t, err, ErrReplayNotFound)
	assert.ErrorIs(t, store.DeleteReplay("missing"), ErrReplayNotFound)
}

func TestListReplays(t *testing.T) {
	store := openTestStore(t)
	for i, game := range []string{"bubbles", "bubbles", "other"} {
		_, err := store.SaveReplay(Replay{GameID: game, Score: i * 10, Outcome: "over", Data: []byte{byte(i)}})
		require.NoError(t, err)
	}

	all, err := store.ListReplays("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Nil(t, all[0].Data, "listing omits data")

	bubbles, err := store.ListReplays("bubbles", 10)
	require.NoError(t, err)
	require.Len(t, bubbles, 2)
	assert.Equal(t, 10, bubbles[0].Score, "newest first")

	limited, err := store.ListReplays("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	n, err := store.CountReplays("bubbles")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = store.CountReplays("")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveReplay(Replay{GameID: "bubbles", Outcome: "over", Data: []byte{1}})
	require.NoError(t, err)

	require.NoError(t, store.DeleteReplay(id))
	_, err = store.LoadReplay(id)
	assert.ErrorIs(t, err, ErrReplayNotFound)
}
