// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is one recorded game. Data holds the encoded input log; its
// format belongs to the game that wrote it.
type Replay struct {
	ID        string
	GameID    string
	Seed      int64
	Ticks     uint64
	Score     int
	Outcome   string // Final phase, e.g. "clear" or "over"
	StateHash uint64 // Hash of the final game state
	Data      []byte
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			state_hash INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and returns its ID. A new UUID is assigned
// when r.ID is empty.
func (s *Store) SaveReplay(r Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	// SQLite integers are signed; the hash round-trips through int64.
	_, err := s.db.Exec(
		`INSERT INTO replays (id, game_id, seed, ticks, score, outcome, state_hash, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Seed, int64(r.Ticks), r.Score, r.Outcome, int64(r.StateHash), r.Data,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return r.ID, nil
}

// LoadReplay returns the replay with the given ID, including its data.
func (s *Store) LoadReplay(id string) (Replay, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, seed, ticks, score, outcome, state_hash, data, created_at
		 FROM replays WHERE id = ?`,
		id,
	)
	r, err := scanReplay(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot load replay: %w", err)
	}
	return r, nil
}

// ListReplays returns the newest replays for a game without their data.
// An empty gameID lists every game.
func (s *Store) ListReplays(gameID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, ticks, score, outcome, state_hash, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []Replay
	for rows.Next() {
		r, err := scanReplay(rows, false)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// CountReplays returns how many replays a game has. An empty gameID counts
// every game.
func (s *Store) CountReplays(gameID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM replays WHERE ? = '' OR game_id = ?",
		gameID, gameID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// DeleteReplay removes a replay.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(sc scanner, withData bool) (Replay, error) {
	var r Replay
	var ticks, hash int64
	var createdAt any

	dest := []any{&r.ID, &r.GameID, &r.Seed, &ticks, &r.Score, &r.Outcome, &hash}
	if withData {
		dest = append(dest, &r.Data)
	}
	dest = append(dest, &createdAt)
	if err := sc.Scan(dest...); err != nil {
		return Replay{}, err
	}
	r.Ticks = uint64(ticks)
	r.StateHash = uint64(hash)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
