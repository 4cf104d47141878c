package core

import (
	"strings"
	"testing"
)

var testTypes = map[string]TypeID{
	"r": "red",
	"g": "green",
	"b": "blue",
	"y": "yellow",
	"s": "star",
}

func testCatalog() Catalog {
	return Catalog{
		{ID: "red", Color: "#ff0000", Weight: 1},
		{ID: "green", Color: "#00ff00", Weight: 1},
		{ID: "blue", Color: "#0000ff", Weight: 1},
		{ID: "star", Color: "#ffffff", Weight: 4, Bonus: true},
	}
}

// parseBoard builds a board from rows of space-separated tokens.
// "." is empty, other tokens are keys of testTypes.
func parseBoard(t *testing.T, rows, cols int, lines ...string) *Board {
	t.Helper()
	b := NewBoard(rows, cols)
	for r, line := range lines {
		for c, tok := range strings.Fields(line) {
			if tok == "." {
				continue
			}
			id, ok := testTypes[tok]
			if !ok {
				t.Fatalf("unknown token %q at (%d,%d)", tok, r, c)
			}
			if !b.Place(At(r, c), Piece{Type: id}) {
				t.Fatalf("cannot place at (%d,%d)", r, c)
			}
		}
	}
	return b
}

// randomBoard fills cells with probability fill using the given types.
func randomBoard(rng Intner, rows, cols int, fill int, types []TypeID) *Board {
	b := NewBoard(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Intn(100) < fill {
				b.Place(At(r, c), Piece{Type: types[rng.Intn(len(types))]})
			}
		}
	}
	return b
}

// testConfig returns a small board config with no initial stock.
func testConfig(rows, cols int) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	cfg.InitialRows = 0
	return cfg
}

// sessionWithBoard creates a session whose board is replaced by b.
func sessionWithBoard(cfg Config, b *Board) *Session {
	s := NewSession(cfg, testCatalog(), 1)
	s.board = b
	return s
}

// fireAndLand fires the given type straight up and runs until the shot resolves.
func fireAndLand(t *testing.T, s *Session, typ TypeID) []Event {
	t.Helper()
	s.queue.Current = typ
	s.shooter.Angle = DefaultAngle
	evs := s.Advance(1.0/60, Input{Fire: true})
	for i := 0; i < 600 && s.Phase() == PhaseFiring; i++ {
		evs = append(evs, s.Advance(1.0/60, Input{})...)
	}
	if s.Phase() == PhaseFiring {
		t.Fatal("projectile never landed")
	}
	return evs
}
