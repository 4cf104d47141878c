// Package core provides the simulation engine for the Bubbles shooter:
// hex grid addressing, projectile collision and snapping, cluster analysis
// and the turn state machine. This package is UI-agnostic and deterministic.
package core

import "fmt"

// TypeID identifies a piece variant (its color or avatar).
type TypeID string

// Piece is the content of an occupied cell.
type Piece struct {
	Type TypeID
}

// Coord addresses a cell on the hex offset grid.
// Row 0 is nearest the ceiling; odd rows are shifted right by half a cell.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Odd reports whether the coordinate lies on a shifted row.
func (c Coord) Odd() bool {
	return c.Row&1 == 1
}

// Hex neighbor offsets as (dRow, dCol) for even and odd rows.
var (
	evenOffsets = [6][2]int{{0, -1}, {0, 1}, {-1, -1}, {-1, 0}, {1, -1}, {1, 0}}
	oddOffsets  = [6][2]int{{0, -1}, {0, 1}, {-1, 0}, {-1, 1}, {1, 0}, {1, 1}}
)

// Neighbors returns the in-bounds hex neighbors of c on a rows x cols grid.
func Neighbors(rows, cols int, c Coord) []Coord {
	offsets := &evenOffsets
	if c.Odd() {
		offsets = &oddOffsets
	}
	out := make([]Coord, 0, 6)
	for _, o := range offsets {
		n := Coord{Row: c.Row + o[0], Col: c.Col + o[1]}
		if n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols {
			out = append(out, n)
		}
	}
	return out
}
