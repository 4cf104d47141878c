package core

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Board is the rectangular cell store of the playfield.
// Cells are stored in row-major order: index = row*Cols + col.
// Contents change only through Place and Remove.
type Board struct {
	rows  int
	cols  int
	cells []*Piece
	count int
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]*Piece, rows*cols),
	}
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// Size returns the total number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

// index converts a coordinate to a flat array index.
func (b *Board) index(c Coord) int {
	return c.Row*b.cols + c.Col
}

// coordOf converts a flat index back to a coordinate.
func (b *Board) coordOf(i int) Coord {
	return Coord{Row: i / b.cols, Col: i % b.cols}
}

// InBounds returns true if the coordinate is within the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// Neighbors returns the in-bounds hex neighbors of c.
func (b *Board) Neighbors(c Coord) []Coord {
	return Neighbors(b.rows, b.cols, c)
}

// At returns the piece at c and whether the cell is occupied.
func (b *Board) At(c Coord) (Piece, bool) {
	if !b.InBounds(c) {
		return Piece{}, false
	}
	p := b.cells[b.index(c)]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Occupied returns true if c holds a piece.
func (b *Board) Occupied(c Coord) bool {
	return b.InBounds(c) && b.cells[b.index(c)] != nil
}

// Place puts a piece into an empty in-bounds cell.
// Returns false if the cell is out of bounds or already occupied.
func (b *Board) Place(c Coord, p Piece) bool {
	if !b.InBounds(c) {
		return false
	}
	i := b.index(c)
	if b.cells[i] != nil {
		return false
	}
	piece := p
	b.cells[i] = &piece
	b.count++
	return true
}

// Remove empties the cell at c and returns the piece that was there.
func (b *Board) Remove(c Coord) (Piece, bool) {
	if !b.InBounds(c) {
		return Piece{}, false
	}
	i := b.index(c)
	p := b.cells[i]
	if p == nil {
		return Piece{}, false
	}
	b.cells[i] = nil
	b.count--
	return *p, true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	return b.count
}

// IsEmpty returns true if no cell is occupied.
func (b *Board) IsEmpty() bool {
	return b.count == 0
}

// OccupiedCoords returns all occupied coordinates in row-major order.
func (b *Board) OccupiedCoords() []Coord {
	out := make([]Coord, 0, b.count)
	for i, p := range b.cells {
		if p != nil {
			out = append(out, b.coordOf(i))
		}
	}
	return out
}

// FirstEmpty returns the first empty cell in row-major order.
func (b *Board) FirstEmpty() (Coord, bool) {
	for i, p := range b.cells {
		if p == nil {
			return b.coordOf(i), true
		}
	}
	return Coord{}, false
}

// LowestOccupiedRow returns the largest row index holding a piece, or -1.
func (b *Board) LowestOccupiedRow() int {
	for i := len(b.cells) - 1; i >= 0; i-- {
		if b.cells[i] != nil {
			return i / b.cols
		}
	}
	return -1
}

// TypesPresent returns the distinct piece types on the board.
func (b *Board) TypesPresent() map[TypeID]bool {
	present := make(map[TypeID]bool)
	for _, p := range b.cells {
		if p != nil {
			present[p.Type] = true
		}
	}
	return present
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := NewBoard(b.rows, b.cols)
	for i, p := range b.cells {
		if p != nil {
			piece := *p
			clone.cells[i] = &piece
		}
	}
	clone.count = b.count
	return clone
}

// Equal returns true if two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i, p := range b.cells {
		q := other.cells[i]
		if (p == nil) != (q == nil) {
			return false
		}
		if p != nil && *p != *q {
			return false
		}
	}
	return true
}

// Hash returns a hash of the board dimensions and contents.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", b.rows, b.cols)
	for i, p := range b.cells {
		if p != nil {
			fmt.Fprintf(h, "%d=%s,", i, p.Type)
		}
	}
	return h.Sum64()
}

// String renders the board as rows of type initials, "." for empty cells.
// Odd rows are indented by one space.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		if row&1 == 1 {
			sb.WriteByte(' ')
		}
		for col := 0; col < b.cols; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			p := b.cells[row*b.cols+col]
			if p == nil || p.Type == "" {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(string(p.Type)[0])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
