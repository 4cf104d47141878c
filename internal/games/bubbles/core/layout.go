package core

import "math"

// Layout maps grid coordinates to playfield pixels and back.
// It is the single geometric basis shared by collision and every renderer.
type Layout struct {
	Rows      int
	Cols      int
	Radius    float64
	RowHeight float64 // Vertical distance between row centers (R*sqrt(3))

	Left  float64 // Left wall x
	Right float64 // Right wall x
	Top   float64 // Ceiling y at zero offset

	ShooterX float64
	ShooterY float64
	LossLine float64 // Pieces whose bottom edge passes this y end the game

	Width  float64 // Full frame width including side margins
	Height float64 // Full frame height including the shooter area
}

// NewLayout computes the layout for a normalized config.
func NewLayout(cfg Config) Layout {
	r := cfg.Radius
	rowH := r * math.Sqrt(3)
	left := cfg.SideMargin
	fieldW := float64(cfg.Cols)*2*r + r
	top := cfg.TopMargin
	// The last row sits fully above the loss line at zero offset.
	shooterY := top + 2*r + float64(cfg.Rows)*rowH

	return Layout{
		Rows:      cfg.Rows,
		Cols:      cfg.Cols,
		Radius:    r,
		RowHeight: rowH,
		Left:      left,
		Right:     left + fieldW,
		Top:       top,
		ShooterX:  left + fieldW/2,
		ShooterY:  shooterY,
		LossLine:  shooterY - r,
		Width:     fieldW + 2*cfg.SideMargin,
		Height:    shooterY + 2*r,
	}
}

// rowShift returns the horizontal shift of a row.
func (l Layout) rowShift(row int) float64 {
	if row&1 == 1 {
		return l.Radius
	}
	return 0
}

// CellCenter returns the pixel center of a cell, including the ceiling offset.
func (l Layout) CellCenter(row, col int, ceilingOffset float64) (x, y float64) {
	x = l.Left + l.Radius + float64(col)*2*l.Radius + l.rowShift(row)
	y = l.Top + ceilingOffset + l.Radius + float64(row)*l.RowHeight
	return x, y
}

// CellCenterOf is CellCenter for a Coord.
func (l Layout) CellCenterOf(c Coord, ceilingOffset float64) (x, y float64) {
	return l.CellCenter(c.Row, c.Col, ceilingOffset)
}

// Ceiling returns the ceiling y for the given offset.
func (l Layout) Ceiling(ceilingOffset float64) float64 {
	return l.Top + ceilingOffset
}

// EnclosingCell inverts CellCenter by rounding. The result may lie outside the board.
func (l Layout) EnclosingCell(x, y, ceilingOffset float64) Coord {
	row := int(math.Round((y - l.Top - ceilingOffset - l.Radius) / l.RowHeight))
	col := int(math.Round((x - l.Left - l.Radius - l.rowShift(row)) / (2 * l.Radius)))
	return Coord{Row: row, Col: col}
}

// NearbyCells returns the in-bounds cells around (x, y) whose centers could be
// within one diameter of the point: the enclosing cell and every cell within
// two rows and two columns of it, in row-major order.
func (l Layout) NearbyCells(x, y, ceilingOffset float64) []Coord {
	center := l.EnclosingCell(x, y, ceilingOffset)
	out := make([]Coord, 0, 25)
	for row := center.Row - 2; row <= center.Row+2; row++ {
		if row < 0 || row >= l.Rows {
			continue
		}
		for col := center.Col - 2; col <= center.Col+2; col++ {
			if col < 0 || col >= l.Cols {
				continue
			}
			out = append(out, Coord{Row: row, Col: col})
		}
	}
	return out
}

// DistSq returns the squared distance from (x, y) to the center of c.
func (l Layout) DistSq(c Coord, x, y, ceilingOffset float64) float64 {
	cx, cy := l.CellCenterOf(c, ceilingOffset)
	dx, dy := x-cx, y-cy
	return dx*dx + dy*dy
}
