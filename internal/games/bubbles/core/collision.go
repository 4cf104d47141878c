package core

import (
	"errors"
	"math"
)

// ErrBoardFull is returned when a projectile has no empty cell to snap into.
var ErrBoardFull = errors.New("bubbles: board full")

// Projectile is a piece in flight.
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Type   TypeID
}

// Speed returns the projectile speed in pixels per second.
func (p Projectile) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// ContactKind classifies how a flight step ended.
type ContactKind int

const (
	ContactNone    ContactKind = iota // Still in flight
	ContactCeiling                    // Reached the ceiling
	ContactPiece                      // Touched an occupied cell
	ContactOut                        // Left the playfield downward
)

func (k ContactKind) String() string {
	switch k {
	case ContactNone:
		return "none"
	case ContactCeiling:
		return "ceiling"
	case ContactPiece:
		return "piece"
	case ContactOut:
		return "out"
	default:
		return "unknown"
	}
}

// Flight is the result of advancing a projectile.
type Flight struct {
	Contact ContactKind
	Hit     Coord // Occupied cell touched, for ContactPiece
	Bounces int   // Wall reflections during the step
}

// Advance integrates the projectile over dt seconds in swept sub-steps no
// longer than half a radius, reflecting off the side walls. It stops at the
// first contact and leaves the projectile at the contact position.
func (p *Projectile) Advance(dt float64, l Layout, b *Board, ceilingOffset float64) Flight {
	var f Flight
	if dt <= 0 {
		return f
	}

	maxSub := l.Radius / 2
	dist := p.Speed() * dt
	steps := int(math.Ceil(dist / maxSub))
	if steps < 1 {
		steps = 1
	}
	sub := dt / float64(steps)

	minX, maxX := l.Left+l.Radius, l.Right-l.Radius
	ceiling := l.Ceiling(ceilingOffset) + l.Radius
	reach := 4 * l.Radius * l.Radius
	outY := l.LossLine + 2*l.Radius

	for i := 0; i < steps; i++ {
		p.X += p.VX * sub
		p.Y += p.VY * sub

		if p.X < minX {
			p.X = minX
			p.VX = -p.VX
			f.Bounces++
		} else if p.X > maxX {
			p.X = maxX
			p.VX = -p.VX
			f.Bounces++
		}

		if p.Y <= ceiling {
			f.Contact = ContactCeiling
			return f
		}

		for _, c := range l.NearbyCells(p.X, p.Y, ceilingOffset) {
			if b.Occupied(c) && l.DistSq(c, p.X, p.Y, ceilingOffset) <= reach {
				f.Contact = ContactPiece
				f.Hit = c
				return f
			}
		}

		if p.VY > 0 && p.Y > outY {
			f.Contact = ContactOut
			return f
		}
	}
	return f
}

// SnapTarget chooses the empty cell a projectile at (x, y) settles into.
// Candidates are empty cells near the point that are in row 0 or touch an
// occupied cell; for ceiling contact only row 0 qualifies. The closest
// candidate wins, ties going to the first in row-major order. With no
// candidate, the first empty cell in row-major order is used. ErrBoardFull
// is returned only when the board has no empty cell at all.
func SnapTarget(l Layout, b *Board, x, y, ceilingOffset float64, ceiling bool) (Coord, error) {
	best := Coord{Row: -1}
	bestDist := math.Inf(1)

	for _, c := range l.NearbyCells(x, y, ceilingOffset) {
		if b.Occupied(c) {
			continue
		}
		if ceiling && c.Row != 0 {
			continue
		}
		if c.Row != 0 && !touchesOccupied(b, c) {
			continue
		}
		if d := l.DistSq(c, x, y, ceilingOffset); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best.Row >= 0 {
		return best, nil
	}

	if c, ok := b.FirstEmpty(); ok {
		return c, nil
	}
	return Coord{}, ErrBoardFull
}

func touchesOccupied(b *Board, c Coord) bool {
	for _, n := range b.Neighbors(c) {
		if b.Occupied(n) {
			return true
		}
	}
	return false
}
