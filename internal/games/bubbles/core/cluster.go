package core

import "github.com/kamstrup/intmap"

// DefaultClearThreshold is the minimum same-type cluster size that clears.
const DefaultClearThreshold = 3

// RemovalCause tells why a piece left the board.
type RemovalCause int

const (
	CauseMatch RemovalCause = iota // Part of a same-type cluster
	CauseBlast                     // Adjacent to a cleared bonus piece
	CauseFall                      // Lost its path to the ceiling
)

func (c RemovalCause) String() string {
	switch c {
	case CauseMatch:
		return "match"
	case CauseBlast:
		return "blast"
	case CauseFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Removal records one cleared cell.
type Removal struct {
	At    Coord
	Piece Piece
	Cause RemovalCause
}

// Rules parameterize cluster resolution.
type Rules struct {
	ClearThreshold int
	Catalog        Catalog // Used to identify bonus types
}

func (r Rules) threshold() int {
	if r.ClearThreshold < 1 {
		return DefaultClearThreshold
	}
	return r.ClearThreshold
}

// Resolution is the outcome of resolving one placement.
type Resolution struct {
	Placed   Coord
	Cluster  []Coord // Same-type cluster containing Placed
	Matched  bool    // Cluster reached the clear threshold
	Removals []Removal
}

// Count returns the number of removed pieces.
func (r Resolution) Count() int {
	return len(r.Removals)
}

// CountBy returns the number of removals with the given cause.
func (r Resolution) CountBy(cause RemovalCause) int {
	n := 0
	for _, rm := range r.Removals {
		if rm.Cause == cause {
			n++
		}
	}
	return n
}

// CellSet is a set of board cells keyed by flat index.
type CellSet struct {
	cols int
	set  *intmap.Set[int]
}

func newCellSet(b *Board, capacity int) CellSet {
	return CellSet{cols: b.cols, set: intmap.NewSet[int](capacity)}
}

func (s CellSet) add(c Coord) {
	s.set.Add(c.Row*s.cols + c.Col)
}

// Contains reports whether c is in the set.
func (s CellSet) Contains(c Coord) bool {
	if c.Col < 0 || c.Col >= s.cols || c.Row < 0 {
		return false
	}
	return s.set.Has(c.Row*s.cols + c.Col)
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int {
	return s.set.Len()
}

// SameTypeCluster returns every occupied cell reachable from seed through
// neighbors of the seed's type, including the seed, in visiting order.
// Returns nil if seed is empty.
func SameTypeCluster(b *Board, seed Coord) []Coord {
	seedPiece, ok := b.At(seed)
	if !ok {
		return nil
	}

	visited := newCellSet(b, 16)
	visited.add(seed)
	queue := []Coord{seed}
	var cluster []Coord

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		cluster = append(cluster, c)

		for _, n := range b.Neighbors(c) {
			if visited.Contains(n) {
				continue
			}
			p, ok := b.At(n)
			if !ok || p.Type != seedPiece.Type {
				continue
			}
			visited.add(n)
			queue = append(queue, n)
		}
	}
	return cluster
}

// CeilingConnected returns the occupied cells with a path of occupied
// neighbors to an occupied row-0 cell. Piece types are ignored.
func CeilingConnected(b *Board) CellSet {
	connected := newCellSet(b, b.Count())
	var queue []Coord
	for col := 0; col < b.cols; col++ {
		c := Coord{Row: 0, Col: col}
		if b.Occupied(c) {
			connected.add(c)
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range b.Neighbors(c) {
			if connected.Contains(n) || !b.Occupied(n) {
				continue
			}
			connected.add(n)
			queue = append(queue, n)
		}
	}
	return connected
}

// Floating returns occupied cells not connected to the ceiling, in row-major order.
func Floating(b *Board) []Coord {
	connected := CeilingConnected(b)
	var out []Coord
	for _, c := range b.OccupiedCoords() {
		if !connected.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// removalPlan accumulates removals against the current board without mutating it.
type removalPlan struct {
	board     *Board
	scheduled CellSet
	removals  []Removal
}

func (p *removalPlan) schedule(c Coord, cause RemovalCause) bool {
	if p.scheduled.Contains(c) {
		return false
	}
	piece, ok := p.board.At(c)
	if !ok {
		return false
	}
	p.scheduled.add(c)
	p.removals = append(p.removals, Removal{At: c, Piece: piece, Cause: cause})
	return true
}

// blast schedules the occupied neighbors of every bonus cell in cells.
func (p *removalPlan) blast(cells []Coord, catalog Catalog) {
	for _, c := range cells {
		piece, ok := p.board.At(c)
		if !ok || !catalog.IsBonus(piece.Type) {
			continue
		}
		for _, n := range p.board.Neighbors(c) {
			p.schedule(n, CauseBlast)
		}
	}
}

// apply removes every scheduled cell from the board.
func (p *removalPlan) apply(from int) {
	for _, rm := range p.removals[from:] {
		p.board.Remove(rm.At)
	}
}

// Resolve runs match and fall clearing for a piece just placed at placed.
// The board is mutated in one pass and the full removal list is returned.
//
// A same-type cluster of at least the clear threshold is removed together
// with the neighbors of its bonus members. Then pieces without a path to
// the ceiling fall, floating bonus pieces blasting their neighbors, until
// no floating piece remains.
func Resolve(b *Board, placed Coord, rules Rules) Resolution {
	res := Resolution{Placed: placed}
	res.Cluster = SameTypeCluster(b, placed)

	plan := &removalPlan{board: b, scheduled: newCellSet(b, b.Count())}

	if len(res.Cluster) >= rules.threshold() {
		res.Matched = true
		for _, c := range res.Cluster {
			plan.schedule(c, CauseMatch)
		}
		plan.blast(res.Cluster, rules.Catalog)
		plan.apply(0)
	}

	for {
		floating := Floating(b)
		if len(floating) == 0 {
			break
		}
		from := len(plan.removals)
		for _, c := range floating {
			plan.schedule(c, CauseFall)
		}
		plan.blast(floating, rules.Catalog)
		plan.apply(from)
	}

	res.Removals = plan.removals
	return res
}
