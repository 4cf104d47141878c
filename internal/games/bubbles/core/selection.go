package core

// Intner is the random source used by the selection policy.
// *math/rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Candidates returns the weighted multiset the next piece is drawn from.
// Ordinary types present on the board are preferred, in catalog order, and
// bonus types always stay in the pool. An empty board (or one holding no
// known ordinary type) uses the whole catalog. Each candidate appears
// Weight times.
func Candidates(board *Board, catalog Catalog) []TypeID {
	pool := catalog
	if board != nil && !board.IsEmpty() {
		present := board.TypesPresent()
		preferred := make(Catalog, 0, len(catalog))
		matched := false
		for _, pt := range catalog {
			switch {
			case pt.Bonus:
				preferred = append(preferred, pt)
			case present[pt.ID]:
				preferred = append(preferred, pt)
				matched = true
			}
		}
		if matched {
			pool = preferred
		}
	}

	var bag []TypeID
	for _, pt := range pool {
		w := pt.Weight
		if w < 1 {
			w = 1
		}
		for i := 0; i < w; i++ {
			bag = append(bag, pt.ID)
		}
	}
	return bag
}

// Draw picks the next piece type. It holds no state between calls.
func Draw(rng Intner, board *Board, catalog Catalog) TypeID {
	bag := Candidates(board, catalog)
	if len(bag) == 0 {
		return FallbackTypeID
	}
	return bag[rng.Intn(len(bag))]
}
