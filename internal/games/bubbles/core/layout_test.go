package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCenter(t *testing.T) {
	cfg := testConfig(6, 5)
	cfg.Radius = 10
	cfg.SideMargin = 4
	cfg.TopMargin = 20
	l := NewLayout(cfg)

	rowH := 10 * math.Sqrt(3)
	assert.InDelta(t, rowH, l.RowHeight, 1e-9)

	x, y := l.CellCenter(0, 0, 0)
	assert.InDelta(t, 14.0, x, 1e-9)
	assert.InDelta(t, 30.0, y, 1e-9)

	x, y = l.CellCenter(1, 2, 0)
	assert.InDelta(t, 4+10+40+10, x, 1e-9, "odd rows shift by one radius")
	assert.InDelta(t, 30+rowH, y, 1e-9)

	_, y = l.CellCenter(1, 2, rowH)
	assert.InDelta(t, 30+2*rowH, y, 1e-9, "ceiling offset moves every row")

	assert.InDelta(t, 4+5*20+10, l.Right, 1e-9)
	assert.InDelta(t, l.ShooterY-10, l.LossLine, 1e-9)
}

func TestLastRowClearsLossLine(t *testing.T) {
	l := NewLayout(testConfig(13, 8))
	_, y := l.CellCenter(12, 0, 0)
	assert.Less(t, y+l.Radius, l.LossLine)

	_, y = l.CellCenter(12, 0, l.RowHeight)
	assert.Greater(t, y+l.Radius, l.LossLine)
}

func TestEnclosingCellInvertsCellCenter(t *testing.T) {
	l := NewLayout(testConfig(9, 7))
	for _, offset := range []float64{0, l.RowHeight, 3 * l.RowHeight} {
		for r := 0; r < l.Rows; r++ {
			for c := 0; c < l.Cols; c++ {
				x, y := l.CellCenter(r, c, offset)
				assert.Equal(t, At(r, c), l.EnclosingCell(x, y, offset))
				assert.Equal(t, At(r, c), l.EnclosingCell(x+l.Radius*0.4, y-l.Radius*0.4, offset))
			}
		}
	}
}

func TestNearbyCellsCoversEnclosingAndNeighbors(t *testing.T) {
	l := NewLayout(testConfig(9, 7))
	b := NewBoard(l.Rows, l.Cols)
	x, y := l.CellCenter(4, 3, 0)
	nearby := l.NearbyCells(x, y, 0)

	assert.LessOrEqual(t, len(nearby), 25)
	assert.Contains(t, nearby, At(4, 3))
	for _, n := range b.Neighbors(At(4, 3)) {
		assert.Contains(t, nearby, n)
	}
}

func TestNearbyCellsFindsEveryCellWithinReach(t *testing.T) {
	l := NewLayout(testConfig(9, 7))
	rng := rand.New(rand.NewSource(7))
	reach := 4 * l.Radius * l.Radius

	for i := 0; i < 2000; i++ {
		offset := float64(rng.Intn(3)) * l.RowHeight
		x := l.Left + rng.Float64()*(l.Right-l.Left)
		y := l.Top + rng.Float64()*(l.LossLine-l.Top)

		nearby := l.NearbyCells(x, y, offset)
		set := make(map[Coord]bool, len(nearby))
		for _, c := range nearby {
			require.True(t, c.Row >= 0 && c.Row < l.Rows && c.Col >= 0 && c.Col < l.Cols)
			set[c] = true
		}
		for r := 0; r < l.Rows; r++ {
			for c := 0; c < l.Cols; c++ {
				if l.DistSq(At(r, c), x, y, offset) <= reach {
					require.True(t, set[At(r, c)], "cell %v within reach of (%.1f,%.1f) missing", At(r, c), x, y)
				}
			}
		}
	}
}

func TestNearbyCellsOutsideBoard(t *testing.T) {
	l := NewLayout(testConfig(5, 5))
	assert.Empty(t, l.NearbyCells(l.ShooterX, l.ShooterY+10*l.RowHeight, 0))
}
