package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-arcade/internal/platform/palette"
)

var (
	colorBackground = color.RGBA{0x12, 0x14, 0x1c, 0xff}
	colorCeiling    = color.RGBA{0x3a, 0x3f, 0x52, 0xff}
	colorWall       = color.RGBA{0x6b, 0x72, 0x8e, 0xff}
	colorLossLine   = color.RGBA{0xd9, 0x48, 0x48, 0xff}
	colorAim        = color.RGBA{0xff, 0xff, 0xff, 0x90}
	colorText       = color.RGBA{0xe8, 0xe8, 0xf0, 0xff}
	colorShade      = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

var face font.Face = basicfont.Face7x13

// Draw renders the latest frame.
func (w *Window) Draw(screen *ebiten.Image) {
	f := w.frame
	l := f.Layout
	screen.Fill(colorBackground)

	// Lowered ceiling
	ceiling := float32(l.Ceiling(f.CeilingOffset))
	vector.DrawFilledRect(screen, float32(l.Left), 0, float32(l.Right-l.Left), ceiling, colorCeiling, false)

	// Walls
	vector.StrokeLine(screen, float32(l.Left), 0, float32(l.Left), float32(l.Height), 2, colorWall, true)
	vector.StrokeLine(screen, float32(l.Right), 0, float32(l.Right), float32(l.Height), 2, colorWall, true)

	drawDashed(screen, l.Left, l.Right, l.LossLine, colorLossLine)

	for _, c := range f.Board.OccupiedCoords() {
		p, _ := f.Board.At(c)
		x, y := l.CellCenterOf(c, f.CeilingOffset)
		drawPiece(screen, f.Catalog, p.Type, x, y, l.Radius)
	}

	if f.Phase == core.PhaseReady {
		drawAim(screen, f)
	}
	if f.Projectile != nil {
		drawPiece(screen, f.Catalog, f.Projectile.Type, f.Projectile.X, f.Projectile.Y, l.Radius)
	} else {
		drawPiece(screen, f.Catalog, f.Queue.Current, f.Shooter.X, f.Shooter.Y, l.Radius)
	}
	drawPiece(screen, f.Catalog, f.Queue.Next, l.Right-l.Radius, l.ShooterY+l.Radius/2, l.Radius*0.6)

	hud := fmt.Sprintf("Score %d  Drop in %d", f.Score, f.ShotsUntilDrop)
	text.Draw(screen, hud, face, int(l.Left)+4, int(l.Height)-6, colorText)

	switch f.Phase {
	case core.PhaseLoading:
		drawBanner(screen, l, "Loading sounds...", "")
	case core.PhasePaused:
		drawBanner(screen, l, "PAUSED", "P to continue")
	case core.PhaseClear:
		drawBanner(screen, l, "CLEAR!", fmt.Sprintf("Score %d - R to play again", f.Score))
	case core.PhaseOver:
		drawBanner(screen, l, "GAME OVER", fmt.Sprintf("Score %d - R to retry", f.Score))
	}
}

// drawPiece draws one piece as a filled circle with a lighter rim.
// Bonus pieces get a bright core.
func drawPiece(dst *ebiten.Image, cat core.Catalog, t core.TypeID, x, y, r float64) {
	col := core.FallbackColor
	bonus := false
	if pt, ok := cat.Lookup(t); ok {
		col = pt.Color
		bonus = pt.Bonus
	}
	cx, cy, cr := float32(x), float32(y), float32(r)
	vector.DrawFilledCircle(dst, cx, cy, cr-1, palette.RGBA(col), true)
	vector.StrokeCircle(dst, cx, cy, cr-1.5, 1.5, palette.Highlight(col, 0.45), true)
	if bonus {
		vector.DrawFilledCircle(dst, cx, cy, cr/3, palette.Highlight(col, 0.85), true)
	}
}

// drawAim draws a guide from the shooter along the aim, reflecting off the
// walls once.
func drawAim(dst *ebiten.Image, f core.Frame) {
	l := f.Layout
	minX, maxX := l.Left+l.Radius, l.Right-l.Radius
	x, y := f.Shooter.X, f.Shooter.Y
	dx, dy := math.Cos(f.Shooter.Angle), -math.Sin(f.Shooter.Angle)
	remaining := 6 * l.Radius
	top := l.Ceiling(f.CeilingOffset) + l.Radius

	for bounce := 0; bounce < 2 && remaining > 0; bounce++ {
		dist := remaining
		if dx < 0 {
			dist = math.Min(dist, (x-minX)/-dx)
		} else if dx > 0 {
			dist = math.Min(dist, (maxX-x)/dx)
		}
		if dy < 0 {
			dist = math.Min(dist, (y-top)/-dy)
		}
		nx, ny := x+dx*dist, y+dy*dist
		vector.StrokeLine(dst, float32(x), float32(y), float32(nx), float32(ny), 1, colorAim, true)
		x, y = nx, ny
		remaining -= dist
		dx = -dx
		if y <= top {
			return
		}
	}
}

func drawDashed(dst *ebiten.Image, x0, x1, y float64, clr color.Color) {
	const dash, gap = 6.0, 4.0
	for x := x0; x < x1; x += dash + gap {
		end := math.Min(x+dash, x1)
		vector.StrokeLine(dst, float32(x), float32(y), float32(end), float32(y), 1, clr, false)
	}
}

// drawBanner shades the playfield and centers one or two lines of text.
func drawBanner(dst *ebiten.Image, l core.Layout, title, sub string) {
	vector.DrawFilledRect(dst, 0, 0, float32(l.Width), float32(l.Height), colorShade, false)
	cy := int(l.Height / 2)
	drawCentered(dst, l, title, cy)
	if sub != "" {
		drawCentered(dst, l, sub, cy+18)
	}
}

func drawCentered(dst *ebiten.Image, l core.Layout, s string, y int) {
	width := font.MeasureString(face, s).Ceil()
	text.Draw(dst, s, face, (int(l.Width)-width)/2, y, colorText)
}
