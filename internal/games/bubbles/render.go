package bubbles

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/bubble-arcade/internal/core"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/core"
)

const (
	hudHeight    = 2
	footerHeight = 1
	aimDots      = 6

	glyphPiece = '●'
	glyphBonus = '★'
	glyphAim   = '·'
)

// view maps playfield pixels to terminal cells. One column covers one
// radius horizontally and one line covers one row height vertically, so
// odd rows land half a piece to the right.
type view struct {
	box   platformcore.Rect // Playfield border
	field platformcore.Rect // Board rows plus the loss line and the shooter line
}

// fitView centers the playfield on a w×h screen. The second result reports
// a screen too small to hold it.
func fitView(cfg core.Config, w, h int) (view, bool) {
	boxW, boxH := 2*cfg.Cols+3, cfg.Rows+4
	area := platformcore.NewRect(0, hudHeight, w, h-hudHeight-footerHeight)
	if !area.Fits(boxW, boxH) {
		return view{}, true
	}
	box := area.CenterIn(boxW, boxH)
	return view{box: box, field: box.Inset(1)}, false
}

func (v view) originX() int { return v.field.X }
func (v view) originY() int { return v.field.Y }

// cellOf returns the screen cell containing a playfield point.
func (v view) cellOf(l core.Layout, x, y float64) (int, int) {
	cx := v.originX() + int(math.Floor((x-l.Left)/l.Radius))
	cy := v.originY() + int(math.Round((y-l.Top-l.Radius)/l.RowHeight))
	return cx, cy
}

// toPlayfield returns the playfield point at the center of a screen cell.
func (v view) toPlayfield(l core.Layout, cx, cy int) (float64, float64) {
	x := l.Left + (float64(cx-v.originX())+0.5)*l.Radius
	y := l.Top + l.Radius + float64(cy-v.originY())*l.RowHeight
	return x, y
}

func (v view) inside(cx, cy int) bool {
	return v.field.Contains(cx, cy)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	f := g.frame
	g.renderField(dst, f)
	g.renderPieces(dst, f)
	if f.Phase == core.PhaseReady {
		g.renderAim(dst, f)
	}
	g.renderShooter(dst, f)
	g.renderFooter(dst, f)

	switch f.Phase {
	case core.PhaseLoading:
		renderOverlay(dst, "Loading...", "Preparing sounds")
	case core.PhasePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	case core.PhaseClear:
		renderOverlay(dst, "CLEAR!", fmt.Sprintf("Score %d | R to play again", f.Score))
	case core.PhaseOver:
		renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d | R to retry", f.Score))
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	f := g.frame
	hud := fmt.Sprintf(" Bubbles | Score: %d | Shots: %d | Drop in: %d", f.Score, f.Shots, f.ShotsUntilDrop)
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

// renderField draws the border, the lowered ceiling and the loss line.
func (g *Game) renderField(dst *platformcore.Screen, f core.Frame) {
	v := g.view
	dst.DrawBox(v.box)

	drops := int(math.Round(f.CeilingOffset / f.Layout.RowHeight))
	if drops > f.Layout.Rows {
		drops = f.Layout.Rows
	}
	dst.FillRect(platformcore.NewRect(v.originX(), v.originY(), v.field.W, drops), '░', platformcore.ColorGray)
	dst.DrawHLine(v.originX(), v.originY()+f.Layout.Rows, v.field.W, '┄', platformcore.ColorRed)
}

// renderPieces draws the board and the projectile.
func (g *Game) renderPieces(dst *platformcore.Screen, f core.Frame) {
	for _, c := range f.Board.OccupiedCoords() {
		p, _ := f.Board.At(c)
		x, y := f.Layout.CellCenterOf(c, f.CeilingOffset)
		g.drawPiece(dst, f, x, y, p.Type)
	}
	if f.Projectile != nil {
		g.drawPiece(dst, f, f.Projectile.X, f.Projectile.Y, f.Projectile.Type)
	}
}

func (g *Game) drawPiece(dst *platformcore.Screen, f core.Frame, x, y float64, t core.TypeID) {
	cx, cy := g.view.cellOf(f.Layout, x, y)
	if !g.view.inside(cx, cy) {
		return
	}
	r, c := pieceGlyph(f.Catalog, t)
	dst.SetWithColor(cx, cy, r, c)
}

// renderAim draws the guide dots along the aim, reflecting off the walls.
func (g *Game) renderAim(dst *platformcore.Screen, f core.Frame) {
	l := f.Layout
	step := 2 * l.Radius
	dx := math.Cos(f.Shooter.Angle) * step
	dy := -math.Sin(f.Shooter.Angle) * step
	x, y := f.Shooter.X, f.Shooter.Y
	minX, maxX := l.Left+l.Radius, l.Right-l.Radius
	ceiling := l.Ceiling(f.CeilingOffset) + l.Radius

	for i := 0; i < aimDots; i++ {
		x += dx
		y += dy
		if x < minX {
			x = 2*minX - x
			dx = -dx
		} else if x > maxX {
			x = 2*maxX - x
			dx = -dx
		}
		if y < ceiling {
			return
		}
		cx, cy := g.view.cellOf(l, x, y)
		if !g.view.inside(cx, cy) {
			return
		}
		if dst.Get(cx, cy) == ' ' {
			dst.SetWithColor(cx, cy, glyphAim, platformcore.ColorBrightWhite)
		}
	}
}

// renderShooter draws the current piece at the launcher.
func (g *Game) renderShooter(dst *platformcore.Screen, f core.Frame) {
	cx, cy := g.view.cellOf(f.Layout, f.Shooter.X, f.Shooter.Y)
	if f.Phase == core.PhaseFiring {
		dst.SetWithColor(cx, cy, '▲', platformcore.ColorGray)
		return
	}
	r, c := pieceGlyph(f.Catalog, f.Queue.Current)
	dst.SetWithColor(cx, cy, r, c)
}

// renderFooter draws the queue preview below the playfield.
func (g *Game) renderFooter(dst *platformcore.Screen, f core.Frame) {
	v := g.view
	y := v.box.Bottom()
	x := v.box.X
	dst.DrawTextWithColor(x, y, "Now ", platformcore.ColorGray)
	r, c := pieceGlyph(f.Catalog, f.Queue.Current)
	dst.SetWithColor(x+4, y, r, c)
	dst.DrawTextWithColor(x+6, y, "Next ", platformcore.ColorGray)
	r, c = pieceGlyph(f.Catalog, f.Queue.Next)
	dst.SetWithColor(x+11, y, r, c)
}

// pieceGlyph returns the rune and color for a piece type.
func pieceGlyph(cat core.Catalog, t core.TypeID) (rune, platformcore.Color) {
	pt, ok := cat.Lookup(t)
	if !ok {
		return glyphPiece, platformcore.Color(core.FallbackColor)
	}
	if pt.Bonus {
		return glyphBonus, platformcore.Color(pt.Color)
	}
	return glyphPiece, platformcore.Color(pt.Color)
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len([]rune(line1))
	if n := len([]rune(line2)); n > maxLen {
		maxLen = n
	}
	box := platformcore.NewRect(0, 0, w, h).CenterIn(maxLen+4, 5)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2)
}
