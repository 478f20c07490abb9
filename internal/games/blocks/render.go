package blocks

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// Glyphs. Each grid cell is two terminal columns wide.
const (
	cellBlock  = '█'
	cellGhost  = '░'
	cellPower  = '▓'
	cellDot    = '·'
	sparkGlyph = '*'

	sidebarW = 20
	hudH     = 1
)

// palette is a theme resolved to screen colors.
type palette struct {
	pieces map[engine.Kind]core.Color
	border core.Color
	ghost  core.Color
	text   core.Color
	accent core.Color
}

func colorOr(name string, fallback core.Color) core.Color {
	if c, ok := core.ColorByName(name); ok {
		return c
	}
	return fallback
}

func (g *Game) palette() palette {
	th := g.cfg.Themes[g.session.Theme()]
	p := palette{
		pieces: make(map[engine.Kind]core.Color, len(engine.AllKinds)),
		border: colorOr(th.Border, core.ColorGray),
		ghost:  colorOr(th.Ghost, core.ColorDarkGray),
		text:   colorOr(th.Text, core.ColorWhite),
		accent: colorOr(th.Accent, core.ColorBrightYellow),
	}
	for i, k := range engine.AllKinds {
		p.pieces[k] = colorOr(th.Pieces[k.String()], core.Cycle(i))
	}
	return p
}

// MinSize returns the smallest screen that fits the board and sidebar.
func (g *Game) MinSize() (w, h int) {
	return g.cfg.Grid.Cols*2 + 2 + 1 + sidebarW, g.cfg.Grid.Rows + 2 + hudH
}

// Render draws the HUD, board and sidebar.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	pal := g.palette()

	minW, minH := g.MinSize()
	if dst.Width() < minW || dst.Height() < minH {
		g.renderTooSmall(dst, minW, minH)
		return
	}

	boardW := g.cfg.Grid.Cols*2 + 2
	boardH := g.cfg.Grid.Rows + 2
	x0 := max(0, (dst.Width()-boardW-1-sidebarW)/2)
	y0 := hudH + max(0, (dst.Height()-hudH-boardH)/2)
	board := core.NewRect(x0, y0, boardW, boardH)

	g.renderHUD(dst, pal)
	dst.DrawBoxColored(board, pal.border)
	g.renderField(dst, board, pal)
	g.renderSidebar(dst, core.NewRect(board.Right()+1, y0, sidebarW, boardH), pal)

	switch {
	case g.session.Finished():
		g.renderOverlay(dst, board, pal, "SPRINT CLEAR",
			fmt.Sprintf("Time %s", formatTime(g.session.GameTime())), "R restart  B menu")
	case g.session.GameOver():
		g.renderOverlay(dst, board, pal, "GAME OVER",
			fmt.Sprintf("Score %d", g.session.Score().Score), "R restart  B menu")
	case g.session.Paused():
		g.renderOverlay(dst, board, pal, "PAUSED", "P to resume", "B menu  Q quit")
	}
}

func (g *Game) renderHUD(dst *core.Screen, pal palette) {
	sc := g.session.Score()
	hud := fmt.Sprintf(" %s  Score: %d  Lines: %d  Level: %d", g.Title(), sc.Score, sc.Lines, sc.Level)
	if g.mode == ModeSprint && g.cfg.Game.SprintLines > 0 {
		hud += fmt.Sprintf("  Left: %d", max(0, g.cfg.Game.SprintLines-sc.Lines))
	}
	dst.DrawTextColored(0, 0, hud, pal.text)
}

// cellColor returns the color of a locked or falling cell, honouring the
// cosmetic effects.
func (g *Game) cellColor(pal palette, k engine.Kind, row, col int) core.Color {
	switch {
	case g.session.PowerActive(engine.PowerMatrix):
		return core.ColorBrightGreen
	case g.session.PowerActive(engine.PowerRainbow):
		return core.Cycle(row + col + int(g.tick/4))
	default:
		return pal.pieces[k]
	}
}

// matrixRune flickers locked cells between binary digits while MATRIX runs.
func (g *Game) matrixRune(row, col int) rune {
	if (row*7+col*3+int(g.tick/6))%2 == 0 {
		return '0'
	}
	return '1'
}

func (g *Game) renderField(dst *core.Screen, board core.Rect, pal palette) {
	grid := g.session.Grid()
	inner := board.Inset(1)
	settings := g.session.Settings()
	matrix := g.session.PowerActive(engine.PowerMatrix)

	put := func(row, col int, r rune, c core.Color) {
		if row < 0 || row >= grid.Rows() || col < 0 || col >= grid.Cols() {
			return
		}
		x := inner.X + col*2
		y := inner.Y + row
		dst.SetColored(x, y, r, c)
		dst.SetColored(x+1, y, r, c)
	}

	for row := range grid.Rows() {
		for col := range grid.Cols() {
			k := grid.Cell(row, col)
			switch {
			case k != engine.KindNone && matrix:
				put(row, col, g.matrixRune(row, col), g.cellColor(pal, k, row, col))
			case k != engine.KindNone:
				put(row, col, cellBlock, g.cellColor(pal, k, row, col))
			case settings.ShowGrid:
				dst.SetColored(inner.X+col*2+1, inner.Y+row, cellDot, pal.ghost)
			}
		}
	}

	if g.session.Done() {
		return
	}

	cur := g.session.Current()
	if g.session.ShowGhost() {
		for _, c := range g.session.Ghost().Cells() {
			put(c[0], c[1], cellGhost, pal.ghost)
		}
	}

	glyph := cellBlock
	if cur.PowerUp != engine.PowerNone {
		glyph = cellPower
	}
	for _, c := range cur.Cells() {
		color := g.cellColor(pal, cur.Kind, c[0], c[1])
		if cur.PowerUp != engine.PowerNone && (g.tick/8)%2 == 0 {
			color = pal.accent
		}
		put(c[0], c[1], glyph, color)
	}

	for _, p := range g.session.Particles() {
		row := int(math.Round(p.Row))
		col := int(math.Round(p.Col))
		if row < 0 || row >= grid.Rows() || col < 0 || col >= grid.Cols() {
			continue
		}
		dst.SetColored(inner.X+col*2, inner.Y+row, sparkGlyph, pal.pieces[p.Kind])
	}
}

// renderMini draws kind's spawn shape at (x, y) using half-width cells.
func (g *Game) renderMini(dst *core.Screen, x, y int, kind engine.Kind, c core.Color) {
	for r, row := range engine.ShapeOf(kind) {
		for col, filled := range row {
			if filled {
				dst.SetColored(x+col*2, y+r, cellBlock, c)
				dst.SetColored(x+col*2+1, y+r, cellBlock, c)
			}
		}
	}
}

func (g *Game) renderSidebar(dst *core.Screen, area core.Rect, pal palette) {
	y := area.Y

	dst.DrawTextColored(area.X, y, "NEXT", pal.accent)
	y++
	for _, k := range g.session.Preview() {
		g.renderMini(dst, area.X+1, y, k, pal.pieces[k])
		y += len(engine.ShapeOf(k)) + 1
	}

	hold := "HOLD"
	if !g.session.CanHold() {
		hold = "HOLD (used)"
	}
	dst.DrawTextColored(area.X, y, hold, pal.accent)
	y++
	if k := g.session.Held(); k != engine.KindNone {
		c := pal.pieces[k]
		if !g.session.CanHold() {
			c = pal.ghost
		}
		g.renderMini(dst, area.X+1, y, k, c)
	}
	y += 3

	ch := g.session.Character()
	dst.DrawTextColored(area.X, y, ch.Name, pal.text)
	y++
	st := g.session.Stats()
	lines := []string{
		fmt.Sprintf("Time  %s", formatTime(g.session.GameTime())),
		fmt.Sprintf("PPS   %.2f", st.PiecesPerSecond()),
		fmt.Sprintf("Combo %d", g.session.Score().Combo),
	}
	for _, l := range lines {
		if y >= area.Bottom() {
			return
		}
		dst.DrawTextColored(area.X, y, l, pal.text)
		y++
	}

	for _, p := range g.session.PowerUps() {
		if y >= area.Bottom() {
			return
		}
		dst.DrawTextColored(area.X, y, fmt.Sprintf("%-11s %2ds", p.Kind, int(p.Remaining.Seconds()+0.999)), pal.accent)
		y++
	}

	for _, msg := range g.toasts.current() {
		if y >= area.Bottom() {
			return
		}
		if len(msg) > area.W {
			msg = msg[:area.W]
		}
		dst.DrawTextColored(area.X, y, msg, pal.accent)
		y++
	}
}

func (g *Game) renderOverlay(dst *core.Screen, board core.Rect, pal palette, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.NewRect(board.X+(board.W-w-4)/2, board.Y+(board.H-len(lines)-2)/2, w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, pal.accent)
	for i, l := range lines {
		c := pal.text
		if i == 0 {
			c = pal.accent
		}
		dst.DrawTextColored(box.X+2+(w-len(l))/2, box.Y+1+i, l, c)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen, minW, minH int) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColored(mid-1, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d, have %dx%d", minW, minH, dst.Width(), dst.Height()))
}

func formatTime(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
