package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/geom"
	"pinboard-cli/internal/interact"
)

// One terminal cell stands in for a block of canvas pixels. The ratio
// keeps pins roughly card-shaped despite cells being taller than wide.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

func cellToScreen(cx, cy int) (float64, float64) {
	return float64(cx) * cellWidth, float64(cy) * cellHeight
}

type cell struct {
	ch    rune
	style lipgloss.Style
}

type cellGrid struct {
	w, h  int
	cells []cell
}

func newCellGrid(w, h int) *cellGrid {
	g := &cellGrid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].ch = ' '
	}
	return g
}

func (g *cellGrid) set(x, y int, ch rune, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = cell{ch: ch, style: style}
}

func (g *cellGrid) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range s {
		g.set(x+i, y, r, style)
	}
}

func (g *cellGrid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			b.WriteString(c.style.Render(string(c.ch)))
		}
		if y < g.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// pinCellRect projects a pin through the viewport onto the cell grid.
func pinCellRect(vp board.Viewport, p board.Pin) (x, y, w, h int) {
	tl := geom.CanvasToScreen(geom.Point{X: p.X, Y: p.Y}, vp, geom.Point{})
	br := geom.CanvasToScreen(geom.Point{X: p.X + p.Width, Y: p.Y + p.Height}, vp, geom.Point{})
	x = int(tl.X / cellWidth)
	y = int(tl.Y / cellHeight)
	w = int((br.X - tl.X) / cellWidth)
	h = int((br.Y - tl.Y) / cellHeight)
	if w < 4 {
		w = 4
	}
	if h < 3 {
		h = 3
	}
	return x, y, w, h
}

func drawBoard(g *cellGrid, state board.State, sel *interact.Selection, in interact.Interaction, pendingWire string) {
	for _, w := range state.Wires {
		drawWire(g, state, w)
	}

	pins := append([]board.Pin(nil), state.Pins...)
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].ZIndex < pins[j].ZIndex })
	for _, p := range pins {
		drawPin(g, state.Viewport, p, sel, pendingWire == p.ID)
	}

	if in.Mode == interact.ModeMarquee {
		drawMarquee(g, in)
	}
}

func drawWire(g *cellGrid, state board.State, w board.Wire) {
	from := state.FindPin(w.FromPinID)
	to := state.FindPin(w.ToPinID)
	if from == nil || to == nil {
		return
	}
	fx, fy, fw, fh := pinCellRect(state.Viewport, *from)
	tx, ty, tw, th := pinCellRect(state.Viewport, *to)
	drawLine(g, fx+fw/2, fy+fh/2, tx+tw/2, ty+th/2, wireStyle)
}

// drawLine is a plain Bresenham walk in cell space.
func drawLine(g *cellGrid, x0, y0, x1, y1 int, style lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.set(x0, y0, '·', style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func drawPin(g *cellGrid, vp board.Viewport, p board.Pin, sel *interact.Selection, wirePending bool) {
	x, y, w, h := pinCellRect(vp, p)

	style := pinBorderStyle(p.Color)
	switch {
	case wirePending:
		style = wireStyle
	case sel.Focused() == p.ID || sel.InMulti(p.ID):
		style = selectedStyle
	}

	// Frame.
	for cx := x + 1; cx < x+w-1; cx++ {
		g.set(cx, y, '─', style)
		g.set(cx, y+h-1, '─', style)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		g.set(x, cy, '│', style)
		g.set(x+w-1, cy, '│', style)
	}
	g.set(x, y, '╭', style)
	g.set(x+w-1, y, '╮', style)
	g.set(x, y+h-1, '╰', style)
	// Bottom-right doubles as the resize handle.
	g.set(x+w-1, y+h-1, '◢', style)

	// Interior.
	for cy := y + 1; cy < y+h-1; cy++ {
		for cx := x + 1; cx < x+w-1; cx++ {
			g.set(cx, cy, ' ', interiorStyle)
		}
	}

	title := p.Title
	if title == "" {
		title = string(p.Kind)
	}
	if p.Locked {
		title = "⊘ " + title
	}
	g.text(x+1, y, clip(title, w-3), titleStyle)

	inner := w - 2
	row := y + 1
	for _, line := range bodyPreview(p) {
		if row >= y+h-1 {
			break
		}
		g.text(x+1, row, clip(line, inner), bodyStyle)
		row++
	}
}

func bodyPreview(p board.Pin) []string {
	switch p.Kind {
	case board.KindImage:
		if p.ImageURL != "" {
			return []string{"▨ " + p.ImageURL}
		}
		return []string{"▨ (no image)"}
	case board.KindLink:
		if p.LinkMetadata != nil && p.LinkMetadata.URL != "" {
			return []string{"⇗ " + p.LinkMetadata.URL}
		}
		return []string{"⇗ " + p.Content}
	case board.KindAttachment:
		var lines []string
		for _, a := range p.Attachments {
			lines = append(lines, "◆ "+a.Name)
		}
		if len(lines) == 0 {
			lines = []string{"◆ (empty)"}
		}
		return lines
	default:
		return strings.Split(p.Content, "\n")
	}
}

func drawMarquee(g *cellGrid, in interact.Interaction) {
	r := geom.RectFromPoints(in.Start, in.End)
	x0 := int(r.Min.X / cellWidth)
	y0 := int(r.Min.Y / cellHeight)
	x1 := int(r.Max.X / cellWidth)
	y1 := int(r.Max.Y / cellHeight)
	for cx := x0; cx <= x1; cx++ {
		g.set(cx, y0, '┄', marqueeStyle)
		g.set(cx, y1, '┄', marqueeStyle)
	}
	for cy := y0; cy <= y1; cy++ {
		g.set(x0, cy, '┆', marqueeStyle)
		g.set(x1, cy, '┆', marqueeStyle)
	}
}

func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// hitPin returns the topmost pin containing the cell, and whether the
// cell is its resize handle.
func hitPin(state board.State, cx, cy int) (pinID string, onResize bool) {
	best := -1
	var bestZ int64
	for i, p := range state.Pins {
		x, y, w, h := pinCellRect(state.Viewport, p)
		if cx < x || cy < y || cx >= x+w || cy >= y+h {
			continue
		}
		if best == -1 || p.ZIndex >= bestZ {
			best = i
			bestZ = p.ZIndex
		}
	}
	if best == -1 {
		return "", false
	}
	p := state.Pins[best]
	x, y, w, h := pinCellRect(state.Viewport, p)
	return p.ID, cx == x+w-1 && cy == y+h-1
}
