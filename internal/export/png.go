// Package export renders a board state to a PNG image.
package export

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"pinboard-cli/internal/board"
)

const (
	exportPadding  = 48.0
	headerHeight   = 30.0
	cornerRadius   = 10.0
	titleFontSize  = 15.0
	bodyFontSize   = 12.0
	bodyLineHeight = 17.0
)

var canvasBackground = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}

// PNG writes the whole board, framed to its pins plus padding. Viewport
// pan and zoom do not affect the output.
func PNG(state board.State, filename string) error {
	state = board.Sanitize(state)
	if len(state.Pins) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range state.Pins {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X+p.Width)
		maxY = math.Max(maxY, p.Y+p.Height)
	}
	minX -= exportPadding
	minY -= exportPadding
	maxX += exportPadding
	maxY += exportPadding

	dc := gg.NewContext(int(math.Ceil(maxX-minX)), int(math.Ceil(maxY-minY)))
	dc.SetColor(canvasBackground)
	dc.Clear()

	titleFace, err := newFace(gobold.TTF, titleFontSize)
	if err != nil {
		return err
	}
	bodyFace, err := newFace(goregular.TTF, bodyFontSize)
	if err != nil {
		return err
	}

	// Wires go down first so pins sit on top of them.
	for _, w := range state.Wires {
		drawWire(dc, state, w, minX, minY)
	}

	// Paint in z order, lowest first.
	pins := append([]board.Pin(nil), state.Pins...)
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].ZIndex < pins[j].ZIndex })
	for _, p := range pins {
		drawPin(dc, p, minX, minY, titleFace, bodyFace)
	}

	return dc.SavePNG(filename)
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawWire(dc *gg.Context, state board.State, w board.Wire, minX, minY float64) {
	from := state.FindPin(w.FromPinID)
	to := state.FindPin(w.ToPinID)
	if from == nil || to == nil {
		return
	}
	dc.SetColor(parseHex(w.Color, board.DefaultWireColor))
	dc.SetLineWidth(2.0)
	dc.DrawLine(
		from.X+from.Width/2-minX, from.Y+from.Height/2-minY,
		to.X+to.Width/2-minX, to.Y+to.Height/2-minY,
	)
	dc.Stroke()
}

func drawPin(dc *gg.Context, p board.Pin, minX, minY float64, titleFace, bodyFace font.Face) {
	x := p.X - minX
	y := p.Y - minY

	// Card body.
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(x, y, p.Width, p.Height, cornerRadius)
	dc.Fill()

	// Header bar in the pin color.
	accent := parseHex(p.Color, board.DefaultPinColor)
	dc.SetColor(accent)
	dc.DrawRoundedRectangle(x, y, p.Width, headerHeight, cornerRadius)
	dc.Fill()
	dc.DrawRectangle(x, y+headerHeight-cornerRadius, p.Width, cornerRadius)
	dc.Fill()

	dc.SetColor(accent)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, p.Width, p.Height, cornerRadius)
	dc.Stroke()

	// Title on the header, body text below.
	title := p.Title
	if title == "" {
		title = string(p.Kind)
	}
	dc.SetFontFace(titleFace)
	dc.SetColor(color.White)
	dc.DrawString(truncate(dc, title, p.Width-16), x+8, y+headerHeight-10)

	dc.SetFontFace(bodyFace)
	dc.SetColor(color.RGBA{R: 0x33, G: 0x3a, B: 0x45, A: 0xff})
	textY := y + headerHeight + bodyLineHeight
	maxLines := int((p.Height - headerHeight - 8) / bodyLineHeight)
	for i, line := range bodyLines(p) {
		if i >= maxLines {
			break
		}
		dc.DrawString(truncate(dc, line, p.Width-16), x+8, textY+float64(i)*bodyLineHeight)
	}
}

func bodyLines(p board.Pin) []string {
	switch p.Kind {
	case board.KindImage:
		if p.ImageURL != "" {
			return []string{p.ImageURL}
		}
		return nil
	case board.KindLink:
		if p.LinkMetadata != nil && p.LinkMetadata.Title != "" {
			return []string{p.LinkMetadata.Title, p.Content}
		}
		return []string{p.Content}
	case board.KindAttachment:
		var lines []string
		for _, a := range p.Attachments {
			lines = append(lines, a.Name)
		}
		return lines
	default:
		return strings.Split(p.Content, "\n")
	}
}

func truncate(dc *gg.Context, s string, maxWidth float64) string {
	if w, _ := dc.MeasureString(s); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if w, _ := dc.MeasureString(string(runes) + "…"); w <= maxWidth {
			return string(runes) + "…"
		}
	}
	return ""
}

func parseHex(s, fallback string) color.Color {
	c, ok := hexColor(s)
	if ok {
		return c
	}
	if c, ok := hexColor(fallback); ok {
		return c
	}
	return color.Black
}

func hexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}
