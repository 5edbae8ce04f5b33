// Package geom holds the pure coordinate-space conversions between screen
// pixels and canvas-logical units under a pan/zoom viewport transform.
package geom

import "pinboard-cli/internal/board"

type Point struct {
	X float64
	Y float64
}

type Size struct {
	Width  float64
	Height float64
}

// Rect is a screen-space rectangle normalized so Min <= Max on both axes.
type Rect struct {
	Min Point
	Max Point
}

func RectFromPoints(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ScreenDeltaToCanvas converts a pointer movement in screen pixels into
// canvas-logical units. Drag and resize deltas must pass through this;
// panning deliberately does not (pan is 1:1 with screen pixels at any
// zoom level).
func ScreenDeltaToCanvas(dxScreen, dyScreen, zoom float64) (dx, dy float64) {
	return dxScreen / zoom, dyScreen / zoom
}

// ScreenToCanvas converts an absolute screen point to canvas space.
// origin is the canvas element's top-left corner in screen space.
func ScreenToCanvas(screen Point, vp board.Viewport, origin Point) Point {
	return Point{
		X: (screen.X-origin.X)/vp.Zoom - vp.X,
		Y: (screen.Y-origin.Y)/vp.Zoom - vp.Y,
	}
}

// CanvasToScreen is the exact inverse of ScreenToCanvas, used for
// marquee hit-testing. The pan offset is applied inside the zoom factor
// ((canvas+vp)*zoom, not canvas*zoom+vp) so the two projections
// round-trip to identity at every zoom level.
func CanvasToScreen(canvas Point, vp board.Viewport, origin Point) Point {
	return Point{
		X: (canvas.X+vp.X)*vp.Zoom + origin.X,
		Y: (canvas.Y+vp.Y)*vp.Zoom + origin.Y,
	}
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
