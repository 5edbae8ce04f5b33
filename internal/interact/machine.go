// Package interact implements the pointer-driven interaction state
// machine: pan, drag, multi-drag, resize and marquee selection over the
// board, with one interaction active at a time.
package interact

import (
	"pinboard-cli/internal/board"
	"pinboard-cli/internal/geom"
	"pinboard-cli/internal/history"
	"pinboard-cli/internal/mutate"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModePan
	ModeDrag
	ModeMultiDrag
	ModeResize
	ModeMarquee
)

func (m Mode) String() string {
	switch m {
	case ModePan:
		return "pan"
	case ModeDrag:
		return "drag"
	case ModeMultiDrag:
		return "multi-drag"
	case ModeResize:
		return "resize"
	case ModeMarquee:
		return "marquee"
	default:
		return "idle"
	}
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Pointer is one pointer event as seen by the machine. X/Y are screen
// pixels. Clicks is the click count at pointer-down (2+ means
// double-click).
type Pointer struct {
	X, Y   float64
	Button Button
	Ctrl   bool
	Shift  bool
	Clicks int
}

func (p Pointer) point() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// Interaction is the tagged union describing what the pointer is doing.
// Start is the screen position at interaction start; the Origin fields
// hold the object's own-space values at that moment, so per-frame updates
// compute against a fixed anchor instead of accumulating increments
// (which would drift).
type Interaction struct {
	Mode Mode

	Start geom.Point

	// pan: viewport origin. drag: the pin's x/y.
	Origin geom.Point

	// drag, resize
	PinID string

	// multi-drag
	PinIDs  []string
	Origins map[string]geom.Point

	// resize
	OriginSize geom.Size

	// marquee: live end point, updated every move
	End geom.Point
}

// Machine turns pointer events into history mutations. Per-frame updates
// go through History.Mutate; pointer-up seals drag-like interactions with
// a single CommitSnapshot of the state captured at pointer-down, so one
// drag is one undo step.
type Machine struct {
	history   *history.History
	selection *Selection

	// canvasOrigin is the canvas element's top-left in screen space,
	// needed for absolute screen<->canvas conversions.
	canvasOrigin geom.Point

	cur   Interaction
	base  board.State
	moved bool
}

func NewMachine(h *history.History, sel *Selection) *Machine {
	return &Machine{history: h, selection: sel}
}

func (m *Machine) SetCanvasOrigin(p geom.Point) { m.canvasOrigin = p }

func (m *Machine) Interaction() Interaction { return m.cur }

func (m *Machine) Idle() bool { return m.cur.Mode == ModeIdle }

// CanvasPointerDown handles a pointer-down on empty canvas background.
// Ctrl+left starts a marquee; a left double-click creates a note at the
// click point; left, middle or shift+left starts a pan.
func (m *Machine) CanvasPointerDown(ev Pointer) {
	if m.cur.Mode != ModeIdle {
		return
	}
	switch {
	case ev.Ctrl && ev.Button == ButtonLeft:
		m.cur = Interaction{Mode: ModeMarquee, Start: ev.point(), End: ev.point()}
	case ev.Button == ButtonLeft && ev.Clicks >= 2:
		m.selection.Clear()
		vp := m.history.Present().Viewport
		at := geom.ScreenToCanvas(ev.point(), vp, m.canvasOrigin)
		m.history.Commit(mutate.AddPinAt(board.KindNote, at.X, at.Y))
	case ev.Button == ButtonLeft || ev.Button == ButtonMiddle || ev.Shift:
		vp := m.history.Present().Viewport
		m.cur = Interaction{
			Mode:   ModePan,
			Start:  ev.point(),
			Origin: geom.Point{X: vp.X, Y: vp.Y},
		}
	}
}

// PinPointerDown handles a pointer-down on a pin's header: multi-drag
// when the pin belongs to a 2+ multi-selection, single drag otherwise.
func (m *Machine) PinPointerDown(pinID string, ev Pointer) {
	if m.cur.Mode != ModeIdle {
		return
	}
	present := m.history.Present()

	if m.selection.InMulti(pinID) {
		pinIDs := m.selection.Multi()
		origins := make(map[string]geom.Point, len(pinIDs))
		for _, id := range pinIDs {
			if pin := present.FindPin(id); pin != nil {
				origins[id] = geom.Point{X: pin.X, Y: pin.Y}
			}
		}
		m.begin(present, Interaction{
			Mode:    ModeMultiDrag,
			Start:   ev.point(),
			PinIDs:  append([]string(nil), pinIDs...),
			Origins: origins,
		})
		return
	}

	pin := present.FindPin(pinID)
	if pin == nil {
		return
	}
	m.selection.Focus(pinID)
	m.begin(present, Interaction{
		Mode:   ModeDrag,
		Start:  ev.point(),
		PinID:  pinID,
		Origin: geom.Point{X: pin.X, Y: pin.Y},
	})
}

// ResizePointerDown handles a pointer-down on a pin's resize handle.
func (m *Machine) ResizePointerDown(pinID string, ev Pointer) {
	if m.cur.Mode != ModeIdle {
		return
	}
	present := m.history.Present()
	pin := present.FindPin(pinID)
	if pin == nil {
		return
	}
	m.selection.Focus(pinID)
	m.begin(present, Interaction{
		Mode:       ModeResize,
		Start:      ev.point(),
		PinID:      pinID,
		OriginSize: geom.Size{Width: pin.Width, Height: pin.Height},
	})
}

func (m *Machine) begin(present board.State, next Interaction) {
	m.base = present.Clone()
	m.moved = false
	m.cur = next
}

// PointerMove advances the active interaction by one frame. Listeners are
// expected to be window-level so a drag leaving the canvas keeps working.
func (m *Machine) PointerMove(ev Pointer) {
	cur := m.cur
	if cur.Mode == ModeIdle {
		return
	}
	zoom := m.history.Present().Viewport.Zoom

	switch cur.Mode {
	case ModePan:
		// Screen-delta on purpose: panning stays 1:1 with the pointer at
		// any zoom level.
		dx := ev.X - cur.Start.X
		dy := ev.Y - cur.Start.Y
		m.history.Mutate(mutate.PanTo(cur.Origin.X+dx, cur.Origin.Y+dy))

	case ModeDrag:
		dx, dy := geom.ScreenDeltaToCanvas(ev.X-cur.Start.X, ev.Y-cur.Start.Y, zoom)
		m.history.Mutate(func(draft *board.State) *board.State {
			pin := draft.FindPin(cur.PinID)
			if pin == nil || pin.Locked {
				return draft
			}
			x, y := cur.Origin.X+dx, cur.Origin.Y+dy
			if x != pin.X || y != pin.Y {
				m.moved = true
			}
			pin.X, pin.Y = x, y
			return draft
		})

	case ModeMultiDrag:
		dx, dy := geom.ScreenDeltaToCanvas(ev.X-cur.Start.X, ev.Y-cur.Start.Y, zoom)
		m.history.Mutate(func(draft *board.State) *board.State {
			// Each pin moves relative to its own captured origin, so the
			// set moves rigidly and a locked member is skipped without
			// disturbing the rest.
			for _, id := range cur.PinIDs {
				pin := draft.FindPin(id)
				origin, ok := cur.Origins[id]
				if pin == nil || pin.Locked || !ok {
					continue
				}
				x, y := origin.X+dx, origin.Y+dy
				if x != pin.X || y != pin.Y {
					m.moved = true
				}
				pin.X, pin.Y = x, y
			}
			return draft
		})

	case ModeResize:
		dx, dy := geom.ScreenDeltaToCanvas(ev.X-cur.Start.X, ev.Y-cur.Start.Y, zoom)
		m.history.Mutate(func(draft *board.State) *board.State {
			pin := draft.FindPin(cur.PinID)
			if pin == nil || pin.Locked {
				return draft
			}
			minW, minH := 160.0, 140.0
			if pin.NaturalWidth > 0 {
				minW = pin.NaturalWidth
			}
			if pin.NaturalHeight > 0 {
				minH = pin.NaturalHeight
			}
			w := max(minW, cur.OriginSize.Width+dx)
			h := max(minH, cur.OriginSize.Height+dy)
			if w != pin.Width || h != pin.Height {
				m.moved = true
			}
			pin.Width, pin.Height = w, h
			return draft
		})

	case ModeMarquee:
		m.cur.End = ev.point()
	}
}

// PointerUp ends the active interaction regardless of where the pointer
// is. Drag-like interactions seal their frames into one history entry;
// a marquee resolves into a selection; everything returns to idle.
func (m *Machine) PointerUp(ev Pointer) {
	cur := m.cur
	switch cur.Mode {
	case ModeDrag, ModeMultiDrag, ModeResize:
		if m.moved {
			m.history.CommitSnapshot(m.base)
		}
	case ModeMarquee:
		m.finishMarquee()
	}
	m.cur = Interaction{Mode: ModeIdle}
	m.moved = false
}

func (m *Machine) finishMarquee() {
	rect := geom.RectFromPoints(m.cur.Start, m.cur.End)
	present := m.history.Present()
	var hit []string
	for _, pin := range present.Pins {
		at := geom.CanvasToScreen(geom.Point{X: pin.X, Y: pin.Y}, present.Viewport, m.canvasOrigin)
		if rect.Contains(at) {
			hit = append(hit, pin.ID)
		}
	}
	if len(hit) > 0 {
		m.selection.SetMulti(hit)
	}
}
