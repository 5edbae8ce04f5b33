package interact

import (
	"testing"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/geom"
	"pinboard-cli/internal/history"
)

func notePin(id string, x, y float64) board.Pin {
	return board.Pin{ID: id, Kind: board.KindNote, Title: id, X: x, Y: y, Width: 240, Height: 180, ZIndex: 1, Color: board.DefaultPinColor}
}

func newTestMachine(initial board.State) (*Machine, *history.History, *Selection) {
	h := history.New(initial)
	sel := &Selection{}
	return NewMachine(h, sel), h, sel
}

func left(x, y float64) Pointer  { return Pointer{X: x, Y: y, Button: ButtonLeft, Clicks: 1} }
func leftUp(x, y float64) Pointer { return Pointer{X: x, Y: y, Button: ButtonLeft} }

func TestDragMovesPinAndIsOneUndoStep(t *testing.T) {
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 100, 100)},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.PinPointerDown("pin-a", left(500, 500))
	if m.Interaction().Mode != ModeDrag {
		t.Fatalf("expected drag mode, got %v", m.Interaction().Mode)
	}
	for i := 1.0; i <= 5; i++ {
		m.PointerMove(leftUp(500+i*10, 500+i*4))
	}
	m.PointerUp(leftUp(550, 520))

	p := h.Present().FindPin("pin-a")
	if p.X != 150 || p.Y != 120 {
		t.Fatalf("pin at (%g,%g), want (150,120)", p.X, p.Y)
	}
	if got := len(h.Past()); got != 1 {
		t.Fatalf("a drag must be one history entry, got %d", got)
	}

	h.Undo()
	p = h.Present().FindPin("pin-a")
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("undo should revert the whole drag, pin at (%g,%g)", p.X, p.Y)
	}
}

func TestDragDeltaScalesWithZoom(t *testing.T) {
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 0, 0)},
		Viewport: board.Viewport{Zoom: 2},
	})

	m.PinPointerDown("pin-a", left(0, 0))
	m.PointerMove(leftUp(100, 50))
	m.PointerUp(leftUp(100, 50))

	p := h.Present().FindPin("pin-a")
	if p.X != 50 || p.Y != 25 {
		t.Fatalf("screen delta (100,50) at zoom 2 should move (50,25), got (%g,%g)", p.X, p.Y)
	}
}

func TestClickWithoutMovementCommitsNothing(t *testing.T) {
	m, h, sel := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 0, 0)},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.PinPointerDown("pin-a", left(10, 10))
	m.PointerUp(leftUp(10, 10))

	if h.CanUndo() {
		t.Fatal("a motionless click must not create a history entry")
	}
	if sel.Focused() != "pin-a" {
		t.Fatalf("click should still focus the pin, got %q", sel.Focused())
	}
}

func TestDraggingLockedPinDoesNotMoveIt(t *testing.T) {
	locked := notePin("pin-a", 100, 100)
	locked.Locked = true
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{locked},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.PinPointerDown("pin-a", left(0, 0))
	m.PointerMove(leftUp(50, 50))
	m.PointerUp(leftUp(50, 50))

	p := h.Present().FindPin("pin-a")
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("locked pin moved to (%g,%g)", p.X, p.Y)
	}
	if h.CanUndo() {
		t.Fatal("a drag that changed nothing must not leave an undo entry")
	}
}

func TestResizingLockedPinCommitsNothing(t *testing.T) {
	locked := notePin("pin-a", 0, 0)
	locked.Locked = true
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{locked},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.ResizePointerDown("pin-a", left(240, 180))
	m.PointerMove(leftUp(300, 220))
	m.PointerUp(leftUp(300, 220))

	p := h.Present().FindPin("pin-a")
	if p.Width != 240 || p.Height != 180 {
		t.Fatalf("locked pin resized to %gx%g", p.Width, p.Height)
	}
	if h.CanUndo() {
		t.Fatal("resizing a locked pin must not leave an undo entry")
	}
}

func TestZeroDeltaMoveFramesCommitNothing(t *testing.T) {
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 100, 100)},
		Viewport: board.Viewport{Zoom: 1},
	})

	// Some terminals report a motion event at the press position.
	m.PinPointerDown("pin-a", left(10, 10))
	m.PointerMove(leftUp(10, 10))
	m.PointerUp(leftUp(10, 10))

	if h.CanUndo() {
		t.Fatal("zero-delta move frames must not produce an undo entry")
	}
}

func TestPanIsScreenSpaceAndUncommitted(t *testing.T) {
	m, h, _ := newTestMachine(board.State{
		Viewport: board.Viewport{X: 5, Y: 5, Zoom: 2},
	})

	m.CanvasPointerDown(left(100, 100))
	if m.Interaction().Mode != ModePan {
		t.Fatalf("expected pan mode, got %v", m.Interaction().Mode)
	}
	m.PointerMove(leftUp(160, 130))
	m.PointerUp(leftUp(160, 130))

	vp := h.Present().Viewport
	// Pan is 1:1 with the pointer regardless of zoom.
	if vp.X != 65 || vp.Y != 35 {
		t.Fatalf("viewport at (%g,%g), want (65,35)", vp.X, vp.Y)
	}
	if h.CanUndo() {
		t.Fatal("panning must not create history entries")
	}
}

func TestDoubleClickCreatesNoteAtCanvasPoint(t *testing.T) {
	m, h, sel := newTestMachine(board.State{
		Viewport: board.Viewport{X: 0, Y: 0, Zoom: 1},
	})
	sel.Focus("pin-ghost")

	ev := left(100, 100)
	ev.Clicks = 2
	m.CanvasPointerDown(ev)

	if got := len(h.Present().Pins); got != 1 {
		t.Fatalf("double-click should create a pin, got %d", got)
	}
	p := h.Present().Pins[0]
	if p.Kind != board.KindNote {
		t.Fatalf("created kind = %q, want note", p.Kind)
	}
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("pin at (%g,%g), want (100,100) at identity transform", p.X, p.Y)
	}
	if !h.CanUndo() {
		t.Fatal("creation is a committed action")
	}
	if sel.Focused() != "" {
		t.Fatal("double-click clears the selection first")
	}
}

func TestMultiDragIsRigid(t *testing.T) {
	m, h, sel := newTestMachine(board.State{
		Pins: []board.Pin{
			notePin("pin-a", 0, 0),
			notePin("pin-b", 300, 0),
			notePin("pin-c", 600, 0),
		},
		Viewport: board.Viewport{Zoom: 1},
	})
	sel.SetMulti([]string{"pin-a", "pin-b", "pin-c"})

	m.PinPointerDown("pin-b", left(0, 0))
	if m.Interaction().Mode != ModeMultiDrag {
		t.Fatalf("expected multi-drag, got %v", m.Interaction().Mode)
	}
	m.PointerMove(leftUp(40, 25))
	m.PointerUp(leftUp(40, 25))

	for i, id := range []string{"pin-a", "pin-b", "pin-c"} {
		p := h.Present().FindPin(id)
		wantX := float64(i)*300 + 40
		if p.X != wantX || p.Y != 25 {
			t.Fatalf("%s at (%g,%g), want (%g,25): pairwise distances must not change", id, p.X, p.Y, wantX)
		}
	}
	if got := len(h.Past()); got != 1 {
		t.Fatalf("multi-drag is one undo step, got %d", got)
	}
}

func TestMultiDragSkipsLockedMember(t *testing.T) {
	locked := notePin("pin-b", 300, 0)
	locked.Locked = true
	m, h, sel := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 0, 0), locked},
		Viewport: board.Viewport{Zoom: 1},
	})
	sel.SetMulti([]string{"pin-a", "pin-b"})

	m.PinPointerDown("pin-a", left(0, 0))
	m.PointerMove(leftUp(50, 0))
	m.PointerUp(leftUp(50, 0))

	if got := h.Present().FindPin("pin-a").X; got != 50 {
		t.Fatalf("pin-a should move, got x=%g", got)
	}
	if got := h.Present().FindPin("pin-b").X; got != 300 {
		t.Fatalf("locked pin-b should hold its position, got x=%g", got)
	}
}

func TestResizeHonorsFloors(t *testing.T) {
	img := notePin("pin-a", 0, 0)
	img.Kind = board.KindImage
	img.Width, img.Height = 400, 300
	img.NaturalWidth, img.NaturalHeight = 250, 180
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{img},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.ResizePointerDown("pin-a", left(0, 0))
	if m.Interaction().Mode != ModeResize {
		t.Fatalf("expected resize mode, got %v", m.Interaction().Mode)
	}
	// Shrink far past the natural size.
	m.PointerMove(leftUp(-350, -250))
	m.PointerUp(leftUp(-350, -250))

	p := h.Present().FindPin("pin-a")
	if p.Width != 250 || p.Height != 180 {
		t.Fatalf("resize floor should be the natural size, got %gx%g", p.Width, p.Height)
	}
}

func TestResizeGrowsByScreenDelta(t *testing.T) {
	m, h, _ := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 100, 100)},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.ResizePointerDown("pin-a", left(340, 280))
	m.PointerMove(leftUp(380, 300))
	m.PointerUp(leftUp(380, 300))

	p := h.Present().FindPin("pin-a")
	if p.Width != 280 || p.Height != 200 {
		t.Fatalf("resize +40,+20 from 240x180 should give 280x200, got %gx%g", p.Width, p.Height)
	}
}

func TestMarqueeSelectsProjectedPins(t *testing.T) {
	m, h, sel := newTestMachine(board.State{
		Pins: []board.Pin{
			notePin("pin-in1", 10, 10),
			notePin("pin-in2", 80, 40),
			notePin("pin-out", 1000, 1000),
		},
		Viewport: board.Viewport{X: 0, Y: 0, Zoom: 1},
	})

	ev := left(0, 0)
	ev.Ctrl = true
	m.CanvasPointerDown(ev)
	if m.Interaction().Mode != ModeMarquee {
		t.Fatalf("ctrl+left should start marquee, got %v", m.Interaction().Mode)
	}
	m.PointerMove(leftUp(200, 200))
	m.PointerUp(leftUp(200, 200))

	multi := sel.Multi()
	if len(multi) != 2 {
		t.Fatalf("marquee should select 2 pins, got %v", multi)
	}
	if !sel.InMulti("pin-in1") || !sel.InMulti("pin-in2") {
		t.Fatalf("wrong marquee selection: %v", multi)
	}
	if h.CanUndo() {
		t.Fatal("marquee selection is not a board edit")
	}
	if m.Interaction().Mode != ModeIdle {
		t.Fatal("machine should return to idle")
	}
}

func TestMarqueeHitTestUsesViewportProjection(t *testing.T) {
	// At zoom 2 with pan (-50,-50), canvas point (100,100) projects to
	// screen (100,100). The pin top-left is what must fall inside.
	m, _, sel := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 100, 100), notePin("pin-b", 400, 400)},
		Viewport: board.Viewport{X: -50, Y: -50, Zoom: 2},
	})

	ev := left(90, 90)
	ev.Ctrl = true
	m.CanvasPointerDown(ev)
	m.PointerMove(leftUp(110, 110))
	m.PointerUp(leftUp(110, 110))

	// A single hit still records the pin as focused via SetMulti.
	if got := sel.Focused(); got != "pin-a" {
		t.Fatalf("projection selection wrong: focused %q, want pin-a", got)
	}
	if sel.InMulti("pin-b") {
		t.Fatal("pin-b projects to (700,700), far outside the marquee")
	}
}

func TestScenarioCreateResizeLockDelete(t *testing.T) {
	m, h, sel := newTestMachine(board.State{Viewport: board.Viewport{Zoom: 1}})

	// Double-click create at (100,100).
	ev := left(100, 100)
	ev.Clicks = 2
	m.CanvasPointerDown(ev)
	pin := h.Present().Pins[0]
	if pin.X != 100 || pin.Y != 100 {
		t.Fatalf("created at (%g,%g)", pin.X, pin.Y)
	}
	id := pin.ID
	origW, origH := pin.Width, pin.Height

	// Resize +40,+20 at zoom 1.
	m.ResizePointerDown(id, left(0, 0))
	m.PointerMove(leftUp(40, 20))
	m.PointerUp(leftUp(40, 20))
	p := h.Present().FindPin(id)
	if p.Width != origW+40 || p.Height != origH+20 {
		t.Fatalf("size %gx%g, want %gx%g", p.Width, p.Height, origW+40, origH+20)
	}

	// Lock, then try to drag.
	h.Commit(func(draft *board.State) *board.State {
		draft.FindPin(id).Locked = true
		return draft
	})
	m.PinPointerDown(id, left(0, 0))
	m.PointerMove(leftUp(500, 500))
	m.PointerUp(leftUp(500, 500))
	p = h.Present().FindPin(id)
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("locked pin moved to (%g,%g)", p.X, p.Y)
	}

	// Delete: gone from pins, selection dropped.
	h.Commit(func(draft *board.State) *board.State {
		pins := draft.Pins[:0]
		for _, pp := range draft.Pins {
			if pp.ID != id {
				pins = append(pins, pp)
			}
		}
		draft.Pins = pins
		return draft
	})
	sel.Drop(id)
	if h.Present().FindPin(id) != nil {
		t.Fatal("pin should be deleted")
	}
	if sel.Focused() == id {
		t.Fatal("selection should drop the deleted pin")
	}
}

func TestPointerDownIgnoredWhileActive(t *testing.T) {
	m, _, _ := newTestMachine(board.State{
		Pins:     []board.Pin{notePin("pin-a", 0, 0)},
		Viewport: board.Viewport{Zoom: 1},
	})

	m.CanvasPointerDown(left(0, 0))
	if m.Interaction().Mode != ModePan {
		t.Fatalf("expected pan, got %v", m.Interaction().Mode)
	}
	m.PinPointerDown("pin-a", left(10, 10))
	if m.Interaction().Mode != ModePan {
		t.Fatal("a second pointer-down must not preempt the active interaction")
	}
}

func TestCanvasOriginAffectsProjection(t *testing.T) {
	m, h, _ := newTestMachine(board.State{Viewport: board.Viewport{Zoom: 1}})
	m.SetCanvasOrigin(geom.Point{X: 50, Y: 50})

	ev := left(150, 150)
	ev.Clicks = 2
	m.CanvasPointerDown(ev)
	p := h.Present().Pins[0]
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("origin offset not applied: pin at (%g,%g), want (100,100)", p.X, p.Y)
	}
}
