package editor

import (
	"context"
	"testing"
	"time"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/interact"
	"pinboard-cli/internal/mutate"
	"pinboard-cli/internal/store"
)

func testPin(id, title string, x, y float64) board.Pin {
	return board.Pin{ID: id, Kind: board.KindNote, Title: title, X: x, Y: y, Width: 240, Height: 180, ZIndex: 1, Color: board.DefaultPinColor}
}

func newTestSession(t *testing.T, opts Options) (*Session, store.Store) {
	t.Helper()
	ctx := context.Background()
	st := store.Store{Dir: t.TempDir()}
	b, err := st.CreateBoard(ctx, "Test Board", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if opts.SaveDebounce == 0 {
		opts.SaveDebounce = 10 * time.Millisecond
	}
	sess, err := Open(ctx, st, b.ID, opts)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return sess, st
}

func down(x, y float64) interact.Pointer {
	return interact.Pointer{X: x, Y: y, Button: interact.ButtonLeft, Clicks: 1}
}

func move(x, y float64) interact.Pointer {
	return interact.Pointer{X: x, Y: y, Button: interact.ButtonLeft}
}

func TestSessionCommitLabelsAndSaves(t *testing.T) {
	sess, st := newTestSession(t, Options{})
	ctx := context.Background()

	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))
	if got := sess.LastChange(); got != "Added: Alpha" {
		t.Fatalf("last change = %q, want %q", got, "Added: Alpha")
	}

	waitFor(t, func() bool {
		b, err := st.GetBoard(ctx, sess.BoardID)
		return err == nil && len(b.State.Pins) == 1
	})
}

func TestSessionUndoRedo(t *testing.T) {
	sess, _ := newTestSession(t, Options{})

	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))

	sess.Undo()
	if got := sess.LastChange(); got != "Deleted: Alpha" {
		t.Fatalf("undo label = %q, want %q", got, "Deleted: Alpha")
	}
	if len(sess.State().Pins) != 0 {
		t.Fatal("undo should remove the pin")
	}

	sess.Redo()
	if got := sess.LastChange(); got != "Added: Alpha" {
		t.Fatalf("redo label = %q, want %q", got, "Added: Alpha")
	}
	if len(sess.State().Pins) != 1 {
		t.Fatal("redo should restore the pin")
	}

	sess.Undo()
	sess.Undo() // no-op at the bottom of the log
	if len(sess.State().Pins) != 0 {
		t.Fatal("extra undo must be a no-op")
	}
}

func TestSessionDragCommitsOnceAndSaves(t *testing.T) {
	sess, st := newTestSession(t, Options{})
	ctx := context.Background()

	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))

	sess.PinPointerDown("pin-a", down(500, 500))
	sess.PointerMove(move(520, 510))
	sess.PointerMove(move(540, 530))
	sess.PointerUp(move(540, 530))

	p := sess.State().FindPin("pin-a")
	if p.X != 140 || p.Y != 130 {
		t.Fatalf("pin at (%g,%g), want (140,130)", p.X, p.Y)
	}
	if got := len(sess.History.Past()); got != 2 {
		t.Fatalf("insert + drag should be 2 history entries, got %d", got)
	}
	if got := sess.LastChange(); got != "Moved: Alpha" {
		t.Fatalf("drag label = %q, want %q", got, "Moved: Alpha")
	}

	waitFor(t, func() bool {
		b, err := st.GetBoard(ctx, sess.BoardID)
		if err != nil || len(b.State.Pins) != 1 {
			return false
		}
		return b.State.Pins[0].X == 140
	})

	sess.Undo()
	p = sess.State().FindPin("pin-a")
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("undo should revert the whole drag, pin at (%g,%g)", p.X, p.Y)
	}
}

func TestSessionMotionlessClickDoesNotCommit(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))

	sess.PinPointerDown("pin-a", down(500, 500))
	sess.PointerUp(move(500, 500))

	if got := len(sess.History.Past()); got != 1 {
		t.Fatalf("click without movement added a history entry: %d", got)
	}
	if got := sess.Selection.Focused(); got != "pin-a" {
		t.Fatalf("click should still focus the pin, got %q", got)
	}
}

func TestSessionPreviewIsUncommittedButSaved(t *testing.T) {
	sess, st := newTestSession(t, Options{SaveDebounce: time.Hour})
	ctx := context.Background()

	sess.Preview(mutate.ZoomBy(0.5))
	if got := sess.State().Viewport.Zoom; got != 1.5 {
		t.Fatalf("preview zoom = %g, want 1.5", got)
	}
	if sess.History.CanUndo() {
		t.Fatal("preview must not touch history")
	}

	// Not an undo step, but still a state change the store must see.
	if err := sess.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := st.GetBoard(ctx, sess.BoardID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if b.State.Viewport.Zoom != 1.5 {
		t.Fatalf("stored zoom = %g, want 1.5", b.State.Viewport.Zoom)
	}
}

func TestSessionPanPersistsViewport(t *testing.T) {
	sess, st := newTestSession(t, Options{})
	ctx := context.Background()

	sess.CanvasPointerDown(down(0, 0))
	sess.PointerMove(move(60, 30))
	sess.PointerUp(move(60, 30))

	vp := sess.State().Viewport
	if vp.X != 60 || vp.Y != 30 {
		t.Fatalf("viewport at (%g,%g), want (60,30)", vp.X, vp.Y)
	}
	if sess.History.CanUndo() {
		t.Fatal("panning must not create history entries")
	}

	waitFor(t, func() bool {
		b, err := st.GetBoard(ctx, sess.BoardID)
		return err == nil && b.State.Viewport.X == 60 && b.State.Viewport.Y == 30
	})
}

func TestSessionCopyPasteFocused(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))
	sess.Selection.Focus("pin-a")

	if got := sess.CopySelection(); got != 1 {
		t.Fatalf("copied %d pins, want 1", got)
	}
	sess.Paste()

	cur := sess.State()
	if len(cur.Pins) != 2 {
		t.Fatalf("paste should add a pin, have %d", len(cur.Pins))
	}
	pasted := cur.Pins[1]
	if pasted.ID == "pin-a" {
		t.Fatal("pasted pin must get a fresh id")
	}
	if pasted.X != 130 || pasted.Y != 130 {
		t.Fatalf("pasted pin at (%g,%g), want offset (130,130)", pasted.X, pasted.Y)
	}
	if got := sess.Selection.Focused(); got != pasted.ID {
		t.Fatalf("paste should focus the new pin, got %q", got)
	}
}

func TestSessionDeleteSelectionMulti(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 0, 0)))
	sess.Commit(mutate.InsertPin(testPin("pin-b", "Beta", 300, 0)))
	sess.Commit(mutate.InsertPin(testPin("pin-c", "Gamma", 600, 0)))
	depth := len(sess.History.Past())

	sess.Selection.SetMulti([]string{"pin-a", "pin-c"})
	sess.DeleteSelection()

	cur := sess.State()
	if len(cur.Pins) != 1 || cur.Pins[0].ID != "pin-b" {
		t.Fatalf("expected only pin-b to survive, pins: %+v", cur.Pins)
	}
	if got := len(sess.History.Past()); got != depth+1 {
		t.Fatalf("multi-delete should be one undo step, past went %d -> %d", depth, got)
	}
	if sess.Selection.Focused() != "" || len(sess.Selection.Multi()) != 0 {
		t.Fatal("deleted pins should leave the selection")
	}

	sess.Undo()
	if len(sess.State().Pins) != 3 {
		t.Fatal("one undo should bring both pins back")
	}
}

func TestSessionDeleteSelectionEmptyIsNoop(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	sess.DeleteSelection()
	if sess.History.CanUndo() {
		t.Fatal("deleting nothing must not commit")
	}
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	sess, st := newTestSession(t, Options{})
	ctx := context.Background()

	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 100, 100)))
	snap, err := sess.TakeSnapshot(ctx, "before rework", "")
	if err != nil {
		t.Fatalf("take snapshot: %v", err)
	}
	if snap.BoardID != sess.BoardID {
		t.Fatalf("snapshot board = %q, want %q", snap.BoardID, sess.BoardID)
	}

	// Snapshots capture edits still inside the debounce window.
	b, err := st.GetBoard(ctx, sess.BoardID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if len(b.State.Pins) != 1 {
		t.Fatal("taking a snapshot should persist the working state first")
	}

	sess.Commit(mutate.DeletePin("pin-a"))
	sess.Commit(mutate.InsertPin(testPin("pin-b", "Beta", 0, 0)))
	gen := sess.Generation()

	if err := sess.RestoreSnapshot(ctx, snap.ID); err != nil {
		t.Fatalf("restore snapshot: %v", err)
	}
	cur := sess.State()
	if len(cur.Pins) != 1 || cur.Pins[0].ID != "pin-a" {
		t.Fatalf("restore should bring back the snapshot state, pins: %+v", cur.Pins)
	}
	if sess.History.CanUndo() || sess.History.CanRedo() {
		t.Fatal("restore must wipe undo history")
	}
	if sess.Generation() == gen {
		t.Fatal("restore must bump the generation")
	}
	if got := sess.LastChange(); got != "Snapshot restored" {
		t.Fatalf("last change = %q", got)
	}
}

func TestSessionRestoreRejectsForeignSnapshot(t *testing.T) {
	sess, st := newTestSession(t, Options{})
	ctx := context.Background()

	other, err := st.CreateBoard(ctx, "Other", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	snap, err := st.CreateSnapshot(ctx, other.ID, "", "")
	if err != nil {
		t.Fatalf("create snapshot: %v", err)
	}

	if err := sess.RestoreSnapshot(ctx, snap.ID); err == nil {
		t.Fatal("restoring another board's snapshot must fail")
	}
}

func TestSetNaturalSizeGenerationGuard(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	img := testPin("pin-img", "Shot", 0, 0)
	img.Kind = board.KindImage
	sess.Commit(mutate.InsertPin(img))
	depth := len(sess.History.Past())

	sess.SetNaturalSize("pin-img", sess.Generation()-1, 800, 600)
	if p := sess.State().FindPin("pin-img"); p.NaturalWidth != 0 {
		t.Fatal("stale-generation decode result must be dropped")
	}

	sess.SetNaturalSize("pin-img", sess.Generation(), 800, 600)
	p := sess.State().FindPin("pin-img")
	if p.NaturalWidth != 800 || p.NaturalHeight != 600 {
		t.Fatalf("natural size = %gx%g, want 800x600", p.NaturalWidth, p.NaturalHeight)
	}
	if got := len(sess.History.Past()); got != depth {
		t.Fatal("recording a natural size must not be an undoable edit")
	}

	sess.SetNaturalSize("pin-img", sess.Generation(), 0, 600)
	if p := sess.State().FindPin("pin-img"); p.NaturalWidth != 800 {
		t.Fatal("non-positive sizes must be ignored")
	}
}

func TestSessionWireToolGate(t *testing.T) {
	sess, _ := newTestSession(t, Options{})
	if sess.StartWire("pin-a") {
		t.Fatal("wire tool must be off unless enabled")
	}

	sess, _ = newTestSession(t, Options{WiresEnabled: true})
	sess.Commit(mutate.InsertPin(testPin("pin-a", "Alpha", 0, 0)))
	sess.Commit(mutate.InsertPin(testPin("pin-b", "Beta", 300, 0)))

	if !sess.StartWire("pin-a") {
		t.Fatal("wire start should succeed when enabled")
	}
	if got := sess.PendingWire(); got != "pin-a" {
		t.Fatalf("pending wire = %q", got)
	}

	// Completing on the origin pin cancels.
	sess.CompleteWire("pin-a")
	if len(sess.State().Wires) != 0 || sess.PendingWire() != "" {
		t.Fatal("self-completion must cancel without a wire")
	}

	sess.StartWire("pin-a")
	sess.CompleteWire("pin-b")
	if len(sess.State().Wires) != 1 {
		t.Fatalf("wire count = %d, want 1", len(sess.State().Wires))
	}
	if got := sess.LastChange(); got != "Connection added" {
		t.Fatalf("last change = %q", got)
	}
}

func TestOpenPrimaryCreatesFreshBoard(t *testing.T) {
	ctx := context.Background()
	st := store.Store{Dir: t.TempDir()}

	sess, err := OpenPrimary(ctx, st, Options{SaveDebounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("open primary: %v", err)
	}
	if sess.BoardID == "" || sess.Title != "My Board" {
		t.Fatalf("primary board = %q %q", sess.BoardID, sess.Title)
	}

	again, err := OpenPrimary(ctx, st, Options{SaveDebounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("reopen primary: %v", err)
	}
	if again.BoardID != sess.BoardID {
		t.Fatal("reopening must find the same primary board")
	}
}

func TestOpenMissingBoard(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	if _, err := Open(context.Background(), st, "board-missing", Options{}); err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
