// Package editor ties one board's history, selection and pointer machine
// together with debounced persistence. The TUI and web layers both drive
// boards through a Session.
package editor

import (
	"context"
	"log"
	"time"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/history"
	"pinboard-cli/internal/interact"
	"pinboard-cli/internal/model"
	"pinboard-cli/internal/mutate"
	"pinboard-cli/internal/store"
)

type Session struct {
	BoardID   string
	Title     string
	History   *history.History
	Selection *interact.Selection
	Clipboard *interact.Clipboard
	Machine   *interact.Machine

	// WiresEnabled gates the wire tool. Off by default; the rest of the
	// engine still round-trips any wires already present in the data.
	WiresEnabled bool

	st          store.Store
	saver       *DebouncedSaver
	pendingWire string

	// lastChange is the status-line label for the most recent commit.
	lastChange string

	// generation invalidates in-flight image decodes when the session's
	// state is replaced wholesale (snapshot restore, reload).
	generation int
}

type Options struct {
	WiresEnabled bool
	// SaveDebounce overrides the default save delay; tests use a short one.
	SaveDebounce time.Duration
}

// Open loads the board, sanitizes its stored state and builds a session
// around it.
func Open(ctx context.Context, st store.Store, boardID string, opts Options) (*Session, error) {
	b, err := st.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return newSession(st, b, opts), nil
}

// OpenPrimary opens the workspace's primary board, creating it if the
// workspace is fresh.
func OpenPrimary(ctx context.Context, st store.Store, opts Options) (*Session, error) {
	b, err := st.PrimaryBoard(ctx)
	if err != nil {
		return nil, err
	}
	return newSession(st, b, opts), nil
}

func newSession(st store.Store, b model.Board, opts Options) *Session {
	h := history.New(board.Sanitize(b.State))
	sel := &interact.Selection{}
	s := &Session{
		BoardID:      b.ID,
		Title:        b.Title,
		History:      h,
		Selection:    sel,
		Clipboard:    &interact.Clipboard{},
		Machine:      interact.NewMachine(h, sel),
		WiresEnabled: opts.WiresEnabled,
		st:           st,
	}
	s.saver = NewDebouncedSaver(DebouncedSaverOpts{
		Debounce: opts.SaveDebounce,
		Save: func(ctx context.Context, state board.State) error {
			_, err := st.UpdateBoard(ctx, b.ID, store.BoardPatch{State: &state})
			return err
		},
		OnError: func(err error) {
			log.Printf("autosave board %s: %v", b.ID, err)
		},
	})
	return s
}

func (s *Session) State() board.State { return s.History.Present() }

// LastChange is the human label for the most recent committed edit, or
// "" when the last commit changed nothing worth announcing.
func (s *Session) LastChange() string { return s.lastChange }

// Commit applies a recipe as one undo step and schedules a save.
func (s *Session) Commit(recipe history.Recipe) {
	prev := s.History.Present()
	s.History.Commit(recipe)
	s.lastChange = board.DescribeChange(prev, s.History.Present())
	s.saver.Notify(s.History.Present())
}

// Preview applies a recipe without recording history, for mid-gesture
// and cosmetic updates. Previews skip the undo log but they are still
// board state changes, so each one re-arms the debounced save; zoom and
// pan would otherwise never reach the store.
func (s *Session) Preview(recipe history.Recipe) {
	s.History.Mutate(recipe)
	s.saver.Notify(s.History.Present())
}

func (s *Session) Undo() {
	if !s.History.CanUndo() {
		return
	}
	prev := s.History.Present()
	s.History.Undo()
	s.lastChange = board.DescribeChange(prev, s.History.Present())
	s.saver.Notify(s.History.Present())
}

func (s *Session) Redo() {
	if !s.History.CanRedo() {
		return
	}
	prev := s.History.Present()
	s.History.Redo()
	s.lastChange = board.DescribeChange(prev, s.History.Present())
	s.saver.Notify(s.History.Present())
}

// Pointer event forwarding. Down and up can commit (double-click create,
// gesture end), so both watch history depth and schedule a save when a
// new undo step appeared.

func (s *Session) CanvasPointerDown(ev interact.Pointer) {
	s.syncAfter(func() { s.Machine.CanvasPointerDown(ev) })
}

func (s *Session) PinPointerDown(pinID string, ev interact.Pointer) {
	s.syncAfter(func() { s.Machine.PinPointerDown(pinID, ev) })
}

func (s *Session) ResizePointerDown(pinID string, ev interact.Pointer) {
	s.syncAfter(func() { s.Machine.ResizePointerDown(pinID, ev) })
}

func (s *Session) PointerMove(ev interact.Pointer) {
	s.Machine.PointerMove(ev)
}

func (s *Session) PointerUp(ev interact.Pointer) {
	pan := s.Machine.Interaction().Mode == interact.ModePan
	s.syncAfter(func() { s.Machine.PointerUp(ev) })
	if pan {
		// A pan ends without a commit but still moved the viewport.
		s.saver.Notify(s.History.Present())
	}
}

func (s *Session) syncAfter(f func()) {
	depth := len(s.History.Past())
	f()
	past := s.History.Past()
	if len(past) > depth {
		// Describe against the snapshot the commit pushed, not against the
		// previewed state, so drags still read as "Moved".
		s.lastChange = board.DescribeChange(past[len(past)-1], s.History.Present())
		s.saver.Notify(s.History.Present())
	}
}

// CopySelection puts the focused or multi-selected pins on the clipboard.
func (s *Session) CopySelection() int {
	state := s.History.Present()
	var pins []board.Pin
	if multi := s.Selection.Multi(); len(multi) > 1 {
		for _, id := range multi {
			if p := state.FindPin(id); p != nil {
				pins = append(pins, *p)
			}
		}
	} else if id := s.Selection.Focused(); id != "" {
		if p := state.FindPin(id); p != nil {
			pins = append(pins, *p)
		}
	}
	s.Clipboard.Copy(pins)
	return len(pins)
}

// Paste inserts clipboard pins offset from their originals and focuses
// the last one.
func (s *Session) Paste() {
	pins := s.Clipboard.Pins()
	if len(pins) == 0 {
		return
	}
	s.Commit(mutate.PastePins(pins))
	cur := s.History.Present()
	if len(cur.Pins) > 0 {
		s.Selection.Focus(cur.Pins[len(cur.Pins)-1].ID)
	}
}

// DeleteSelection removes the focused or multi-selected pins.
func (s *Session) DeleteSelection() {
	targets := s.Selection.Multi()
	if len(targets) < 2 {
		if id := s.Selection.Focused(); id != "" {
			targets = []string{id}
		}
	}
	if len(targets) == 0 {
		return
	}
	s.Commit(func(draft *board.State) *board.State {
		for _, id := range targets {
			draft = applyOr(draft, mutate.DeletePin(id))
		}
		return draft
	})
	for _, id := range targets {
		s.Selection.Drop(id)
	}
}

func applyOr(draft *board.State, recipe history.Recipe) *board.State {
	if next := recipe(draft); next != nil {
		return next
	}
	return draft
}

// RestoreSnapshot replaces the working state with a snapshot's, wiping
// undo history, and persists immediately.
func (s *Session) RestoreSnapshot(ctx context.Context, snapshotID string) error {
	b, err := s.st.RestoreSnapshot(ctx, snapshotID)
	if err != nil {
		return err
	}
	if b.ID != s.BoardID {
		return store.ErrNotFound
	}
	s.generation++
	s.History.Reset(b.State)
	s.Selection.Clear()
	s.lastChange = "Snapshot restored"
	return nil
}

// TakeSnapshot saves the current state first so the snapshot captures
// edits still sitting in the debounce window.
func (s *Session) TakeSnapshot(ctx context.Context, name, note string) (model.Snapshot, error) {
	if err := s.saver.Flush(ctx); err != nil {
		return model.Snapshot{}, err
	}
	state := s.History.Present()
	if _, err := s.st.UpdateBoard(ctx, s.BoardID, store.BoardPatch{State: &state}); err != nil {
		return model.Snapshot{}, err
	}
	return s.st.CreateSnapshot(ctx, s.BoardID, name, note)
}

// Close flushes any pending save.
func (s *Session) Close(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// StartWire begins a wire from a pin; completing on the same pin cancels.
func (s *Session) StartWire(fromPinID string) bool {
	if !s.WiresEnabled {
		return false
	}
	s.pendingWire = fromPinID
	return true
}

func (s *Session) PendingWire() string { return s.pendingWire }

func (s *Session) CancelWire() { s.pendingWire = "" }

// CompleteWire connects the pending pin to the target and clears the
// pending state either way.
func (s *Session) CompleteWire(toPinID string) {
	from := s.pendingWire
	s.pendingWire = ""
	if !s.WiresEnabled || from == "" || from == toPinID {
		return
	}
	s.Commit(mutate.AddWire(from, toPinID))
}
