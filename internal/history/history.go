// Package history wraps a board state in a linear undo/redo log.
package history

import "pinboard-cli/internal/board"

// MaxEntries bounds both the past and future logs; the oldest past entry
// is evicted first.
const MaxEntries = 50

// Recipe transforms a deep-cloned draft of the present state. It may
// mutate the draft in place and return it, or return a fresh value; a nil
// return means "use the mutated draft", so recipes written in either
// style work.
type Recipe func(draft *board.State) *board.State

// History owns the board state exclusively. All other components read
// Present and write only through Mutate/Commit, so one logical writer
// exists and no locking is needed (mutation happens synchronously inside
// event handlers).
type History struct {
	past    []board.State
	present board.State
	future  []board.State
}

func New(initial board.State) *History {
	return &History{present: initial}
}

func applyRecipe(base board.State, recipe Recipe) board.State {
	draft := base.Clone()
	if recipe == nil {
		return draft
	}
	if out := recipe(&draft); out != nil {
		return *out
	}
	return draft
}

// Present returns the current state. Callers must treat it as read-only.
func (h *History) Present() board.State { return h.present }

// Past returns the undo log, oldest first.
func (h *History) Past() []board.State { return h.past }

func (h *History) Future() []board.State { return h.future }

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Mutate applies recipe to a deep copy of present and replaces present
// without touching the logs. Every intermediate frame of a continuous
// interaction (pointer-move while dragging/panning/resizing) goes through
// here, so a drag of 200 move events yields one history entry, not 200.
func (h *History) Mutate(recipe Recipe) {
	h.present = applyRecipe(h.present, recipe)
}

// Commit snapshots the pre-mutation present into the past log, applies
// recipe, and clears the redo log. One Commit per discrete user action.
func (h *History) Commit(recipe Recipe) {
	next := applyRecipe(h.present, recipe)
	h.pushPast(h.present.Clone())
	h.present = next
	h.future = nil
}

// CommitSnapshot finishes a continuous interaction whose frames already
// went through Mutate: it pushes base (the state captured before the
// interaction started) into the past log, keeps the mutated present, and
// clears the redo log. This is what makes "undo" after a drag revert the
// drag itself rather than the edit before it.
func (h *History) CommitSnapshot(base board.State) {
	h.pushPast(base.Clone())
	h.future = nil
}

// Reset replaces the entire history, dropping undo state. Used when a
// board is loaded or a snapshot is restored.
func (h *History) Reset(next board.State) {
	h.past = nil
	h.present = next
	h.future = nil
}

// Undo moves the newest past entry into present. No-op with an empty past.
func (h *History) Undo() {
	if len(h.past) == 0 {
		return
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]board.State{h.present.Clone()}, h.future...)
	if len(h.future) > MaxEntries {
		h.future = h.future[:MaxEntries]
	}
	h.present = previous
}

// Redo is the symmetric inverse of Undo. No-op with an empty future.
func (h *History) Redo() {
	if len(h.future) == 0 {
		return
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.pushPast(h.present.Clone())
	h.present = next
}

func (h *History) pushPast(s board.State) {
	h.past = append(h.past, s)
	if len(h.past) > MaxEntries {
		h.past = h.past[len(h.past)-MaxEntries:]
	}
}
