package mutate

import (
	"pinboard-cli/internal/board"
	"pinboard-cli/internal/history"
	"pinboard-cli/internal/ids"
)

// AddWire connects two pins. Self-loops and duplicate undirected pairs
// are no-ops, as is a dangling endpoint.
func AddWire(fromPinID, toPinID string) history.Recipe {
	return func(draft *board.State) *board.State {
		if fromPinID == toPinID {
			return draft
		}
		if draft.FindPin(fromPinID) == nil || draft.FindPin(toPinID) == nil {
			return draft
		}
		for _, w := range draft.Wires {
			if (w.FromPinID == fromPinID && w.ToPinID == toPinID) ||
				(w.FromPinID == toPinID && w.ToPinID == fromPinID) {
				return draft
			}
		}
		draft.Wires = append(draft.Wires, board.Wire{
			ID:        ids.New("wire"),
			FromPinID: fromPinID,
			ToPinID:   toPinID,
			Color:     board.DefaultWireColor,
		})
		return draft
	}
}

func DeleteWire(wireID string) history.Recipe {
	return func(draft *board.State) *board.State {
		if draft.Wires == nil {
			return draft
		}
		wires := draft.Wires[:0]
		for _, w := range draft.Wires {
			if w.ID != wireID {
				wires = append(wires, w)
			}
		}
		draft.Wires = wires
		return draft
	}
}
