// Package mutate builds history recipes for the discrete board edits.
// Every function returns a total recipe: a missing target makes the
// recipe a no-op rather than an error, matching the direct-manipulation
// model where a failed edit simply does not happen.
package mutate

import (
	"time"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/history"
	"pinboard-cli/internal/ids"
)

// AddPin creates a default pin of the given kind near the viewport centre.
// List pins start with a bullet so typing continues the list.
func AddPin(kind board.PinKind) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := board.NewPin(kind, draft.Viewport)
		if kind == board.KindList {
			pin.Content = "• "
		}
		draft.Pins = append(draft.Pins, pin)
		return draft
	}
}

// AddPinAt creates a default note pin with its top-left at a canvas point
// (double-click creation).
func AddPinAt(kind board.PinKind, x, y float64) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := board.NewPin(kind, draft.Viewport)
		pin.X = x
		pin.Y = y
		draft.Pins = append(draft.Pins, pin)
		return draft
	}
}

// InsertPin appends an already-built pin (image drops, link pins).
func InsertPin(pin board.Pin) history.Recipe {
	return func(draft *board.State) *board.State {
		draft.Pins = append(draft.Pins, pin)
		return draft
	}
}

// DeletePin removes a pin and cascades: group membership lists drop the
// id, and any wire referencing the pin goes with it.
func DeletePin(pinID string) history.Recipe {
	return func(draft *board.State) *board.State {
		pins := draft.Pins[:0]
		for _, p := range draft.Pins {
			if p.ID != pinID {
				pins = append(pins, p)
			}
		}
		draft.Pins = pins
		for i := range draft.Groups {
			draft.Groups[i].PinIDs = removeString(draft.Groups[i].PinIDs, pinID)
		}
		if draft.Wires != nil {
			wires := draft.Wires[:0]
			for _, w := range draft.Wires {
				if w.FromPinID != pinID && w.ToPinID != pinID {
					wires = append(wires, w)
				}
			}
			draft.Wires = wires
		}
		return draft
	}
}

// PinChanges carries the optional field updates for UpdatePin. Nil fields
// are left untouched.
type PinChanges struct {
	Title   *string
	Content *string
	Color   *string
	Width   *float64
	Height  *float64
}

func UpdatePin(pinID string, changes PinChanges) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := draft.FindPin(pinID)
		if pin == nil || pin.Locked {
			return draft
		}
		if changes.Title != nil {
			pin.Title = *changes.Title
		}
		if changes.Content != nil {
			pin.Content = *changes.Content
		}
		if changes.Color != nil {
			pin.Color = *changes.Color
		}
		if changes.Width != nil {
			pin.Width = board.ClampSize(*changes.Width)
		}
		if changes.Height != nil {
			pin.Height = board.ClampSize(*changes.Height)
		}
		return draft
	}
}

// ToggleLock flips the lock flag. Locking is an advisory affordance, so
// this works on locked pins too (it is how they get unlocked).
func ToggleLock(pinID string) history.Recipe {
	return func(draft *board.State) *board.State {
		if pin := draft.FindPin(pinID); pin != nil {
			pin.Locked = !pin.Locked
		}
		return draft
	}
}

// DuplicatePin clones a pin with a fresh id, a fixed +32,+32 offset and a
// new paint order.
func DuplicatePin(pinID string) history.Recipe {
	return func(draft *board.State) *board.State {
		source := draft.FindPin(pinID)
		if source == nil {
			return draft
		}
		dup := source.Clone()
		dup.ID = ids.New("pin")
		dup.X = source.X + 32
		dup.Y = source.Y + 32
		dup.ZIndex = time.Now().UnixMilli()
		draft.Pins = append(draft.Pins, dup)
		return draft
	}
}

// PastePins inserts deep clones of clipboard pins with fresh ids and the
// fixed +30,+30 paste offset.
func PastePins(pins []board.Pin) history.Recipe {
	clones := make([]board.Pin, 0, len(pins))
	for _, p := range pins {
		c := p.Clone()
		c.ID = ids.New("pin")
		c.X += 30
		c.Y += 30
		clones = append(clones, c)
	}
	return func(draft *board.State) *board.State {
		draft.Pins = append(draft.Pins, clones...)
		return draft
	}
}

// ToggleLabel adds or removes a label reference on a pin.
func ToggleLabel(pinID, labelID string) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := draft.FindPin(pinID)
		if pin == nil {
			return draft
		}
		if containsString(pin.LabelIDs, labelID) {
			pin.LabelIDs = removeString(pin.LabelIDs, labelID)
		} else {
			pin.LabelIDs = append(pin.LabelIDs, labelID)
		}
		return draft
	}
}

// ToggleCategory adds or removes a category reference on a pin.
func ToggleCategory(pinID, categoryID string) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := draft.FindPin(pinID)
		if pin == nil {
			return draft
		}
		if containsString(pin.CategoryIDs, categoryID) {
			pin.CategoryIDs = removeString(pin.CategoryIDs, categoryID)
		} else {
			pin.CategoryIDs = append(pin.CategoryIDs, categoryID)
		}
		return draft
	}
}

// AddAttachment appends an attachment record to a pin.
func AddAttachment(pinID string, att board.Attachment) history.Recipe {
	return func(draft *board.State) *board.State {
		if pin := draft.FindPin(pinID); pin != nil {
			pin.Attachments = append(pin.Attachments, att)
		}
		return draft
	}
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(in []string, s string) []string {
	out := in[:0]
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
