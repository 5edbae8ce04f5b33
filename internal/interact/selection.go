package interact

import "pinboard-cli/internal/board"

// Selection tracks the focused pin and the multi-selection. The two are
// mutually clearing: focusing one pin drops the multi-set, and a marquee
// selection replaces the single focus.
type Selection struct {
	focused string
	multi   []string
}

func (s *Selection) Focus(pinID string) {
	s.focused = pinID
	s.multi = nil
}

func (s *Selection) Focused() string { return s.focused }

func (s *Selection) Multi() []string { return s.multi }

// SetMulti replaces the multi-selection; the first id becomes the focused
// pin so single-pin surfaces (inspector, copy) keep working.
func (s *Selection) SetMulti(pinIDs []string) {
	if len(pinIDs) == 0 {
		return
	}
	s.multi = append([]string(nil), pinIDs...)
	s.focused = pinIDs[0]
}

func (s *Selection) Clear() {
	s.focused = ""
	s.multi = nil
}

// InMulti reports whether pinID is part of a 2+ pin multi-selection,
// which is what decides multi-drag over single drag.
func (s *Selection) InMulti(pinID string) bool {
	if len(s.multi) < 2 {
		return false
	}
	for _, id := range s.multi {
		if id == pinID {
			return true
		}
	}
	return false
}

// Drop removes a pin from the selection after it is deleted.
func (s *Selection) Drop(pinID string) {
	if s.focused == pinID {
		s.focused = ""
	}
	out := s.multi[:0]
	for _, id := range s.multi {
		if id != pinID {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		s.multi = nil
	} else {
		s.multi = out
	}
}

// Clipboard is the in-memory pin clipboard (distinct from the system
// clipboard): copy captures deep snapshots, paste clones them again so
// repeated pastes stay independent.
type Clipboard struct {
	pins []board.Pin
}

func (c *Clipboard) Copy(pins []board.Pin) {
	c.pins = make([]board.Pin, 0, len(pins))
	for _, p := range pins {
		c.pins = append(c.pins, p.Clone())
	}
}

func (c *Clipboard) Pins() []board.Pin {
	out := make([]board.Pin, 0, len(c.pins))
	for _, p := range c.pins {
		out = append(out, p.Clone())
	}
	return out
}

func (c *Clipboard) Empty() bool { return len(c.pins) == 0 }
