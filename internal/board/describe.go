package board

// DescribeChange produces a short human-readable label for the transition
// between two consecutive history snapshots, for the history panel. It is
// a heuristic single-cause explanation, not a diff: checks run in a fixed
// priority order and the first match wins, which is fine because a
// discrete commit normally changes exactly one property. Returns "" when
// nothing user-visible changed (the entry is hidden).
func DescribeChange(prev, cur State) string {
	if len(cur.Pins) > len(prev.Pins) {
		for _, p := range cur.Pins {
			if prev.FindPin(p.ID) == nil {
				return "Added: " + labelFor(p)
			}
		}
	}

	if len(cur.Pins) < len(prev.Pins) {
		for _, p := range prev.Pins {
			if cur.FindPin(p.ID) == nil {
				return "Deleted: " + labelFor(p)
			}
		}
	}

	for _, p := range cur.Pins {
		if pp := prev.FindPin(p.ID); pp != nil && (pp.X != p.X || pp.Y != p.Y) {
			return "Moved: " + labelFor(p)
		}
	}

	for _, p := range cur.Pins {
		if pp := prev.FindPin(p.ID); pp != nil && (pp.Width != p.Width || pp.Height != p.Height) {
			return "Resized: " + labelFor(p)
		}
	}

	for _, p := range cur.Pins {
		if pp := prev.FindPin(p.ID); pp != nil && pp.Content != p.Content {
			return "Edited: " + labelFor(p)
		}
	}

	for _, p := range cur.Pins {
		if pp := prev.FindPin(p.ID); pp != nil && pp.Title != p.Title {
			return "Renamed: " + labelFor(p)
		}
	}

	if len(cur.Wires) > len(prev.Wires) {
		return "Connection added"
	}
	if len(cur.Wires) < len(prev.Wires) {
		return "Connection removed"
	}

	return ""
}

func labelFor(p Pin) string {
	if p.Title != "" {
		return p.Title
	}
	return string(p.Kind)
}
