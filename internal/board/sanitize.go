package board

import (
	"encoding/json"
	"math"
	"strconv"
)

// Sanitize is the single gate through which externally sourced board state
// (initial load, snapshot restore, PATCH bodies) enters the editor. It is
// total: any malformed or missing field is coerced to a safe default and
// unusable elements are dropped, so partial corruption degrades gracefully
// instead of failing the whole load.
func Sanitize(v any) State {
	switch t := v.(type) {
	case State:
		return sanitizeState(t.Clone())
	case *State:
		if t == nil {
			return Empty()
		}
		return sanitizeState(t.Clone())
	case map[string]any:
		return sanitizeState(looseState(t))
	default:
		return Empty()
	}
}

// SanitizeJSON decodes raw JSON and sanitizes it. Undecodable input yields
// the empty board.
func SanitizeJSON(raw []byte) State {
	if len(raw) == 0 {
		return Empty()
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Empty()
	}
	return Sanitize(v)
}

var validKinds = map[PinKind]bool{
	KindNote:       true,
	KindImage:      true,
	KindList:       true,
	KindLink:       true,
	KindAttachment: true,
}

func sanitizeState(s State) State {
	if s.Viewport.Zoom == 0 || math.IsNaN(s.Viewport.Zoom) || math.IsInf(s.Viewport.Zoom, 0) {
		s.Viewport.Zoom = 1
	}
	s.Viewport.Zoom = clampF(s.Viewport.Zoom, MinZoom, MaxZoom)
	s.Viewport.X = finiteOrZero(s.Viewport.X)
	s.Viewport.Y = finiteOrZero(s.Viewport.Y)

	pins := make([]Pin, 0, len(s.Pins))
	for _, p := range s.Pins {
		if p.ID == "" {
			continue
		}
		if !validKinds[p.Kind] {
			p.Kind = KindNote
		}
		p.X = finiteOrZero(p.X)
		p.Y = finiteOrZero(p.Y)
		// Rehydration uses the generic default; kind-specific sizes only
		// apply at creation time.
		if p.Width <= 0 || math.IsNaN(p.Width) {
			p.Width = 220
		}
		if p.Height <= 0 || math.IsNaN(p.Height) {
			p.Height = 160
		}
		p.Width = clampF(p.Width, MinPinSize, MaxPinSize)
		p.Height = clampF(p.Height, MinPinSize, MaxPinSize)
		if p.ZIndex <= 0 {
			p.ZIndex = 1
		}
		if p.Color == "" {
			p.Color = DefaultPinColor
		}
		p.CategoryIDs = compactStrings(p.CategoryIDs)
		p.LabelIDs = compactStrings(p.LabelIDs)
		if p.NaturalWidth < 0 || math.IsNaN(p.NaturalWidth) {
			p.NaturalWidth = 0
		}
		if p.NaturalHeight < 0 || math.IsNaN(p.NaturalHeight) {
			p.NaturalHeight = 0
		}
		pins = append(pins, p)
	}
	s.Pins = pins

	pinExists := make(map[string]bool, len(pins))
	for _, p := range pins {
		pinExists[p.ID] = true
	}

	// Groups: PinIDs is the authoritative membership list. Drop dangling
	// references, and enforce at-most-one-group by letting the first group
	// that lists a pin win.
	claimed := map[string]string{}
	groups := make([]Group, 0, len(s.Groups))
	for _, g := range s.Groups {
		if g.ID == "" || g.Name == "" {
			continue
		}
		if g.Color == "" {
			g.Color = DefaultGroupColor
		}
		members := make([]string, 0, len(g.PinIDs))
		for _, id := range g.PinIDs {
			if id == "" || !pinExists[id] {
				continue
			}
			if _, taken := claimed[id]; taken {
				continue
			}
			claimed[id] = g.ID
			members = append(members, id)
		}
		g.PinIDs = members
		groups = append(groups, g)
	}
	s.Groups = groups

	// Rebuild the denormalized back-pointers from the group lists rather
	// than trusting whatever the pins carried in.
	for i := range s.Pins {
		s.Pins[i].GroupID = claimed[s.Pins[i].ID]
	}

	// Wires: both endpoints must exist, no self-loops, no duplicate
	// undirected pairs.
	if len(s.Wires) > 0 {
		seen := map[[2]string]bool{}
		wires := make([]Wire, 0, len(s.Wires))
		for _, w := range s.Wires {
			if w.ID == "" || w.FromPinID == "" || w.ToPinID == "" {
				continue
			}
			if w.FromPinID == w.ToPinID {
				continue
			}
			if !pinExists[w.FromPinID] || !pinExists[w.ToPinID] {
				continue
			}
			key := wireKey(w.FromPinID, w.ToPinID)
			if seen[key] {
				continue
			}
			seen[key] = true
			if w.Color == "" {
				w.Color = DefaultWireColor
			}
			wires = append(wires, w)
		}
		if len(wires) == 0 {
			s.Wires = nil
		} else {
			s.Wires = wires
		}
	} else {
		s.Wires = nil
	}

	return s
}

func wireKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// looseState lowers a decoded JSON object into a typed State, coercing
// field by field. Array elements that are not objects are dropped.
func looseState(m map[string]any) State {
	s := Empty()

	if vp, ok := m["viewport"].(map[string]any); ok {
		s.Viewport = Viewport{
			X:    looseNum(vp["x"]),
			Y:    looseNum(vp["y"]),
			Zoom: looseNum(vp["zoom"]),
		}
	}

	if pins, ok := m["pins"].([]any); ok {
		for _, e := range pins {
			pm, ok := e.(map[string]any)
			if !ok {
				continue
			}
			p := Pin{
				ID:            looseStr(pm["id"]),
				Kind:          PinKind(looseStr(pm["kind"])),
				Title:         looseStr(pm["title"]),
				Content:       looseStr(pm["content"]),
				ImageURL:      looseStr(pm["imageUrl"]),
				X:             looseNum(pm["x"]),
				Y:             looseNum(pm["y"]),
				Width:         looseNum(pm["width"]),
				Height:        looseNum(pm["height"]),
				ZIndex:        int64(looseNum(pm["zIndex"])),
				Color:         looseStr(pm["color"]),
				GroupID:       looseStr(pm["groupId"]),
				CategoryIDs:   looseStrSlice(pm["categoryIds"]),
				LabelIDs:      looseStrSlice(pm["labelIds"]),
				Locked:        looseBool(pm["locked"]),
				NaturalWidth:  looseNum(pm["naturalWidth"]),
				NaturalHeight: looseNum(pm["naturalHeight"]),
			}
			if atts, ok := pm["attachments"].([]any); ok {
				for _, ae := range atts {
					am, ok := ae.(map[string]any)
					if !ok {
						continue
					}
					p.Attachments = append(p.Attachments, Attachment{
						ID:         looseStr(am["id"]),
						Name:       looseStr(am["name"]),
						Type:       looseStr(am["type"]),
						Size:       int64(looseNum(am["size"])),
						URL:        looseStr(am["url"]),
						UploadedAt: looseStr(am["uploadedAt"]),
					})
				}
			}
			if lm, ok := pm["linkMetadata"].(map[string]any); ok {
				p.LinkMetadata = &LinkMetadata{
					URL:         looseStr(lm["url"]),
					Title:       looseStr(lm["title"]),
					Description: looseStr(lm["description"]),
					Image:       looseStr(lm["image"]),
					Favicon:     looseStr(lm["favicon"]),
				}
			}
			s.Pins = append(s.Pins, p)
		}
	}

	if groups, ok := m["groups"].([]any); ok {
		for _, e := range groups {
			gm, ok := e.(map[string]any)
			if !ok {
				continue
			}
			s.Groups = append(s.Groups, Group{
				ID:     looseStr(gm["id"]),
				Name:   looseStr(gm["name"]),
				Color:  looseStr(gm["color"]),
				PinIDs: looseStrSlice(gm["pinIds"]),
			})
		}
	}

	if wires, ok := m["wires"].([]any); ok {
		for _, e := range wires {
			wm, ok := e.(map[string]any)
			if !ok {
				continue
			}
			s.Wires = append(s.Wires, Wire{
				ID:        looseStr(wm["id"]),
				FromPinID: looseStr(wm["fromPinId"]),
				ToPinID:   looseStr(wm["toPinId"]),
				Color:     looseStr(wm["color"]),
			})
		}
	}

	return s
}

func looseNum(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func looseStr(v any) string {
	s, _ := v.(string)
	return s
}

func looseBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func looseStrSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func compactStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clampF(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
