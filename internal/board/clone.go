package board

// Clone returns a structurally independent deep copy. History snapshots
// depend on this: a past entry must never observe later edits to present.
func (s State) Clone() State {
	out := s
	out.Pins = make([]Pin, len(s.Pins))
	for i, p := range s.Pins {
		out.Pins[i] = p.Clone()
	}
	out.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		out.Groups[i] = g
		out.Groups[i].PinIDs = append([]string(nil), g.PinIDs...)
	}
	if s.Wires != nil {
		out.Wires = append([]Wire(nil), s.Wires...)
	}
	return out
}

func (p Pin) Clone() Pin {
	out := p
	if p.CategoryIDs != nil {
		out.CategoryIDs = append([]string(nil), p.CategoryIDs...)
	}
	if p.LabelIDs != nil {
		out.LabelIDs = append([]string(nil), p.LabelIDs...)
	}
	if p.Attachments != nil {
		out.Attachments = append([]Attachment(nil), p.Attachments...)
	}
	if p.LinkMetadata != nil {
		meta := *p.LinkMetadata
		out.LinkMetadata = &meta
	}
	return out
}
