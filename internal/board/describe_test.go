package board

import "testing"

func describeBase() State {
	return State{Pins: []Pin{
		{ID: "pin-a", Kind: KindNote, Title: "Alpha", X: 0, Y: 0, Width: 240, Height: 180},
		{ID: "pin-b", Kind: KindImage, Title: "", X: 100, Y: 100, Width: 280, Height: 220},
	}}
}

func TestDescribeChange(t *testing.T) {
	base := describeBase()

	tests := []struct {
		name   string
		mutate func(s *State)
		want   string
	}{
		{"no change", func(s *State) {}, ""},
		{"added", func(s *State) {
			s.Pins = append(s.Pins, Pin{ID: "pin-c", Kind: KindNote, Title: "New"})
		}, "Added: New"},
		{"added untitled uses kind", func(s *State) {
			s.Pins = append(s.Pins, Pin{ID: "pin-c", Kind: KindList})
		}, "Added: list"},
		{"deleted", func(s *State) { s.Pins = s.Pins[:1] }, "Deleted: image"},
		{"moved", func(s *State) { s.Pins[0].X += 5 }, "Moved: Alpha"},
		{"resized", func(s *State) { s.Pins[1].Width += 40 }, "Resized: image"},
		{"edited", func(s *State) { s.Pins[0].Content = "hello" }, "Edited: Alpha"},
		{"renamed", func(s *State) { s.Pins[0].Title = "Beta" }, "Renamed: Beta"},
		{"wire added", func(s *State) {
			s.Wires = append(s.Wires, Wire{ID: "wire-1", FromPinID: "pin-a", ToPinID: "pin-b"})
		}, "Connection added"},
	}

	for _, tc := range tests {
		cur := base.Clone()
		tc.mutate(&cur)
		if got := DescribeChange(base, cur); got != tc.want {
			t.Fatalf("%s: DescribeChange = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDescribeChangePriorityOrder(t *testing.T) {
	base := describeBase()

	// A simultaneous move+resize+edit reports the move: position outranks
	// size outranks content.
	cur := base.Clone()
	cur.Pins[0].X += 10
	cur.Pins[0].Width += 10
	cur.Pins[0].Content = "changed"
	if got := DescribeChange(base, cur); got != "Moved: Alpha" {
		t.Fatalf("move should win over resize/edit, got %q", got)
	}

	// An added pin outranks everything else.
	cur2 := base.Clone()
	cur2.Pins[0].X += 10
	cur2.Pins = append(cur2.Pins, Pin{ID: "pin-c", Kind: KindNote, Title: "New"})
	if got := DescribeChange(base, cur2); got != "Added: New" {
		t.Fatalf("add should win over move, got %q", got)
	}

	// Wire changes are only reported when no pin changed.
	cur3 := base.Clone()
	cur3.Pins[0].Y += 1
	cur3.Wires = append(cur3.Wires, Wire{ID: "wire-1", FromPinID: "pin-a", ToPinID: "pin-b"})
	if got := DescribeChange(base, cur3); got != "Moved: Alpha" {
		t.Fatalf("pin change should win over wire change, got %q", got)
	}
}

func TestDescribeChangeWireRemoved(t *testing.T) {
	prev := describeBase()
	prev.Wires = []Wire{{ID: "wire-1", FromPinID: "pin-a", ToPinID: "pin-b"}}
	cur := prev.Clone()
	cur.Wires = nil
	if got := DescribeChange(prev, cur); got != "Connection removed" {
		t.Fatalf("DescribeChange = %q, want Connection removed", got)
	}
}
