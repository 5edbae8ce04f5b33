package interact

import (
	"testing"

	"pinboard-cli/internal/board"
)

func TestSelectionFocusClearsMulti(t *testing.T) {
	sel := &Selection{}
	sel.SetMulti([]string{"pin-a", "pin-b"})
	if !sel.InMulti("pin-a") {
		t.Fatal("setup: pin-a should be in multi")
	}

	sel.Focus("pin-c")
	if sel.Focused() != "pin-c" {
		t.Fatalf("focused = %q", sel.Focused())
	}
	if sel.InMulti("pin-a") {
		t.Fatal("focus should clear the multi-selection")
	}
}

func TestSelectionInMultiNeedsTwo(t *testing.T) {
	sel := &Selection{}
	sel.SetMulti([]string{"pin-a"})
	if sel.InMulti("pin-a") {
		t.Fatal("a single-element selection is a focus, not a multi")
	}
	if sel.Focused() != "pin-a" {
		t.Fatalf("single SetMulti should focus, got %q", sel.Focused())
	}
}

func TestSelectionDrop(t *testing.T) {
	sel := &Selection{}
	sel.SetMulti([]string{"pin-a", "pin-b", "pin-c"})

	sel.Drop("pin-b")
	if sel.InMulti("pin-b") {
		t.Fatal("dropped pin still in multi")
	}
	if !sel.InMulti("pin-a") || !sel.InMulti("pin-c") {
		t.Fatal("drop should keep the other members")
	}

	sel.Drop("pin-a")
	sel.Drop("pin-c")
	if sel.Focused() != "" || len(sel.Multi()) != 0 {
		t.Fatalf("selection should be empty, got %q %v", sel.Focused(), sel.Multi())
	}
}

func TestClipboardClonesBothWays(t *testing.T) {
	src := []board.Pin{{ID: "pin-a", Kind: board.KindNote, Title: "orig", LabelIDs: []string{"lbl-1"}}}
	cb := &Clipboard{}
	cb.Copy(src)

	// Mutating the source after copy must not affect the clipboard.
	src[0].Title = "changed"
	src[0].LabelIDs[0] = "changed"

	got := cb.Pins()
	if got[0].Title != "orig" || got[0].LabelIDs[0] != "lbl-1" {
		t.Fatalf("clipboard shares memory with source: %+v", got[0])
	}

	// Mutating a paste result must not affect later pastes.
	got[0].Title = "mutated"
	again := cb.Pins()
	if again[0].Title != "orig" {
		t.Fatal("clipboard shares memory with its own output")
	}

	if cb.Empty() {
		t.Fatal("clipboard with content reports empty")
	}
}
