package ids

import (
	"strings"
	"testing"
)

func TestNewFormat(t *testing.T) {
	id := New("pin")
	if !strings.HasPrefix(id, "pin-") {
		t.Fatalf("id %q missing prefix", id)
	}
	suffix := strings.TrimPrefix(id, "pin-")
	if len(suffix) != 8 {
		t.Fatalf("suffix %q should be 8 chars", suffix)
	}
	if suffix != strings.ToLower(suffix) {
		t.Fatalf("suffix %q should be lowercase", suffix)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := New("x")
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
