package tui

import "testing"

func TestClipboardToolsOrdered(t *testing.T) {
	tools := clipboardTools()
	if len(tools) == 0 {
		t.Fatal("expected at least one clipboard candidate on every platform")
	}
	for _, tool := range tools {
		if tool.name == "" {
			t.Fatalf("clipboard candidate with empty command name: %+v", tool)
		}
	}
}
