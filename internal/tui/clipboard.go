package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// clipboardTool is one external command that can receive text on stdin.
type clipboardTool struct {
	name string
	args []string
}

func (c clipboardTool) write(text string) error {
	if _, err := exec.LookPath(c.name); err != nil {
		return err
	}
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// clipboardTools lists the candidate commands for the current platform,
// in preference order. Linux tries Wayland before the X11 tools.
func clipboardTools() []clipboardTool {
	switch runtime.GOOS {
	case "darwin":
		return []clipboardTool{{name: "pbcopy"}}
	case "windows":
		return []clipboardTool{
			{name: "cmd", args: []string{"/c", "clip"}},
			{name: "powershell", args: []string{"-NoProfile", "-Command", "Set-Clipboard"}},
		}
	default:
		return []clipboardTool{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

// copyToClipboard pushes pin text to the system clipboard through the
// first working platform tool. CRLF is normalized so Windows line
// endings don't leak into the yanked text.
func copyToClipboard(text string) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var err error
	for _, tool := range clipboardTools() {
		if err = tool.write(text); err == nil {
			return nil
		}
	}
	return err
}
