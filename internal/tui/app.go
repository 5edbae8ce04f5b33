// Package tui is the interactive terminal board editor. The terminal
// grid acts as the screen plane: mouse cells are scaled up to virtual
// pixels and fed through the same pointer machine every frontend
// shares.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/editor"
	"pinboard-cli/internal/interact"
	"pinboard-cli/internal/mutate"
	"pinboard-cli/internal/store"
)

// rows reserved above/below the canvas.
const (
	headerRows = 1
	footerRows = 1
)

const doubleClickWindow = 400 * time.Millisecond

type editField int

const (
	editNone editField = iota
	editTitle
	editContent
)

type appModel struct {
	session *editor.Session

	width  int
	height int

	editing      editField
	editPinID    string
	titleInput   textinput.Model
	contentInput textarea.Model

	previewing bool

	statusErr string

	lastClickAt   time.Time
	lastClickCell [2]int
}

// Run opens the board (the primary board when boardID is empty) and
// blocks until the editor exits, flushing pending saves on the way out.
func Run(ctx context.Context, st store.Store, boardID string, opts editor.Options) error {
	var (
		sess *editor.Session
		err  error
	)
	if boardID == "" {
		sess, err = editor.OpenPrimary(ctx, st, opts)
	} else {
		sess, err = editor.Open(ctx, st, boardID, opts)
	}
	if err != nil {
		return err
	}

	m := newAppModel(sess)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return sess.Close(ctx)
}

func newAppModel(sess *editor.Session) appModel {
	ti := textinput.New()
	ti.Placeholder = "title"
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "content (markdown)"

	return appModel{
		session:      sess,
		titleInput:   ti,
		contentInput: ta,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contentInput.SetWidth(max(40, m.width-4))
		m.titleInput.Width = max(40, m.width-10)
		return m, nil

	case tea.MouseMsg:
		if m.editing != editNone || m.previewing {
			return m, nil
		}
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.editing {
		case editTitle:
			return m.updateTitleEdit(msg)
		case editContent:
			return m.updateContentEdit(msg)
		}
		return m.updateBoardKey(msg)
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	state := m.session.State()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.session.Preview(mutate.ZoomBy(0.1))
		return m, nil
	case tea.MouseButtonWheelDown:
		m.session.Preview(mutate.ZoomBy(-0.1))
		return m, nil
	}

	cellX, cellY := msg.X, msg.Y-headerRows
	sx, sy := cellToScreen(cellX, cellY)
	ptr := interact.Pointer{
		X:      sx,
		Y:      sy,
		Button: mapButton(msg.Button),
		Ctrl:   msg.Ctrl,
		Shift:  msg.Shift,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			if time.Since(m.lastClickAt) < doubleClickWindow && m.lastClickCell == [2]int{cellX, cellY} {
				ptr.Clicks = 2
			} else {
				ptr.Clicks = 1
			}
			m.lastClickAt = time.Now()
			m.lastClickCell = [2]int{cellX, cellY}
		}

		pinID, onResize := hitPin(state, cellX, cellY)
		if pinID != "" && m.session.PendingWire() != "" {
			m.session.CompleteWire(pinID)
			return m, nil
		}
		switch {
		case pinID == "":
			m.session.CanvasPointerDown(ptr)
		case onResize:
			m.session.ResizePointerDown(pinID, ptr)
		default:
			m.session.PinPointerDown(pinID, ptr)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.session.PointerMove(ptr)
		return m, nil

	case tea.MouseActionRelease:
		m.session.PointerUp(ptr)
		return m, nil
	}
	return m, nil
}

func mapButton(b tea.MouseButton) interact.Button {
	switch b {
	case tea.MouseButtonMiddle:
		return interact.ButtonMiddle
	case tea.MouseButtonRight:
		return interact.ButtonRight
	default:
		return interact.ButtonLeft
	}
}

func (m appModel) updateBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusErr = ""
	state := m.session.State()
	focused := m.session.Selection.Focused()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.previewing {
			m.previewing = false
			return m, nil
		}
		if m.session.PendingWire() != "" {
			m.session.CancelWire()
			return m, nil
		}
		m.session.Selection.Clear()
		return m, nil

	case "u":
		m.session.Undo()
		return m, nil
	case "U", "ctrl+r":
		m.session.Redo()
		return m, nil

	case "n":
		m.session.Commit(mutate.AddPin(board.KindNote))
		m.focusNewest()
		return m, nil
	case "N":
		m.session.Commit(mutate.AddPin(board.KindList))
		m.focusNewest()
		return m, nil

	case "d":
		if focused != "" {
			m.session.Commit(mutate.DuplicatePin(focused))
			m.focusNewest()
		}
		return m, nil

	case "x", "delete", "backspace":
		m.session.DeleteSelection()
		return m, nil

	case "y":
		n := m.session.CopySelection()
		if n == 0 {
			m.statusErr = "nothing selected"
		}
		return m, nil
	case "Y":
		if p := state.FindPin(focused); p != nil {
			if err := copyToClipboard(p.Content); err != nil {
				m.statusErr = "clipboard: " + err.Error()
			}
		}
		return m, nil
	case "p":
		m.session.Paste()
		return m, nil

	case "l":
		if focused != "" {
			m.session.Commit(mutate.ToggleLock(focused))
		}
		return m, nil

	case "c":
		if p := state.FindPin(focused); p != nil && !p.Locked {
			next := nextPaletteColor(p.Color)
			m.session.Commit(mutate.UpdatePin(focused, mutate.PinChanges{Color: &next}))
		}
		return m, nil

	case "t":
		if p := state.FindPin(focused); p != nil && !p.Locked {
			m.editing = editTitle
			m.editPinID = focused
			m.titleInput.SetValue(p.Title)
			m.titleInput.Focus()
		}
		return m, nil
	case "e":
		if p := state.FindPin(focused); p != nil && !p.Locked {
			m.editing = editContent
			m.editPinID = focused
			m.contentInput.SetValue(p.Content)
			m.contentInput.Focus()
		}
		return m, nil

	case "v":
		if state.FindPin(focused) != nil {
			m.previewing = !m.previewing
		}
		return m, nil

	case "w":
		if m.session.PendingWire() != "" {
			m.session.CancelWire()
		} else if focused != "" {
			if !m.session.StartWire(focused) {
				m.statusErr = "wires are disabled"
			}
		}
		return m, nil

	case "s":
		if _, err := m.session.TakeSnapshot(context.Background(), "", ""); err != nil {
			m.statusErr = "snapshot: " + err.Error()
		}
		return m, nil

	case "+", "=":
		m.session.Preview(mutate.ZoomBy(0.1))
		return m, nil
	case "-":
		m.session.Preview(mutate.ZoomBy(-0.1))
		return m, nil

	case "left", "right", "up", "down":
		vp := state.Viewport
		step := 80.0 / vp.Zoom
		switch msg.String() {
		case "left":
			m.session.Preview(mutate.PanTo(vp.X+step, vp.Y))
		case "right":
			m.session.Preview(mutate.PanTo(vp.X-step, vp.Y))
		case "up":
			m.session.Preview(mutate.PanTo(vp.X, vp.Y+step))
		case "down":
			m.session.Preview(mutate.PanTo(vp.X, vp.Y-step))
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) focusNewest() {
	state := m.session.State()
	if len(state.Pins) > 0 {
		m.session.Selection.Focus(state.Pins[len(state.Pins)-1].ID)
	}
}

func nextPaletteColor(cur string) string {
	for i, c := range board.Palette {
		if c == cur {
			return board.Palette[(i+1)%len(board.Palette)]
		}
	}
	return board.Palette[0]
}

func (m appModel) updateTitleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = editNone
		m.titleInput.Blur()
		return m, nil
	case "enter":
		v := m.titleInput.Value()
		m.session.Commit(mutate.UpdatePin(m.editPinID, mutate.PinChanges{Title: &v}))
		m.editing = editNone
		m.titleInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m appModel) updateContentEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v := m.contentInput.Value()
		m.session.Commit(mutate.UpdatePin(m.editPinID, mutate.PinChanges{Content: &v}))
		m.editing = editNone
		m.contentInput.Blur()
		return m, nil
	case "ctrl+c":
		m.editing = editNone
		m.contentInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.contentInput, cmd = m.contentInput.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	state := m.session.State()
	header := headerStyle.Render(fmt.Sprintf("%s  zoom %.0f%%  pins %d",
		m.session.Title, state.Viewport.Zoom*100, len(state.Pins)))
	if lbl := m.session.LastChange(); lbl != "" {
		header += "  " + changeStyle.Render(lbl)
	}
	if m.statusErr != "" {
		header += "  " + errorStyle.Render(m.statusErr)
	}

	canvasH := m.height - headerRows - footerRows
	if canvasH < 4 {
		canvasH = 4
	}

	var body string
	switch {
	case m.previewing:
		body = m.viewPreview(canvasH)
	default:
		grid := newCellGrid(m.width, canvasH)
		drawBoard(grid, state, m.session.Selection, m.session.Machine.Interaction(), m.session.PendingWire())
		body = grid.String()
	}

	var footer string
	switch m.editing {
	case editTitle:
		footer = "title: " + m.titleInput.View()
	case editContent:
		footer = m.contentInput.View()
	default:
		footer = footerStyle.Render("drag: move  ◢: resize  dbl-click: new  ctrl+drag: marquee  n: note  t/e: edit  y/p: copy/paste  u/U: undo/redo  q: quit")
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) viewPreview(height int) string {
	p := m.session.State().FindPin(m.session.Selection.Focused())
	if p == nil {
		return "No pin selected."
	}
	md := p.Content
	if p.Title != "" {
		md = "# " + p.Title + "\n\n" + md
	}
	out := renderMarkdown(md, max(40, m.width-4))
	lines := strings.Split(out, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
