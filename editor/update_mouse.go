package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/hashmark/document"
)

// updateMouse places the caret and drags selections with the left button.
// Pointer positions never land inside an immutable hashtag: they snap to the
// nearer edge, so a drag selects whole tags.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if isWheel(msg) {
		if m.cfg.ScrollPolicy == ScrollAllowManual {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused || m.doc == nil {
		return m, cmd
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.inViewport(msg.X, msg.Y) {
			return m, cmd
		}
		m.pressAt(m.pointerPos(msg.X, msg.Y), msg.Shift)

	case tea.MouseActionMotion:
		if m.mouseDragging {
			m.dragTo(m.pointerPos(m.clampToViewport(msg.X, msg.Y)))
		}

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, cmd
}

// pointerPos maps viewport cells to a caret position outside any immutable
// entity.
func (m Model) pointerPos(x, y int) document.Pos {
	return m.doc.SnapOutOfImmutable(m.screenToDocPos(x, y))
}

func (m *Model) pressAt(p document.Pos, extend bool) {
	m.mouseDragging = true
	if !extend {
		m.mouseAnchor = p
		m.doc.SetCursor(p)
		return
	}
	m.mouseAnchor = m.doc.Cursor()
	if r, ok := m.doc.Selection(); ok {
		m.mouseAnchor = r.Start
	}
	m.doc.SetSelection(document.Range{Start: m.mouseAnchor, End: p})
}

func (m *Model) dragTo(p document.Pos) {
	if p == m.mouseAnchor {
		m.doc.SetCursor(p)
		return
	}
	m.doc.SetSelection(document.Range{Start: m.mouseAnchor, End: p})
}

func isWheel(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m Model) inViewport(x, y int) bool {
	w, h := m.viewport.Width, m.viewport.Height
	return w > 0 && h > 0 && x >= 0 && x < w && y >= 0 && y < h
}

func (m Model) clampToViewport(x, y int) (int, int) {
	if w := m.viewport.Width; w > 0 {
		x = clampInt(x, 0, w-1)
	}
	if h := m.viewport.Height; h > 0 {
		y = clampInt(y, 0, h-1)
	}
	return x, y
}
