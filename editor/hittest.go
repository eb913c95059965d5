package editor

import "github.com/iw2rmb/hashmark/document"

// DocToScreen maps a document position to viewport-local cell coordinates:
// (0,0) is the top-left of the visible content region, gutter included.
//
// It reports false when the position is scrolled out of view.
func (m Model) DocToScreen(p document.Pos) (x, y int, ok bool) {
	if m.doc == nil {
		return 0, 0, false
	}
	p = document.ClampPos(p, m.doc.BlockCount(), m.doc.BlockLen)

	h := m.visibleRowCount()
	y = p.Block - m.viewport.YOffset
	if h <= 0 || y < 0 || y >= h {
		return 0, 0, false
	}

	x = m.gutterWidth() + cellOffset(m.doc.BlockText(p.Block), p.Offset, m.cfg.TabWidth)
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	if w <= 0 || x >= w {
		return 0, 0, false
	}
	return x, y, true
}

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Gutter clicks map to the block start; coordinates past the content are
// clamped into document bounds.
func (m Model) screenToDocPos(x, y int) document.Pos {
	if m.doc == nil || m.doc.BlockCount() == 0 {
		return document.Pos{}
	}

	blk := clampInt(m.viewport.YOffset+y, 0, m.doc.BlockCount()-1)
	x -= m.gutterWidth()
	if x <= 0 {
		return document.Pos{Block: blk}
	}
	return document.Pos{Block: blk, Offset: offsetAtCell(m.doc.BlockText(blk), x, m.cfg.TabWidth)}
}
