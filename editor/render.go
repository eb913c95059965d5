package editor

import (
	"strings"

	"github.com/iw2rmb/hashmark/document"
	graphemeutil "github.com/iw2rmb/hashmark/internal/grapheme"
	"github.com/iw2rmb/hashmark/mention"
)

func (m *Model) renderContent() string {
	if m.doc == nil {
		return ""
	}

	n := m.doc.BlockCount()
	cursor := m.doc.Cursor()
	sel, selOK := m.doc.Selection()
	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(n)
	}

	out := make([]string, 0, n)
	for blk := 0; blk < n; blk++ {
		var sb strings.Builder
		if m.cfg.ShowLineNums {
			sb.WriteString(m.renderGutter(blk, digits, m.focused && blk == cursor.Block))
		}
		sb.WriteString(m.renderBlock(blk, cursor, sel, selOK))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderBlock renders one block. Precedence per cluster: cursor, selection,
// decoration, plain text.
func (m *Model) renderBlock(blk int, cursor document.Pos, sel document.Range, selOK bool) string {
	st := m.cfg.Style
	text := m.doc.BlockText(blk)
	blockLen := m.doc.BlockLen(blk)
	decorations := m.cfg.Decorator.Decorate(m.doc, blk)

	hasCursor := m.focused && cursor.Block == blk
	selStart, selEnd, hasSel := selectionSpanForBlock(sel, selOK, blk, blockLen)

	var sb strings.Builder
	cell := 0
	di := 0
	for _, c := range graphemeutil.Clusters(text) {
		w := graphemeCellWidth(c.Text, cell, m.cfg.TabWidth)
		display := c.Text
		if c.Text == "\t" {
			display = strings.Repeat(" ", w)
		}

		for di < len(decorations) && decorations[di].Span.End <= c.Start {
			di++
		}

		style := st.Text
		switch {
		case hasCursor && c.Start == cursor.Offset:
			style = st.Cursor
		case hasSel && c.Start < selEnd && c.End > selStart:
			style = st.Selection
		case di < len(decorations) && decorations[di].Span.Start <= c.Start:
			if ds, ok := m.componentStyle(decorations[di].Component); ok {
				style = ds
			}
		}
		sb.WriteString(style.Render(display))
		cell += w
	}

	// Cursor at end of block is rendered as a 1-cell placeholder.
	if hasCursor && cursor.Offset >= blockLen {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}

func selectionSpanForBlock(sel document.Range, ok bool, blk, blockLen int) (start, end int, has bool) {
	if !ok || blk < sel.Start.Block || blk > sel.End.Block {
		return 0, 0, false
	}
	start, end = 0, blockLen
	if blk == sel.Start.Block {
		start = sel.Start.Offset
	}
	if blk == sel.End.Block {
		end = sel.End.Offset
	}
	return start, end, start < end
}

// Decorations returns the decorated ranges of block as rendered.
func (m Model) Decorations(block int) []mention.Decoration {
	if m.doc == nil {
		return nil
	}
	return m.cfg.Decorator.Decorate(m.doc, block)
}
