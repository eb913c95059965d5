package editor

import "fmt"

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}

// gutterWidth is the cell width of the line-number gutter, including its
// separator.
func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.doc == nil {
		return 0
	}
	return gutterDigits(m.doc.BlockCount()) + 1
}

func (m Model) renderGutter(block, digits int, active bool) string {
	st := m.cfg.Style.LineNum
	if active {
		st = m.cfg.Style.LineNumActive
	}
	return st.Render(fmt.Sprintf("%*d", digits, block+1)) + m.cfg.Style.Gutter.Render(" ")
}
