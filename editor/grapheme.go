package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/iw2rmb/hashmark/internal/grapheme"
)

// graphemeCellWidth is the terminal width of one grapheme cluster starting at
// visualCol.
func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	adv := tabWidth - visualCol%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}

// cellOffset returns the cell column of the UTF-16 offset off in text.
func cellOffset(text string, off, tabWidth int) int {
	cell := 0
	for _, c := range graphemeutil.Clusters(text) {
		if c.Start >= off {
			break
		}
		cell += graphemeCellWidth(c.Text, cell, tabWidth)
	}
	return cell
}

// offsetAtCell returns the UTF-16 offset of the cluster covering cell, or the
// text length when cell is past the end.
func offsetAtCell(text string, cell, tabWidth int) int {
	used := 0
	for _, c := range graphemeutil.Clusters(text) {
		w := graphemeCellWidth(c.Text, used, tabWidth)
		if cell < used+maxInt(w, 1) {
			return c.Start
		}
		used += w
	}
	return graphemeutil.Len16(text)
}

func textCellWidth(text string) int {
	used := 0
	for _, g := range graphemeutil.Split(text) {
		used += maxInt(graphemeCellWidth(g, used, defaultTabWidth), 1)
	}
	return used
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
