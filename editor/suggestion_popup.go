package editor

import (
	"strings"

	overlay "github.com/rmhubbert/bubbletea-overlay"

	graphemeutil "github.com/iw2rmb/hashmark/internal/grapheme"
)

type suggestionPopupRender struct {
	View string
}

// suggestionPopupRender composites the suggestion list over base, below the
// trigger when there is room and above it otherwise.
func (m Model) suggestionPopupRender(base string) (suggestionPopupRender, bool) {
	state := m.suggestions
	if !state.Visible || len(state.Items) == 0 || m.doc == nil {
		return suggestionPopupRender{}, false
	}

	viewportWidth := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	viewportHeight := m.visibleRowCount()
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return suggestionPopupRender{}, false
	}

	anchorX, anchorY, ok := m.DocToScreen(state.Anchor)
	if !ok {
		return suggestionPopupRender{}, false
	}

	targetRows := minInt(m.cfg.SuggestionMaxVisibleRows, len(state.Items))

	belowAvail := maxInt(viewportHeight-(anchorY+1), 0)
	aboveAvail := maxInt(anchorY, 0)
	showBelow := true
	rowCount := targetRows
	if rowCount > belowAvail {
		if aboveAvail >= rowCount {
			showBelow = false
		} else if aboveAvail > belowAvail {
			showBelow = false
			rowCount = aboveAvail
		} else {
			rowCount = belowAvail
		}
	}
	if rowCount <= 0 {
		return suggestionPopupRender{}, false
	}

	selected := clampInt(state.Selected, 0, len(state.Items)-1)
	first := 0
	if selected >= rowCount {
		first = selected - rowCount + 1
	}
	items := state.Items[first : first+rowCount]

	widthCap := minInt(m.cfg.SuggestionMaxWidth, viewportWidth)
	popupWidth := 0
	for _, it := range items {
		popupWidth = maxInt(popupWidth, textCellWidth(it))
	}
	popupWidth = minInt(popupWidth, widthCap)
	if popupWidth <= 0 {
		return suggestionPopupRender{}, false
	}

	rendered := make([]string, 0, len(items))
	for i, it := range items {
		rendered = append(rendered, m.renderSuggestionRow(it, first+i == selected, popupWidth))
	}

	y := anchorY + 1
	if !showBelow {
		y = anchorY - len(rendered)
	}
	y = clampInt(y, 0, maxInt(viewportHeight-len(rendered), 0))
	x := clampInt(anchorX, 0, maxInt(viewportWidth-popupWidth, 0))

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return suggestionPopupRender{
		View: overlay.Composite(
			strings.Join(rendered, "\n"),
			base,
			overlay.Left,
			overlay.Top,
			leftFrame+x,
			topFrame+y,
		),
	}, true
}

func (m Model) renderSuggestionRow(item string, selected bool, width int) string {
	st := popupRowStyle(m.cfg.Style, selected)

	var sb strings.Builder
	used := 0
	for _, g := range graphemeutil.Split(sanitizeSuggestion(item)) {
		w := maxInt(graphemeCellWidth(g, used, m.cfg.TabWidth), 1)
		if used+w > width {
			break
		}
		sb.WriteString(g)
		used += w
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return st.Render(sb.String())
}

func sanitizeSuggestion(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
