package editor

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/hashmark/mention"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Decoration components.
	Hashtag    lipgloss.Style
	Suggestion lipgloss.Style

	// Suggestion popup rows.
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),

		Hashtag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#6078f0")),
		Suggestion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6078f0")).
			Underline(true),

		PopupItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),
		PopupSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#6078f0")).
			Bold(true),
	}
}

func normalizeStyle(st Style) Style {
	if reflect.DeepEqual(st, Style{}) {
		return DefaultStyle()
	}
	return st
}

// componentStyle resolves the style of a decoration component. Host overrides
// from Config.StyleForComponent win over the built-in components.
func (m Model) componentStyle(component string) (lipgloss.Style, bool) {
	if m.cfg.StyleForComponent != nil {
		if st, ok := m.cfg.StyleForComponent(component); ok {
			return st.Inherit(m.cfg.Style.Text), true
		}
	}
	switch component {
	case mention.ComponentHashtag:
		return m.cfg.Style.Hashtag.Inherit(m.cfg.Style.Text), true
	case mention.ComponentSuggestion:
		return m.cfg.Style.Suggestion.Inherit(m.cfg.Style.Text), true
	default:
		return lipgloss.Style{}, false
	}
}

func popupRowStyle(st Style, selected bool) lipgloss.Style {
	if selected {
		return st.PopupSelected
	}
	return st.PopupItem
}
