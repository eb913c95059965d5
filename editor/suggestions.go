package editor

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/hashmark/document"
	"github.com/iw2rmb/hashmark/mention"
)

// SuggestionState is the host-visible view of hashtag entry.
type SuggestionState struct {
	Visible bool
	Phase   mention.Phase

	// Anchor is the position of the trigger character; the popup is aligned
	// to it so the list does not slide while the term grows. Caret is the
	// caret at the end of the query. SuggestionCaret maps it to the screen.
	Anchor   document.Pos
	Caret    document.Pos
	BlockKey string
	Span     document.Span
	Term     string

	Items    []string
	Selected int
}

func suggestionStateFromSnapshot(s mention.Snapshot) SuggestionState {
	st := SuggestionState{
		Visible: s.Visible(),
		Phase:   s.Phase,
	}
	if s.Phase == mention.PhaseIdle {
		return st
	}
	st.Anchor = document.Pos{Block: s.Query.Block, Offset: s.Query.Match.Start}
	st.Caret = document.Pos{Block: s.Query.Block, Offset: s.Query.Match.End}
	st.BlockKey = s.Query.BlockKey
	st.Span = s.Query.Match.Span()
	st.Term = s.Query.Term
	st.Items = slices.Clone(s.Suggestions)
	st.Selected = s.Selected
	return st
}

func (s SuggestionState) equal(o SuggestionState) bool {
	return s.Visible == o.Visible &&
		s.Phase == o.Phase &&
		s.Anchor == o.Anchor &&
		s.Caret == o.Caret &&
		s.BlockKey == o.BlockKey &&
		s.Span == o.Span &&
		s.Term == o.Term &&
		s.Selected == o.Selected &&
		slices.Equal(s.Items, o.Items)
}

func (s SuggestionState) clone() SuggestionState {
	s.Items = slices.Clone(s.Items)
	return s
}

// Suggestions returns the current suggestion state.
func (m Model) Suggestions() SuggestionState { return m.suggestions.clone() }

// SuggestionCaret returns the viewport cell of the query's caret. It
// reports false when no query is active or the caret is scrolled out of view.
func (m Model) SuggestionCaret() (x, y int, ok bool) {
	if m.suggestions.Phase != mention.PhaseScanning {
		return 0, 0, false
	}
	return m.DocToScreen(m.suggestions.Caret)
}

// DismissSuggestions hides the popup for the current query.
func (m Model) DismissSuggestions() Model {
	m.session.Dismiss()
	m.refreshSuggestions(false)
	return m
}

// clearSuggestionsMsg finishes a commit on the frame after it was applied.
// It clears unconditionally: edits made before it arrives are picked up by
// the rescan that follows.
type clearSuggestionsMsg struct{}

func clearSuggestions() tea.Msg { return clearSuggestionsMsg{} }

// refreshSuggestions re-runs the session when rescan is set and publishes the
// resulting state to listeners if it changed.
func (m *Model) refreshSuggestions(rescan bool) bool {
	if rescan && m.session.Snapshot().Phase != mention.PhaseCommitting {
		m.session.Update(m.doc)
	}
	st := suggestionStateFromSnapshot(m.session.Snapshot())
	if st.equal(m.suggestions) {
		return false
	}
	m.suggestions = st
	m.hooks.suggestions.emit(st.clone())
	return true
}

func (m *Model) acceptSuggestion() tea.Cmd {
	choice, ok := m.session.Selected()
	if !ok {
		return nil
	}
	key, err := m.session.Commit(m.doc, choice)
	if err != nil {
		m.cfg.Logger.Debug("suggestion rejected", "choice", choice, "err", err)
		m.session.Dismiss()
		return nil
	}
	m.cfg.Logger.Debug("suggestion committed", "choice", choice, "entity", key)
	return clearSuggestions
}
