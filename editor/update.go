package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/hashmark/document"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.doc == nil {
		return m, nil
	}

	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.doc.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	if !m.cfg.ReadOnly && m.session.Snapshot().Visible() {
		if handled, cmd := (&m).updateSuggestionKey(msg); handled {
			return m, cmd
		}
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirLeft})
	case key.Matches(msg, km.Right):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirRight})
	case key.Matches(msg, km.Up):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirUp})
	case key.Matches(msg, km.Down):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.doc.Move(document.Move{Unit: document.MoveGrapheme, Dir: document.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.doc.Move(document.Move{Unit: document.MoveWord, Dir: document.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.doc.Move(document.Move{Unit: document.MoveWord, Dir: document.DirRight})

	case key.Matches(msg, km.Home):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirHome})
	case key.Matches(msg, km.End):
		m.doc.Move(document.Move{Unit: document.MoveLine, Dir: document.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.doc.Move(document.Move{Unit: document.MoveDoc, Dir: document.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.doc.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.doc.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.doc.InsertNewline()
		}

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.doc.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.doc.Redo()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.pasteClipboard()
		}

	default:
		if m.cfg.ReadOnly {
			return m, nil
		}
		if msg.Type == tea.KeyTab {
			m.doc.InsertText("\t")
			return m, nil
		}
		if msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && string(msg.Runes) == " ") {
			if m.cfg.AutoTagOnSpace {
				if _, ok := m.session.AutoTag(m.doc); ok {
					return m, nil
				}
			}
			m.doc.InsertText(" ")
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.doc.InsertText(string(msg.Runes))
		}
	}

	return m, nil
}

// updateSuggestionKey handles popup navigation while suggestions are visible.
func (m *Model) updateSuggestionKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	km := m.cfg.SuggestionKeyMap
	switch {
	case key.Matches(msg, km.Next):
		m.session.Move(1)
	case key.Matches(msg, km.Prev):
		m.session.Move(-1)
	case key.Matches(msg, km.Accept), km.AcceptTab && msg.Type == tea.KeyTab:
		return true, m.acceptSuggestion()
	case key.Matches(msg, km.Dismiss):
		m.session.Dismiss()
	default:
		return false, nil
	}
	return true, nil
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil || m.doc == nil {
		return
	}
	r, ok := m.doc.Selection()
	if !ok {
		return
	}
	s := m.doc.TextInRange(r)
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.cfg.Logger.Debug("clipboard write failed", "err", err)
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil || m.doc == nil {
		return
	}
	if _, ok := m.doc.Selection(); !ok {
		return
	}
	m.copySelection()
	m.doc.DeleteSelection()
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.doc == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.cfg.Logger.Debug("clipboard read failed", "err", err)
		return
	}
	if s == "" {
		return
	}
	m.doc.InsertText(normalizeNewlines(s))
}

// normalizeNewlines converts newlines from external sources to "\n".
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
