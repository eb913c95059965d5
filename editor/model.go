package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/hashmark/document"
	"github.com/iw2rmb/hashmark/mention"
)

// Model is a Bubble Tea component that renders and edits a document and
// offers hashtag suggestions near the caret.
type Model struct {
	cfg     Config
	doc     *document.Document
	session mention.Session
	hooks   *hooks

	focused bool

	viewport viewport.Model

	lastVersion uint64
	lastCursor  document.Pos
	lastSel     document.Range
	lastSelOK   bool

	suggestions SuggestionState

	mouseAnchor   document.Pos
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg: cfg,
		doc: document.New(cfg.Text, document.Options{HistoryLimit: cfg.HistoryLimit}),
		session: mention.NewSession(mention.SessionConfig{
			Trigger:    cfg.Trigger,
			EntityType: cfg.EntityType,
			Vocabulary: cfg.Vocabulary,
		}),
		hooks:    &hooks{},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastVersion = m.doc.Version()
	m.lastCursor = m.doc.Cursor()
	m.lastSel, m.lastSelOK = m.doc.Selection()
	m.refreshSuggestions(true)
	m.rebuildContent()
	return m
}

// Document returns the edited document. Hosts may mutate it directly; the
// model picks the changes up on its next Update.
func (m Model) Document() *document.Document { return m.doc }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case clearSuggestionsMsg:
		m.session.Clear()
		m.syncFromDocument()
		m.refreshSuggestions(true)
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		if m.syncFromDocument() {
			m.followCursor()
		}
		return m, cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		if m.syncFromDocument() {
			m.followCursor()
		}
		return m, cmd
	default:
		// Hosts may drive edits by mutating the document.
		if m.syncFromDocument() {
			m.followCursor()
		}
		return m, nil
	}
}

func (m Model) View() string {
	base := m.viewport.View()
	if popup, ok := m.suggestionPopupRender(base); ok {
		return popup.View
	}
	return base
}

// syncFromDocument notices document, caret and selection changes, notifies
// listeners, and re-runs hashtag scanning.
func (m *Model) syncFromDocument() (cursorChanged bool) {
	if m.doc == nil {
		return false
	}
	ver := m.doc.Version()
	cur := m.doc.Cursor()
	sel, selOK := m.doc.Selection()
	if ver == m.lastVersion && cur == m.lastCursor && selOK == m.lastSelOK && sel == m.lastSel {
		m.refreshSuggestions(false)
		return false
	}

	cursorChanged = cur != m.lastCursor
	m.lastVersion = ver
	m.lastCursor = cur
	m.lastSel, m.lastSelOK = sel, selOK

	m.rebuildContent()
	ev := buildChangeEvent(m.doc)
	if ev.HasChange && ev.Change.VersionAfter == ver {
		if dropped := ev.Change.DroppedEntities(); len(dropped) > 0 {
			m.cfg.Logger.Debug("hashtags removed", "keys", dropped)
		}
	}
	m.hooks.change.emit(ev)
	m.refreshSuggestions(true)
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) visibleRowCount() int {
	return m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
}

func (m *Model) followCursor() {
	if m.doc == nil {
		return
	}
	row := m.doc.Cursor().Block
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
