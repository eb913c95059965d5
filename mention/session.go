package mention

import (
	"errors"

	"github.com/iw2rmb/hashmark/document"
)

// ErrNoQuery reports a commit attempted while no suggestions are showing.
var ErrNoQuery = errors.New("mention: no active query")

// Phase is the per-document state of hashtag entry.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScanning:
		return "scanning"
	case PhaseCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// Snapshot is the observable session state.
type Snapshot struct {
	Phase       Phase
	Query       Query
	Suggestions []string
	Selected    int
}

// Visible reports whether a suggestion list should be shown.
func (s Snapshot) Visible() bool {
	return s.Phase == PhaseScanning && len(s.Suggestions) > 0
}

func (s Snapshot) clone() Snapshot {
	s.Suggestions = append([]string(nil), s.Suggestions...)
	return s
}

// SessionConfig configures a Session. Zero values select "#", HASHTAG and
// DefaultVocabulary.
type SessionConfig struct {
	Trigger    string
	EntityType string
	Vocabulary *Vocabulary
}

// Session drives Idle -> Scanning -> Committing -> Idle for one document.
//
// The zero value is usable. Session holds no reference to the document; every
// call takes the current one.
type Session struct {
	cfg   SessionConfig
	state Snapshot

	// dismissed remembers the query closed by Dismiss so that re-scanning the
	// same text does not reopen it.
	dismissed    Query
	hasDismissed bool
}

func NewSession(cfg SessionConfig) Session {
	return Session{cfg: cfg}
}

func (s *Session) config() SessionConfig {
	cfg := s.cfg
	if cfg.Trigger == "" {
		cfg.Trigger = DefaultTrigger
	}
	if cfg.EntityType == "" {
		cfg.EntityType = document.EntityHashtag
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = DefaultVocabulary()
		s.cfg.Vocabulary = cfg.Vocabulary
	}
	return cfg
}

func (s *Session) commitOptions() CommitOptions {
	cfg := s.config()
	return CommitOptions{Trigger: cfg.Trigger, EntityType: cfg.EntityType}
}

// Vocabulary returns the candidates the session filters.
func (s *Session) Vocabulary() *Vocabulary { return s.config().Vocabulary }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot { return s.state.clone() }

// Update re-runs scan and filter against doc.
//
// The session goes idle when the caret leaves the trigger token, the token
// gains whitespace, the token is already tagged, or no suggestion survives the
// filter. The selected suggestion is kept while the query keeps its anchor.
func (s *Session) Update(doc *document.Document) Snapshot {
	cfg := s.config()

	q, ok := Scan(doc, cfg.Trigger)
	if !ok || doc.SpanHasEntity(q.Block, q.Match.Span()) {
		s.hasDismissed = false
		s.state = Snapshot{}
		return s.Snapshot()
	}
	if s.hasDismissed && s.dismissed == q {
		s.state = Snapshot{}
		return s.Snapshot()
	}
	s.hasDismissed = false

	suggestions := cfg.Vocabulary.Filter(q.Term)
	if len(suggestions) == 0 {
		s.state = Snapshot{}
		return s.Snapshot()
	}

	selected := 0
	prev := s.state
	if prev.Phase == PhaseScanning && prev.Query.BlockKey == q.BlockKey && prev.Query.Match.Start == q.Match.Start {
		if cur, ok := selectedItem(prev); ok {
			for i, it := range suggestions {
				if it == cur {
					selected = i
					break
				}
			}
		}
	}

	s.state = Snapshot{
		Phase:       PhaseScanning,
		Query:       q,
		Suggestions: suggestions,
		Selected:    selected,
	}
	return s.Snapshot()
}

// Move shifts the selected suggestion by delta, wrapping at both ends.
func (s *Session) Move(delta int) {
	n := len(s.state.Suggestions)
	if s.state.Phase != PhaseScanning || n == 0 {
		return
	}
	s.state.Selected = ((s.state.Selected+delta)%n + n) % n
}

// Selected returns the highlighted suggestion.
func (s *Session) Selected() (string, bool) {
	return selectedItem(s.state)
}

func selectedItem(st Snapshot) (string, bool) {
	if st.Phase != PhaseScanning || st.Selected < 0 || st.Selected >= len(st.Suggestions) {
		return "", false
	}
	return st.Suggestions[st.Selected], true
}

// Commit replaces the active query with choice. On success the session is in
// PhaseCommitting until Clear; on failure the state is unchanged.
func (s *Session) Commit(doc *document.Document, choice string) (document.EntityKey, error) {
	if s.state.Phase != PhaseScanning {
		return document.NoEntity, ErrNoQuery
	}
	q := s.state.Query
	key, err := CommitSuggestion(doc, q.BlockKey, q.Match.Span(), choice, s.commitOptions())
	if err != nil {
		return document.NoEntity, err
	}
	s.state = Snapshot{Phase: PhaseCommitting, Query: q}
	return key, nil
}

// CommitAt scans doc and commits choice over the query at the caret. Unlike
// Commit it does not need visible suggestions, so a fully typed or unmatched
// term can still be replaced.
func (s *Session) CommitAt(doc *document.Document, choice string) (document.EntityKey, error) {
	q, ok := Scan(doc, s.config().Trigger)
	if !ok {
		return document.NoEntity, ErrNoQuery
	}
	key, err := CommitSuggestion(doc, q.BlockKey, q.Match.Span(), choice, s.commitOptions())
	if err != nil {
		return document.NoEntity, err
	}
	s.hasDismissed = false
	s.state = Snapshot{Phase: PhaseCommitting, Query: q}
	return key, nil
}

// CommitSelected commits the highlighted suggestion.
func (s *Session) CommitSelected(doc *document.Document) (document.EntityKey, error) {
	choice, ok := s.Selected()
	if !ok {
		return document.NoEntity, ErrNoQuery
	}
	return s.Commit(doc, choice)
}

// AutoTag runs the package-level AutoTag with the session's settings and
// leaves the session idle when it applies.
func (s *Session) AutoTag(doc *document.Document) (document.EntityKey, bool) {
	cfg := s.config()
	key, ok := AutoTag(doc, cfg.Vocabulary, s.commitOptions())
	if ok {
		s.state = Snapshot{}
		s.hasDismissed = false
	}
	return key, ok
}

// Clear finishes a commit and returns to idle.
func (s *Session) Clear() {
	if s.state.Phase == PhaseCommitting {
		s.state = Snapshot{}
	}
}

// Dismiss hides suggestions for the current query without committing.
func (s *Session) Dismiss() {
	if s.state.Phase == PhaseScanning {
		s.dismissed = s.state.Query
		s.hasDismissed = true
	}
	s.state = Snapshot{}
}
