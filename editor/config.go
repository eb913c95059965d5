package editor

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/hashmark/mention"
)

const (
	defaultSuggestionMaxVisibleRows = 8
	defaultSuggestionMaxWidth       = 40
	defaultTabWidth                 = 4
)

// ScrollPolicy decides whether the viewport may move without the caret.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the mouse wheel scroll away from the caret.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores wheel events; only caret movement
	// scrolls.
	ScrollFollowCursorOnly
)

// Clipboard moves plain text in and out of the editor. Hashtag entities are
// not carried: pasted "#word" text is untagged. Errors are logged at debug
// level and otherwise ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal document.
	Text string

	// Hashtag entry. Zero values select "#", HASHTAG and
	// mention.DefaultVocabulary.
	Trigger    string
	EntityType string
	Vocabulary *mention.Vocabulary

	// AutoTagOnSpace converts a typed, untagged "#word" into an entity when
	// the user types a space after it.
	AutoTagOnSpace bool

	// Decorator computes styled ranges per block. Nil selects
	// mention.DefaultDecorator.
	Decorator mention.Decorator

	// Rendering options.
	ShowLineNums bool
	TabWidth     int
	Style        Style

	// StyleForComponent overrides the style of a decoration component.
	StyleForComponent func(component string) (lipgloss.Style, bool)

	KeyMap           KeyMap
	SuggestionKeyMap SuggestionKeyMap

	SuggestionMaxVisibleRows int
	SuggestionMaxWidth       int

	ScrollPolicy ScrollPolicy
	ReadOnly     bool
	Clipboard    Clipboard

	// Forwarded to document.Options.
	HistoryLimit int

	// Logger receives debug records for rejected commits and clipboard
	// failures. Nil discards them.
	Logger *log.Logger
}

func normalizeConfig(cfg Config) Config {
	if cfg.Trigger == "" {
		cfg.Trigger = mention.DefaultTrigger
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = mention.DefaultVocabulary()
	}
	if cfg.Decorator == nil {
		cfg.Decorator = mention.DefaultDecorator()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if cfg.SuggestionMaxVisibleRows <= 0 {
		cfg.SuggestionMaxVisibleRows = defaultSuggestionMaxVisibleRows
	}
	if cfg.SuggestionMaxWidth <= 0 {
		cfg.SuggestionMaxWidth = defaultSuggestionMaxWidth
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	cfg.Style = normalizeStyle(cfg.Style)
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.SuggestionKeyMap = normalizeSuggestionKeyMap(cfg.SuggestionKeyMap)
	return cfg
}
