package main

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/hashmark"
	"github.com/iw2rmb/hashmark/editor"
	"github.com/iw2rmb/hashmark/internal/config"
	"github.com/iw2rmb/hashmark/internal/logger"
	"github.com/iw2rmb/hashmark/mention"
)

const defaultText = "Type # to pick a hashtag, for example #Ni. Ctrl+Q quits."

// EditCmd runs the interactive editor.
type EditCmd struct {
	Text string `help:"Initial text."`
}

func (c *EditCmd) Run(g *Globals) error {
	cfg, path := config.LoadWithPriority(g.Config)
	lg, closeLog, err := logger.Open(logger.Options{
		Prefix:    "hashmark",
		Level:     cfg.Log.Level,
		Timestamp: cfg.Log.Timestamp,
		Caller:    cfg.Log.Caller,
		File:      cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	if path != "" {
		lg.Debug("config loaded", "path", path)
	}

	text := c.Text
	if text == "" {
		text = defaultText
	}
	p := tea.NewProgram(newApp(editorConfig(cfg, text, lg)), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}

// editorConfig maps file config onto the editor.
func editorConfig(cfg *config.Config, text string, lg *log.Logger) editor.Config {
	km := editor.DefaultSuggestionKeyMap()
	km.AcceptTab = cfg.Popup.AcceptTab

	ec := editor.Config{
		Text:                     text,
		Trigger:                  cfg.Editor.Trigger,
		EntityType:               cfg.Editor.EntityType,
		AutoTagOnSpace:           cfg.Editor.AutoTagOnSpace,
		ShowLineNums:             cfg.Editor.ShowLineNums,
		TabWidth:                 cfg.Editor.TabWidth,
		HistoryLimit:             cfg.Editor.HistoryLimit,
		Style:                    editor.DefaultStyle(),
		SuggestionKeyMap:         km,
		SuggestionMaxVisibleRows: cfg.Popup.MaxVisibleRows,
		SuggestionMaxWidth:       cfg.Popup.MaxWidth,
		Logger:                   lg,
	}
	if cfg.Editor.HighlightTyped {
		rules := append([]mention.Rule(nil), mention.DefaultDecorator()...)
		rules = append(rules, mention.Rule{
			Strategy:  mention.RegexStrategy(typedPattern(cfg.Editor.Trigger)),
			Component: mention.ComponentSuggestion,
		})
		ec.Decorator = mention.NewCompositeDecorator(rules...)
	}
	return ec
}

func typedPattern(trigger string) *regexp.Regexp {
	if trigger == "" || trigger == mention.DefaultTrigger {
		return mention.HashtagPattern
	}
	return regexp.MustCompile(regexp.QuoteMeta(trigger) + `[\p{L}\p{N}_]+`)
}

// status is shared by every copy of app; listeners write into it.
type status struct {
	changes int
	last    editor.ChangeEvent
	sugg    editor.SuggestionState
}

type app struct {
	editor editor.Model
	status *status
	muted  lipgloss.Style
}

func newApp(cfg editor.Config) app {
	st := &status{}
	m := editor.New(cfg)
	m.OnChange(func(ev editor.ChangeEvent) {
		st.changes++
		st.last = ev
	})
	m.OnSuggestions(func(s editor.SuggestionState) { st.sugg = s })
	st.last.Version = m.Document().Version()
	st.last.Cursor = m.Document().Cursor()
	return app{
		editor: m,
		status: st,
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (a app) Init() tea.Cmd { return a.editor.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetSize(msg.Width, editorHeight(msg.Height))
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a app) View() string {
	return a.editor.View() + "\n" + a.muted.Render(a.statusLine())
}

func (a app) statusLine() string {
	doc := a.editor.Document()
	tags := 0
	for b := 0; b < doc.BlockCount(); b++ {
		tags += len(doc.EntityRanges(b))
	}
	parts := []string{
		a.status.sugg.Phase.String(),
		fmt.Sprintf("tags %d", tags),
		fmt.Sprintf("v%d", a.status.last.Version),
		fmt.Sprintf("%d:%d", a.status.last.Cursor.Block, a.status.last.Cursor.Offset),
	}
	if a.status.sugg.Visible {
		parts = append(parts, fmt.Sprintf("%q %d/%d", a.status.sugg.Term, a.status.sugg.Selected+1, len(a.status.sugg.Items)))
	}
	parts = append(parts, hashmark.VersionTag())
	return strings.Join(parts, " | ")
}

func editorHeight(total int) int {
	if total <= 1 {
		return 0
	}
	return total - 1
}
