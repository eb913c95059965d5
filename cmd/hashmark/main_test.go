package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/hashmark"
	"github.com/iw2rmb/hashmark/document"
	"github.com/iw2rmb/hashmark/internal/config"
	"github.com/iw2rmb/hashmark/internal/logger"
	"github.com/iw2rmb/hashmark/mention"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var c cli
	var out bytes.Buffer
	parser, err := kong.New(&c, kong.Name("hashmark"), kong.Writers(&out, &out), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	err = kctx.Run(&c.Globals)
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got, want := out, hashmark.BuildInfo()+"\n"; got != want {
		t.Fatalf("out=%q, want %q", got, want)
	}
}

func TestScanCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "suggestions",
			args: []string{"scan", "Hello #Ni"},
			want: "query \"#Ni\" block 0 [6,9) term \"Ni\"\n  Nieminen\n  Niittukari\n",
		},
		{
			name: "caret inside second block",
			args: []string{"scan", "x\n#ka tail", "--caret", "5"},
			want: "query \"#ka\" block 1 [0,3) term \"ka\"\n  Kallio\n  Niittukari\n",
		},
		{
			name: "no trigger",
			args: []string{"scan", "plain"},
			want: "no query\n",
		},
		{
			name: "did you mean",
			args: []string{"scan", "#nmn"},
			want: "query \"#nmn\" block 0 [0,4) term \"nmn\"\nno suggestions\ndid you mean Nieminen?\n",
		},
		{
			name: "no suggestions",
			args: []string{"scan", "#zzz"},
			want: "query \"#zzz\" block 0 [0,4) term \"zzz\"\nno suggestions\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("scan: %v", err)
			}
			if out != tt.want {
				t.Fatalf("out=%q, want %q", out, tt.want)
			}
		})
	}
}

func TestCommitCommand(t *testing.T) {
	out, err := runCLI(t, "commit", "Hello #Ni", "Kallio")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	want := strings.Join([]string{
		`text "Hello #Kallio "`,
		"caret 0:14",
		`entity 1 HASHTAG IMMUTABLE 0:[6,13) "#Kallio"`,
		"",
	}, "\n")
	if out != want {
		t.Fatalf("out=%q, want %q", out, want)
	}
}

func TestCommitCommand_FullyTypedTerm(t *testing.T) {
	for _, text := range []string{"Hello #kallio", "Hello #zzz"} {
		out, err := runCLI(t, "commit", text, "Kallio")
		if err != nil {
			t.Fatalf("commit %q: %v", text, err)
		}
		if !strings.HasPrefix(out, "text \"Hello #Kallio \"\n") {
			t.Fatalf("commit %q out=%q", text, out)
		}
	}
}

func TestCommitCommand_NoQuery(t *testing.T) {
	_, err := runCLI(t, "commit", "Hello ", "Kallio")
	if !errors.Is(err, errNoQuery) {
		t.Fatalf("err=%v, want errNoQuery", err)
	}
}

func TestTagCommand(t *testing.T) {
	out, err := runCLI(t, "tag", "see #kallio")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	want := "text \"see #Kallio \"\ncaret 0:12\nentity 1 HASHTAG IMMUTABLE 0:[4,11) \"#Kallio\"\n"
	if out != want {
		t.Fatalf("out=%q, want %q", out, want)
	}

	if _, err := runCLI(t, "tag", "see "); !errors.Is(err, errNoQuery) {
		t.Fatalf("err=%v, want errNoQuery", err)
	}
}

func TestCommand_UsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.Trigger = "@"
	cfg.Editor.EntityType = document.EntitySuggestion

	var out bytes.Buffer
	c := CommitCmd{Text: "ping @ja", Choice: "Jaervinen", Caret: -1}
	if err := c.run(&out, cfg); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !strings.Contains(out.String(), `entity 1 SUGGESTION IMMUTABLE 0:[5,15) "@Jaervinen"`) {
		t.Fatalf("out=%q", out.String())
	}
}

func TestCaretPos(t *testing.T) {
	doc := document.New("ab\n\ncd", document.Options{})
	tests := []struct {
		caret int
		want  document.Pos
	}{
		{caret: -1, want: document.Pos{Block: 2, Offset: 2}},
		{caret: 0, want: document.Pos{}},
		{caret: 2, want: document.Pos{Offset: 2}},
		{caret: 3, want: document.Pos{Block: 1}},
		{caret: 4, want: document.Pos{Block: 2}},
		{caret: 6, want: document.Pos{Block: 2, Offset: 2}},
	}
	for _, tt := range tests {
		got, err := caretPos(doc, tt.caret)
		if err != nil {
			t.Fatalf("caretPos(%d): %v", tt.caret, err)
		}
		if got != tt.want {
			t.Fatalf("caretPos(%d)=%v, want %v", tt.caret, got, tt.want)
		}
	}
	if _, err := caretPos(doc, 7); !errors.Is(err, errCaretRange) {
		t.Fatalf("err=%v, want errCaretRange", err)
	}
}

func TestEditorConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Popup.AcceptTab = false
	cfg.Popup.MaxVisibleRows = 3

	ec := editorConfig(cfg, "hi", logger.Discard())
	if ec.Text != "hi" || ec.Trigger != "#" || ec.SuggestionMaxVisibleRows != 3 {
		t.Fatalf("editor config=%+v", ec)
	}
	if ec.SuggestionKeyMap.AcceptTab {
		t.Fatalf("accept_tab=false not applied")
	}
	if ec.Decorator != nil {
		t.Fatalf("decorator should default when highlight_typed is off")
	}

	cfg.Editor.HighlightTyped = true
	ec = editorConfig(cfg, "x #typed", logger.Discard())
	doc := document.New("x #typed", document.Options{})
	decs := ec.Decorator.Decorate(doc, 0)
	if len(decs) != 1 || decs[0].Component != mention.ComponentSuggestion || decs[0].Span != (document.Span{Start: 2, End: 8}) {
		t.Fatalf("decorations=%+v", decs)
	}
}

func TestTypedPattern(t *testing.T) {
	if typedPattern("#") != mention.HashtagPattern {
		t.Fatalf("default trigger should reuse HashtagPattern")
	}
	re := typedPattern("+")
	if got := re.FindString("a +b_1 c"); got != "+b_1" {
		t.Fatalf("match=%q", got)
	}
}

func TestApp_StatusFollowsEditing(t *testing.T) {
	a := newApp(editorConfig(config.DefaultConfig(), "", logger.Discard()))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	a = m.(app)

	for _, r := range "#Ni" {
		m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		a = m.(app)
	}
	line := a.statusLine()
	if !strings.HasPrefix(line, "scanning | tags 0 | ") || !strings.Contains(line, "| 0:3 | \"Ni\" 1/2 |") {
		t.Fatalf("status=%q", line)
	}

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(app)
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		m, cmd = a.Update(msg)
		a = m.(app)
	}
	if got := a.editor.Document().Text(); got != "#Nieminen " {
		t.Fatalf("text=%q", got)
	}
	if line := a.statusLine(); !strings.HasPrefix(line, "idle | tags 1 |") {
		t.Fatalf("status=%q", line)
	}
	if a.status.changes == 0 {
		t.Fatalf("change listener never fired")
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatalf("ctrl+q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+q should return tea.Quit")
	}
}

func TestEditorHeight(t *testing.T) {
	if editorHeight(0) != 0 || editorHeight(1) != 0 || editorHeight(10) != 9 {
		t.Fatalf("editorHeight mismatch")
	}
}
