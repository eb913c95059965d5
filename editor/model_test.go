package editor

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/hashmark/document"
)

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Text: "a\nb\nc"})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Text:         "one\ntwo\nthree\nfour\nfive",
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(8, 3)

	assertLines(t, viewLines(m), []string{
		"1 one",
		"2 two",
		"3 three",
	})
}

func TestModel_FollowsCursor(t *testing.T) {
	m := New(Config{Text: "a\nb\nc\nd"})
	m = m.SetSize(10, 2)

	m.Document().SetCursor(document.Pos{Block: 3})
	m, _ = m.Update(nil)
	if got := m.viewport.YOffset; got != 2 {
		t.Fatalf("y offset=%d, want 2", got)
	}
}

func TestModel_PicksUpHostEdits(t *testing.T) {
	m := New(Config{})
	m.Document().InsertText("#Ni")
	if m.Suggestions().Visible {
		t.Fatalf("suggestions must not change before Update")
	}

	m, _ = m.Update(nil)
	if !m.Suggestions().Visible {
		t.Fatalf("host edit should open suggestions after Update")
	}
}

func TestModel_DismissSuggestions(t *testing.T) {
	m := typeText(New(Config{}), "#Ni")
	m = m.DismissSuggestions()
	if m.Suggestions().Visible {
		t.Fatalf("suggestions still visible after dismiss")
	}
}

func TestModel_FocusToggle(t *testing.T) {
	m := New(Config{})
	if !m.Focused() {
		t.Fatalf("new model should be focused")
	}
	if m = m.Blur(); m.Focused() {
		t.Fatalf("blur did not take effect")
	}
	if m = m.Focus(); !m.Focused() {
		t.Fatalf("focus did not take effect")
	}
}
