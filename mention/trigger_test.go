package mention

import (
	"strings"
	"testing"

	"github.com/iw2rmb/hashmark/document"
)

func TestFindTrigger(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Match
		ok   bool
	}{
		{name: "scenario", in: "Hello #Ni", want: Match{Start: 6, End: 9, Text: "#Ni"}, ok: true},
		{name: "trigger only", in: "#", want: Match{Start: 0, End: 1, Text: "#"}, ok: true},
		{name: "last trigger wins", in: "#a #bc", want: Match{Start: 3, End: 6, Text: "#bc"}, ok: true},
		{name: "glued to word", in: "x#y", want: Match{Start: 1, End: 3, Text: "#y"}, ok: true},
		{name: "utf16 offsets", in: "\U0001F600 #\u00e4", want: Match{Start: 3, End: 5, Text: "#\u00e4"}, ok: true},
		{name: "empty", in: ""},
		{name: "trailing space", in: "Hello #Ni "},
		{name: "trailing newline", in: "#Ni\n"},
		{name: "trailing tab", in: "#Ni\t"},
		{name: "no trigger", in: "Hello"},
		{name: "whitespace after trigger", in: "#Ni more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindTrigger(tt.in, DefaultTrigger)
			if ok != tt.ok {
				t.Fatalf("FindTrigger(%q) ok=%v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("FindTrigger(%q)=%+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindTrigger_EmptyTriggerNeverMatches(t *testing.T) {
	if _, ok := FindTrigger("#abc", ""); ok {
		t.Fatalf("empty trigger must not match")
	}
}

func TestFindTrigger_MatchEndsAtCaret(t *testing.T) {
	inputs := []string{"#", "a #b", "##", "x #Ni", "\u00e4\u00e4#\u00f6", "line #tag"}
	for _, in := range inputs {
		m, ok := FindTrigger(in, DefaultTrigger)
		if !ok {
			t.Fatalf("FindTrigger(%q) expected a match", in)
		}
		if !strings.HasPrefix(m.Text, DefaultTrigger) {
			t.Fatalf("FindTrigger(%q) text %q lacks trigger", in, m.Text)
		}
		if m.End != document.UTF16Len(in) {
			t.Fatalf("FindTrigger(%q) end=%d, want %d", in, m.End, document.UTF16Len(in))
		}
		if m.Start > m.End {
			t.Fatalf("FindTrigger(%q) start %d > end %d", in, m.Start, m.End)
		}
	}
}

func TestFindTrigger_TrailingWhitespaceNeverMatches(t *testing.T) {
	for _, in := range []string{" ", "#", "#abc", "a b"} {
		for _, ws := range []string{" ", "\t", "\n", "\u00a0"} {
			if _, ok := FindTrigger(in+ws, DefaultTrigger); ok {
				t.Fatalf("FindTrigger(%q) should not match", in+ws)
			}
		}
	}
}

func TestMatch_Term(t *testing.T) {
	m := Match{Start: 6, End: 9, Text: "#Ni"}
	if got, want := m.Term(DefaultTrigger), "Ni"; got != want {
		t.Fatalf("term=%q, want %q", got, want)
	}
	if got, want := m.Span(), (document.Span{Start: 6, End: 9}); got != want {
		t.Fatalf("span=%v, want %v", got, want)
	}
}

func TestScan_UsesCaretBlock(t *testing.T) {
	doc := document.New("first\nHello #Ni there", document.Options{})
	doc.SetCursor(document.Pos{Block: 1, Offset: 9})

	q, ok := Scan(doc, DefaultTrigger)
	if !ok {
		t.Fatalf("expected a query")
	}
	if q.Block != 1 || q.BlockKey != doc.BlockKey(1) {
		t.Fatalf("query block=%d key=%q", q.Block, q.BlockKey)
	}
	if got, want := q.Match, (Match{Start: 6, End: 9, Text: "#Ni"}); got != want {
		t.Fatalf("match=%+v, want %+v", got, want)
	}
	if q.Term != "Ni" {
		t.Fatalf("term=%q, want %q", q.Term, "Ni")
	}
}

func TestScan_SelectionHasNoCaret(t *testing.T) {
	doc := document.New("#Ni", document.Options{})
	doc.SetSelection(document.Range{End: document.Pos{Offset: 3}})
	if _, ok := Scan(doc, DefaultTrigger); ok {
		t.Fatalf("scan with active selection should not match")
	}
	if _, ok := Scan(nil, DefaultTrigger); ok {
		t.Fatalf("scan without document should not match")
	}
}
