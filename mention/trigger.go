package mention

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iw2rmb/hashmark/document"
)

// DefaultTrigger starts a taggable token.
const DefaultTrigger = "#"

// Match is a trigger token that ends at the caret.
//
// Start and End are UTF-16 offsets into the block text; Text includes the
// trigger and never contains whitespace.
type Match struct {
	Start int
	End   int
	Text  string
}

func (m Match) Span() document.Span {
	return document.Span{Start: m.Start, End: m.End}
}

// Term returns the search term: Text without its leading trigger.
func (m Match) Term(trigger string) string {
	return strings.TrimPrefix(m.Text, trigger)
}

// FindTrigger locates the trigger token the user is typing, given the block
// text from its start up to the caret.
//
// There is no match when the text is empty, ends in whitespace, has no
// trigger, or has whitespace between the last trigger and the caret.
func FindTrigger(preceding, trigger string) (Match, bool) {
	if preceding == "" || trigger == "" {
		return Match{}, false
	}
	if last, _ := utf8.DecodeLastRuneInString(preceding); unicode.IsSpace(last) {
		return Match{}, false
	}

	idx := strings.LastIndex(preceding, trigger)
	if idx < 0 {
		return Match{}, false
	}
	text := preceding[idx:]
	if strings.IndexFunc(text, unicode.IsSpace) >= 0 {
		return Match{}, false
	}

	return Match{
		Start: document.UTF16Len(preceding[:idx]),
		End:   document.UTF16Len(preceding),
		Text:  text,
	}, true
}

// Query is an active trigger match anchored to a block.
type Query struct {
	Block    int
	BlockKey string
	Match    Match
	Term     string
}

// Scan runs FindTrigger against the caret position of doc. A document with
// an active selection has no caret and therefore no query.
func Scan(doc *document.Document, trigger string) (Query, bool) {
	if doc == nil {
		return Query{}, false
	}
	if _, ok := doc.Selection(); ok {
		return Query{}, false
	}

	cur := doc.Cursor()
	preceding := doc.SpanText(cur.Block, document.Span{Start: 0, End: cur.Offset})
	m, ok := FindTrigger(preceding, trigger)
	if !ok {
		return Query{}, false
	}
	return Query{
		Block:    cur.Block,
		BlockKey: doc.BlockKey(cur.Block),
		Match:    m,
		Term:     m.Term(trigger),
	}, true
}
