package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/iw2rmb/hashmark/document"
	"github.com/iw2rmb/hashmark/internal/config"
	"github.com/iw2rmb/hashmark/mention"
)

var (
	errCaretRange = errors.New("caret out of range")
	errNoQuery    = errors.New("no hashtag query at caret")
)

// ScanCmd reports the query at the caret and the suggestions it filters to.
type ScanCmd struct {
	Text  string `arg:"" help:"Text to scan. Newlines split blocks."`
	Caret int    `default:"-1" help:"Caret as a UTF-16 offset into the text (newline counts as one). Negative means end."`
}

func (c *ScanCmd) Run(g *Globals, kctx *kong.Context) error {
	cfg, _ := config.LoadWithPriority(g.Config)
	return c.run(kctx.Stdout, cfg)
}

func (c *ScanCmd) run(w io.Writer, cfg *config.Config) error {
	doc, err := openAtCaret(c.Text, c.Caret, cfg)
	if err != nil {
		return err
	}
	s := mention.NewSession(sessionConfig(cfg))
	snap := s.Update(doc)

	q, ok := mention.Scan(doc, cfg.Editor.Trigger)
	if !ok {
		fmt.Fprintln(w, "no query")
		return nil
	}
	fmt.Fprintf(w, "query %q block %d [%d,%d) term %q\n", q.Match.Text, q.Block, q.Match.Start, q.Match.End, q.Term)
	if !snap.Visible() {
		if doc.SpanHasEntity(q.Block, q.Match.Span()) {
			fmt.Fprintln(w, "already tagged")
		} else {
			fmt.Fprintln(w, "no suggestions")
			if similar := s.Vocabulary().Similar(q.Term, 3); len(similar) > 0 {
				fmt.Fprintf(w, "did you mean %s?\n", strings.Join(similar, ", "))
			}
		}
		return nil
	}
	for _, item := range snap.Suggestions {
		fmt.Fprintf(w, "  %s\n", item)
	}
	return nil
}

// CommitCmd commits Choice over the query at the caret.
type CommitCmd struct {
	Text   string `arg:"" help:"Text containing the query."`
	Choice string `arg:"" help:"Suggestion to commit."`
	Caret  int    `default:"-1" help:"Caret as a UTF-16 offset into the text (newline counts as one). Negative means end."`
}

func (c *CommitCmd) Run(g *Globals, kctx *kong.Context) error {
	cfg, _ := config.LoadWithPriority(g.Config)
	return c.run(kctx.Stdout, cfg)
}

func (c *CommitCmd) run(w io.Writer, cfg *config.Config) error {
	doc, err := openAtCaret(c.Text, c.Caret, cfg)
	if err != nil {
		return err
	}
	s := mention.NewSession(sessionConfig(cfg))
	if _, err := s.CommitAt(doc, c.Choice); err != nil {
		if errors.Is(err, mention.ErrNoQuery) {
			return errNoQuery
		}
		return fmt.Errorf("commit %q: %w", c.Choice, err)
	}
	s.Clear()
	printDocument(w, doc)
	return nil
}

// TagCmd converts a typed "#word" before the caret into an entity, the same
// way the editor does when a space is typed.
type TagCmd struct {
	Text  string `arg:"" help:"Text ending in a hashtag word."`
	Caret int    `default:"-1" help:"Caret as a UTF-16 offset into the text (newline counts as one). Negative means end."`
}

func (c *TagCmd) Run(g *Globals, kctx *kong.Context) error {
	cfg, _ := config.LoadWithPriority(g.Config)
	return c.run(kctx.Stdout, cfg)
}

func (c *TagCmd) run(w io.Writer, cfg *config.Config) error {
	doc, err := openAtCaret(c.Text, c.Caret, cfg)
	if err != nil {
		return err
	}
	s := mention.NewSession(sessionConfig(cfg))
	if _, ok := s.AutoTag(doc); !ok {
		return errNoQuery
	}
	printDocument(w, doc)
	return nil
}

func sessionConfig(cfg *config.Config) mention.SessionConfig {
	return mention.SessionConfig{
		Trigger:    cfg.Editor.Trigger,
		EntityType: cfg.Editor.EntityType,
	}
}

func openAtCaret(text string, caret int, cfg *config.Config) (*document.Document, error) {
	doc := document.New(text, document.Options{HistoryLimit: cfg.Editor.HistoryLimit})
	p, err := caretPos(doc, caret)
	if err != nil {
		return nil, err
	}
	doc.SetCursor(p)
	return doc, nil
}

// caretPos maps a flat UTF-16 offset to a block position. Each block break
// counts as one unit.
func caretPos(doc *document.Document, caret int) (document.Pos, error) {
	last := doc.BlockCount() - 1
	if caret < 0 {
		return document.Pos{Block: last, Offset: doc.BlockLen(last)}, nil
	}
	rest := caret
	for b := 0; b <= last; b++ {
		n := doc.BlockLen(b)
		if rest <= n {
			return document.Pos{Block: b, Offset: rest}, nil
		}
		rest -= n + 1
	}
	return document.Pos{}, fmt.Errorf("%w: %d", errCaretRange, caret)
}

func printDocument(w io.Writer, doc *document.Document) {
	cur := doc.Cursor()
	fmt.Fprintf(w, "text %q\n", doc.Text())
	fmt.Fprintf(w, "caret %d:%d\n", cur.Block, cur.Offset)
	for b := 0; b < doc.BlockCount(); b++ {
		for _, r := range doc.EntityRanges(b) {
			e, ok := doc.Entity(r.Key)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "entity %d %s %s %d:[%d,%d) %q\n",
				e.Key, e.Type, e.Mutability, b, r.Span.Start, r.Span.End, doc.SpanText(b, r.Span))
		}
	}
}
