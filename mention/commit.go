package mention

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/hashmark/document"
)

var (
	// ErrNotHandled reports that the span already carries an entity, usually
	// because an earlier commit converted it.
	ErrNotHandled = errors.New("mention: span already tagged")
	// ErrInvalidSpan reports a span that does not address a trigger token in
	// the current document.
	ErrInvalidSpan = errors.New("mention: invalid trigger span")
	// ErrEmptySuggestion reports a commit without suggestion text.
	ErrEmptySuggestion = errors.New("mention: empty suggestion")
)

// ContentKey is the entity data key holding the committed suggestion text.
const ContentKey = "content"

// CommitOptions configures CommitSuggestion. Zero values select "#" and
// HASHTAG.
type CommitOptions struct {
	Trigger    string
	EntityType string
}

func (o CommitOptions) normalized() CommitOptions {
	if o.Trigger == "" {
		o.Trigger = DefaultTrigger
	}
	if o.EntityType == "" {
		o.EntityType = document.EntityHashtag
	}
	return o
}

// CommitSuggestion replaces the trigger span in the block identified by
// blockKey with trigger+chosen, tags it with a new immutable entity, appends an
// untagged space and moves the caret after it. All of this is one undo step.
//
// On error the document is left untouched and no entity is created.
func CommitSuggestion(doc *document.Document, blockKey string, span document.Span, chosen string, opt CommitOptions) (document.EntityKey, error) {
	opt = opt.normalized()
	if chosen == "" {
		return document.NoEntity, ErrEmptySuggestion
	}
	if doc == nil {
		return document.NoEntity, fmt.Errorf("%w: nil document", ErrInvalidSpan)
	}

	blk, ok := doc.BlockIndex(blockKey)
	if !ok {
		return document.NoEntity, fmt.Errorf("%w: unknown block %q", ErrInvalidSpan, blockKey)
	}
	if span.Start < 0 || span.End < span.Start || span.End > doc.BlockLen(blk) {
		return document.NoEntity, fmt.Errorf("%w: [%d,%d) outside block of length %d", ErrInvalidSpan, span.Start, span.End, doc.BlockLen(blk))
	}
	if doc.SpanHasEntity(blk, span) {
		return document.NoEntity, ErrNotHandled
	}
	if text := doc.SpanText(blk, span); !strings.HasPrefix(text, opt.Trigger) {
		return document.NoEntity, fmt.Errorf("%w: %q does not start with %q", ErrInvalidSpan, text, opt.Trigger)
	}

	return replaceWithEntity(doc, blk, span, opt, chosen), nil
}

func replaceWithEntity(doc *document.Document, blk int, span document.Span, opt CommitOptions, content string) document.EntityKey {
	key := doc.CreateEntity(opt.EntityType, document.Immutable, map[string]string{ContentKey: content})
	token := opt.Trigger + content
	end := span.Start + document.UTF16Len(token)
	doc.Apply(
		document.TextEdit{Range: document.SpanRange(blk, span), Text: token, Entity: key},
		document.TextEdit{Range: document.SpanRange(blk, document.Span{Start: end, End: end}), Text: " "},
	)
	return key
}
