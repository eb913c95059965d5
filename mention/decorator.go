package mention

import (
	"regexp"
	"sort"

	"github.com/iw2rmb/hashmark/document"
)

// Component names used by the built-in decorators.
const (
	ComponentHashtag    = "hashtag"
	ComponentSuggestion = "suggestion"
)

// HashtagPattern matches a trigger followed by Unicode word characters.
var HashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// Decoration marks a block range to be rendered by Component.
type Decoration struct {
	Span      document.Span
	Component string
}

// Decorator computes disjoint decorations for one block, ordered by offset.
type Decorator interface {
	Decorate(doc *document.Document, block int) []Decoration
}

// Strategy reports matching ranges of a block through emit.
type Strategy func(doc *document.Document, block int, emit func(start, end int))

// Rule pairs a strategy with the component that renders its ranges.
type Rule struct {
	Strategy  Strategy
	Component string
}

// CompositeDecorator applies rules in order. A range overlapping one produced
// by an earlier rule (or earlier by the same rule) is dropped.
type CompositeDecorator []Rule

func NewCompositeDecorator(rules ...Rule) CompositeDecorator {
	return CompositeDecorator(append([]Rule(nil), rules...))
}

// DefaultDecorator renders HASHTAG and SUGGESTION entities.
func DefaultDecorator() CompositeDecorator {
	return NewCompositeDecorator(
		Rule{Strategy: EntityStrategy(document.EntityHashtag), Component: ComponentHashtag},
		Rule{Strategy: EntityStrategy(document.EntitySuggestion), Component: ComponentSuggestion},
	)
}

func (c CompositeDecorator) Decorate(doc *document.Document, block int) []Decoration {
	if doc == nil || block < 0 || block >= doc.BlockCount() {
		return nil
	}
	limit := doc.BlockLen(block)

	var out []Decoration
	for _, rule := range c {
		if rule.Strategy == nil {
			continue
		}
		rule.Strategy(doc, block, func(start, end int) {
			if start < 0 || end > limit || start >= end {
				return
			}
			sp := document.Span{Start: start, End: end}
			for _, d := range out {
				if sp.Start < d.Span.End && d.Span.Start < sp.End {
					return
				}
			}
			out = append(out, Decoration{Span: sp, Component: rule.Component})
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}

// EntityStrategy matches runs annotated with an entity of the given type.
func EntityStrategy(entityType string) Strategy {
	return func(doc *document.Document, block int, emit func(start, end int)) {
		doc.FindEntityRanges(block, func(e document.Entity) bool {
			return e.Type == entityType
		}, emit)
	}
}

// RegexStrategy matches re against the block's plain text, whether or not
// the text is annotated.
func RegexStrategy(re *regexp.Regexp) Strategy {
	return func(doc *document.Document, block int, emit func(start, end int)) {
		text := doc.BlockText(block)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start := document.UTF16Len(text[:loc[0]])
			emit(start, start+document.UTF16Len(text[loc[0]:loc[1]]))
		}
	}
}
