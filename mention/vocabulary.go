package mention

import (
	"slices"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultCandidates is the built-in suggestion vocabulary.
var DefaultCandidates = []string{
	"Jaervinen",
	"Nieminen",
	"Lamminpaeae",
	"Kallio",
	"Jokinen",
	"Niittukari",
	"Li",
}

// Vocabulary is an ordered candidate list with a case-insensitive index.
type Vocabulary struct {
	items []string
	index *patricia.Trie
}

// NewVocabulary indexes items. Empty strings and case-insensitive duplicates
// are dropped; the first spelling wins.
func NewVocabulary(items []string) *Vocabulary {
	v := &Vocabulary{index: patricia.NewTrie()}
	for _, it := range items {
		if it == "" {
			continue
		}
		if v.index.Insert(patricia.Prefix(strings.ToLower(it)), len(v.items)) {
			v.items = append(v.items, it)
		}
	}
	return v
}

// DefaultVocabulary returns a Vocabulary over DefaultCandidates.
func DefaultVocabulary() *Vocabulary { return NewVocabulary(DefaultCandidates) }

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Items returns the candidates in their original order.
func (v *Vocabulary) Items() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.items...)
}

// Filter applies FilterSuggestions to the vocabulary.
func (v *Vocabulary) Filter(term string) []string {
	if v == nil {
		return nil
	}
	return FilterSuggestions(term, v.items)
}

// Lookup returns the canonical spelling of word, ignoring case.
func (v *Vocabulary) Lookup(word string) (string, bool) {
	if v == nil || word == "" {
		return "", false
	}
	item := v.index.Get(patricia.Prefix(strings.ToLower(word)))
	idx, ok := item.(int)
	if !ok {
		return "", false
	}
	return v.items[idx], true
}

// WithPrefix returns the candidates starting with prefix, ignoring case, in
// their original order.
func (v *Vocabulary) WithPrefix(prefix string) []string {
	if v == nil {
		return nil
	}
	var idx []int
	_ = v.index.VisitSubtree(patricia.Prefix(strings.ToLower(prefix)), func(_ patricia.Prefix, item patricia.Item) error {
		if i, ok := item.(int); ok {
			idx = append(idx, i)
		}
		return nil
	})
	sort.Ints(idx)

	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, v.items[i])
	}
	return out
}

// Similar returns up to limit candidates close to term: prefix matches in
// list order, then fuzzy matches best first. It backs "did you mean" hints
// when Filter finds nothing.
func (v *Vocabulary) Similar(term string, limit int) []string {
	if v == nil || term == "" || limit <= 0 {
		return nil
	}
	out := v.WithPrefix(term)
	if len(out) >= limit {
		return out[:limit]
	}
	for _, m := range fuzzy.Find(term, v.items) {
		if len(out) == limit {
			break
		}
		if !slices.Contains(out, v.items[m.Index]) {
			out = append(out, v.items[m.Index])
		}
	}
	return out
}
