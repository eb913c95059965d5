package mention

import (
	"strings"

	"github.com/iw2rmb/hashmark/document"
)

// FilterSuggestions keeps the candidates whose lowercase form contains the
// lowercase term, in their original order.
//
// An empty term returns every candidate. A single match that is exactly as
// long as the term is already fully typed, so nothing is returned.
func FilterSuggestions(term string, candidates []string) []string {
	if term == "" {
		return append([]string(nil), candidates...)
	}

	needle := strings.ToLower(term)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
		}
	}

	if len(out) == 1 && document.UTF16Len(out[0]) == document.UTF16Len(term) {
		return nil
	}
	return out
}
