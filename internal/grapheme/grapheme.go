// Package grapheme wraps uniseg for the grapheme-cluster queries the document
// and editor packages make against UTF-16 addressed text.
package grapheme

import (
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster with its UTF-16 bounds in the source text.
type Cluster struct {
	Text  string
	Start int
	End   int
}

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Clusters returns grapheme clusters annotated with UTF-16 offsets.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]Cluster, 0, len(text))
	off := 0
	for g.Next() {
		s := g.Str()
		n := Len16(s)
		out = append(out, Cluster{Text: s, Start: off, End: off + n})
		off += n
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Len16 returns the length of s in UTF-16 code units.
func Len16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// PrevBoundary returns the closest cluster start strictly before off, or 0.
func PrevBoundary(text string, off int) int {
	prev := 0
	for _, c := range Clusters(text) {
		if c.Start >= off {
			break
		}
		prev = c.Start
	}
	return prev
}

// NextBoundary returns the closest cluster end strictly after off, or the
// text length.
func NextBoundary(text string, off int) int {
	for _, c := range Clusters(text) {
		if c.End > off {
			return c.End
		}
	}
	return Len16(text)
}

// Snap moves off back to the start of the cluster containing it.
func Snap(text string, off int) int {
	if off <= 0 {
		return 0
	}
	for _, c := range Clusters(text) {
		if off < c.End {
			if off > c.Start {
				return c.Start
			}
			return off
		}
	}
	return Len16(text)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
