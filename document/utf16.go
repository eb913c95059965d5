package document

import (
	"unicode/utf16"

	"github.com/iw2rmb/hashmark/internal/grapheme"
)

// UTF16Len returns the length of s in UTF-16 code units, the unit every
// offset in this package is expressed in.
func UTF16Len(s string) int { return grapheme.Len16(s) }

func encodeUnits(s string) []uint16 {
	if s == "" {
		return nil
	}
	return utf16.Encode([]rune(s))
}

func decodeUnits(units []uint16) string {
	if len(units) == 0 {
		return ""
	}
	return string(utf16.Decode(units))
}

// isLowSurrogate reports whether u is the trailing half of a surrogate pair.
func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
