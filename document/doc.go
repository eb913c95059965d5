// Package document implements the block-structured document model that
// hashtag entry edits against.
//
// A document is an ordered list of blocks (one per line). Offsets inside a
// block are UTF-16 code units, so callers can do the same offset arithmetic a
// browser editor would (for example focusOffset - len(matchedText)).
//
// Every code unit carries an optional entity key. Entities are created once,
// never mutated, and disappear from the text only when the annotated span is
// deleted or, for immutable entities, edited.
package document
