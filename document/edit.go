package document

import (
	"slices"
	"strings"

	"github.com/iw2rmb/hashmark/internal/grapheme"
)

// InsertText inserts text at the cursor, or replaces the active selection.
//
// Typed text continues a mutable entity that ends at the cursor; it never
// continues an immutable one.
func (d *Document) InsertText(s string) {
	if s == "" {
		if _, ok := d.Selection(); ok {
			d.DeleteSelection()
		}
		return
	}

	r, ok := d.Selection()
	ent := NoEntity
	if !ok {
		r = Range{Start: d.cursor, End: d.cursor}
		ent = d.inheritedEntity(d.cursor)
	}
	d.applyEdit(r, s, ent)
}

// InsertNewline splits the current block at the cursor, or replaces the
// active selection with a block break.
func (d *Document) InsertNewline() {
	d.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (d *Document) DeleteBackward() {
	if _, ok := d.Selection(); ok {
		d.DeleteSelection()
		return
	}

	blk, off := d.cursor.Block, d.cursor.Offset
	if blk == 0 && off == 0 {
		return
	}

	if off > 0 {
		start := grapheme.PrevBoundary(d.BlockText(blk), off)
		d.applyEdit(Range{
			Start: Pos{Block: blk, Offset: start},
			End:   Pos{Block: blk, Offset: off},
		}, "", NoEntity)
		return
	}

	// Join with the previous block.
	prev := blk - 1
	d.applyEdit(Range{
		Start: Pos{Block: prev, Offset: d.blockLen(prev)},
		End:   Pos{Block: blk, Offset: 0},
	}, "", NoEntity)
}

// DeleteForward applies delete-key semantics.
func (d *Document) DeleteForward() {
	if _, ok := d.Selection(); ok {
		d.DeleteSelection()
		return
	}

	blk, off := d.cursor.Block, d.cursor.Offset
	last := len(d.blocks) - 1
	if blk == last && off == d.blockLen(last) {
		return
	}

	if off < d.blockLen(blk) {
		end := grapheme.NextBoundary(d.BlockText(blk), off)
		d.applyEdit(Range{
			Start: Pos{Block: blk, Offset: off},
			End:   Pos{Block: blk, Offset: end},
		}, "", NoEntity)
		return
	}

	// Join with the next block.
	d.applyEdit(Range{
		Start: Pos{Block: blk, Offset: off},
		End:   Pos{Block: blk + 1, Offset: 0},
	}, "", NoEntity)
}

// DeleteSelection deletes the active selection, if any.
func (d *Document) DeleteSelection() {
	r, ok := d.Selection()
	if !ok {
		return
	}
	d.applyEdit(r, "", NoEntity)
}

// ReplaceText replaces r with text tagged by ent as one undoable step and
// moves the cursor to the end of the inserted text. It reports whether the
// document changed.
func (d *Document) ReplaceText(r Range, text string, ent EntityKey) bool {
	return d.applyEdit(r, text, ent)
}

func (d *Document) applyEdit(r Range, text string, ent EntityKey) bool {
	prev := d.snapshot()
	change := d.beginChange(ChangeSourceLocal)

	nextCursor, applied, changed := d.replaceRange(r, text, ent)
	if !changed {
		return false
	}

	d.cursor = nextCursor
	d.sel = selectionState{}
	d.version++
	d.recordUndo(prev)
	change.addAppliedEdit(applied)
	d.commitChange(change)
	return true
}

func (d *Document) inheritedEntity(p Pos) EntityKey {
	if p.Offset == 0 {
		return NoEntity
	}
	k := d.EntityAt(p.Block, p.Offset-1)
	if k == NoEntity || d.isImmutable(k) {
		return NoEntity
	}
	return k
}

// expandImmutable grows a non-empty range so that it never cuts through an
// immutable entity.
func (d *Document) expandImmutable(r Range) Range {
	if k, sp, ok := d.entitySpanAround(r.Start.Block, r.Start.Offset); ok && d.isImmutable(k) && sp.Start < r.Start.Offset {
		r.Start.Offset = sp.Start
	}
	if k, sp, ok := d.entitySpanAround(r.End.Block, r.End.Offset-1); ok && d.isImmutable(k) && sp.End > r.End.Offset {
		r.End.Offset = sp.End
	}
	return r
}

// stripImmutableAt drops the annotation of an immutable entity that p sits
// strictly inside of and returns its key.
func (d *Document) stripImmutableAt(p Pos) EntityKey {
	k, sp, ok := d.entitySpanAround(p.Block, p.Offset)
	if !ok || !d.isImmutable(k) || !sp.Contains(p.Offset) {
		return NoEntity
	}
	ents := d.blocks[p.Block].ents
	for i := sp.Start; i < sp.End; i++ {
		ents[i] = NoEntity
	}
	return k
}

func (d *Document) replaceRange(r Range, text string, ent EntityKey) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(d.blocks), d.blockLen))
	r.Start = d.snapPos(r.Start)
	r.End = d.snapPos(r.End)
	if r.IsEmpty() && text == "" {
		return d.cursor, AppliedEdit{}, false
	}

	var dropped []EntityKey
	if r.IsEmpty() {
		if k := d.stripImmutableAt(r.Start); k != NoEntity {
			dropped = []EntityKey{k}
		}
	} else {
		r = d.expandImmutable(r)
	}

	deletedText := d.textForRange(r)
	if deletedText == text && d.rangeTaggedWith(r, ent) {
		return d.cursor, AppliedEdit{}, false
	}
	if !r.IsEmpty() {
		dropped = slices.DeleteFunc(d.immutableKeysIn(r), func(k EntityKey) bool { return k == ent })
	}

	startB := d.blocks[r.Start.Block]
	endB := d.blocks[r.End.Block]
	prefixT := append([]uint16(nil), startB.text[:r.Start.Offset]...)
	prefixE := append([]EntityKey(nil), startB.ents[:r.Start.Offset]...)
	suffixT := append([]uint16(nil), endB.text[r.End.Offset:]...)
	suffixE := append([]EntityKey(nil), endB.ents[r.End.Offset:]...)

	parts := strings.Split(text, "\n")
	repl := make([]block, 0, len(parts))
	for i, p := range parts {
		units := encodeUnits(p)
		ents := fillEntity(ent, len(units))

		var b block
		if i == 0 {
			b = block{
				key:  startB.key,
				text: append(prefixT, units...),
				ents: append(prefixE, ents...),
			}
		} else {
			b = block{key: newBlockKey(), text: units, ents: ents}
		}
		if i == len(parts)-1 {
			nextCursor = Pos{Block: r.Start.Block + i, Offset: len(b.text)}
			b.text = append(b.text, suffixT...)
			b.ents = append(b.ents, suffixE...)
		}
		repl = append(repl, b)
	}

	before := d.blocks[:r.Start.Block]
	after := d.blocks[r.End.Block+1:]
	out := make([]block, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)
	d.blocks = out

	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
		Entity:      ent,
		Dropped:     dropped,
	}
	return nextCursor, applied, true
}

func (d *Document) rangeTaggedWith(r Range, ent EntityKey) bool {
	for blk := r.Start.Block; blk <= r.End.Block; blk++ {
		ents := d.blocks[blk].ents
		start, end := 0, len(ents)
		if blk == r.Start.Block {
			start = r.Start.Offset
		}
		if blk == r.End.Block {
			end = r.End.Offset
		}
		for _, k := range ents[start:end] {
			if k != ent {
				return false
			}
		}
	}
	return true
}

func (d *Document) textForRange(r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Block == r.End.Block {
		return decodeUnits(d.blocks[r.Start.Block].text[r.Start.Offset:r.End.Offset])
	}

	var sb strings.Builder
	for blk := r.Start.Block; blk <= r.End.Block; blk++ {
		if blk > r.Start.Block {
			sb.WriteByte('\n')
		}
		units := d.blocks[blk].text
		start, end := 0, len(units)
		if blk == r.Start.Block {
			start = r.Start.Offset
		}
		if blk == r.End.Block {
			end = r.End.Offset
		}
		sb.WriteString(decodeUnits(units[start:end]))
	}
	return sb.String()
}

// TextInRange returns the plain text covered by r.
func (d *Document) TextInRange(r Range) string {
	return d.textForRange(NormalizeRange(ClampRange(r, len(d.blocks), d.blockLen)))
}

func fillEntity(k EntityKey, n int) []EntityKey {
	if n == 0 {
		return nil
	}
	out := make([]EntityKey, n)
	if k == NoEntity {
		return out
	}
	for i := range out {
		out[i] = k
	}
	return out
}
