package document

import "github.com/iw2rmb/hashmark/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // block start (or doc start for MoveDoc)
	DirEnd  // block end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, updates selection anchor/end; if false clears selection
}

func (d *Document) Move(m Move) {
	prevCursor := d.cursor
	prevSel := d.sel

	nextCursor := d.snapPos(d.clampPos(d.moveCursor(prevCursor, m)))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}

	d.cursor = nextCursor
	d.sel = nextSel
	d.version++
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}

func (d *Document) moveCursor(p Pos, m Move) Pos {
	switch m.Unit {
	case MoveGrapheme:
		return d.moveGrapheme(p, m.Dir)
	case MoveWord:
		return d.moveWord(p, m.Dir)
	case MoveLine:
		return d.moveLine(p, m.Dir)
	case MoveDoc:
		return d.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (d *Document) moveGrapheme(p Pos, dir MoveDir) Pos {
	blk, off := p.Block, p.Offset
	last := len(d.blocks) - 1

	switch dir {
	case DirLeft:
		if blk == 0 && off == 0 {
			return p
		}
		if off > 0 {
			return Pos{Block: blk, Offset: grapheme.PrevBoundary(d.BlockText(blk), off)}
		}
		return Pos{Block: blk - 1, Offset: d.blockLen(blk - 1)}
	case DirRight:
		if blk == last && off == d.blockLen(last) {
			return p
		}
		if off < d.blockLen(blk) {
			return Pos{Block: blk, Offset: grapheme.NextBoundary(d.BlockText(blk), off)}
		}
		return Pos{Block: blk + 1, Offset: 0}
	default:
		return d.moveLine(p, dir)
	}
}

func (d *Document) moveWord(p Pos, dir MoveDir) Pos {
	text := d.BlockText(p.Block)

	switch dir {
	case DirLeft:
		return Pos{Block: p.Block, Offset: prevWordBoundary(text, p.Offset)}
	case DirRight:
		return Pos{Block: p.Block, Offset: nextWordBoundary(text, p.Offset)}
	default:
		return d.moveLine(p, dir)
	}
}

func (d *Document) moveLine(p Pos, dir MoveDir) Pos {
	blk := p.Block
	last := len(d.blocks) - 1

	switch dir {
	case DirHome:
		return Pos{Block: blk, Offset: 0}
	case DirEnd:
		return Pos{Block: blk, Offset: d.blockLen(blk)}
	case DirUp:
		if blk == 0 {
			return p
		}
		nb := blk - 1
		return Pos{Block: nb, Offset: grapheme.Snap(d.BlockText(nb), p.Offset)}
	case DirDown:
		if blk == last {
			return p
		}
		nb := blk + 1
		return Pos{Block: nb, Offset: grapheme.Snap(d.BlockText(nb), p.Offset)}
	default:
		return p
	}
}

func (d *Document) moveDoc(p Pos, dir MoveDir) Pos {
	last := len(d.blocks) - 1

	switch dir {
	case DirHome, DirUp:
		return Pos{}
	case DirEnd, DirDown:
		return Pos{Block: last, Offset: d.blockLen(last)}
	default:
		return p
	}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - a block edge is a hard boundary
func prevWordBoundary(text string, off int) int {
	clusters := grapheme.Clusters(text)
	i := len(clusters)
	for i > 0 && clusters[i-1].Start >= off {
		i--
	}
	for i > 0 && grapheme.IsSpace(clusters[i-1].Text) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(clusters[i-1].Text) {
		i--
	}
	if i == 0 {
		return 0
	}
	return clusters[i].Start
}

func nextWordBoundary(text string, off int) int {
	clusters := grapheme.Clusters(text)
	i := 0
	for i < len(clusters) && clusters[i].End <= off {
		i++
	}
	for i < len(clusters) && grapheme.IsSpace(clusters[i].Text) {
		i++
	}
	for i < len(clusters) && !grapheme.IsSpace(clusters[i].Text) {
		i++
	}
	if i == len(clusters) {
		return grapheme.Len16(text)
	}
	return clusters[i].Start
}
