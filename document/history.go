package document

import "strings"

type docSnapshot struct {
	blocks []block
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []docSnapshot
	redo []docSnapshot
}

func (d *Document) snapshot() docSnapshot {
	blocks := make([]block, len(d.blocks))
	for i, b := range d.blocks {
		blocks[i] = b.clone()
	}
	return docSnapshot{blocks: blocks, cursor: d.cursor, sel: d.sel}
}

func snapshotText(s docSnapshot) string {
	var sb strings.Builder
	for i, b := range s.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(decodeUnits(b.text))
	}
	return sb.String()
}

func (d *Document) restore(s docSnapshot) {
	d.blocks = make([]block, len(s.blocks))
	for i, b := range s.blocks {
		d.blocks[i] = b.clone()
	}
	d.cursor = d.clampPos(s.cursor)

	if !s.sel.active {
		d.sel = selectionState{}
		return
	}
	anchor := d.clampPos(s.sel.anchor)
	end := d.clampPos(s.sel.end)
	if anchor == end {
		d.sel = selectionState{}
		return
	}
	d.sel = selectionState{active: true, anchor: anchor, end: end}
}

func (d *Document) recordUndo(prev docSnapshot) {
	limit := d.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	d.hist.undo = append(d.hist.undo, prev)
	if len(d.hist.undo) > limit {
		d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
	}
	d.hist.redo = nil
}

func (d *Document) CanUndo() bool { return len(d.hist.undo) > 0 }

func (d *Document) CanRedo() bool { return len(d.hist.redo) > 0 }

// Undo reverts the most recent undoable step. Entities referenced by the
// restored text are still present in the entity map.
func (d *Document) Undo() bool {
	if len(d.hist.undo) == 0 {
		return false
	}

	cur := d.snapshot()
	change := d.beginChange(ChangeSourceHistory)

	i := len(d.hist.undo) - 1
	prev := d.hist.undo[i]
	d.hist.undo = d.hist.undo[:i]
	d.hist.redo = append(d.hist.redo, cur)

	d.restore(prev)
	d.version++
	if applied, ok := replacementAppliedEdit(cur, prev); ok {
		change.addAppliedEdit(applied)
	}
	d.commitChange(change)
	return true
}

func (d *Document) Redo() bool {
	if len(d.hist.redo) == 0 {
		return false
	}

	cur := d.snapshot()
	change := d.beginChange(ChangeSourceHistory)

	i := len(d.hist.redo) - 1
	next := d.hist.redo[i]
	d.hist.redo = d.hist.redo[:i]

	if limit := d.opt.HistoryLimit; limit > 0 {
		d.hist.undo = append(d.hist.undo, cur)
		if len(d.hist.undo) > limit {
			d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
		}
	}

	d.restore(next)
	d.version++
	if applied, ok := replacementAppliedEdit(cur, next); ok {
		change.addAppliedEdit(applied)
	}
	d.commitChange(change)
	return true
}
