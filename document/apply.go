package document

// Apply applies a sequence of text edits in order as one undoable step. Each
// edit's range is interpreted against the document state at the time that
// edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
//
// It reports whether any edit changed the document.
func (d *Document) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := d.snapshot()
	change := d.beginChange(ChangeSourceLocal)

	anyChanged := false
	lastCursor := d.cursor

	for _, e := range edits {
		nextCursor, applied, changed := d.replaceRange(e.Range, e.Text, e.Entity)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		return false
	}

	d.cursor = d.clampPos(lastCursor)
	d.sel = selectionState{}
	d.version++
	d.recordUndo(prev)
	d.commitChange(change)
	return true
}
