package document

import "slices"

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceHistory
)

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string

	// Entity tags InsertText. Dropped lists immutable entities the edit
	// deleted or stripped.
	Entity  EntityKey
	Dropped []EntityKey
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
}

// TaggedEntities returns the distinct entities that tagged inserted text, in
// edit order.
func (c Change) TaggedEntities() []EntityKey {
	var out []EntityKey
	for _, e := range c.AppliedEdits {
		if e.Entity != NoEntity && e.InsertText != "" && !slices.Contains(out, e.Entity) {
			out = append(out, e.Entity)
		}
	}
	return out
}

// DroppedEntities returns the distinct immutable entities removed by the
// change, in edit order.
func (c Change) DroppedEntities() []EntityKey {
	var out []EntityKey
	for _, e := range c.AppliedEdits {
		for _, k := range e.Dropped {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	}
	return out
}

// LastChange returns the most recent text change.
func (d *Document) LastChange() (Change, bool) {
	if !d.hasLastChange {
		return Change{}, false
	}
	return cloneChange(d.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = make([]AppliedEdit, len(in.AppliedEdits))
	for i, e := range in.AppliedEdits {
		e.Dropped = slices.Clone(e.Dropped)
		out.AppliedEdits[i] = e
	}
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (d *Document) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   d.version,
		cursorBefore:    d.cursor,
		selectionBefore: selectionStateFromInternal(d.sel),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (d *Document) commitChange(cb changeBuilder) {
	if d.version == cb.versionBefore {
		return
	}
	d.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    d.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     d.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(d.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	d.hasLastChange = true
}

func replacementAppliedEdit(before, after docSnapshot) (AppliedEdit, bool) {
	beforeText := snapshotText(before)
	afterText := snapshotText(after)
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		RangeBefore: fullRange(before.blocks),
		RangeAfter:  fullRange(after.blocks),
		InsertText:  afterText,
		DeletedText: beforeText,
	}, true
}

func fullRange(blocks []block) Range {
	last := len(blocks) - 1
	return Range{
		Start: Pos{},
		End:   Pos{Block: last, Offset: len(blocks[last].text)},
	}
}
