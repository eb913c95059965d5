package document

import (
	"strings"

	"github.com/google/uuid"
)

type Options struct {
	HistoryLimit int // default: 1000
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

type block struct {
	key  string
	text []uint16
	ents []EntityKey
}

func (b block) clone() block {
	return block{
		key:  b.key,
		text: append([]uint16(nil), b.text...),
		ents: append([]EntityKey(nil), b.ents...),
	}
}

// Document is the editable state: blocks, entities, cursor, and selection.
type Document struct {
	blocks   []block
	entities []Entity
	version  uint64

	cursor Pos
	sel    selectionState

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Document {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Document{
		blocks: splitBlocks(text),
		opt:    opt,
	}
}

// Text returns the plain text of the document with blocks joined by '\n'.
// Entity annotations are not represented.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(decodeUnits(b.text))
	}
	return sb.String()
}

func (d *Document) Version() uint64 { return d.version }

func (d *Document) BlockCount() int { return len(d.blocks) }

// BlockKey returns the stable key of block i, or "" when i is out of range.
func (d *Document) BlockKey(i int) string {
	if i < 0 || i >= len(d.blocks) {
		return ""
	}
	return d.blocks[i].key
}

// BlockIndex resolves a block key to its current index.
func (d *Document) BlockIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for i, b := range d.blocks {
		if b.key == key {
			return i, true
		}
	}
	return 0, false
}

func (d *Document) BlockText(i int) string {
	if i < 0 || i >= len(d.blocks) {
		return ""
	}
	return decodeUnits(d.blocks[i].text)
}

// BlockLen returns the UTF-16 length of block i.
func (d *Document) BlockLen(i int) int {
	if i < 0 || i >= len(d.blocks) {
		return 0
	}
	return len(d.blocks[i].text)
}

// SpanText returns the text of sp inside block i. Out-of-range spans are
// clamped.
func (d *Document) SpanText(i int, sp Span) string {
	if i < 0 || i >= len(d.blocks) {
		return ""
	}
	units := d.blocks[i].text
	start := clampInt(sp.Start, 0, len(units))
	end := clampInt(sp.End, start, len(units))
	return decodeUnits(units[start:end])
}

func (d *Document) Cursor() Pos { return d.cursor }

func (d *Document) SetCursor(p Pos) {
	next := d.snapPos(d.clampPos(p))
	if next == d.cursor && !d.sel.active {
		return
	}
	d.cursor = next
	d.sel = selectionState{}
	d.version++
}

func (d *Document) Selection() (Range, bool) {
	if !d.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: d.sel.anchor, End: d.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SetSelection selects r and places the cursor at r.End.
func (d *Document) SetSelection(r Range) {
	clamped := ClampRange(r, len(d.blocks), d.blockLen)
	clamped.Start = d.snapPos(clamped.Start)
	clamped.End = d.snapPos(clamped.End)

	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if clamped.IsEmpty() {
		next = selectionState{}
	}
	if selectionStateEqual(d.sel, next) && d.cursor == clamped.End {
		return
	}
	d.sel = next
	d.cursor = clamped.End
	d.version++
}

func (d *Document) ClearSelection() {
	if !d.sel.active {
		return
	}
	d.sel = selectionState{}
	d.version++
}

func (d *Document) blockLen(i int) int {
	if i < 0 || i >= len(d.blocks) {
		return 0
	}
	return len(d.blocks[i].text)
}

func (d *Document) clampPos(p Pos) Pos {
	return ClampPos(p, len(d.blocks), d.blockLen)
}

// snapPos keeps p off the trailing half of a surrogate pair.
func (d *Document) snapPos(p Pos) Pos {
	units := d.blocks[p.Block].text
	if p.Offset > 0 && p.Offset < len(units) && isLowSurrogate(units[p.Offset]) {
		p.Offset--
	}
	return p
}

func newBlockKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func splitBlocks(text string) []block {
	parts := strings.Split(text, "\n")
	out := make([]block, 0, len(parts))
	for _, s := range parts {
		units := encodeUnits(s)
		out = append(out, block{
			key:  newBlockKey(),
			text: units,
			ents: make([]EntityKey, len(units)),
		})
	}
	return out
}
