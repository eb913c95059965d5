package document

import "slices"

// EntityKey identifies an entity in the document's entity map.
// NoEntity marks untagged code units.
type EntityKey uint32

const NoEntity EntityKey = 0

// Mutability controls how edits treat annotated text.
type Mutability uint8

const (
	// Mutable entities grow when text is typed at their end and shrink when
	// part of their text is deleted.
	Mutable Mutability = iota
	// Immutable entities are removed as a whole when any of their text is
	// deleted, and lose their annotation when text is inserted inside them.
	Immutable
)

func (m Mutability) String() string {
	switch m {
	case Mutable:
		return "MUTABLE"
	case Immutable:
		return "IMMUTABLE"
	default:
		return "UNKNOWN"
	}
}

// Well-known entity types.
const (
	EntityHashtag    = "HASHTAG"
	EntitySuggestion = "SUGGESTION"
)

// Entity is a typed annotation attached to a range of text. Entities are never
// mutated after creation.
type Entity struct {
	Key        EntityKey
	Type       string
	Mutability Mutability
	Data       map[string]string
}

// EntityRange is a maximal run of code units carrying the same entity key.
type EntityRange struct {
	Key  EntityKey
	Span Span
}

// CreateEntity registers a new entity and returns its key. Creating an entity
// does not change the text, version, or history.
func (d *Document) CreateEntity(typ string, mut Mutability, data map[string]string) EntityKey {
	key := EntityKey(len(d.entities) + 1)
	d.entities = append(d.entities, Entity{
		Key:        key,
		Type:       typ,
		Mutability: mut,
		Data:       cloneData(data),
	})
	return key
}

// Entity returns a copy of the entity stored under key.
func (d *Document) Entity(key EntityKey) (Entity, bool) {
	if key == NoEntity || int(key) > len(d.entities) {
		return Entity{}, false
	}
	e := d.entities[key-1]
	e.Data = cloneData(e.Data)
	return e, true
}

// EntityAt returns the entity key of the code unit at offset in block, or
// NoEntity.
func (d *Document) EntityAt(blk, offset int) EntityKey {
	if blk < 0 || blk >= len(d.blocks) {
		return NoEntity
	}
	ents := d.blocks[blk].ents
	if offset < 0 || offset >= len(ents) {
		return NoEntity
	}
	return ents[offset]
}

// SpanHasEntity reports whether any code unit of sp in block carries an entity.
func (d *Document) SpanHasEntity(blk int, sp Span) bool {
	if blk < 0 || blk >= len(d.blocks) {
		return false
	}
	ents := d.blocks[blk].ents
	start := clampInt(sp.Start, 0, len(ents))
	end := clampInt(sp.End, start, len(ents))
	for _, k := range ents[start:end] {
		if k != NoEntity {
			return true
		}
	}
	return false
}

// FindEntityRanges calls fn for every maximal run in block whose entity key
// satisfies match. Untagged runs are never reported.
func (d *Document) FindEntityRanges(blk int, match func(Entity) bool, fn func(start, end int)) {
	for _, r := range d.EntityRanges(blk) {
		e, ok := d.Entity(r.Key)
		if !ok {
			continue
		}
		if match != nil && !match(e) {
			continue
		}
		fn(r.Span.Start, r.Span.End)
	}
}

// EntityRanges lists the tagged runs of block in offset order.
func (d *Document) EntityRanges(blk int) []EntityRange {
	if blk < 0 || blk >= len(d.blocks) {
		return nil
	}
	ents := d.blocks[blk].ents
	var out []EntityRange
	for i := 0; i < len(ents); {
		k := ents[i]
		j := i + 1
		for j < len(ents) && ents[j] == k {
			j++
		}
		if k != NoEntity {
			out = append(out, EntityRange{Key: k, Span: Span{Start: i, End: j}})
		}
		i = j
	}
	return out
}

// SnapOutOfImmutable moves p to the nearer edge of an immutable entity that
// it sits strictly inside of. Ties go to the start. Other positions are
// returned clamped.
func (d *Document) SnapOutOfImmutable(p Pos) Pos {
	p = d.clampPos(p)
	k, sp, ok := d.entitySpanAround(p.Block, p.Offset)
	if !ok || !d.isImmutable(k) || !sp.Contains(p.Offset) {
		return p
	}
	if p.Offset-sp.Start <= sp.End-p.Offset {
		p.Offset = sp.Start
	} else {
		p.Offset = sp.End
	}
	return p
}

// immutableKeysIn lists the distinct immutable entities annotating r, in
// document order.
func (d *Document) immutableKeysIn(r Range) []EntityKey {
	var out []EntityKey
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
			if d.isImmutable(k) && !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
	}
	return out
}

// entitySpanAround returns the run of key covering offset in block.
func (d *Document) entitySpanAround(blk, offset int) (EntityKey, Span, bool) {
	ents := d.blocks[blk].ents
	if offset < 0 || offset >= len(ents) || ents[offset] == NoEntity {
		return NoEntity, Span{}, false
	}
	k := ents[offset]
	start, end := offset, offset+1
	for start > 0 && ents[start-1] == k {
		start--
	}
	for end < len(ents) && ents[end] == k {
		end++
	}
	return k, Span{Start: start, End: end}, true
}

func (d *Document) isImmutable(key EntityKey) bool {
	if key == NoEntity || int(key) > len(d.entities) {
		return false
	}
	return d.entities[key-1].Mutability == Immutable
}

func cloneData(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
