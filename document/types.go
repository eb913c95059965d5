package document

// Pos points into the document by block index and UTF-16 offset.
// Block and Offset are 0-based.
type Pos struct {
	Block  int
	Offset int
}

// Range is a half-open selection in document coordinates: [Start, End).
// Start <= End in document order.
type Range struct {
	Start Pos
	End   Pos
}

// Span is a half-open [Start, End) range of UTF-16 offsets inside one block.
type Span struct {
	Start int
	End   int
}

// TextEdit replaces the text in Range with Text (which may contain '\n') and
// tags the inserted code units with Entity.
type TextEdit struct {
	Range  Range
	Text   string
	Entity EntityKey
}

func ComparePos(a, b Pos) int {
	if a.Block < b.Block {
		return -1
	}
	if a.Block > b.Block {
		return 1
	}
	if a.Offset < b.Offset {
		return -1
	}
	if a.Offset > b.Offset {
		return 1
	}
	return 0
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// SpanRange lifts a block-local span into a document range.
func SpanRange(block int, sp Span) Range {
	return Range{
		Start: Pos{Block: block, Offset: sp.Start},
		End:   Pos{Block: block, Offset: sp.End},
	}
}

func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Contains reports whether off lies strictly inside the span.
func (s Span) Contains(off int) bool {
	return off > s.Start && off < s.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampPos clamps p into document bounds described by blockCount and blockLen.
//
// The returned Pos always satisfies:
// - 0 <= Block < blockCount (with blockCount treated as at least 1)
// - 0 <= Offset <= blockLen(Block)
func ClampPos(p Pos, blockCount int, blockLen func(block int) int) Pos {
	if blockCount <= 0 {
		blockCount = 1
	}

	blk := clampInt(p.Block, 0, blockCount-1)

	maxOff := 0
	if blockLen != nil {
		maxOff = blockLen(blk)
		if maxOff < 0 {
			maxOff = 0
		}
	}
	return Pos{Block: blk, Offset: clampInt(p.Offset, 0, maxOff)}
}

func ClampRange(r Range, blockCount int, blockLen func(block int) int) Range {
	return Range{
		Start: ClampPos(r.Start, blockCount, blockLen),
		End:   ClampPos(r.End, blockCount, blockLen),
	}
}
