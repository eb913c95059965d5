package document

import "testing"

func TestInsertText_MultiBlock(t *testing.T) {
	d := New("ab", Options{})
	key := d.BlockKey(0)
	d.SetCursor(Pos{Offset: 1})
	v := d.Version()

	d.InsertText("X\nY")
	if got, want := d.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := d.Cursor(), (Pos{Block: 1, Offset: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got := d.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if got := d.BlockKey(0); got != key {
		t.Fatalf("first block key changed: %q -> %q", key, got)
	}
	if d.BlockKey(1) == key {
		t.Fatalf("split block must get a fresh key")
	}
}

func TestInsertText_ReplacesSelection(t *testing.T) {
	d := New("hello", Options{})
	d.SetSelection(Range{Start: Pos{Offset: 1}, End: Pos{Offset: 4}})

	d.InsertText("i")
	if got, want := d.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := d.Cursor(), (Pos{Offset: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if _, ok := d.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestDeleteBackward_RemovesWholeSurrogatePair(t *testing.T) {
	d := New("a\U0001F600", Options{})
	d.SetCursor(Pos{Offset: 3})

	d.DeleteBackward()
	if got, want := d.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := d.Cursor(), (Pos{Offset: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestDeleteBackward_JoinsBlocksAtStart(t *testing.T) {
	d := New("ab\ncd", Options{})
	d.SetCursor(Pos{Block: 1})

	d.DeleteBackward()
	if got, want := d.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := d.Cursor(), (Pos{Offset: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestDeleteForward_JoinsBlocksAtEnd(t *testing.T) {
	d := New("ab\ncd", Options{})
	d.SetCursor(Pos{Offset: 2})

	d.DeleteForward()
	if got, want := d.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	d.SetCursor(Pos{Offset: 4})
	v := d.Version()
	d.DeleteForward()
	if d.Version() != v {
		t.Fatalf("delete at document end must be a no-op")
	}
}

func TestReplaceText_TagsInsertedUnits(t *testing.T) {
	d := New("Hello #Ni", Options{})
	k := d.CreateEntity(EntityHashtag, Immutable, map[string]string{"content": "Kallio"})

	if !d.ReplaceText(SpanRange(0, Span{Start: 6, End: 9}), "#Kallio", k) {
		t.Fatalf("expected replacement to change the document")
	}
	if got, want := d.Text(), "Hello #Kallio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	got := d.EntityRanges(0)
	if len(got) != 1 || got[0].Key != k || got[0].Span != (Span{Start: 6, End: 13}) {
		t.Fatalf("entity ranges=%+v", got)
	}
	if d.EntityAt(0, 5) != NoEntity || d.EntityAt(0, 13) != NoEntity {
		t.Fatalf("entity leaked outside its span")
	}
}

func TestImmutableEntity_DeleteRemovesWholeSpan(t *testing.T) {
	d := New("Hi #tag!", Options{})
	k := d.CreateEntity(EntityHashtag, Immutable, nil)
	d.ReplaceText(SpanRange(0, Span{Start: 3, End: 7}), "#tag", k)

	d.SetCursor(Pos{Offset: 7})
	d.DeleteBackward()
	if got, want := d.Text(), "Hi !"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := d.Cursor(), (Pos{Offset: 3}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if len(d.EntityRanges(0)) != 0 {
		t.Fatalf("expected no entity ranges left")
	}
}

func TestImmutableEntity_InsertInsideStripsAnnotation(t *testing.T) {
	d := New("#tag", Options{})
	k := d.CreateEntity(EntityHashtag, Immutable, nil)
	d.ReplaceText(SpanRange(0, Span{Start: 0, End: 4}), "#tag", k)

	d.SetCursor(Pos{Offset: 2})
	d.InsertText("x")
	if got, want := d.Text(), "#txag"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := d.EntityRanges(0); len(got) != 0 {
		t.Fatalf("expected annotation stripped, got %+v", got)
	}
}

func TestImmutableEntity_TypingAtEndDoesNotExtend(t *testing.T) {
	d := New("", Options{})
	k := d.CreateEntity(EntityHashtag, Immutable, nil)
	d.ReplaceText(Range{}, "#tag", k)

	d.InsertText("s")
	if got := d.EntityAt(0, 4); got != NoEntity {
		t.Fatalf("typed text inherited immutable entity %d", got)
	}
	if got := d.EntityAt(0, 3); got != k {
		t.Fatalf("entity at 3=%d, want %d", got, k)
	}
}

func TestMutableEntity_TypingAtEndExtends(t *testing.T) {
	d := New("", Options{})
	k := d.CreateEntity("LINK", Mutable, nil)
	d.ReplaceText(Range{}, "go", k)

	d.InsertText("od")
	ranges := d.EntityRanges(0)
	if len(ranges) != 1 || ranges[0].Span != (Span{Start: 0, End: 4}) {
		t.Fatalf("entity ranges=%+v", ranges)
	}

	d.SetCursor(Pos{Offset: 4})
	d.DeleteBackward()
	ranges = d.EntityRanges(0)
	if len(ranges) != 1 || ranges[0].Span != (Span{Start: 0, End: 3}) {
		t.Fatalf("mutable entity should shrink, got %+v", ranges)
	}
}

func TestReplaceText_NoOpWhenIdentical(t *testing.T) {
	d := New("abc", Options{})
	v := d.Version()
	if d.ReplaceText(SpanRange(0, Span{Start: 0, End: 3}), "abc", NoEntity) {
		t.Fatalf("identical replacement should not report a change")
	}
	if d.Version() != v || d.CanUndo() {
		t.Fatalf("identical replacement must not bump version or history")
	}
}

func TestTextInRange_AcrossBlocks(t *testing.T) {
	d := New("ab\ncd\nef", Options{})
	got := d.TextInRange(Range{Start: Pos{Block: 0, Offset: 1}, End: Pos{Block: 2, Offset: 1}})
	if want := "b\ncd\ne"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func taggedKallio(t *testing.T) (*Document, EntityKey) {
	t.Helper()
	d := New("ab #Ni", Options{})
	k := d.CreateEntity(EntityHashtag, Immutable, nil)
	if !d.ReplaceText(Range{Start: Pos{Offset: 3}, End: Pos{Offset: 6}}, "#Kallio", k) {
		t.Fatalf("replace did not apply")
	}
	return d, k
}

func TestSnapOutOfImmutable(t *testing.T) {
	d, _ := taggedKallio(t)
	mut := d.CreateEntity(EntitySuggestion, Mutable, nil)
	d.SetCursor(Pos{Offset: 0})
	d.ReplaceText(Range{End: Pos{Offset: 2}}, "ab", mut)

	tests := []struct {
		in, want Pos
	}{
		{in: Pos{Offset: 1}, want: Pos{Offset: 1}},
		{in: Pos{Offset: 3}, want: Pos{Offset: 3}},
		{in: Pos{Offset: 4}, want: Pos{Offset: 3}},
		{in: Pos{Offset: 6}, want: Pos{Offset: 3}},
		{in: Pos{Offset: 7}, want: Pos{Offset: 10}},
		{in: Pos{Offset: 10}, want: Pos{Offset: 10}},
		{in: Pos{Block: 4, Offset: 99}, want: Pos{Offset: 10}},
	}
	for _, tt := range tests {
		if got := d.SnapOutOfImmutable(tt.in); got != tt.want {
			t.Fatalf("SnapOutOfImmutable(%v)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestChange_EntityBookkeeping(t *testing.T) {
	d, k := taggedKallio(t)
	ch, ok := d.LastChange()
	if !ok {
		t.Fatalf("expected a change")
	}
	if got := ch.TaggedEntities(); len(got) != 1 || got[0] != k {
		t.Fatalf("tagged=%v, want [%d]", got, k)
	}
	if got := ch.DroppedEntities(); len(got) != 0 {
		t.Fatalf("dropped=%v, want none", got)
	}

	d.DeleteBackward()
	if got, want := d.Text(), "ab "; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	ch, _ = d.LastChange()
	if got := ch.DroppedEntities(); len(got) != 1 || got[0] != k {
		t.Fatalf("dropped after delete=%v, want [%d]", got, k)
	}

	d, k = taggedKallio(t)
	d.SetCursor(Pos{Offset: 5})
	d.InsertText("x")
	ch, _ = d.LastChange()
	if got := ch.DroppedEntities(); len(got) != 1 || got[0] != k {
		t.Fatalf("dropped after inner insert=%v, want [%d]", got, k)
	}
	if d.EntityAt(0, 3) != NoEntity {
		t.Fatalf("inner insert must strip the entity")
	}

	d.SetCursor(Pos{Offset: 0})
	d.InsertText("z")
	ch, _ = d.LastChange()
	if got := ch.DroppedEntities(); len(got) != 0 {
		t.Fatalf("plain insert dropped %v", got)
	}
}
