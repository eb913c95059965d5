package editor

import "github.com/iw2rmb/hashmark/document"

// ChangeEvent describes the document after an edit, caret move or selection
// change.
type ChangeEvent struct {
	Version   uint64
	Cursor    document.Pos
	Selection struct {
		Range  document.Range
		Active bool
	}

	// Change is the last applied edit record. It is only meaningful when
	// HasChange is set.
	Change    document.Change
	HasChange bool

	Text string
}

func buildChangeEvent(d *document.Document) ChangeEvent {
	ev := ChangeEvent{
		Version: d.Version(),
		Cursor:  d.Cursor(),
		Text:    d.Text(),
	}
	if r, ok := d.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	ev.Change, ev.HasChange = d.LastChange()
	return ev
}

type listener[T any] struct {
	id int
	fn func(T)
}

// listeners is an ordered registry. Cancel funcs are idempotent.
type listeners[T any] struct {
	next int
	list []listener[T]
}

func (l *listeners[T]) add(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	l.next++
	id := l.next
	l.list = append(l.list, listener[T]{id: id, fn: fn})
	return func() {
		for i, it := range l.list {
			if it.id == id {
				l.list = append(l.list[:i:i], l.list[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) emit(v T) {
	// Listeners may cancel themselves while being notified.
	for _, it := range append([]listener[T](nil), l.list...) {
		it.fn(v)
	}
}

func (l *listeners[T]) len() int { return len(l.list) }

// hooks is shared by every copy of a Model.
type hooks struct {
	change      listeners[ChangeEvent]
	suggestions listeners[SuggestionState]
}

// OnChange registers fn for document, caret and selection changes. The
// returned func removes it.
func (m Model) OnChange(fn func(ChangeEvent)) (cancel func()) {
	return m.hooks.change.add(fn)
}

// OnSuggestions registers fn for suggestion state changes. The returned func
// removes it.
func (m Model) OnSuggestions(fn func(SuggestionState)) (cancel func()) {
	return m.hooks.suggestions.add(fn)
}
