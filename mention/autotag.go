package mention

import "github.com/iw2rmb/hashmark/document"

// AutoTag converts a freshly typed, untagged "#word" before the caret into a
// hashtag entity followed by a space. Hosts call it when the user types a
// space; when it reports false the host inserts the space itself.
//
// Words known to vocab are stored with their canonical spelling.
func AutoTag(doc *document.Document, vocab *Vocabulary, opt CommitOptions) (document.EntityKey, bool) {
	opt = opt.normalized()
	q, ok := Scan(doc, opt.Trigger)
	if !ok || q.Term == "" {
		return document.NoEntity, false
	}
	if doc.SpanHasEntity(q.Block, q.Match.Span()) {
		return document.NoEntity, false
	}

	content := q.Term
	if canonical, ok := vocab.Lookup(q.Term); ok {
		content = canonical
	}
	return replaceWithEntity(doc, q.Block, q.Match.Span(), opt, content), true
}
