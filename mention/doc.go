// Package mention turns a typed trigger such as "#Ni" into a tagged,
// immutable hashtag entity.
//
// The flow is a pipeline re-run on every document change:
//
//	Scan (trigger under the caret) -> FilterSuggestions -> CommitSuggestion
//
// Session wraps the pipeline in an explicit Idle/Scanning/Committing state
// machine for UI hosts. Decorators describe which ranges of a block should be
// rendered as hashtags.
package mention
