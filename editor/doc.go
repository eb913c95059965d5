// Package editor provides a Bubble Tea text editor component backed by the
// document package, with hashtag entry driven by the mention package.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering with decorations, the suggestion popup, and host
// integration hooks (change and suggestion listeners).
package editor
