// Package app provides the main Bubble Tea application model for gallery.
//
// The model owns one compose.Tree with a single demo mounted at its root.
// After every message it recomposes the tree, so only scopes invalidated by
// that message re-run, and View wraps the last composed frame in the
// chrome rendered by package ui. Besides the demo itself the model has a
// demo picker and a help screen, both driven by the KeyMap.
package app
