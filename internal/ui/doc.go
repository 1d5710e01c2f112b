// Package ui provides rendering functions for the gallery terminal UI.
//
// It contains the Render function which takes RenderParams and produces
// the chrome around the composed demo (header, status line, footer, demo
// picker and help screen), the Lipgloss style definitions for that chrome,
// and the widget Theme that demos read through LocalTheme.
// The rendering is pure (no side effects) and separated from state management.
package ui
