// Package debug provides debug logging functionality for gallery.
//
// When enabled via the --debug flag or the [debug] config section, it writes
// structured JSON lines to a size-rotated file: recomposition traces, demo
// switches, image fetches and the log lines the demos themselves emit.
// The terminal belongs to the UI, so nothing is ever written to stdout.
package debug
