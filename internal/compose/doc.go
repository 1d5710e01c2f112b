// Package compose is the retention and recomposition runtime behind the
// gallery widgets.
//
// A Tree holds every mounted recompose scope and every remembered slot in an
// explicit map keyed by tree position. Content functions receive a Composer
// and return a Node; the Tree re-runs only the scopes whose state cells
// changed, keeps cached nodes for the rest, and renders the result with
// lipgloss.
//
// Three retention policies are available to content functions:
//
//   - a plain local variable is re-initialized on every run of its scope;
//   - Remember keeps a State across runs until the tree is torn down;
//   - RememberSaveable additionally writes the value into a Snapshot on
//     Remount and restores it when the same key is composed again.
//
// All Tree methods must be called from the Bubble Tea update goroutine.
package compose
