// Package widgets is the widget catalog: display leaves, the stateful demo
// widgets and the list renderers, all written as content functions over the
// compose runtime.
//
// Every stateful widget mounts its own scope under the name it is given, so
// its remembered state lives at a stable key such as "remember/durable/count".
// Widgets read the theme, viewport, spinner frame and image loader through
// compose Locals the host provides.
package widgets
