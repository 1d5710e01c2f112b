package compose

import tea "github.com/charmbracelet/bubbletea"

// Handlers are the input callbacks of a focusable element.
type Handlers struct {
	// OnClick runs when the element is activated. The owning scope re-runs
	// afterwards whether or not state changed.
	OnClick func()
	// OnKey receives keys while the element is focused and reports whether
	// it consumed them.
	OnKey func(msg tea.KeyMsg) bool
	// CapturesText asks the host to route printable keys here first.
	CapturesText bool
}

type focusable struct {
	key   Key
	owner *scope
	h     Handlers
}

// Focusable registers a focusable element in document order and reports
// whether it currently holds focus. With nothing focused, the first element
// composed takes focus.
func (c *Composer) Focusable(name string, h Handlers) bool {
	f := &focusable{key: c.scope.key.Child(name), owner: c.scope, h: h}
	c.scope.entries = append(c.scope.entries, entry{focus: f})
	if c.tree.focused == "" {
		c.tree.focused = f.key
	}
	return f.key == c.tree.focused
}

func (t *Tree) rebuildFocus() {
	t.order = t.order[:0]
	if t.root != nil {
		t.order = collectFocus(t.root, t.order)
	}
	if t.indexOf(t.focused) >= 0 {
		return
	}
	next := Key("")
	if len(t.order) > 0 {
		next = t.order[0].key
	}
	t.setFocus(next)
}

func collectFocus(s *scope, out []*focusable) []*focusable {
	for _, e := range s.entries {
		switch {
		case e.focus != nil:
			out = append(out, e.focus)
		case e.child != nil:
			out = collectFocus(e.child, out)
		}
	}
	return out
}

func (t *Tree) indexOf(k Key) int {
	if k == "" {
		return -1
	}
	for i, f := range t.order {
		if f.key == k {
			return i
		}
	}
	return -1
}

func (t *Tree) setFocus(k Key) {
	if k == t.focused {
		return
	}
	if i := t.indexOf(t.focused); i >= 0 {
		t.markDirty(t.order[i].owner)
	}
	t.focused = k
	if i := t.indexOf(k); i >= 0 {
		t.markDirty(t.order[i].owner)
	}
}

func (t *Tree) focusedElement() *focusable {
	if i := t.indexOf(t.focused); i >= 0 {
		return t.order[i]
	}
	return nil
}

// Focused returns the key of the focused element, or "".
func (t *Tree) Focused() Key {
	return t.focused
}

// Focus moves focus to the element at k if it is mounted.
func (t *Tree) Focus(k Key) bool {
	if t.indexOf(k) < 0 {
		return false
	}
	t.setFocus(k)
	return true
}

// FocusNext moves focus forward, wrapping around.
func (t *Tree) FocusNext() {
	t.moveFocus(1)
}

// FocusPrev moves focus backward, wrapping around.
func (t *Tree) FocusPrev() {
	t.moveFocus(-1)
}

func (t *Tree) moveFocus(delta int) {
	n := len(t.order)
	if n == 0 {
		return
	}
	i := t.indexOf(t.focused)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	t.setFocus(t.order[i].key)
}

// Click activates the focused element. Every click schedules a re-run of
// the element's scope.
func (t *Tree) Click() bool {
	f := t.focusedElement()
	if f == nil || f.h.OnClick == nil {
		return false
	}
	f.h.OnClick()
	t.markDirty(f.owner)
	return true
}

// HandleKey offers msg to the focused element. A consumed key re-runs the
// element's scope.
func (t *Tree) HandleKey(msg tea.KeyMsg) bool {
	f := t.focusedElement()
	if f == nil || f.h.OnKey == nil {
		return false
	}
	if !f.h.OnKey(msg) {
		return false
	}
	t.markDirty(f.owner)
	return true
}

// CapturesText reports whether the focused element consumes typed text.
func (t *Tree) CapturesText() bool {
	f := t.focusedElement()
	return f != nil && f.h.CapturesText
}

// Focusables returns the keys of all focusable elements in document order.
func (t *Tree) Focusables() []Key {
	keys := make([]Key, len(t.order))
	for i, f := range t.order {
		keys[i] = f.key
	}
	return keys
}
