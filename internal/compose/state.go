package compose

import (
	"encoding/json"
	"reflect"
)

// State is an observable cell. Reading Value inside a content function
// subscribes that scope; Set re-runs every subscribed scope on the next pass.
type State[T any] struct {
	tree  *Tree
	key   Key
	value T
}

// Value returns the current value and records the read.
func (s *State[T]) Value() T {
	s.tree.read(s.key)
	return s.value
}

// Peek returns the current value without subscribing.
func (s *State[T]) Peek() T {
	return s.value
}

// Set stores v. Writing a value deeply equal to the current one is a no-op.
func (s *State[T]) Set(v T) {
	if equal(s.value, v) {
		return
	}
	s.value = v
	s.tree.invalidate(s.key)
}

// Update applies fn to the current value.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Key returns the slot position of the cell.
func (s *State[T]) Key() Key {
	return s.key
}

// Remember returns a State kept for as long as the calling scope stays
// mounted. init runs once, when the slot is created.
func Remember[T any](c *Composer, name string, init func() T) *State[T] {
	sl, created := c.tree.slot(c, name)
	if !created {
		if st, ok := sl.value.(*State[T]); ok {
			return st
		}
	}
	st := &State[T]{tree: c.tree, key: sl.key, value: init()}
	sl.value = st
	sl.save = nil
	return st
}

// RememberSaveable is Remember whose value also survives Remount. T must
// round-trip through encoding/json.
func RememberSaveable[T any](c *Composer, name string, init func() T) *State[T] {
	t := c.tree
	sl, created := t.slot(c, name)
	if !created {
		if st, ok := sl.value.(*State[T]); ok {
			return st
		}
	}

	st := &State[T]{tree: t, key: sl.key}
	if raw, ok := t.restored[sl.key]; ok {
		delete(t.restored, sl.key)
		if err := json.Unmarshal(raw, &st.value); err != nil {
			t.log.Warn().Err(err).Str("slot", string(sl.key)).Msg("discarding unreadable saved value")
			st.value = init()
		}
	} else {
		st.value = init()
	}

	sl.value = st
	sl.save = func() (json.RawMessage, error) {
		return json.Marshal(st.value)
	}
	return st
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
