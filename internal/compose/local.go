package compose

// Local is an ambient value provided by the host and read anywhere in the
// tree. Reads are tracked like State reads.
type Local[T any] struct {
	key Key
	def T
}

// NewLocal declares an ambient value with a default used until Provide.
func NewLocal[T any](name string, def T) *Local[T] {
	return &Local[T]{key: Key("$local").Child(name), def: def}
}

// Value returns the provided value, or the default.
func (l *Local[T]) Value(c *Composer) T {
	c.tree.read(l.key)
	return l.Get(c.tree)
}

// Get returns the provided value without subscribing.
func (l *Local[T]) Get(t *Tree) T {
	if v, ok := t.locals[l.key].(T); ok {
		return v
	}
	return l.def
}

// Provide sets the ambient value. Readers re-run only when it changes.
func Provide[T any](t *Tree, l *Local[T], v T) {
	if equal(l.Get(t), v) {
		return
	}
	t.locals[l.key] = v
	t.invalidate(l.key)
}
