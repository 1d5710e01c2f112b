package compose

// Key identifies a scope or slot by its position in the tree.
type Key string

// Child returns the key of the named position below k.
func (k Key) Child(name string) Key {
	if k == "" {
		return Key(name)
	}
	return k + "/" + Key(name)
}
