package compose

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Content builds the layout of one scope.
type Content func(c *Composer) *Node

// Snapshot is the opaque key/value record of saveable state written on
// Remount. Values are JSON documents.
type Snapshot map[Key]json.RawMessage

// maxPasses bounds how many times Compose re-runs scopes invalidated by
// effects or focus changes within a single call.
const maxPasses = 3

type entry struct {
	child *scope
	focus *focusable
}

type scope struct {
	key     Key
	parent  *scope
	content Content
	node    *Node
	entries []entry
	inputs  []any
	reads   map[Key]struct{}
	dirty   bool
	seen    uint64
	ran     uint64
	renders int
}

type slot struct {
	key     Key
	owner   *scope
	value   any
	seen    uint64
	save    func() (json.RawMessage, error)
	dispose func()
}

// Tree owns mounted scopes, remembered slots and ambient values.
type Tree struct {
	scopes    map[Key]*scope
	slots     map[Key]*slot
	readers   map[Key]map[*scope]struct{}
	locals    map[Key]any
	animating map[*scope]struct{}
	root      *scope
	current   *scope

	pass     uint64
	gen      uint64
	tokens   uint64
	forced   bool
	pending  bool
	restored Snapshot

	effects []func() tea.Cmd
	cmds    []tea.Cmd
	jobs    map[uint64]func(any)

	order   []*focusable
	focused Key

	now func() time.Time
	log zerolog.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock replaces the wall clock used by animations.
func WithClock(now func() time.Time) Option {
	return func(t *Tree) { t.now = now }
}

// WithLogger traces scope runs and disposals.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tree) { t.log = log }
}

// WithSnapshot seeds the tree with saveable state, typically read back from
// disk after a process restart.
func WithSnapshot(s Snapshot) Option {
	return func(t *Tree) { t.restored = maps.Clone(s) }
}

// NewTree creates an empty tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		locals: make(map[Key]any),
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	t.clear()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) clear() {
	t.scopes = make(map[Key]*scope)
	t.slots = make(map[Key]*slot)
	t.readers = make(map[Key]map[*scope]struct{})
	t.animating = make(map[*scope]struct{})
	t.jobs = make(map[uint64]func(any))
	t.root = nil
	t.current = nil
	t.order = nil
	t.effects = nil
}

// Compose brings the tree rooted at key up to date and returns its rendered
// output. Only invalidated scopes re-run. A different key than the previous
// call replaces the whole tree.
func (t *Tree) Compose(key Key, content Content) string {
	if t.root != nil && t.root.key != key {
		t.Reset()
	}
	for i := 0; i < maxPasses; i++ {
		t.pending = false
		t.pass++
		if t.root == nil {
			t.root = t.newScope(key, nil)
			t.root.content = content
			t.run(t.root)
		} else {
			t.root.content = content
			t.visit(t.root)
		}
		t.forced = false
		t.collect()
		t.rebuildFocus()
		t.flushEffects()
		if !t.pending {
			break
		}
	}
	return Render(t.root.node)
}

// NeedsCompose reports whether a state change is waiting for the next pass.
func (t *Tree) NeedsCompose() bool {
	return t.pending || t.forced
}

// Invalidate forces every mounted scope to re-run on the next pass without
// tearing anything down (a redraw).
func (t *Tree) Invalidate() {
	t.forced = true
}

// Remount tears the tree down and rebuilds it on the next pass. Saveable
// slots survive through a snapshot; everything else starts over.
func (t *Tree) Remount() {
	snap := t.Snapshot()
	t.teardown()
	t.restored = snap
	t.gen++
	t.log.Debug().Uint64("generation", t.gen).Int("saved", len(snap)).Msg("remount")
}

// Reset tears the tree down and discards saveable state.
func (t *Tree) Reset() {
	t.teardown()
	t.restored = nil
	t.gen++
}

func (t *Tree) teardown() {
	for _, sl := range t.slots {
		if sl.dispose != nil {
			sl.dispose()
		}
	}
	t.clear()
	t.focused = ""
}

// Snapshot encodes every mounted saveable slot. Restored values that have not
// been composed again yet are carried over unchanged.
func (t *Tree) Snapshot() Snapshot {
	snap := make(Snapshot, len(t.restored))
	maps.Copy(snap, t.restored)
	for k, sl := range t.slots {
		if sl.save == nil {
			continue
		}
		raw, err := sl.save()
		if err != nil {
			t.log.Warn().Err(err).Str("slot", string(k)).Msg("skipping unsaveable slot")
			continue
		}
		snap[k] = raw
	}
	return snap
}

// Generation increases on every Remount and Reset.
func (t *Tree) Generation() uint64 {
	return t.gen
}

// Renders returns how many times the scope at key has run since it was
// mounted, or 0 when it is not mounted.
func (t *Tree) Renders(key Key) int {
	if s, ok := t.scopes[key]; ok {
		return s.renders
	}
	return 0
}

// Has reports whether a scope is mounted at key.
func (t *Tree) Has(key Key) bool {
	_, ok := t.scopes[key]
	return ok
}

// MountedChildren counts the scopes mounted directly below key.
func (t *Tree) MountedChildren(key Key) int {
	s, ok := t.scopes[key]
	if !ok {
		return 0
	}
	n := 0
	for _, e := range s.entries {
		if e.child != nil {
			n++
		}
	}
	return n
}

// TakeCmd returns the commands queued by effects since the last call.
func (t *Tree) TakeCmd() tea.Cmd {
	cmds := t.cmds
	t.cmds = nil
	return tea.Batch(cmds...)
}

func (t *Tree) newScope(key Key, parent *scope) *scope {
	s := &scope{key: key, parent: parent}
	t.scopes[key] = s
	return s
}

// visit walks a clean scope, re-running only invalidated descendants.
func (t *Tree) visit(s *scope) {
	if s.dirty || t.forced {
		t.run(s)
		return
	}
	s.seen = t.pass
	for _, e := range s.entries {
		if e.child != nil {
			t.visit(e.child)
		}
	}
}

func (t *Tree) run(s *scope) {
	s.seen = t.pass
	s.ran = t.pass
	s.dirty = false
	s.entries = nil
	t.forget(s)
	delete(t.animating, s)

	prev := t.current
	t.current = s
	s.node = s.content(&Composer{tree: t, scope: s})
	t.current = prev

	s.renders++
	t.log.Trace().Str("scope", string(s.key)).Int("renders", s.renders).Msg("run")
}

// collect drops scopes that left the composition during this pass, and slots
// whose owner re-ran without asking for them.
func (t *Tree) collect() {
	for k, sl := range t.slots {
		owner, alive := t.scopes[sl.owner.key]
		if !alive || owner != sl.owner || sl.owner.seen != t.pass ||
			(sl.owner.ran == t.pass && sl.seen != t.pass) {
			if sl.dispose != nil {
				sl.dispose()
			}
			delete(t.slots, k)
			delete(t.readers, k)
		}
	}
	for k, s := range t.scopes {
		if s.seen == t.pass {
			continue
		}
		t.forget(s)
		delete(t.animating, s)
		delete(t.scopes, k)
		t.log.Trace().Str("scope", string(k)).Msg("dispose")
	}
}

func (t *Tree) read(k Key) {
	s := t.current
	if s == nil {
		return
	}
	if s.reads == nil {
		s.reads = make(map[Key]struct{})
	}
	s.reads[k] = struct{}{}
	rs := t.readers[k]
	if rs == nil {
		rs = make(map[*scope]struct{})
		t.readers[k] = rs
	}
	rs[s] = struct{}{}
}

func (t *Tree) forget(s *scope) {
	for k := range s.reads {
		if rs := t.readers[k]; rs != nil {
			delete(rs, s)
			if len(rs) == 0 {
				delete(t.readers, k)
			}
		}
	}
	s.reads = nil
}

func (t *Tree) invalidate(k Key) {
	for s := range t.readers[k] {
		t.markDirty(s)
	}
}

func (t *Tree) markDirty(s *scope) {
	if s == nil {
		return
	}
	s.dirty = true
	t.pending = true
}

func (t *Tree) slot(c *Composer, name string) (*slot, bool) {
	k := c.scope.key.Child(name)
	if sl, ok := t.slots[k]; ok && sl.owner == c.scope {
		sl.seen = t.pass
		return sl, false
	}
	sl := &slot{key: k, owner: c.scope, seen: t.pass}
	t.slots[k] = sl
	return sl, true
}

func (t *Tree) flushEffects() {
	for len(t.effects) > 0 {
		effects := t.effects
		t.effects = nil
		for _, fn := range effects {
			if cmd := fn(); cmd != nil {
				t.cmds = append(t.cmds, cmd)
			}
		}
	}
}

// Composer is handed to content functions. It is only valid while the
// function runs.
type Composer struct {
	tree  *Tree
	scope *scope
	names map[string]struct{}
}

// Key returns the position of the scope being composed.
func (c *Composer) Key() Key {
	return c.scope.key
}

// Tree returns the tree being composed.
func (c *Composer) Tree() *Tree {
	return c.tree
}

// Now returns the tree clock.
func (c *Composer) Now() time.Time {
	return c.tree.now()
}

// Scope mounts a child recompose scope. The child re-runs whenever this
// scope runs, and on its own whenever a state it read changes.
func (c *Composer) Scope(name string, content Content) *Node {
	return c.child(name, nil, false, content)
}

// Stable mounts a child scope that is skipped when this scope re-runs with
// deeply equal inputs and the child itself is not invalidated.
func (c *Composer) Stable(name string, inputs []any, content Content) *Node {
	return c.child(name, inputs, true, content)
}

func (c *Composer) child(name string, inputs []any, stable bool, content Content) *Node {
	c.claim(name)
	t := c.tree
	k := c.scope.key.Child(name)

	s, ok := t.scopes[k]
	if !ok || s.parent != c.scope {
		s = t.newScope(k, c.scope)
		s.content = content
		s.inputs = inputs
		c.scope.entries = append(c.scope.entries, entry{child: s})
		t.run(s)
		return scopeRef(s)
	}

	s.content = content
	c.scope.entries = append(c.scope.entries, entry{child: s})
	if stable && !s.dirty && !t.forced && equal(s.inputs, inputs) {
		t.visit(s)
	} else {
		s.inputs = inputs
		t.run(s)
	}
	return scopeRef(s)
}

func (c *Composer) claim(name string) {
	if strings.Contains(name, "/") {
		panic(fmt.Sprintf("compose: scope name %q must not contain '/'", name))
	}
	if c.names == nil {
		c.names = make(map[string]struct{})
	}
	if _, dup := c.names[name]; dup {
		panic(fmt.Sprintf("compose: duplicate scope %q under %q", name, c.scope.key))
	}
	c.names[name] = struct{}{}
}
