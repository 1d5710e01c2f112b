package compose

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type effectState struct {
	key any
}

// Effect runs fn after the current pass when the effect first enters the
// composition and again whenever key changes. A returned command is queued
// for TakeCmd.
func (c *Composer) Effect(name string, key any, fn func() tea.Cmd) {
	sl, created := c.tree.slot(c, name)
	st, ok := sl.value.(*effectState)
	if !created && ok && equal(st.key, key) {
		return
	}
	sl.value = &effectState{key: key}
	c.tree.effects = append(c.tree.effects, fn)
}

// SideEffect runs fn after every run of the current scope.
func (c *Composer) SideEffect(fn func()) {
	c.tree.effects = append(c.tree.effects, func() tea.Cmd {
		fn()
		return nil
	})
}

// OnDispose runs fn once when the current scope leaves the composition or
// the tree is torn down.
func (c *Composer) OnDispose(name string, fn func()) {
	sl, _ := c.tree.slot(c, name)
	sl.dispose = fn
}

// ProducedMsg carries the result of a Produce job back into the update loop.
type ProducedMsg struct {
	Key   Key
	Token uint64
	Value any
}

type producer struct {
	key    any
	token  uint64
	cancel context.CancelFunc
}

// Produce returns a State holding initial until job completes. job runs off
// the update loop through a tea.Cmd; its result must be handed to
// Tree.Deliver. A new key restarts the job from initial. Leaving the
// composition cancels the job and drops its result.
func Produce[T any](c *Composer, name string, initial T, key any, job func(ctx context.Context) T) *State[T] {
	t := c.tree
	st := Remember(c, name, func() T { return initial })

	sl, created := t.slot(c, name+"#job")
	p, _ := sl.value.(*producer)
	if !created && p != nil && equal(p.key, key) {
		return st
	}
	if p != nil {
		p.cancel()
		delete(t.jobs, p.token)
		st.Set(initial)
	}

	t.tokens++
	ctx, cancel := context.WithCancel(context.Background())
	p = &producer{key: key, token: t.tokens, cancel: cancel}
	sl.value = p
	sl.dispose = func() {
		cancel()
		delete(t.jobs, p.token)
	}
	t.jobs[p.token] = func(v any) {
		if tv, ok := v.(T); ok {
			st.Set(tv)
		}
	}

	msgKey, token := sl.key, p.token
	t.cmds = append(t.cmds, func() tea.Msg {
		return ProducedMsg{Key: msgKey, Token: token, Value: job(ctx)}
	})
	return st
}

// Deliver applies a finished job. It reports false when the producing slot
// was disposed or restarted in the meantime.
func (t *Tree) Deliver(msg ProducedMsg) bool {
	fn, ok := t.jobs[msg.Token]
	if !ok {
		t.log.Debug().Str("slot", string(msg.Key)).Uint64("token", msg.Token).Msg("dropping stale result")
		return false
	}
	delete(t.jobs, msg.Token)
	fn(msg.Value)
	return true
}
