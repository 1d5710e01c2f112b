package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/gallery/internal/animation"
)

func plain(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

type counterFixture struct {
	tree  *Tree
	count *State[int]
	root  Content
}

func newCounterFixture(saveable bool, opts ...Option) *counterFixture {
	f := &counterFixture{tree: NewTree(opts...)}
	f.root = func(c *Composer) *Node {
		return Column(
			Text("header"),
			c.Scope("counter", func(c *Composer) *Node {
				if saveable {
					f.count = RememberSaveable(c, "n", func() int { return 0 })
				} else {
					f.count = Remember(c, "n", func() int { return 0 })
				}
				return Text(fmt.Sprintf("n=%d", f.count.Value()))
			}),
		)
	}
	return f
}

func (f *counterFixture) compose() string {
	return plain(f.tree.Compose("root", f.root))
}

func TestComposeReRunsOnlyInvalidatedScopes(t *testing.T) {
	f := newCounterFixture(false)
	assert.Equal(t, "header\nn=0", f.compose())
	assert.Equal(t, 1, f.tree.Renders("root"))
	assert.Equal(t, 1, f.tree.Renders("root/counter"))

	f.count.Set(1)
	assert.True(t, f.tree.NeedsCompose())
	assert.Equal(t, "header\nn=1", f.compose())
	assert.Equal(t, 1, f.tree.Renders("root"))
	assert.Equal(t, 2, f.tree.Renders("root/counter"))
	assert.False(t, f.tree.NeedsCompose())
}

func TestSetSameValueIsNoop(t *testing.T) {
	f := newCounterFixture(false)
	f.compose()
	f.count.Set(0)
	assert.False(t, f.tree.NeedsCompose())
}

func TestRememberSurvivesRedrawButNotRemount(t *testing.T) {
	f := newCounterFixture(false)
	f.compose()
	f.count.Update(func(n int) int { return n + 3 })
	f.compose()

	f.tree.Invalidate()
	assert.Equal(t, "header\nn=3", f.compose())
	assert.Equal(t, 2, f.tree.Renders("root"))

	f.tree.Remount()
	assert.Equal(t, uint64(1), f.tree.Generation())
	assert.Equal(t, "header\nn=0", f.compose())
}

func TestRememberSaveableSurvivesRemount(t *testing.T) {
	f := newCounterFixture(true)
	f.compose()
	for i := 0; i < 4; i++ {
		f.count.Update(func(n int) int { return n + 1 })
		f.compose()
	}

	f.tree.Remount()
	snap := f.tree.Snapshot()
	assert.JSONEq(t, "4", string(snap["root/counter/n"]))

	assert.Equal(t, "header\nn=4", f.compose())
	f.tree.Remount()
	assert.Equal(t, "header\nn=4", f.compose())
}

func TestResetDiscardsSaveableState(t *testing.T) {
	f := newCounterFixture(true)
	f.compose()
	f.count.Set(2)
	f.compose()

	f.tree.Reset()
	assert.Equal(t, "header\nn=0", f.compose())
}

func TestWithSnapshotSeedsSaveableState(t *testing.T) {
	f := newCounterFixture(true, WithSnapshot(Snapshot{"root/counter/n": json.RawMessage("7")}))
	assert.Equal(t, "header\nn=7", f.compose())
}

func TestUnreadableSnapshotFallsBackToInit(t *testing.T) {
	f := newCounterFixture(true, WithSnapshot(Snapshot{"root/counter/n": json.RawMessage(`"seven"`)}))
	assert.Equal(t, "header\nn=0", f.compose())
}

func TestStableSkipsEqualInputs(t *testing.T) {
	tree := NewTree()
	var tick *State[int]
	label := "a"
	root := func(c *Composer) *Node {
		tick = Remember(c, "tick", func() int { return 0 })
		_ = tick.Value()
		l := label
		return c.Stable("item", []any{l}, func(c *Composer) *Node {
			return Text(l)
		})
	}

	tree.Compose("root", root)
	tick.Set(1)
	tree.Compose("root", root)
	assert.Equal(t, 2, tree.Renders("root"))
	assert.Equal(t, 1, tree.Renders("root/item"))

	label = "b"
	tick.Set(2)
	assert.Equal(t, "b", plain(tree.Compose("root", root)))
	assert.Equal(t, 2, tree.Renders("root/item"))
}

func TestScopesLeavingCompositionAreDisposed(t *testing.T) {
	tree := NewTree()
	var show *State[bool]
	disposed := 0
	root := func(c *Composer) *Node {
		show = Remember(c, "show", func() bool { return true })
		if !show.Value() {
			return Text("gone")
		}
		return c.Scope("child", func(c *Composer) *Node {
			c.OnDispose("cleanup", func() { disposed++ })
			return Text("here")
		})
	}

	assert.Equal(t, "here", plain(tree.Compose("root", root)))
	assert.True(t, tree.Has("root/child"))
	assert.Equal(t, 1, tree.MountedChildren("root"))

	show.Set(false)
	assert.Equal(t, "gone", plain(tree.Compose("root", root)))
	assert.False(t, tree.Has("root/child"))
	assert.Equal(t, 0, tree.MountedChildren("root"))
	assert.Equal(t, 1, disposed)
}

func TestDuplicateScopeNamePanics(t *testing.T) {
	tree := NewTree()
	assert.Panics(t, func() {
		tree.Compose("root", func(c *Composer) *Node {
			return Column(
				c.Scope("x", func(*Composer) *Node { return nil }),
				c.Scope("x", func(*Composer) *Node { return nil }),
			)
		})
	})
}

func TestEffectRunsOnKeyChange(t *testing.T) {
	tree := NewTree()
	var key *State[int]
	runs := 0
	renders := 0
	root := func(c *Composer) *Node {
		key = Remember(c, "key", func() int { return 0 })
		k := key.Value()
		c.Effect("fx", k/2, func() tea.Cmd {
			runs++
			return nil
		})
		c.SideEffect(func() { renders++ })
		return Text("x")
	}

	tree.Compose("root", root)
	assert.Equal(t, 1, runs)

	key.Set(1)
	tree.Compose("root", root)
	assert.Equal(t, 1, runs)

	key.Set(2)
	tree.Compose("root", root)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 3, renders)
}

func TestProduceDeliversResult(t *testing.T) {
	tree := NewTree()
	root := func(c *Composer) *Node {
		st := Produce(c, "data", "loading", "url", func(ctx context.Context) string {
			return "done"
		})
		return Text(st.Value())
	}

	assert.Equal(t, "loading", plain(tree.Compose("root", root)))
	msgs := runCmd(tree.TakeCmd())
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(ProducedMsg)
	require.True(t, ok)

	assert.True(t, tree.Deliver(msg))
	assert.Equal(t, "done", plain(tree.Compose("root", root)))
	assert.False(t, tree.Deliver(msg), "a result is applied once")
}

func TestProduceDropsResultAfterUnmount(t *testing.T) {
	tree := NewTree()
	var show *State[bool]
	var jobCtx context.Context
	root := func(c *Composer) *Node {
		show = Remember(c, "show", func() bool { return true })
		if !show.Value() {
			return Text("none")
		}
		return c.Scope("image", func(c *Composer) *Node {
			st := Produce(c, "data", "loading", "url", func(ctx context.Context) string {
				jobCtx = ctx
				return "done"
			})
			return Text(st.Value())
		})
	}

	tree.Compose("root", root)
	cmd := tree.TakeCmd()
	show.Set(false)
	tree.Compose("root", root)

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	require.NotNil(t, jobCtx)
	assert.Error(t, jobCtx.Err(), "unmount cancels the job")
	assert.False(t, tree.Deliver(msgs[0].(ProducedMsg)))
	assert.False(t, tree.NeedsCompose())
	assert.Equal(t, "none", plain(tree.Compose("root", root)))
}

func TestProduceRestartsOnKeyChange(t *testing.T) {
	tree := NewTree()
	var url *State[string]
	root := func(c *Composer) *Node {
		url = Remember(c, "url", func() string { return "a" })
		u := url.Value()
		st := Produce(c, "data", "loading", u, func(ctx context.Context) string {
			return "got " + u
		})
		return Text(st.Value())
	}

	tree.Compose("root", root)
	first := runCmd(tree.TakeCmd())
	url.Set("b")
	assert.Equal(t, "loading", plain(tree.Compose("root", root)))
	second := runCmd(tree.TakeCmd())

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.False(t, tree.Deliver(first[0].(ProducedMsg)))
	assert.True(t, tree.Deliver(second[0].(ProducedMsg)))
	assert.Equal(t, "got b", plain(tree.Compose("root", root)))
}

func TestAnimateFollowsTween(t *testing.T) {
	now := time.Unix(0, 0)
	tree := NewTree(WithClock(func() time.Time { return now }))
	var open *State[bool]
	var value float64
	root := func(c *Composer) *Node {
		open = Remember(c, "open", func() bool { return false })
		target := 0.0
		if open.Value() {
			target = 1
		}
		value = c.Animate("progress", target, animation.DefaultTween)
		return Text(fmt.Sprintf("%.2f", value))
	}

	tree.Compose("root", root)
	assert.Equal(t, 0.0, value)
	assert.False(t, tree.Animating())

	open.Set(true)
	tree.Compose("root", root)
	assert.True(t, tree.Animating())

	now = now.Add(150 * time.Millisecond)
	assert.True(t, tree.Tick())
	tree.Compose("root", root)
	assert.Greater(t, value, 0.5, "decelerating curve is past halfway at half time")
	assert.Less(t, value, 1.0)

	now = now.Add(200 * time.Millisecond)
	tree.Tick()
	tree.Compose("root", root)
	assert.Equal(t, 1.0, value)
	assert.False(t, tree.Animating())
}

func TestFocusRingAndClick(t *testing.T) {
	tree := NewTree()
	clicks := map[string]int{}
	root := func(c *Composer) *Node {
		var row []*Node
		for _, name := range []string{"a", "b", "c"} {
			focused := c.Focusable(name, Handlers{OnClick: func() { clicks[name]++ }})
			label := name
			if focused {
				label = "[" + name + "]"
			}
			row = append(row, Text(label))
		}
		return Row(row...)
	}

	assert.Equal(t, "[a]bc", plain(tree.Compose("root", root)))
	assert.Equal(t, Key("root/a"), tree.Focused())
	assert.Equal(t, []Key{"root/a", "root/b", "root/c"}, tree.Focusables())

	tree.FocusNext()
	assert.Equal(t, "a[b]c", plain(tree.Compose("root", root)))

	tree.FocusPrev()
	tree.FocusPrev()
	assert.Equal(t, "ab[c]", plain(tree.Compose("root", root)))

	renders := tree.Renders("root")
	assert.True(t, tree.Click())
	assert.Equal(t, 1, clicks["c"])
	tree.Compose("root", root)
	assert.Equal(t, renders+1, tree.Renders("root"), "a click always re-renders its owner")
}

func TestFocusMovesWhenElementLeaves(t *testing.T) {
	tree := NewTree()
	var show *State[bool]
	root := func(c *Composer) *Node {
		show = Remember(c, "show", func() bool { return true })
		c.Focusable("first", Handlers{})
		if show.Value() {
			c.Focusable("second", Handlers{})
		}
		return nil
	}

	tree.Compose("root", root)
	require.True(t, tree.Focus("root/second"))
	show.Set(false)
	tree.Compose("root", root)
	assert.Equal(t, Key("root/first"), tree.Focused())
	assert.False(t, tree.Focus("root/second"))
}

func TestHandleKeyAndCapture(t *testing.T) {
	tree := NewTree()
	var typed []string
	tree.Compose("root", func(c *Composer) *Node {
		c.Focusable("field", Handlers{
			CapturesText: true,
			OnKey: func(msg tea.KeyMsg) bool {
				typed = append(typed, msg.String())
				return true
			},
		})
		return nil
	})

	assert.True(t, tree.CapturesText())
	assert.True(t, tree.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	assert.Equal(t, []string{"x"}, typed)
	assert.False(t, tree.Click())
}

func TestLocalReadsAreTracked(t *testing.T) {
	width := NewLocal("width", 10)
	tree := NewTree()
	root := func(c *Composer) *Node {
		return Column(
			c.Scope("reader", func(c *Composer) *Node {
				return Text(fmt.Sprint(width.Value(c)))
			}),
			c.Scope("other", func(c *Composer) *Node {
				return Text("static")
			}),
		)
	}

	assert.Equal(t, "10\nstatic", plain(tree.Compose("root", root)))
	Provide(tree, width, 10)
	assert.False(t, tree.NeedsCompose())

	Provide(tree, width, 42)
	assert.Equal(t, "42\nstatic", plain(tree.Compose("root", root)))
	assert.Equal(t, 2, tree.Renders("root/reader"))
	assert.Equal(t, 1, tree.Renders("root/other"))
	assert.Equal(t, 42, width.Get(tree))
}

func TestSwitchingRootResetsTree(t *testing.T) {
	tree := NewTree()
	tree.Compose("one", func(c *Composer) *Node {
		return c.Scope("x", func(*Composer) *Node { return Text("1") })
	})
	assert.Equal(t, "2", plain(tree.Compose("two", func(c *Composer) *Node { return Text("2") })))
	assert.False(t, tree.Has("one/x"))
	assert.Equal(t, uint64(1), tree.Generation())
}
