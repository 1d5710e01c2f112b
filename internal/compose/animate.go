package compose

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/gallery/internal/animation"
)

// FrameRate is the animation tick interval.
const FrameRate = time.Second / 60

// FrameMsg asks the host to Tick the tree.
type FrameMsg struct {
	Time time.Time
}

// NextFrame schedules one FrameMsg.
func NextFrame() tea.Cmd {
	return tea.Tick(FrameRate, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t}
	})
}

type animState struct {
	from, to float64
	start    time.Time
	tween    animation.Tween
}

func (a *animState) at(now time.Time) (float64, bool) {
	elapsed := now.Sub(a.start)
	if a.tween.Done(elapsed) {
		return a.to, false
	}
	return a.tween.Lerp(a.from, a.to, elapsed), true
}

// Animate returns a value that follows target. The first composition snaps
// to target; later changes interpolate from the current value using tw.
// While the value is moving the scope re-runs on every Tick.
func (c *Composer) Animate(name string, target float64, tw animation.Tween) float64 {
	t := c.tree
	now := t.now()
	sl, created := t.slot(c, name)
	a, ok := sl.value.(*animState)
	if created || !ok {
		sl.value = &animState{from: target, to: target, start: now, tween: tw}
		return target
	}

	if a.to != target {
		cur, _ := a.at(now)
		a.from, a.to, a.start, a.tween = cur, target, now, tw
	}
	v, running := a.at(now)
	if running {
		t.animating[c.scope] = struct{}{}
	}
	return v
}

// Tick invalidates every scope with a running animation and reports whether
// there were any.
func (t *Tree) Tick() bool {
	for s := range t.animating {
		t.markDirty(s)
	}
	return len(t.animating) > 0
}

// Animating reports whether an animation still needs frames.
func (t *Tree) Animating() bool {
	return len(t.animating) > 0
}
