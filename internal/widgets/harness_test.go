package widgets

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/gallery/internal/compose"
)

// harness mounts one content function at "demo" with a controllable clock.
type harness struct {
	t    *testing.T
	tree *compose.Tree
	root compose.Content
	now  time.Time
}

func newHarness(t *testing.T, root compose.Content, opts ...compose.Option) *harness {
	h := &harness{t: t, root: root, now: time.Unix(1_700_000_000, 0)}
	opts = append([]compose.Option{compose.WithClock(func() time.Time { return h.now })}, opts...)
	h.tree = compose.NewTree(opts...)
	return h
}

func (h *harness) compose() string {
	return plain(h.tree.Compose("demo", h.root))
}

func (h *harness) click(key compose.Key) string {
	h.t.Helper()
	require.True(h.t, h.tree.Focus(key), "focusable %s not mounted; have %v", key, h.tree.Focusables())
	h.compose()
	require.True(h.t, h.tree.Click())
	return h.compose()
}

func (h *harness) key(s string) string {
	h.t.Helper()
	var msg tea.KeyMsg
	switch s {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		msg = tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		msg = tea.KeyMsg{Type: tea.KeyHome}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.tree.HandleKey(msg)
	return h.compose()
}

func (h *harness) advance(d time.Duration) string {
	h.now = h.now.Add(d)
	h.tree.Tick()
	return h.compose()
}

func (h *harness) remount() string {
	h.tree.Remount()
	return h.compose()
}

func (h *harness) redraw() string {
	h.tree.Invalidate()
	return h.compose()
}

func (h *harness) run() []tea.Msg {
	return runCmd(h.tree.TakeCmd())
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

func plain(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
