package widgets

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
)

// EagerColumn composes every item up front and scrolls by clipping.
func EagerColumn(c *compose.Composer, name string, items []Category) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		vp := LocalViewport.Value(c)
		offset := scrollState(c, len(items), vp.Height)

		children := make([]*compose.Node, len(items))
		for i, item := range items {
			children[i] = listItem(c, i, item, vp.Width)
		}
		return compose.Clip(compose.Column(children...), offset, vp.Height)
	})
}

// LazyColumn composes only the items that intersect the viewport. Items
// scrolled out of view leave the composition.
func LazyColumn(c *compose.Composer, name string, items []Category) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		vp := LocalViewport.Value(c)
		offset := scrollState(c, len(items), vp.Height)

		first, last := VisibleRange(len(items), offset, vp.Height)
		children := make([]*compose.Node, 0, last-first)
		for i := first; i < last; i++ {
			children = append(children, listItem(c, i, items[i], vp.Width))
		}
		debug.Log("LazyColumn: composed items %d..%d of %d", first, last, len(items))
		return compose.Clip(compose.Column(children...), offset-first*ItemHeight, vp.Height)
	})
}

// VisibleRange returns the half-open index range of items that intersect
// the lines [offset, offset+height).
func VisibleRange(n, offset, height int) (int, int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	first := min(max(offset/ItemHeight, 0), n)
	last := min((offset+height+ItemHeight-1)/ItemHeight, n)
	return first, max(last, first)
}

// MaxOffset is the largest scroll offset that still fills the viewport.
func MaxOffset(n, height int) int {
	return max(n*ItemHeight-height, 0)
}

func listItem(c *compose.Composer, i int, item Category, width int) *compose.Node {
	return c.Stable("item-"+strconv.Itoa(i), []any{item, width}, func(c *compose.Composer) *compose.Node {
		return BlogCategory(c, item, width)
	})
}

// scrollState registers the list as focusable and returns its saved,
// clamped offset in lines.
func scrollState(c *compose.Composer, n, height int) int {
	offset := compose.RememberSaveable(c, "scroll", zero[int])
	limit := MaxOffset(n, height)
	page := max(height-1, 1)

	c.Focusable("scroll", compose.Handlers{OnKey: func(msg tea.KeyMsg) bool {
		cur := offset.Peek()
		next := cur
		switch msg.String() {
		case "down", "j":
			next = cur + 1
		case "up", "k":
			next = cur - 1
		case "pgdown", "ctrl+d", " ":
			next = cur + page
		case "pgup", "ctrl+u":
			next = cur - page
		case "home", "g":
			next = 0
		case "end", "G":
			next = limit
		default:
			return false
		}
		offset.Set(min(max(next, 0), limit))
		return true
	}})

	return min(max(offset.Value(), 0), limit)
}
