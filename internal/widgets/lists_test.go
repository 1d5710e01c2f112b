package widgets

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/gallery/internal/compose"
)

var titleLine = regexp.MustCompile(`(Alok \d+)[^\n]*\n[^\n]*?(Mirzapur \d+)`)

func listHarness(t *testing.T, lazy bool, vp Viewport, opts ...compose.Option) *harness {
	items := CategoryList()
	h := newHarness(t, func(c *compose.Composer) *compose.Node {
		if lazy {
			return LazyColumn(c, "list", items)
		}
		return EagerColumn(c, "list", items)
	}, opts...)
	compose.Provide(h.tree, LocalViewport, vp)
	return h
}

func pairs(out string) []string {
	var got []string
	for _, m := range titleLine.FindAllStringSubmatch(out, -1) {
		got = append(got, m[1]+"/"+m[2])
	}
	return got
}

func TestListsRenderSameSequence(t *testing.T) {
	vp := Viewport{Width: 40, Height: CategoryCount * ItemHeight}
	eager := listHarness(t, false, vp).compose()
	lazy := listHarness(t, true, vp).compose()

	assert.Equal(t, eager, lazy)
	got := pairs(eager)
	require.Len(t, got, CategoryCount)
	assert.Equal(t, "Alok 1/Mirzapur 1", got[0])
	assert.Equal(t, "Alok 100/Mirzapur 100", got[99])
}

func TestListsDifferInComposedItems(t *testing.T) {
	vp := Viewport{Width: 40, Height: 20}
	seed := compose.WithSnapshot(compose.Snapshot{"demo/list/scroll": json.RawMessage("200")})
	eager := listHarness(t, false, vp, seed)
	lazy := listHarness(t, true, vp, seed)

	eagerOut := eager.compose()
	lazyOut := lazy.compose()
	assert.Equal(t, eagerOut, lazyOut)
	assert.Contains(t, lazyOut, "Alok 51")

	assert.Equal(t, CategoryCount, eager.tree.MountedChildren("demo/list"))
	assert.Less(t, lazy.tree.MountedChildren("demo/list"), CategoryCount)
	assert.Equal(t, 5, lazy.tree.MountedChildren("demo/list"))
}

func TestListsStayIdenticalWhileScrolling(t *testing.T) {
	vp := Viewport{Width: 40, Height: 10}
	eager := listHarness(t, false, vp)
	lazy := listHarness(t, true, vp)
	eager.compose()
	lazy.compose()

	for _, k := range []string{"down", "down", "j", " ", "down", "end", "up", "k", "home"} {
		assert.Equal(t, eager.key(k), lazy.key(k), "after %q", k)
	}
}

func TestLazyColumnDisposesScrolledOutItems(t *testing.T) {
	h := listHarness(t, true, Viewport{Width: 40, Height: 8})
	h.compose()
	assert.True(t, h.tree.Has("demo/list/item-0"))

	h.key("end")
	assert.False(t, h.tree.Has("demo/list/item-0"))
	assert.True(t, h.tree.Has("demo/list/item-99"))
}

func TestScrollOffsetClamps(t *testing.T) {
	h := listHarness(t, true, Viewport{Width: 40, Height: 8})
	top := h.compose()
	assert.Equal(t, top, h.key("up"))

	bottom := h.key("end")
	assert.Equal(t, bottom, h.key("down"))
	assert.True(t, strings.Contains(bottom, "Alok 100"))
}

func TestScrollOffsetSurvivesRemount(t *testing.T) {
	h := listHarness(t, true, Viewport{Width: 40, Height: 8})
	h.compose()
	scrolled := h.key("end")
	assert.Equal(t, scrolled, h.remount())
}

func TestVisibleRange(t *testing.T) {
	first, last := VisibleRange(100, 0, 10)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, last)

	first, last = VisibleRange(100, 6, 4)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, last)

	first, last = VisibleRange(3, 100, 10)
	assert.Equal(t, 3, first)
	assert.Equal(t, 3, last)

	first, last = VisibleRange(0, 0, 10)
	assert.Equal(t, 0, first+last)
	assert.Equal(t, 380, MaxOffset(100, 20))
	assert.Equal(t, 0, MaxOffset(2, 20))
}
