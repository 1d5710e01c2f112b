package widgets

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
)

func TestRecompositionDemoRerunsOnlyTheButton(t *testing.T) {
	var logs bytes.Buffer
	require.NoError(t, debug.Enable("", debug.Options{Writer: &logs}))
	defer debug.Close()

	next := 0.25
	h := newHarness(t, func(c *compose.Composer) *compose.Node {
		return RecompositionDemo(c, "recomposition", func() float64 { return next })
	})
	assert.Contains(t, h.compose(), "0.0")

	assert.Contains(t, h.click("demo/recomposition/button/click"), "0.25")
	next = 0.5
	assert.Contains(t, h.click("demo/recomposition/button/click"), "0.5")

	assert.Equal(t, 1, h.tree.Renders("demo/recomposition"))
	assert.Equal(t, 3, h.tree.Renders("demo/recomposition/button"))
	assert.Equal(t, 1, strings.Count(logs.String(), "RecompositionDemo: initial composition"))
	assert.Equal(t, 3, strings.Count(logs.String(), "RecompositionDemo: initial & recomposition"))
}

func TestFormatDouble(t *testing.T) {
	assert.Equal(t, "0.0", FormatDouble(0))
	assert.Equal(t, "2.0", FormatDouble(2))
	assert.Equal(t, "0.125", FormatDouble(0.125))
}
