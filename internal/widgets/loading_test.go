package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/henri123lemoine/gallery/internal/compose"
)

func loadingHarness(t *testing.T, legacy bool, fired *int) *harness {
	return newHarness(t, func(c *compose.Composer) *compose.Node {
		return LoadingButton(c, "google", LoadingButtonOptions{
			Legacy:    legacy,
			OnClicked: func() { *fired++ },
		})
	})
}

func TestLoadingButtonSwapsLabel(t *testing.T) {
	fired := 0
	h := loadingHarness(t, false, &fired)
	compose.Provide(h.tree, LocalSpinner, "⣾")

	out := h.compose()
	assert.Contains(t, out, "Sign Up with Google")
	assert.NotContains(t, out, "⣾")

	out = h.click("demo/google/button")
	assert.Contains(t, out, "Creating Account...")
	assert.Contains(t, out, "⣾")

	out = h.click("demo/google/button")
	assert.Contains(t, out, "Sign Up with Google")
}

func TestLoadingButtonFiresOncePerTransition(t *testing.T) {
	fired := 0
	h := loadingHarness(t, false, &fired)
	h.compose()
	assert.Equal(t, 0, fired)

	h.click("demo/google/button")
	assert.Equal(t, 1, fired)
	h.redraw()
	h.redraw()
	assert.Equal(t, 1, fired, "redraws while loading do not fire again")

	h.click("demo/google/button")
	assert.Equal(t, 1, fired, "leaving the loading state does not fire")
	h.click("demo/google/button")
	assert.Equal(t, 2, fired)
}

func TestLoadingButtonLegacyFiresEveryRun(t *testing.T) {
	fired := 0
	h := loadingHarness(t, true, &fired)
	h.compose()

	h.click("demo/google/button")
	assert.Equal(t, 1, fired)
	h.redraw()
	assert.Equal(t, 2, fired)
	h.redraw()
	assert.Equal(t, 3, fired)
}

func TestSpinnerFramesOnlyRerunTheIndicator(t *testing.T) {
	fired := 0
	h := loadingHarness(t, true, &fired)
	h.compose()
	h.click("demo/google/button")
	runs := h.tree.Renders("demo/google")

	compose.Provide(h.tree, LocalSpinner, "⣽")
	out := h.compose()
	assert.Contains(t, out, "⣽")
	assert.Equal(t, runs, h.tree.Renders("demo/google"))
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, h.tree.Renders("demo/google/progress"))
}
