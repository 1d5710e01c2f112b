package widgets

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
)

// RecompositionDemo is a button labelled with a random number. Clicking
// draws a new number. Only the button's scope reads the value, so the
// outer scope runs once and the button re-runs on every click.
func RecompositionDemo(c *compose.Composer, name string, random func() float64) *compose.Node {
	if random == nil {
		random = rand.Float64
	}
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		value := compose.Remember(c, "value", zero[float64])
		debug.Log("RecompositionDemo: initial composition")

		return c.Scope("button", func(c *compose.Composer) *compose.Node {
			debug.Log("RecompositionDemo: initial & recomposition")
			return Button(c, "click", FormatDouble(value.Value()), func() {
				value.Set(random())
			})
		})
	})
}

// FormatDouble prints v with a trailing ".0" for whole numbers.
func FormatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
