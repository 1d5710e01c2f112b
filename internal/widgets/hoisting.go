package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// HoistedCounter owns one saveable count and hands it down. Neither child
// writes the count; HoistedChild calls back into the owner.
func HoistedCounter(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		count := compose.RememberSaveable(c, "count", zero[int])
		n := count.Value()
		return compose.CenteredColumn(
			compose.Spacer(1),
			HoistedChild(c, "sender", n, func() { count.Update(inc) }),
			compose.Spacer(1),
			MessageBar(c, "bar", n),
		)
	})
}

// HoistedChild shows count and reports clicks through increment.
func HoistedChild(c *compose.Composer, name string, count int, increment func()) *compose.Node {
	return c.Stable(name, []any{count}, func(c *compose.Composer) *compose.Node {
		return counterView(c, count, "Send Notification", increment)
	})
}

// MessageBar shows count inside a card with a heart.
func MessageBar(c *compose.Composer, name string, count int) *compose.Node {
	return c.Stable(name, []any{count}, func(c *compose.Composer) *compose.Node {
		th := ui.LocalTheme.Value(c)
		card := lipgloss.NewStyle().
			Border(th.Shapes.Medium).
			BorderForeground(th.Palette.Outline).
			Padding(0, 1)
		return compose.Box(card, compose.Row(
			compose.Styled(lipgloss.NewStyle().Foreground(ui.Red), ui.SymbolHeart),
			compose.Gap(2),
			compose.Styled(lipgloss.NewStyle().Italic(true), fmt.Sprintf("Message sent so far %d", count)),
		))
	})
}
