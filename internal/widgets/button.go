package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// Button is a focusable bordered label. The focused button switches to a
// thick border, so focus never changes the layout.
func Button(c *compose.Composer, name, label string, onClick func()) *compose.Node {
	th := ui.LocalTheme.Value(c)
	focused := c.Focusable(name, compose.Handlers{OnClick: onClick})
	return compose.Box(buttonStyle(th, focused), compose.Text(label))
}

func buttonStyle(th ui.Theme, focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(th.Shapes.Large).
		BorderForeground(th.Palette.Primary).
		Foreground(th.Palette.Primary).
		Padding(0, 2)
	if focused {
		s = s.Border(lipgloss.ThickBorder()).
			BorderForeground(ui.ColorHighlight).
			Bold(true)
	}
	return s
}

// IconButton is a single glyph that is bracketed while focused.
func IconButton(c *compose.Composer, name, glyph string, onClick func()) *compose.Node {
	th := ui.LocalTheme.Value(c)
	focused := c.Focusable(name, compose.Handlers{OnClick: onClick})
	if focused {
		return compose.Styled(ui.FocusStyle, "["+glyph+"]")
	}
	return compose.Styled(lipgloss.NewStyle().Foreground(th.Palette.OnSurfaceVariant), " "+glyph+" ")
}
