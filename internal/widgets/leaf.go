package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// ItemHeight is the number of lines every BlogCategory occupies.
const ItemHeight = 4

// BlogCategory renders a list card: a picture beside a title and subtitle,
// inside a border. The card is always ItemHeight lines tall and width
// cells wide.
func BlogCategory(c *compose.Composer, item Category, width int) *compose.Node {
	th := ui.LocalTheme.Value(c)
	inner := max(width-2, PictureWidth+4)
	text := inner - PictureWidth - 3

	card := lipgloss.NewStyle().
		Border(th.Shapes.Medium).
		BorderForeground(th.Palette.Outline).
		Width(inner)

	return compose.Box(card, compose.TopRow(
		compose.Gap(1),
		Picture(item.Image, ""),
		compose.Gap(2),
		compose.Column(
			compose.Styled(th.Typography.TitleLarge, ansi.Truncate(item.Title, text, "…")),
			compose.Styled(th.Typography.LabelLarge, ansi.Truncate(item.Subtitle, text, "…")),
		),
	))
}

// ListViewItem is a borderless row with a larger picture.
func ListViewItem(c *compose.Composer, ref ImageRef, title, subtitle string) *compose.Node {
	th := ui.LocalTheme.Value(c)
	return padded(compose.TopRow(
		Picture(ref, ""),
		compose.Gap(2),
		compose.Column(
			compose.Styled(th.Typography.TitleLarge, title),
			compose.Styled(th.Typography.LabelLarge, subtitle),
		),
	))
}

func padded(n *compose.Node) *compose.Node {
	return compose.Box(lipgloss.NewStyle().Padding(0, 1, 1, 1), n)
}

// CircularImage is the launcher picture clipped to a circle and tinted red.
func CircularImage() *compose.Node {
	style := lipgloss.NewStyle().Foreground(ui.Red)
	return compose.Column(
		compose.Styled(style, " ▄███▄ "),
		compose.Styled(style, "███████"),
		compose.Styled(style, " ▀███▀ "),
	)
}

// ModifierChain shows the same three decorations applied in two orders:
// background then padding then border, and border then padding then
// background. The outermost decoration wins the outer cells.
func ModifierChain(c *compose.Composer) *compose.Node {
	hello := lipgloss.NewStyle().Foreground(ui.Blue).Bold(true)

	yellowInBorder := compose.Box(
		lipgloss.NewStyle().Padding(1, 3).Background(ui.Blue),
		compose.Box(
			lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ui.Red),
			compose.Box(lipgloss.NewStyle().Background(ui.Yellow).Padding(0, 1), compose.Styled(hello, "Hello")),
		),
	)
	borderOutside := compose.Box(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ui.Red),
		compose.Box(
			lipgloss.NewStyle().Padding(1, 3).Background(ui.Yellow),
			compose.Box(lipgloss.NewStyle().Background(ui.Blue).Padding(0, 1), compose.Styled(hello, "Hello")),
		),
	)

	caption := lipgloss.NewStyle().Faint(true)
	return compose.Column(
		compose.TopRow(
			compose.Column(compose.Styled(caption, "background → padding → border"), yellowInBorder),
			compose.Gap(4),
			compose.Column(compose.Styled(caption, "border → padding → background"), borderOutside),
		),
		compose.Spacer(1),
		CircularImage(),
	)
}
