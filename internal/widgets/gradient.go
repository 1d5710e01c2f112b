package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// GradientOptions configures a GradientButton.
type GradientOptions struct {
	Text      string
	TextColor lipgloss.Color
	From, To  lipgloss.Color
	OnClick   func()
}

// GradientColors blends n colors from one end to the other in Lab space.
// Endpoints are returned unchanged.
func GradientColors(from, to lipgloss.Color, n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	out := make([]lipgloss.Color, n)
	a, errA := colorful.Hex(string(from))
	b, errB := colorful.Hex(string(to))
	for i := range out {
		switch {
		case errA != nil || errB != nil || i == 0:
			out[i] = from
		case i == n-1:
			out[i] = to
		default:
			out[i] = lipgloss.Color(a.BlendLab(b, float64(i)/float64(n-1)).Clamped().Hex())
		}
	}
	return out
}

// GradientButton is a button whose background runs horizontally through a
// gradient, PurpleGrey40 to Pink40 by default, with white text.
func GradientButton(c *compose.Composer, name string, opts GradientOptions) *compose.Node {
	if opts.Text == "" {
		opts.Text = "Button"
	}
	if opts.TextColor == "" {
		opts.TextColor = ui.White
	}
	if opts.From == "" {
		opts.From = ui.PurpleGrey40
	}
	if opts.To == "" {
		opts.To = ui.Pink40
	}
	onClick := opts.OnClick
	if onClick == nil {
		onClick = func() {}
	}

	focused := c.Focusable(name, compose.Handlers{OnClick: onClick})

	label := opts.Text
	if focused {
		label = ui.SymbolFocus + " " + label
	} else {
		label = "  " + label
	}
	const padX = 2
	width := lipgloss.Width(label) + 2*padX + 2
	colors := GradientColors(opts.From, opts.To, width)

	text := []rune(strings.Repeat(" ", padX) + label + strings.Repeat(" ", padX+2))
	rows := make([]*compose.Node, 3)
	for r := range rows {
		var b strings.Builder
		for i, col := range colors {
			cell := lipgloss.NewStyle().Background(col)
			ch := " "
			if r == 1 && i < len(text) {
				ch = string(text[i])
				cell = cell.Foreground(opts.TextColor).Bold(focused)
			}
			b.WriteString(cell.Render(ch))
		}
		rows[r] = compose.Text(b.String())
	}
	return compose.Column(rows...)
}
