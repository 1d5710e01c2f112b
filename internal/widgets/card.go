package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/gallery/internal/animation"
	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// CardOptions configures an ExpandableCard. Zero values take the defaults
// noted on each field.
type CardOptions struct {
	Title    string
	Subtitle string
	// SubtitleMaxLines defaults to 4.
	SubtitleMaxLines int
	// Width defaults to the viewport width, capped at 60.
	Width int
	// Tween defaults to animation.DefaultTween.
	Tween animation.Tween
}

// RotationGlyph returns the arrow drawn at the given rotation in degrees.
func RotationGlyph(deg float64) string {
	switch {
	case deg < 45:
		return ui.SymbolArrowDown
	case deg < 135:
		return ui.SymbolArrowLeft
	default:
		return ui.SymbolArrowUp
	}
}

// ExpandableCard toggles between a title-only card and one that also shows
// the subtitle. Either the card or its arrow toggles it. The content height
// and the arrow rotation follow the same tween in both directions.
func ExpandableCard(c *compose.Composer, name string, opts CardOptions) *compose.Node {
	if opts.SubtitleMaxLines <= 0 {
		opts.SubtitleMaxLines = 4
	}
	if opts.Tween.Duration == 0 {
		opts.Tween = animation.DefaultTween
	}

	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		th := ui.LocalTheme.Value(c)
		width := opts.Width
		if width <= 0 {
			width = min(LocalViewport.Value(c).Width, 60)
		}
		inner := max(width-4, 8)

		expanded := compose.Remember(c, "expanded", zero[bool])
		open := expanded.Value()
		target := 0.0
		if open {
			target = 1
		}
		progress := c.Animate("progress", target, opts.Tween)
		toggle := func() { expanded.Update(not) }

		cardFocused := c.Focusable("card", compose.Handlers{OnClick: toggle})
		icon := IconButton(c, "icon", RotationGlyph(progress*180), toggle)

		titleWidth := inner - lipgloss.Width(compose.Render(icon)) - 1
		title := ansi.Truncate(opts.Title, titleWidth, "…")
		title += strings.Repeat(" ", max(titleWidth-ansi.StringWidth(title), 0))

		lines := SubtitleLines(opts.Subtitle, inner, opts.SubtitleMaxLines)
		shown := int(math.Round(progress * float64(len(lines))))

		var body *compose.Node
		switch {
		case shown == 0:
		case open:
			sub := make([]*compose.Node, len(lines))
			for i, l := range lines {
				sub[i] = compose.Styled(th.Typography.TitleSmall, l)
			}
			body = compose.Clip(compose.Column(sub...), 0, shown)
		default:
			// Collapsing: the subtitle is gone, only the space shrinks.
			body = compose.Spacer(shown)
		}

		border := th.Palette.Outline
		if cardFocused {
			border = ui.ColorHighlight
		}
		card := lipgloss.NewStyle().
			Border(th.Shapes.Large).
			BorderForeground(border).
			Padding(0, 1).
			Width(inner + 2)

		return compose.Box(card, compose.Column(
			compose.Row(compose.Styled(th.Typography.TitleLarge, title), compose.Gap(1), icon),
			body,
		))
	})
}

// SubtitleLines wraps s to width and keeps at most maxLines lines, ending
// the last kept line with an ellipsis when text was dropped.
func SubtitleLines(s string, width, maxLines int) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(ansi.Wordwrap(s, width, ""), "\n")
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if ansi.StringWidth(last) >= width {
		last = ansi.Truncate(last, width-1, "")
	}
	lines[maxLines-1] = last + "…"
	return lines
}
