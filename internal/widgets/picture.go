package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
)

// Bundled pictures as cell art. Each is PictureWidth cells wide.
var pictures = map[ImageRef][]string{
	LauncherForeground: {
		"▗▚▄▞▖",
		"▐▛▀▜▌",
	},
	LauncherBackground: {
		"▦▦▦▦▦",
		"▦▦▦▦▦",
	},
	GoogleLogo: {
		"▄▀▀▀ ",
		"▀▄▄▀▌",
	},
}

var pictureColors = map[ImageRef]lipgloss.Color{
	LauncherForeground: lipgloss.Color("#3DDC84"),
	LauncherBackground: lipgloss.Color("#073042"),
	GoogleLogo:         lipgloss.Color("#4285F4"),
}

// PictureWidth is the width of every bundled picture.
const PictureWidth = 5

// Picture renders a bundled picture, tinted with tint when non-empty.
func Picture(ref ImageRef, tint lipgloss.Color) *compose.Node {
	fg := pictureColors[ref]
	if tint != "" {
		fg = tint
	}
	style := lipgloss.NewStyle().Foreground(fg)
	lines := make([]*compose.Node, 0, len(pictures[ref]))
	for _, l := range pictures[ref] {
		lines = append(lines, compose.Styled(style, l))
	}
	return compose.Column(lines...)
}
