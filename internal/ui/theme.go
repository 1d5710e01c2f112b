package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
)

// Base colors of the widget theme.
var (
	Purple80     = lipgloss.Color("#D0BCFF")
	PurpleGrey80 = lipgloss.Color("#CCC2DC")
	Pink80       = lipgloss.Color("#EFB8C8")

	Purple40     = lipgloss.Color("#6650a4")
	PurpleGrey40 = lipgloss.Color("#625b71")
	Pink40       = lipgloss.Color("#7D5260")

	White     = lipgloss.Color("#FFFFFF")
	Red       = lipgloss.Color("#FF0000")
	Blue      = lipgloss.Color("#0000FF")
	Yellow    = lipgloss.Color("#FFFF00")
	LightGray = lipgloss.Color("#CCCCCC")
)

// Palette is the color scheme consumed by widgets.
type Palette struct {
	Primary          lipgloss.Color
	Secondary        lipgloss.Color
	Tertiary         lipgloss.Color
	Background       lipgloss.Color
	Surface          lipgloss.Color
	OnSurface        lipgloss.Color
	OnSurfaceVariant lipgloss.Color
	Outline          lipgloss.Color
}

// Shapes maps corner sizes to border sets.
type Shapes struct {
	Small  lipgloss.Border
	Medium lipgloss.Border
	Large  lipgloss.Border
}

// Typography holds text styles by role.
type Typography struct {
	TitleLarge lipgloss.Style
	TitleSmall lipgloss.Style
	BodyLarge  lipgloss.Style
	LabelLarge lipgloss.Style
}

// Theme bundles palette, shapes and typography. It is resolved once at
// startup and never changes afterwards.
type Theme struct {
	Name       string
	Dark       bool
	Palette    Palette
	Shapes     Shapes
	Typography Typography
}

// Theme names accepted by Resolve.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DarkTheme uses the 80-tone colors.
var DarkTheme = newTheme(ThemeDark, true, Palette{
	Primary:          Purple80,
	Secondary:        PurpleGrey80,
	Tertiary:         Pink80,
	Background:       lipgloss.Color("#1C1B1F"),
	Surface:          lipgloss.Color("#2B2930"),
	OnSurface:        lipgloss.Color("#E6E1E5"),
	OnSurfaceVariant: lipgloss.Color("#CAC4D0"),
	Outline:          lipgloss.Color("#938F99"),
})

// LightTheme uses the 40-tone colors.
var LightTheme = newTheme(ThemeLight, false, Palette{
	Primary:          Purple40,
	Secondary:        PurpleGrey40,
	Tertiary:         Pink40,
	Background:       lipgloss.Color("#FFFBFE"),
	Surface:          lipgloss.Color("#FFFBFE"),
	OnSurface:        lipgloss.Color("#1C1B1F"),
	OnSurfaceVariant: lipgloss.Color("#49454F"),
	Outline:          lipgloss.Color("#79747E"),
})

func newTheme(name string, dark bool, p Palette) Theme {
	return Theme{
		Name:    name,
		Dark:    dark,
		Palette: p,
		Shapes: Shapes{
			Small:  lipgloss.NormalBorder(),
			Medium: lipgloss.RoundedBorder(),
			Large:  lipgloss.RoundedBorder(),
		},
		Typography: Typography{
			TitleLarge: lipgloss.NewStyle().Bold(true).Foreground(p.OnSurface),
			TitleSmall: lipgloss.NewStyle().Foreground(p.OnSurface),
			BodyLarge:  lipgloss.NewStyle().Foreground(p.OnSurface),
			LabelLarge: lipgloss.NewStyle().Faint(true).Foreground(p.OnSurfaceVariant),
		},
	}
}

// Resolve maps a theme name to a Theme. "auto" (or "") follows the terminal
// background.
func Resolve(name string) (Theme, error) {
	switch name {
	case ThemeDark:
		return DarkTheme, nil
	case ThemeLight:
		return LightTheme, nil
	case ThemeAuto, "":
		if lipgloss.HasDarkBackground() {
			return DarkTheme, nil
		}
		return LightTheme, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want auto, dark or light)", name)
}

// LocalTheme provides the Theme to widgets.
var LocalTheme = compose.NewLocal("theme", DarkTheme)
