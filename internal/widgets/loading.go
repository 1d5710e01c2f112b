package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// LoadingButtonOptions configures a LoadingButton.
type LoadingButtonOptions struct {
	Text        string
	LoadingText string
	// OnClicked fires when the button enters the loading state.
	OnClicked func()
	// Legacy fires OnClicked on every run of the button while it is
	// loading instead of once per transition.
	Legacy bool
}

// LoadingButton is the "Sign Up with Google" button. A click flips it into
// a loading state with alternate text and a progress indicator; another
// click flips it back.
func LoadingButton(c *compose.Composer, name string, opts LoadingButtonOptions) *compose.Node {
	if opts.Text == "" {
		opts.Text = "Sign Up with Google"
	}
	if opts.LoadingText == "" {
		opts.LoadingText = "Creating Account..."
	}

	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		th := ui.LocalTheme.Value(c)
		clicked := compose.Remember(c, "clicked", zero[bool])
		focused := c.Focusable("button", compose.Handlers{OnClick: func() { clicked.Update(not) }})
		loading := clicked.Value()

		if opts.OnClicked != nil {
			if opts.Legacy {
				if loading {
					c.SideEffect(opts.OnClicked)
				}
			} else {
				c.Effect("notify", loading, func() tea.Cmd {
					if loading {
						opts.OnClicked()
					}
					return nil
				})
			}
		}

		label := opts.Text
		var progress *compose.Node
		if loading {
			label = opts.LoadingText
			progress = c.Scope("progress", func(c *compose.Composer) *compose.Node {
				return compose.Styled(lipgloss.NewStyle().Foreground(th.Palette.Primary), LocalSpinner.Value(c))
			})
		}

		border := ui.LightGray
		if focused {
			border = ui.ColorHighlight
		}
		surface := lipgloss.NewStyle().
			Border(th.Shapes.Medium).
			BorderForeground(border).
			Padding(0, 2, 0, 1)

		logo := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4285F4"))
		var spacing *compose.Node
		if loading {
			spacing = compose.Gap(2)
		}
		return compose.Box(surface, compose.Row(
			compose.Styled(logo, ui.SymbolGoogle),
			compose.Gap(1),
			compose.Text(label),
			spacing,
			progress,
		))
	})
}
