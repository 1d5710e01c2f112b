package widgets

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// PasswordFieldWidth is the visible width of the text area.
const PasswordFieldWidth = 24

// PasswordField is an outlined text field whose value is masked unless the
// trailing visibility toggle is on. Masking only changes what is drawn; the
// value itself is never rewritten.
func PasswordField(c *compose.Composer, name string) *compose.Node {
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		th := ui.LocalTheme.Value(c)
		password := compose.Remember(c, "password", zero[string])
		visible := compose.Remember(c, "visible", zero[bool])
		input := compose.Remember(c, "input", newPasswordInput).Peek()

		focused := c.Focusable("field", compose.Handlers{
			CapturesText: true,
			OnKey: func(msg tea.KeyMsg) bool {
				before := input.Value()
				next, _ := input.Update(msg)
				*input = next
				password.Set(input.Value())
				return input.Value() != before || isEditKey(msg)
			},
		})

		if visible.Value() {
			input.EchoMode = textinput.EchoNormal
		} else {
			input.EchoMode = textinput.EchoPassword
		}
		if focused {
			input.Focus()
		} else {
			input.Blur()
		}
		input.SetValue(password.Value())

		glyph := ui.SymbolHidden
		if visible.Peek() {
			glyph = ui.SymbolVisible
		}
		icon := IconButton(c, "visibility", glyph, func() { visible.Update(not) })

		border := th.Palette.Outline
		label := lipgloss.NewStyle().Foreground(th.Palette.OnSurfaceVariant)
		if focused {
			border = th.Palette.Primary
			label = label.Foreground(th.Palette.Primary)
		}
		outline := lipgloss.NewStyle().
			Border(th.Shapes.Small).
			BorderForeground(border).
			Padding(0, 1)

		return compose.Column(
			compose.Styled(label, " Password"),
			compose.Box(outline, compose.Row(
				compose.Box(lipgloss.NewStyle().Width(PasswordFieldWidth+1), compose.Text(input.View())),
				icon,
			)),
		)
	})
}

func newPasswordInput() *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Password"
	ti.Prompt = ""
	ti.EchoCharacter = ui.SymbolMask
	ti.EchoMode = textinput.EchoPassword
	ti.Width = PasswordFieldWidth
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &ti
}

func isEditKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete,
		tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	}
	return false
}
