package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - chrome around the demos, independent of the widget theme
var (
	ColorPrimary   = lipgloss.Color("4")   // Blue
	ColorSecondary = lipgloss.Color("8")   // Gray
	ColorSuccess   = lipgloss.Color("2")   // Green (dimmer)
	ColorWarning   = lipgloss.Color("3")   // Yellow (dimmer)
	ColorDanger    = lipgloss.Color("1")   // Red (dimmer)
	ColorMuted     = lipgloss.Color("245") // Light gray
	ColorHighlight = lipgloss.Color("6")   // Cyan
	ColorText      = lipgloss.Color("252") // Light text
)

// Styles
var (
	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorMuted)

	// Selected item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// Normal item style
	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Secondary text: ids, descriptions, scroll indicators
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Input style
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// Toast style
	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// Focused widget marker
	FocusStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	// Divider style
	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Symbols
const (
	SymbolCursor     = "›"
	SymbolFocus      = "▸"
	SymbolDivider    = "─"
	SymbolArrowDown  = "▼"
	SymbolArrowLeft  = "◀"
	SymbolArrowUp    = "▲"
	SymbolVisible    = "◉"
	SymbolHidden     = "◎"
	SymbolHeart      = "♥"
	SymbolGoogle     = "G"
	SymbolMask       = '•'
	SymbolImageError = "✗"
)
