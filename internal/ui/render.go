package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// State constants (matching app.State)
const (
	StateDemo = iota
	StatePicker
	StateHelp
)

// HelpBinding represents a keybinding for help display.
type HelpBinding struct {
	Keys string
	Desc string
}

// HelpSection represents a section of help bindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// PickerEntry is one row of the demo picker.
type PickerEntry struct {
	ID          string
	Title       string
	Description string
}

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	State  int
	Width  int
	Height int

	DemoID    string
	DemoTitle string
	DemoHint  string
	Body      string

	Err        error
	Toast      string
	Generation uint64
	Focused    string
	ShowHints  bool
	// Footer is the key summary on the last line.
	Footer string

	PickerInput  string
	PickerItems  []PickerEntry
	Cursor       int
	ViewOffset   int
	VisibleCount int

	HelpSections []HelpSection
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// chromeLines is the height taken by the box and the fixed demo rows:
// border and padding (4), header, divider, status, divider, footer.
const chromeLines = 9

// BodySize returns the space left for the composed demo inside the chrome.
func BodySize(width, height int, showHints bool) (int, int) {
	if width < MinWidth {
		width = MinWidth
	}
	if height < MinHeight {
		height = MinHeight
	}
	h := height - chromeLines
	if showHints {
		h--
	}
	return contentWidth(width), max(h, 1)
}

func contentWidth(width int) int {
	// Account for box borders and padding
	return width - 6
}

// Render renders the full UI.
func Render(p RenderParams) string {
	// Graceful degradation for small terminals instead of jumping to arbitrary values.
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	switch p.State {
	case StatePicker:
		return renderPicker(p)
	case StateHelp:
		return renderHelp(p)
	default:
		return renderDemo(p)
	}
}

// renderDemo renders the mounted demo inside the chrome.
func renderDemo(p RenderParams) string {
	var b strings.Builder
	width := contentWidth(p.Width)

	// Header
	header := HeaderStyle.Render(strings.ToUpper(p.DemoTitle)) + "  " + MutedStyle.Render(p.DemoID)
	if p.Generation > 0 {
		header += "  " + MutedStyle.Render(fmt.Sprintf("remount #%d", p.Generation))
	}
	b.WriteString(ansi.Truncate(header, width, "…") + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n")

	b.WriteString(p.Body + "\n")

	// Status line: errors win over toasts
	switch {
	case p.Err != nil:
		b.WriteString(ErrorStyle.Render(ansi.Truncate("Error: "+p.Err.Error(), width, "…")))
	case p.Toast != "":
		b.WriteString(ToastStyle.Render(p.Toast))
	case p.ShowHints && p.Focused != "":
		b.WriteString(MutedStyle.Render(ansi.Truncate("focus: "+p.Focused, width, "…")))
	}
	b.WriteString("\n")

	// Footer
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n")
	if p.ShowHints && p.DemoHint != "" {
		b.WriteString(MutedStyle.Render(ansi.Truncate(p.DemoHint, width, "…")) + "\n")
	}
	b.WriteString(HelpStyle.Render(ansi.Truncate(p.Footer, width, "…")))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderPicker renders the filterable demo list.
func renderPicker(p RenderParams) string {
	var b strings.Builder
	width := contentWidth(p.Width)

	b.WriteString(HeaderStyle.Render("DEMOS") + "  ")
	b.WriteString(p.PickerInput + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n")

	if len(p.PickerItems) == 0 {
		b.WriteString("\n" + MutedStyle.Render("No matches found.") + "\n")
	} else {
		// Calculate visible range
		startIdx := p.ViewOffset
		endIdx := p.ViewOffset + p.VisibleCount
		if endIdx > len(p.PickerItems) {
			endIdx = len(p.PickerItems)
		}
		if startIdx >= len(p.PickerItems) {
			startIdx = 0
		}

		// Show scroll indicator if items above
		if startIdx > 0 {
			b.WriteString(MutedStyle.Render(fmt.Sprintf("  ↑ %d more above", startIdx)) + "\n")
		}

		for i := startIdx; i < endIdx; i++ {
			b.WriteString(renderPickerEntry(p.PickerItems[i], i == p.Cursor, width))
			if i < endIdx-1 {
				b.WriteString("\n")
			}
		}

		// Show scroll indicator if items below
		if endIdx < len(p.PickerItems) {
			b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("  ↓ %d more below", len(p.PickerItems)-endIdx)))
		}
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n")
	b.WriteString(HelpStyle.Render("enter select • ↑/↓ move • esc cancel"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

// renderPickerEntry renders one demo as two lines: title and description.
func renderPickerEntry(e PickerEntry, selected bool, width int) string {
	cursor := "  "
	title := NormalStyle.Render(e.Title)
	if selected {
		cursor = SelectedStyle.Render(SymbolCursor + " ")
		title = SelectedStyle.Render(e.Title)
	}
	line1 := cursor + title + "  " + MutedStyle.Render(e.ID)
	line2 := "    " + MutedStyle.Render(ansi.Truncate(e.Description, max(width-4, 1), "…"))
	return line1 + "\n" + line2
}

// renderHelp renders the help overlay.
func renderHelp(p RenderParams) string {
	var b strings.Builder
	width := contentWidth(p.Width)

	b.WriteString(HeaderStyle.Render("HELP") + "\n")
	b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n\n")

	// Render each help section from the passed bindings
	for i, section := range p.HelpSections {
		b.WriteString(NormalStyle.Render(section.Title) + "\n")
		b.WriteString(DividerStyle.Render(strings.Repeat(SymbolDivider, min(40, width))) + "\n")
		for _, binding := range section.Bindings {
			// Pad keys to 12 chars for alignment
			keys := binding.Keys
			if len(keys) < 12 {
				keys = keys + strings.Repeat(" ", 12-len(keys))
			}
			b.WriteString(MutedStyle.Render("  "+keys) + " " + binding.Desc + "\n")
		}
		if i < len(p.HelpSections)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + DividerStyle.Render(strings.Repeat(SymbolDivider, width)) + "\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))

	return wrapInBox(b.String(), p.Width, p.Height)
}

func wrapInBox(content string, width, height int) string {
	boxWidth := width - 2
	// Graceful degradation: use actual width, just ensure minimum for box borders
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}

	// Don't force height - let content determine size
	style := BoxStyle.Width(boxWidth)

	return style.Render(content)
}
