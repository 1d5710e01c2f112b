package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/gallery/internal/config"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Focus
	NextFocus key.Binding
	PrevFocus key.Binding
	Click     key.Binding

	// Lifecycle
	Remount key.Binding
	Redraw  key.Binding

	// Picker
	Picker  key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// General
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus next"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "focus previous"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "click"),
		),
		Remount: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "remount"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "redraw"),
		),
		Picker: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "demos"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	override := func(b *key.Binding, keys, desc string) {
		if keys == "" {
			return
		}
		*b = key.NewBinding(
			key.WithKeys(config.SplitKeys(keys)...),
			key.WithHelp(helpKeys(keys), desc),
		)
	}
	override(&km.NextFocus, cfg.NextFocus, "focus next")
	override(&km.PrevFocus, cfg.PrevFocus, "focus previous")
	override(&km.Click, cfg.Click, "click")
	override(&km.Remount, cfg.Remount, "remount")
	override(&km.Redraw, cfg.Redraw, "redraw")
	override(&km.Picker, cfg.Picker, "demos")
	override(&km.Help, cfg.Help, "help")
	override(&km.Quit, cfg.Quit, "quit")

	return km
}

// helpKeys shows the first key of a binding list, naming the space key.
func helpKeys(keys string) string {
	ks := config.SplitKeys(keys)
	if len(ks) == 0 {
		return keys
	}
	if ks[0] == " " {
		return "space"
	}
	return ks[0]
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Click, k.Remount, k.Redraw, k.Picker, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Click},
		{k.Remount, k.Redraw},
		{k.Picker, k.Help, k.Quit},
	}
}

// HelpSections lays the bindings out for the help screen.
func (k KeyMap) HelpSections() []ui.HelpSection {
	section := func(title string, bs ...key.Binding) ui.HelpSection {
		s := ui.HelpSection{Title: title}
		for _, b := range bs {
			h := b.Help()
			s.Bindings = append(s.Bindings, ui.HelpBinding{Keys: h.Key, Desc: h.Desc})
		}
		return s
	}
	return []ui.HelpSection{
		section("Focus", k.NextFocus, k.PrevFocus, k.Click),
		section("Lifecycle", k.Remount, k.Redraw),
		section("General", k.Picker, k.Help, k.Quit),
		{Title: "Lists", Bindings: []ui.HelpBinding{
			{Keys: "↑/k ↓/j", Desc: "scroll a line"},
			{Keys: "pgup pgdn", Desc: "scroll a page"},
			{Keys: "home end", Desc: "jump to first or last"},
		}},
	}
}
