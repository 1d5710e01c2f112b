// Package catalog lists the demos the gallery can mount and builds their
// root content.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
	"github.com/henri123lemoine/gallery/internal/widgets"
)

// DefaultID is mounted when nothing else is selected.
const DefaultID = "password"

// DefaultImageURL is the avatar fetched by the image demo.
const DefaultImageURL = "https://avatars.githubusercontent.com/u/14994036?v=4"

// ErrUnknownDemo is returned for an identifier not in the catalog.
var ErrUnknownDemo = errors.New("unknown demo")

// Settings are the knobs demos read when they are built.
type Settings struct {
	ImageURL              string
	ItemCount             int
	LegacyLoadingCallback bool
	// Random replaces the recomposition demo's number source.
	Random func() float64
}

func (s Settings) withDefaults() Settings {
	if s.ImageURL == "" {
		s.ImageURL = DefaultImageURL
	}
	if s.ItemCount <= 0 {
		s.ItemCount = widgets.CategoryCount
	}
	return s
}

// Demo is one mountable subtree.
type Demo struct {
	ID          string
	Title       string
	Description string
	Hint        string
	build       func(s Settings) compose.Content
}

// Content returns the root content of the demo.
func (d Demo) Content(s Settings) compose.Content {
	return d.build(s.withDefaults())
}

// Key is the root key the demo mounts at.
func (d Demo) Key() compose.Key {
	return compose.Key(d.ID)
}

const cardSubtitle = "Here's the correct Material 3 way to make" +
	" ONLY the icon clickable using IconButton, " +
	"while the text stays non-clickable."

var demos = []Demo{
	{
		ID:          "column",
		Title:       "Scrollable column",
		Description: "All 100 blog categories composed up front inside a scrolling column.",
		Hint:        "tab to the list, then ↑/↓ pgup/pgdn home/end to scroll",
		build: func(s Settings) compose.Content {
			items := widgets.CategoryListN(s.ItemCount)
			return func(c *compose.Composer) *compose.Node {
				return widgets.EagerColumn(c, "list", items)
			}
		},
	},
	{
		ID:          "lazy-column",
		Title:       "Lazy column",
		Description: "The same list, composing only the categories in view.",
		Hint:        "scroll and watch the debug log: items outside the viewport are disposed",
		build: func(s Settings) compose.Content {
			items := widgets.CategoryListN(s.ItemCount)
			return func(c *compose.Composer) *compose.Node {
				return widgets.LazyColumn(c, "list", items)
			}
		},
	},
	{
		ID:          "recomposition",
		Title:       "Recomposition",
		Description: "A button showing a random number; only the button re-runs on click.",
		Hint:        "click, then check the debug log for RecompositionDemo lines",
		build: func(s Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				return compose.CenteredColumn(widgets.RecompositionDemo(c, "recomposition", s.Random))
			}
		},
	},
	{
		ID:          "remember",
		Title:       "Remember and RememberSaveable",
		Description: "Three counters: a plain local, a remembered value and a saveable one.",
		Hint:        "click each button, then ctrl+r to remount: only the last count survives",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				return widgets.NotificationCounters(c, "counters")
			}
		},
	},
	{
		ID:          "hoisting",
		Title:       "State hoisting",
		Description: "A parent owns the count; a button and a message bar both display it.",
		Hint:        "click: both children always agree",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				return widgets.HoistedCounter(c, "counter")
			}
		},
	},
	{
		ID:          "expandable-card",
		Title:       "Expandable card",
		Description: "A card that reveals its subtitle with a 300ms animation and a rotating arrow.",
		Hint:        "click the card or tab to the arrow",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				return widgets.ExpandableCard(c, "card", widgets.CardOptions{
					Title:    "Hey There",
					Subtitle: cardSubtitle,
				})
			}
		},
	},
	{
		ID:          "google-button",
		Title:       "Google sign-up button",
		Description: "A button that swaps to a loading label and a progress indicator.",
		Hint:        "click to start and stop loading",
		build: func(s Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				toaster := widgets.LocalToaster.Value(c)
				return compose.CenteredColumn(widgets.LoadingButton(c, "google", widgets.LoadingButtonOptions{
					Legacy: s.LegacyLoadingCallback,
					OnClicked: func() {
						debug.Log("GoogleButton: clicked")
						if toaster != nil {
							toaster.Toast("Clicked")
						}
					},
				}))
			}
		},
	},
	{
		ID:          "image",
		Title:       "Async image",
		Description: "A remote avatar shown through loading, error and loaded states.",
		Hint:        "the left image uses a placeholder, the right one a progress indicator",
		build: func(s Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				caption := func(text string, n *compose.Node) *compose.Node {
					return compose.CenteredColumn(n, compose.Text(text))
				}
				return compose.TopRow(
					caption("AsyncImage", widgets.AsyncImage(c, "async", s.ImageURL, widgets.ImageOptions{})),
					compose.Gap(4),
					caption("SubcomposeAsyncImage", widgets.SubcomposeAsyncImage(c, "subcompose", s.ImageURL, widgets.ImageOptions{})),
				)
			}
		},
	},
	{
		ID:          "password",
		Title:       "Password field",
		Description: "A password field with a visibility toggle, above a gradient button.",
		Hint:        "type a password; tab to the eye and press enter to reveal it",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				toaster := widgets.LocalToaster.Value(c)
				return compose.CenteredColumn(
					widgets.PasswordField(c, "password"),
					compose.Spacer(1),
					widgets.GradientButton(c, "gradient", widgets.GradientOptions{OnClick: func() {
						debug.Log("GradientButton: clicked")
						if toaster != nil {
							toaster.Toast("Button")
						}
					}}),
				)
			}
		},
	},
	{
		ID:          "modifiers",
		Title:       "Modifier order",
		Description: "The same decorations applied in two orders, and a tinted circular image.",
		Hint:        "compare which color ends up outside",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				return widgets.ModifierChain(c)
			}
		},
	},
	{
		ID:          "list-item",
		Title:       "List items",
		Description: "Five reusable picture-and-text rows.",
		build: func(Settings) compose.Content {
			return func(c *compose.Composer) *compose.Node {
				rows := make([]*compose.Node, 5)
				for i := range rows {
					rows[i] = widgets.ListViewItem(c, widgets.LauncherForeground, fmt.Sprintf("Alok Upadhayay %d", i), "Mirzapur wale")
				}
				return compose.Column(rows...)
			}
		},
	},
}

// All returns every demo in catalog order.
func All() []Demo {
	out := make([]Demo, len(demos))
	copy(out, demos)
	return out
}

// IDs returns the demo identifiers in catalog order.
func IDs() []string {
	ids := make([]string, len(demos))
	for i, d := range demos {
		ids[i] = d.ID
	}
	return ids
}

// Lookup finds a demo by identifier.
func Lookup(id string) (Demo, error) {
	for _, d := range demos {
		if d.ID == id {
			return d, nil
		}
	}
	return Demo{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownDemo, id, strings.Join(IDs(), ", "))
}

// demoSource implements fuzzy.Source over demos.
type demoSource []Demo

func (s demoSource) String(i int) string {
	// Match against both id and title
	return s[i].ID + " " + s[i].Title
}

func (s demoSource) Len() int {
	return len(s)
}

// Filter returns the demos matching query, best match first. An empty query
// returns every demo in catalog order.
func Filter(query string) []Demo {
	if strings.TrimSpace(query) == "" {
		return All()
	}
	matches := fuzzy.FindFrom(query, demoSource(demos))
	out := make([]Demo, 0, len(matches))
	for _, m := range matches {
		out = append(out, demos[m.Index])
	}
	return out
}
