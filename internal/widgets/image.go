package widgets

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/debug"
	"github.com/henri123lemoine/gallery/internal/imageloader"
	"github.com/henri123lemoine/gallery/internal/ui"
)

// ImageState is the phase of an async image.
type ImageState int

const (
	ImageLoading ImageState = iota
	ImageLoaded
	ImageError
)

func (s ImageState) String() string {
	switch s {
	case ImageLoaded:
		return "loaded"
	case ImageError:
		return "error"
	default:
		return "loading"
	}
}

// ImageResult is what the loader reported for one request.
type ImageResult struct {
	State ImageState
	Art   []string
	Err   string
}

// ImageOptions sizes the image in cells. The surrounding box is two cells
// larger in each direction.
type ImageOptions struct {
	Cols int
	Rows int
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.Cols <= 0 {
		o.Cols = 20
	}
	if o.Rows <= 0 {
		o.Rows = 10
	}
	return o
}

type imageKey struct {
	URL        string
	Cols, Rows int
}

// useImage starts (or reuses) the load of url and returns its current state.
// The widget keeps no cache of its own and never retries.
func useImage(c *compose.Composer, url string, opts ImageOptions) ImageResult {
	loader := LocalImageLoader.Value(c)
	res := compose.Produce(c, "image", ImageResult{State: ImageLoading}, imageKey{url, opts.Cols, opts.Rows},
		func(ctx context.Context) ImageResult {
			if loader == nil {
				return ImageResult{State: ImageError, Err: "no image loader"}
			}
			img, err := loader.Load(ctx, url)
			if err != nil {
				debug.Log("image %s: %v", url, err)
				return ImageResult{State: ImageError, Err: err.Error()}
			}
			return ImageResult{State: ImageLoaded, Art: imageloader.Render(img, opts.Cols, opts.Rows)}
		})
	return res.Value()
}

func imageFrame(opts ImageOptions, content *compose.Node) *compose.Node {
	frame := lipgloss.NewStyle().Padding(1)
	return compose.Box(frame, compose.Text(lipgloss.Place(
		opts.Cols, opts.Rows, lipgloss.Center, lipgloss.Center, compose.Render(content),
	)))
}

func artNode(lines []string) *compose.Node {
	nodes := make([]*compose.Node, len(lines))
	for i, l := range lines {
		nodes[i] = compose.Text(l)
	}
	return compose.Column(nodes...)
}

// AsyncImage shows a placeholder picture while url loads, the fetched
// image once it arrives, and a fixed error picture when loading fails.
func AsyncImage(c *compose.Composer, name, url string, opts ImageOptions) *compose.Node {
	opts = opts.withDefaults()
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		res := useImage(c, url, opts)
		switch res.State {
		case ImageLoaded:
			return imageFrame(opts, artNode(res.Art))
		case ImageError:
			return imageFrame(opts, Picture(GoogleLogo, ""))
		default:
			return imageFrame(opts, Picture(LauncherForeground, ""))
		}
	})
}

// SubcomposeAsyncImage picks its whole content per state: a progress
// indicator while loading, an error picture with a caption on failure, the
// image itself once loaded.
func SubcomposeAsyncImage(c *compose.Composer, name, url string, opts ImageOptions) *compose.Node {
	opts = opts.withDefaults()
	return c.Scope(name, func(c *compose.Composer) *compose.Node {
		res := useImage(c, url, opts)
		switch res.State {
		case ImageLoaded:
			return imageFrame(opts, artNode(res.Art))
		case ImageError:
			return imageFrame(opts, compose.CenteredColumn(
				Picture(GoogleLogo, ""),
				compose.Styled(ui.ErrorStyle, ui.SymbolImageError+" Error"),
			))
		default:
			th := ui.LocalTheme.Value(c)
			// The spinner gets its own scope so frames do not re-run this one.
			return c.Scope("progress", func(c *compose.Composer) *compose.Node {
				spin := compose.Styled(lipgloss.NewStyle().Foreground(th.Palette.Primary), LocalSpinner.Value(c))
				return imageFrame(opts, spin)
			})
		}
	})
}
