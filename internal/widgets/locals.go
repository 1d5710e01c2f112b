package widgets

import (
	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/imageloader"
)

// Viewport is the area available to the mounted demo, in cells.
type Viewport struct {
	Width  int
	Height int
}

// Toaster shows a short transient message.
type Toaster interface {
	Toast(text string)
}

var (
	// LocalViewport is the size of the demo area.
	LocalViewport = compose.NewLocal("viewport", Viewport{Width: 80, Height: 24})
	// LocalSpinner is the current progress indicator frame.
	LocalSpinner = compose.NewLocal("spinner", "⠋")
	// LocalImageLoader fetches images for AsyncImage.
	LocalImageLoader = compose.NewLocal[imageloader.Loader]("image-loader", nil)
	// LocalToaster receives toast messages. Nil drops them.
	LocalToaster = compose.NewLocal[Toaster]("toaster", nil)
)
