package imageloader

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// HalfBlock packs two vertical pixels into one cell: foreground on top,
// background below.
const HalfBlock = "▀"

// Render scales img to cols x rows cells and returns one string per row.
// Fully transparent pixel pairs render as spaces.
func Render(img image.Image, cols, rows int) []string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	lines := make([]string, rows)
	for y := 0; y < rows; y++ {
		var b strings.Builder
		for x := 0; x < cols; x++ {
			top, topOK := hex(dst.RGBAAt(x, 2*y))
			bottom, bottomOK := hex(dst.RGBAAt(x, 2*y+1))
			switch {
			case topOK && bottomOK:
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bottom)).
					Render(HalfBlock))
			case topOK:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Render(HalfBlock))
			case bottomOK:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(bottom)).Render("▄"))
			default:
				b.WriteByte(' ')
			}
		}
		lines[y] = b.String()
	}
	return lines
}

func hex(c color.RGBA) (string, bool) {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "", false
	}
	return cf.Hex(), true
}
