package atlas

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ivlev/nosgen/internal/system"
)

// Rasterize blits images[i] into cell i of l, centred when it is smaller
// than the cell. Nil images leave their cell transparent. The canvas comes
// from the shared pool; hand it back with system.PutCanvas once encoded.
func Rasterize(l Layout, images []image.Image) *image.RGBA {
	canvas := system.GetCanvas(max(l.Width, 1), max(l.Height, 1))

	for i, img := range images {
		if img == nil || i >= len(l.Positions) {
			continue
		}
		b := img.Bounds()
		origin := CellOrigin(l, i, b.Dx(), b.Dy())
		draw.Copy(canvas, origin, img, b, draw.Src, nil)
	}
	return canvas
}
