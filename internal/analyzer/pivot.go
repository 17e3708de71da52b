package analyzer

import (
	"image"

	"github.com/ivlev/nosgen/internal/geometry"
)

// SeedPivot guesses where a sprite stands: the bottom-centre of the union of
// detected regions, in frame-local pixels. ok is false for a fully
// transparent frame.
func SeedPivot(d Detector, img image.Image) (geometry.Point, bool, error) {
	regions, err := d.Detect(img)
	if err != nil {
		return geometry.Point{}, false, err
	}
	if len(regions) == 0 {
		return geometry.Point{}, false, nil
	}

	union := regions[0].Bounds
	for _, b := range regions[1:] {
		union = union.Union(b.Bounds)
	}
	union = union.Sub(img.Bounds().Min)

	return geometry.Point{
		X: float64(union.Min.X+union.Max.X) / 2,
		Y: float64(union.Max.Y),
	}, true, nil
}
