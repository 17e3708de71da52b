package analyzer

import (
	"image"
)

// AlphaDetector finds 4-connected regions of pixels whose alpha is above a
// threshold
type AlphaDetector struct {
	Threshold uint8 // alpha must be greater than this
	MinPixels int   // smaller regions are dropped as specks
}

// NewAlphaDetector creates a detector with default settings
func NewAlphaDetector() *AlphaDetector {
	return &AlphaDetector{
		Threshold: 16,
		MinPixels: 4,
	}
}

// Detect returns the opaque regions in scan order
func (d *AlphaDetector) Detect(img image.Image) ([]Region, error) {
	mask := alphaMask(img, d.Threshold)
	bounds := mask.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())

	regions := []Region{}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := (y-bounds.Min.Y)*bounds.Dx() + (x - bounds.Min.X)
			if mask.AlphaAt(x, y).A == 0 || visited[i] {
				continue
			}
			b := floodFill(mask, visited, x, y)
			if b.Opaque >= d.MinPixels {
				regions = append(regions, b)
			}
		}
	}

	return regions, nil
}

// BoundsDetector reports a single region covering every opaque pixel
type BoundsDetector struct {
	Threshold uint8
}

func NewBoundsDetector() *BoundsDetector {
	return &BoundsDetector{Threshold: 16}
}

func (d *BoundsDetector) Detect(img image.Image) ([]Region, error) {
	mask := alphaMask(img, d.Threshold)
	bounds := mask.Bounds()

	var region Region
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if region.Opaque == 0 {
				region.Bounds = px
			} else {
				region.Bounds = region.Bounds.Union(px)
			}
			region.Opaque++
		}
	}

	if region.Opaque == 0 {
		return nil, nil
	}
	return []Region{region}, nil
}

// alphaMask marks pixels whose alpha is above threshold with 255
func alphaMask(img image.Image, threshold uint8) *image.Alpha {
	bounds := img.Bounds()
	mask := image.NewAlpha(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if uint8(a>>8) > threshold {
				mask.Pix[mask.PixOffset(x, y)] = 255
			}
		}
	}

	return mask
}

// floodFill walks one region from (startX, startY) and returns its bounds
func floodFill(mask *image.Alpha, visited []bool, startX, startY int) Region {
	bounds := mask.Bounds()
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	pixels := 0

	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := p.X, p.Y
		if !p.In(bounds) {
			continue
		}

		i := (y-bounds.Min.Y)*bounds.Dx() + (x - bounds.Min.X)
		if visited[i] || mask.AlphaAt(x, y).A == 0 {
			continue
		}
		visited[i] = true
		pixels++

		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)

		stack = append(stack,
			image.Point{X: x + 1, Y: y},
			image.Point{X: x - 1, Y: y},
			image.Point{X: x, Y: y + 1},
			image.Point{X: x, Y: y - 1},
		)
	}

	return Region{Bounds: image.Rect(minX, minY, maxX+1, maxY+1), Opaque: pixels}
}
