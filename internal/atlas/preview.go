package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/geometry"
)

const (
	markerRadius = 3.0
	pathColor    = "#FFFFFF80"
)

// Preview draws point markers over a rasterized atlas. Keyframes are filled
// discs, computed points are rings. paths maps a point id to its sampled
// frame-local positions; each cell gets the whole loop as a thin polyline so
// the motion can be checked frame by frame.
func Preview(atlasImage image.Image, l Layout, list []*frames.FrameData, paths map[string][]geometry.Point) (image.Image, error) {
	dc := gg.NewContextForImage(atlasImage)
	defer dc.Close()

	for i, f := range list {
		if i >= len(l.Positions) {
			break
		}
		o := CellOrigin(l, i, f.Width, f.Height)
		ox, oy := float64(o.X), float64(o.Y)

		for _, p := range f.Points {
			path := paths[p.ID]
			if len(path) > 1 {
				dc.SetHexColor(pathColor)
				dc.SetLineWidth(1)
				dc.MoveTo(ox+path[0].X, oy+path[0].Y)
				for _, q := range path[1:] {
					dc.LineTo(ox+q.X, oy+q.Y)
				}
				dc.ClosePath()
				if err := dc.Stroke(); err != nil {
					return nil, fmt.Errorf("path %s: %w", p.Name, err)
				}
			}

			dc.SetHexColor(p.Color)
			dc.DrawCircle(ox+p.X, oy+p.Y, markerRadius)
			if p.IsKeyframe {
				if err := dc.Fill(); err != nil {
					return nil, fmt.Errorf("marker %s: %w", p.Name, err)
				}
				continue
			}
			dc.SetLineWidth(1.5)
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("marker %s: %w", p.Name, err)
			}
		}
	}

	return dc.Image(), nil
}
