package autofill

import (
	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/keyframe"
)

// Sample produces one position per frame index. Indices holding an authored
// keyframe always get that keyframe's exact coordinates. It returns nil when
// there is no model or no frames.
func Sample(m Model, frameCount int, dir fit.Direction, keyframes []keyframe.Point) []geometry.Point {
	if m == nil || frameCount <= 0 {
		return nil
	}

	positions := make([]geometry.Point, frameCount)
	for i := range positions {
		positions[i] = pointAt(m, i, frameCount, dir)
	}

	for _, kf := range keyframes {
		if kf.FrameIndex >= 0 && kf.FrameIndex < frameCount {
			positions[kf.FrameIndex] = geometry.Point{X: kf.X, Y: kf.Y}
		}
	}

	return positions
}

func pointAt(m Model, index, total int, dir fit.Direction) geometry.Point {
	switch m := m.(type) {
	case Ellipse:
		return m.PointAt(index, total, dir)
	case Circle:
		return m.PointAt(index, total, dir)
	case Square:
		return m.PointAt(index, total, dir)
	case Linear:
		p, _ := keyframe.InterpolateLinear(m.Points, index, total)
		return p
	case Tangent:
		p, _ := keyframe.InterpolateTangent(m.Points, index, total)
		return p
	default:
		panic("autofill: unknown model " + string(m.Shape()))
	}
}
