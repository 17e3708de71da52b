package keyframe

import (
	"math"

	"github.com/ivlev/nosgen/internal/geometry"
)

// Segment is the pair of keyframes bracketing a query position on the
// looping timeline.
type Segment struct {
	Start, End           Point
	StartIndex, EndIndex int     // positions in the sorted keyframe list
	T                    float64 // 0.0 at Start, 1.0 at End
}

// ResolveSegment finds the keyframes around position. The keyframe list is
// treated as a loop: after the last keyframe the timeline wraps back to the
// first one, totalFrames later.
func ResolveSegment(points []Point, position float64, totalFrames int) (Segment, bool) {
	if len(points) == 0 {
		return Segment{}, false
	}

	sorted := Sorted(points)
	if len(sorted) == 1 {
		return Segment{Start: sorted[0], End: sorted[0]}, true
	}

	last := len(sorted) - 1
	if totalFrames <= 0 {
		totalFrames = sorted[last].FrameIndex + 1
	}
	total := float64(totalFrames)
	pos := math.Mod(position, total)
	if pos < 0 {
		pos += total
	}

	// Inside the timeline
	for i := 0; i < last; i++ {
		from := float64(sorted[i].FrameIndex)
		to := float64(sorted[i+1].FrameIndex)
		if pos >= from && pos < to {
			return Segment{
				Start:      sorted[i],
				End:        sorted[i+1],
				StartIndex: i,
				EndIndex:   i + 1,
				T:          (pos - from) / (to - from),
			}, true
		}
	}

	// Wrapping segment: last keyframe back to the first one
	from := float64(sorted[last].FrameIndex)
	to := float64(sorted[0].FrameIndex) + total
	if pos < float64(sorted[0].FrameIndex) {
		pos += total
	}

	t := 0.0
	if span := to - from; span > 0 {
		t = geometry.Clamp((pos-from)/span, 0, 1)
	}

	return Segment{
		Start:      sorted[last],
		End:        sorted[0],
		StartIndex: last,
		EndIndex:   0,
		T:          t,
	}, true
}

// InterpolateLinear blends the bracketing keyframes linearly.
func InterpolateLinear(points []Point, index, totalFrames int) (geometry.Point, bool) {
	seg, ok := ResolveSegment(points, float64(index), totalFrames)
	if !ok {
		return geometry.Point{}, false
	}

	return geometry.Lerp(
		geometry.Point{X: seg.Start.X, Y: seg.Start.Y},
		geometry.Point{X: seg.End.X, Y: seg.End.Y},
		seg.T,
	), true
}

// InterpolateTangent evaluates a looping Catmull-Rom spline through the
// keyframes. Neighbours of the segment wrap through the keyframe list.
func InterpolateTangent(points []Point, index, totalFrames int) (geometry.Point, bool) {
	seg, ok := ResolveSegment(points, float64(index), totalFrames)
	if !ok {
		return geometry.Point{}, false
	}

	sorted := Sorted(points)
	n := len(sorted)
	p0 := sorted[geometry.WrapIndex(seg.StartIndex-1, n)]
	p1 := seg.Start
	p2 := seg.End
	p3 := sorted[geometry.WrapIndex(seg.EndIndex+1, n)]

	return geometry.Point{
		X: CatmullRom(p0.X, p1.X, p2.X, p3.X, seg.T),
		Y: CatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, seg.T),
	}, true
}

// CatmullRom evaluates the uniform Catmull-Rom cubic between p1 and p2.
func CatmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
