package fit

import (
	"math"

	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/keyframe"
)

// SquareParams describes a diamond whose vertices are the edge midpoints of
// the square of half-size Size centred on (CX, CY). Phase is in turns.
type SquareParams struct {
	CX, CY float64
	Size   float64
	Phase  float64
}

// PointAt evaluates the square path at frame index of a totalFrames loop.
func (s SquareParams) PointAt(index, totalFrames int, dir Direction) geometry.Point {
	turn := dir.Sign()*float64(index)/float64(totalFrames) + s.Phase
	return SquarePointAt(s.CX, s.CY, s.Size, turn)
}

// Square fits the diamond path. Centre and size come from the keyframes'
// bounding box; the phase is the circular mean of each keyframe's offset
// between its position along the boundary and its position in time.
func Square(points []keyframe.Point, totalFrames int, dir Direction) *SquareParams {
	if !enough(points, totalFrames) {
		return nil
	}

	coords := make([]geometry.Point, len(points))
	for i, p := range points {
		coords[i] = geometry.Point{X: p.X, Y: p.Y}
	}
	box := geometry.Bounds(coords)
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	size := math.Max(box.Width(), box.Height()) / 2
	if size < 1 {
		size = 1
	}

	var sumSin, sumCos float64
	for _, p := range points {
		dx := geometry.Clamp(p.X-cx, -size, size)
		dy := geometry.Clamp(p.Y-cy, -size, size)
		expected := dir.Sign() * float64(p.FrameIndex) / float64(totalFrames)
		sin, cos := math.Sincos((boundaryTurn(dx, dy) - expected) * 2 * math.Pi)
		sumSin += sin
		sumCos += cos
	}

	n := float64(len(points))
	phase := geometry.WrapTurn(math.Atan2(sumSin/n, sumCos/n) / (2 * math.Pi))

	return &SquareParams{CX: cx, CY: cy, Size: size, Phase: phase}
}

// SquarePointAt walks the diamond clockwise (y down) starting at the
// right-middle vertex; turn is wrapped into [0, 1).
func SquarePointAt(cx, cy, size, turn float64) geometry.Point {
	vertices := [4]geometry.Point{
		{X: cx + size, Y: cy},
		{X: cx, Y: cy + size},
		{X: cx - size, Y: cy},
		{X: cx, Y: cy - size},
	}

	t := geometry.WrapTurn(turn) * 4
	edge := int(t)
	if edge > 3 {
		edge = 3
	}
	return geometry.Lerp(vertices[edge], vertices[(edge+1)%4], t-float64(edge))
}

// boundaryTurn is the inverse of SquarePointAt for an offset from the
// centre: the offset is projected onto the diamond along its L1 norm.
func boundaryTurn(dx, dy float64) float64 {
	l1 := math.Abs(dx) + math.Abs(dy)
	if l1 == 0 {
		return 0
	}

	switch {
	case dx > 0 && dy >= 0:
		return 0.25 * dy / l1
	case dx <= 0 && dy > 0:
		return 0.25 + 0.25*(-dx)/l1
	case dx < 0 && dy <= 0:
		return 0.5 + 0.25*(-dy)/l1
	default:
		return 0.75 + 0.25*dx/l1
	}
}
