package fit

import (
	"math"

	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/keyframe"
)

// EllipseParams describes x = CX + RX·cos(a), y = CY + RY·sin(a) with
// a = BaseAngle + Phase, rigidly rotated by Rotation around the centre.
type EllipseParams struct {
	CX, CY   float64
	RX, RY   float64
	Phase    float64
	Rotation float64
}

// PointAt evaluates the ellipse at frame index of a totalFrames loop.
func (e EllipseParams) PointAt(index, totalFrames int, dir Direction) geometry.Point {
	angle := BaseAngle(index, totalFrames, dir) + e.Phase
	local := geometry.Point{X: e.RX * math.Cos(angle), Y: e.RY * math.Sin(angle)}
	return geometry.Point{X: e.CX, Y: e.CY}.Plus(geometry.Rotate(local, e.Rotation))
}

// Ellipse fits an ellipse with axes tilted by rotation radians. It returns
// nil for fewer than two keyframes, a non-positive frame count, or when no
// phase candidate gives a usable fit on both axes.
func Ellipse(points []keyframe.Point, totalFrames int, dir Direction, rotation float64) *EllipseParams {
	if !enough(points, totalFrames) {
		return nil
	}

	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	base := make([]float64, n)
	for i, p := range points {
		local := geometry.Rotate(geometry.Point{X: p.X, Y: p.Y}, -rotation)
		xs[i], ys[i] = local.X, local.Y
		base[i] = BaseAngle(p.FrameIndex, totalFrames, dir)
	}

	cosv := make([]float64, n)
	sinv := make([]float64, n)

	var best EllipseParams
	bestErr := math.Inf(1)
	found := false

	for step := 0; step < PhaseSteps; step++ {
		phase := phaseAt(step)
		for i := range base {
			sinv[i], cosv[i] = math.Sincos(base[i] + phase)
		}

		fx := geometry.SolveLinear(cosv, xs)
		fy := geometry.SolveLinear(sinv, ys)
		if !fx.Valid || !fy.Valid {
			continue
		}

		var err float64
		for i := range base {
			dx := xs[i] - fx.At(cosv[i])
			dy := ys[i] - fy.At(sinv[i])
			err += dx*dx + dy*dy
		}

		if !found || err < bestErr {
			found = true
			bestErr = err
			best = EllipseParams{
				CX:    fx.Intercept,
				CY:    fy.Intercept,
				RX:    fx.Slope,
				RY:    fy.Slope,
				Phase: phase,
			}
		}
	}

	if !found {
		return nil
	}

	// Both radii negative is the same curve half a turn later
	if best.RX < 0 && best.RY < 0 {
		best.RX, best.RY = -best.RX, -best.RY
		best.Phase = geometry.WrapAngle(best.Phase + math.Pi)
	}
	best.RX = math.Abs(best.RX)
	best.RY = math.Abs(best.RY)

	center := geometry.Rotate(geometry.Point{X: best.CX, Y: best.CY}, rotation)
	best.CX, best.CY = center.X, center.Y
	best.Rotation = rotation

	return &best
}
