package fit

import (
	"math"

	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/keyframe"
)

// CircleParams describes x = CX + R·cos(a), y = CY + R·sin(a).
type CircleParams struct {
	CX, CY float64
	R      float64
	Phase  float64
}

// PointAt evaluates the circle at frame index of a totalFrames loop.
func (c CircleParams) PointAt(index, totalFrames int, dir Direction) geometry.Point {
	sin, cos := math.Sincos(BaseAngle(index, totalFrames, dir) + c.Phase)
	return geometry.Point{X: c.CX + c.R*cos, Y: c.CY + c.R*sin}
}

// Circle fits a circle with a single shared radius. It returns nil for fewer
// than two keyframes or a non-positive frame count.
func Circle(points []keyframe.Point, totalFrames int, dir Direction) *CircleParams {
	if !enough(points, totalFrames) {
		return nil
	}

	n := float64(len(points))
	base := make([]float64, len(points))
	var sumX, sumY float64
	for i, p := range points {
		base[i] = BaseAngle(p.FrameIndex, totalFrames, dir)
		sumX += p.X
		sumY += p.Y
	}

	var best CircleParams
	bestErr := math.Inf(1)

	for step := 0; step < PhaseSteps; step++ {
		phase := phaseAt(step)

		var sumCos, sumSin, sumCos2, sumSin2, sumProj float64
		for i, p := range points {
			sin, cos := math.Sincos(base[i] + phase)
			sumCos += cos
			sumSin += sin
			sumCos2 += cos * cos
			sumSin2 += sin * sin
			sumProj += p.X*cos + p.Y*sin
		}

		// Least squares for r with the centre eliminated. The denominator is
		// the centred sum, not n, so a partial arc gives the same radius as
		// the ellipse fit with equal axes. Degenerate phases fall back to 1.
		denom := sumCos2 + sumSin2 - (sumCos*sumCos+sumSin*sumSin)/n
		if math.Abs(denom) < geometry.DegenerateEpsilon {
			denom = 1
		}
		r := (sumProj - (sumCos*sumX+sumSin*sumY)/n) / denom
		cx := (sumX - r*sumCos) / n
		cy := (sumY - r*sumSin) / n

		var err float64
		for i, p := range points {
			sin, cos := math.Sincos(base[i] + phase)
			dx := p.X - (cx + r*cos)
			dy := p.Y - (cy + r*sin)
			err += dx*dx + dy*dy
		}

		if step == 0 || err < bestErr {
			bestErr = err
			best = CircleParams{CX: cx, CY: cy, R: r, Phase: phase}
		}
	}

	if best.R < 0 {
		best.R = -best.R
		best.Phase = geometry.WrapAngle(best.Phase + math.Pi)
	}

	return &best
}
