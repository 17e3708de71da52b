// Package geometry holds the small numeric primitives shared by the fitters,
// the interpolators and the atlas code.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a 2D position in frame-local pixels.
type Point = geom.Coord

// DegenerateEpsilon is the determinant threshold below which SolveLinear
// treats its inputs as collinear.
const DegenerateEpsilon = 1e-6

// LinearFit is the result of a least-squares line fit: outputs ≈ Intercept + Slope*inputs.
type LinearFit struct {
	Intercept float64
	Slope     float64
	Valid     bool
}

// At evaluates the fitted line at x.
func (f LinearFit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// SolveLinear fits outputs ≈ intercept + slope*inputs with the closed-form
// normal equations. When the inputs carry no variance the fit is flagged
// invalid and falls back to the mean of outputs.
func SolveLinear(inputs, outputs []float64) LinearFit {
	n := len(inputs)
	if n == 0 || n != len(outputs) {
		return LinearFit{}
	}

	var sumX, sumXX, sumY, sumXY float64
	for i := 0; i < n; i++ {
		x, y := inputs[i], outputs[i]
		sumX += x
		sumXX += x * x
		sumY += y
		sumXY += x * y
	}

	fn := float64(n)
	det := fn*sumXX - sumX*sumX
	if math.Abs(det) < DegenerateEpsilon {
		return LinearFit{Intercept: sumY / fn, Slope: 0, Valid: false}
	}

	slope := (fn*sumXY - sumX*sumY) / det
	intercept := (sumY - slope*sumX) / fn
	return LinearFit{Intercept: intercept, Slope: slope, Valid: true}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapTurn maps t into [0, 1).
func WrapTurn(t float64) float64 {
	w := t - math.Floor(t)
	if w >= 1 {
		// t slightly below an integer can round up to exactly 1
		return 0
	}
	return w
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	return WrapTurn(a/(2*math.Pi)) * 2 * math.Pi
}

// WrapIndex maps i into [0, n). n must be positive.
func WrapIndex(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// Lerp blends a towards b by t.
func Lerp(a, b Point, t float64) Point {
	return a.Plus(b.Minus(a).Times(t))
}

// Bounds returns the axis-aligned bounding box of points. The zero rect is
// returned for an empty slice.
func Bounds(points []Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// Rotate turns p by angle radians around the origin.
func Rotate(p Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}
