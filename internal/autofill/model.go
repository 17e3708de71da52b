// Package autofill computes pivot positions for the frames between
// keyframes and writes them back into the session.
package autofill

import (
	"strings"

	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/keyframe"
)

// Shape selects how keyframes are turned into a dense path.
type Shape string

const (
	ShapeEllipse Shape = "ellipse"
	ShapeCircle  Shape = "circle"
	ShapeSquare  Shape = "square"
	ShapeTangent Shape = "tangent"
	ShapeLinear  Shape = "linear"
)

// ParseShape reads a shape name, defaulting to ellipse.
func ParseShape(s string) Shape {
	switch shape := Shape(strings.ToLower(strings.TrimSpace(s))); shape {
	case ShapeCircle, ShapeSquare, ShapeTangent, ShapeLinear:
		return shape
	default:
		return ShapeEllipse
	}
}

// Model is a fitted auto-fill model. It is one of Ellipse, Circle, Square,
// Linear or Tangent.
type Model interface {
	Shape() Shape
	isModel()
}

type Ellipse struct{ fit.EllipseParams }

type Circle struct{ fit.CircleParams }

type Square struct{ fit.SquareParams }

// Linear interpolates straight between keyframes around the loop.
type Linear struct{ Points []keyframe.Point }

// Tangent runs a Catmull-Rom spline through the keyframes around the loop.
type Tangent struct{ Points []keyframe.Point }

func (Ellipse) Shape() Shape { return ShapeEllipse }
func (Circle) Shape() Shape  { return ShapeCircle }
func (Square) Shape() Shape  { return ShapeSquare }
func (Linear) Shape() Shape  { return ShapeLinear }
func (Tangent) Shape() Shape { return ShapeTangent }

func (Ellipse) isModel() {}
func (Circle) isModel()  {}
func (Square) isModel()  {}
func (Linear) isModel()  {}
func (Tangent) isModel() {}

// Options carries per-shape settings.
type Options struct {
	Rotation float64 // ellipse tilt in radians
}

// Compute fits shape to the keyframes. It returns nil when there is not
// enough data: fewer than two keyframes or no frames.
func Compute(shape Shape, points []keyframe.Point, totalFrames int, dir fit.Direction, opts Options) Model {
	if len(points) < 2 || totalFrames <= 0 {
		return nil
	}

	switch shape {
	case ShapeCircle:
		if p := fit.Circle(points, totalFrames, dir); p != nil {
			return Circle{*p}
		}
	case ShapeSquare:
		if p := fit.Square(points, totalFrames, dir); p != nil {
			return Square{*p}
		}
	case ShapeLinear:
		return Linear{Points: keyframe.Sorted(points)}
	case ShapeTangent:
		return Tangent{Points: keyframe.Sorted(points)}
	default:
		if p := fit.Ellipse(points, totalFrames, dir, opts.Rotation); p != nil {
			return Ellipse{*p}
		}
	}
	return nil
}
