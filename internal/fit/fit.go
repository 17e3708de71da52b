// Package fit fits parametric shapes to keyframes spread over a looping
// frame timeline.
//
// Every fitter assumes the keyframes sample uniform motion along the shape:
// a keyframe at frame f of n sits at parameter sign*(f/n) of a full turn,
// offset by an unknown phase. Ellipse and circle fits search that phase over
// PhaseSteps discrete candidates and solve the remaining parameters in closed
// form for each candidate; the square fit recovers the phase with a circular
// mean. No fitter uses randomness, so identical input gives identical output.
package fit

import (
	"math"
	"strings"

	"github.com/ivlev/nosgen/internal/keyframe"
)

// PhaseSteps is the number of phase candidates tried per full turn (0.5°).
const PhaseSteps = 720

// Direction is the winding of the motion along the shape.
type Direction string

const (
	Clockwise        Direction = "clockwise"
	CounterClockwise Direction = "counterclockwise"
)

// Sign returns +1 for clockwise and -1 for counterclockwise motion.
func (d Direction) Sign() float64 {
	if d == CounterClockwise {
		return -1
	}
	return 1
}

// ParseDirection reads a direction name, defaulting to clockwise.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "counterclockwise", "counter-clockwise", "ccw":
		return CounterClockwise
	default:
		return Clockwise
	}
}

// BaseAngle is the angle of frame index on a totalFrames loop before any
// phase offset.
func BaseAngle(index, totalFrames int, dir Direction) float64 {
	return dir.Sign() * (float64(index) / float64(totalFrames)) * 2 * math.Pi
}

// phaseAt returns the angle of phase candidate step.
func phaseAt(step int) float64 {
	return float64(step) * 2 * math.Pi / PhaseSteps
}

func enough(points []keyframe.Point, totalFrames int) bool {
	return len(points) >= 2 && totalFrames > 0
}
