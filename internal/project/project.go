// Package project stores an editing session as a YAML file so a later run
// can pick up the same points and settings.
package project

import (
	"github.com/ivlev/nosgen/internal/autofill"
	"github.com/ivlev/nosgen/internal/export"
	"github.com/ivlev/nosgen/internal/fit"
)

// Version of the project file layout.
const Version = "1"

// Project is a saved session
type Project struct {
	Version   string         `yaml:"version"`
	Name      string         `yaml:"name"`
	Input     string         `yaml:"input,omitempty"` // path the frames were imported from
	Rows      int            `yaml:"rows"`
	Padding   *int           `yaml:"padding,omitempty"` // nil when not saved
	Pivot     export.Pivot   `yaml:"pivot"`
	Shape     autofill.Shape `yaml:"shape"`
	Direction fit.Direction  `yaml:"direction"`
	Rotation  float64        `yaml:"rotation,omitempty"` // ellipse tilt, radians
	Mode      export.Mode    `yaml:"mode"`
	Animation *Animation     `yaml:"animation,omitempty"`
	Groups    []Group        `yaml:"groups,omitempty"`
	Frames    []Frame        `yaml:"frames"`
}

// Animation holds playback settings for animation mode
type Animation struct {
	Name  string  `yaml:"name,omitempty"`
	FPS   float64 `yaml:"fps"`
	Speed float64 `yaml:"speed"`
	Loop  bool    `yaml:"loop"`
}

// Group is a named list of point-id variants
type Group struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name"`
	Entries [][]string `yaml:"entries"`
}

// Frame lists the points placed on one frame
type Frame struct {
	Name   string  `yaml:"name"`
	Source string  `yaml:"source,omitempty"`
	Points []Point `yaml:"points,omitempty"`
}

// Point is a frame point in frame-local top-left pixels
type Point struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Color    string  `yaml:"color,omitempty"`
	Keyframe bool    `yaml:"keyframe,omitempty"`
}
