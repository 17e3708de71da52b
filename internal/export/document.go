// Package export reads and writes the atlas points file.
package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ivlev/nosgen/internal/atlas"
	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/frames"
)

// AppName is written to meta.app.
const AppName = "NosGen"

// Mode tells the consumer how to treat the sheet.
type Mode string

const (
	ModeCharacter Mode = "character"
	ModeAnimation Mode = "animation"
	ModeNormal    Mode = "normal"
)

// ParseMode reads a mode name, defaulting to normal.
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCharacter, ModeAnimation:
		return m
	default:
		return ModeNormal
	}
}

type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

type Meta struct {
	App             string        `json:"app"`
	Image           string        `json:"image"`
	Size            Size          `json:"size"`
	Rows            int           `json:"rows"`
	Columns         int           `json:"columns"`
	Padding         int           `json:"padding"`
	Pivot           Pivot         `json:"pivot"`
	SpriteDirection fit.Direction `json:"spriteDirection"`
	Mode            Mode          `json:"mode"`
}

type Animation struct {
	Name   string   `json:"name"`
	FPS    float64  `json:"fps"`
	Speed  float64  `json:"speed"`
	Loop   bool     `json:"loop"`
	Frames []string `json:"frames"`
}

type Point struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Frame is one frame's rectangle inside the atlas and its points in pivot
// space.
type Frame struct {
	Name   string  `json:"name"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	W      int     `json:"w"`
	H      int     `json:"h"`
	Points []Point `json:"points,omitempty"`
}

// Document is the atlas points file.
type Document struct {
	Meta      Meta                  `json:"meta"`
	Groups    map[string][][]string `json:"groups,omitempty"`
	Animation *Animation            `json:"animation,omitempty"`
	Frames    []Frame               `json:"frames"`
}

// Options controls Build.
type Options struct {
	Name      string // atlas base name, the image is <Name>_atlas.png
	Pivot     Pivot
	Direction fit.Direction
	Mode      Mode
	// Animation is copied into the document. Empty Name or Frames are
	// filled from the atlas name and the frame order.
	Animation *Animation
}

// ImageName is the atlas PNG file name for an atlas called name.
func ImageName(name string) string {
	return name + "_atlas.png"
}

// Build describes session s packed with layout l.
func Build(s *frames.Session, l atlas.Layout, opts Options) *Document {
	pivot := ParsePivot(string(opts.Pivot))
	doc := &Document{
		Meta: Meta{
			App:             AppName,
			Image:           ImageName(opts.Name),
			Size:            Size{W: l.Width, H: l.Height},
			Rows:            l.Rows,
			Columns:         l.Columns,
			Padding:         l.Padding,
			Pivot:           pivot,
			SpriteDirection: fit.ParseDirection(string(opts.Direction)),
			Mode:            ParseMode(string(opts.Mode)),
		},
		Frames: make([]Frame, 0, len(s.Frames)),
	}

	for i, f := range s.Frames {
		r := atlas.FrameRect(l, i, f.Width, f.Height)
		out := Frame{Name: f.Name, X: r.X, Y: r.Y, W: r.W, H: r.H}
		for _, p := range f.Points {
			x, y := ToPivot(pivot, p.X, p.Y, f.Width, f.Height)
			out.Points = append(out.Points, Point{Name: p.Name, X: x, Y: y})
		}
		doc.Frames = append(doc.Frames, out)
	}

	if len(s.Groups) > 0 {
		doc.Groups = make(map[string][][]string, len(s.Groups))
		for _, g := range s.Groups {
			entries := make([][]string, 0, len(g.Entries))
			for _, entry := range g.Entries {
				names := make([]string, 0, len(entry))
				for _, id := range entry {
					if p, ok := s.Template(id); ok {
						names = append(names, p.Name)
					}
				}
				entries = append(entries, names)
			}
			doc.Groups[g.Name] = entries
		}
	}

	if opts.Animation != nil {
		anim := *opts.Animation
		if anim.Name == "" {
			anim.Name = opts.Name
		}
		if len(anim.Frames) == 0 {
			for _, f := range s.Frames {
				anim.Frames = append(anim.Frames, f.Name)
			}
		}
		doc.Animation = &anim
	}

	return doc
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "encode points file")
}
