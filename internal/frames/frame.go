// Package frames holds the editing session: the ordered frame list, the
// pivot points placed on each frame and the sources frames are imported from.
package frames

import (
	"image"

	"github.com/google/uuid"
)

// FramePoint is one logical point as placed on one frame. The same logical
// point carries the same ID on every frame.
type FramePoint struct {
	ID         string
	Name       string
	X, Y       float64 // frame-local pixels, top-left origin
	Color      string
	IsKeyframe bool
}

// FrameData is one imported frame. Width and Height never change after
// import.
type FrameData struct {
	ID     string
	Name   string
	Source string // file the frame was decoded from, empty for document pages
	Width  int
	Height int
	Image  image.Image
	Points []FramePoint
}

// NewFrame wraps a decoded image.
func NewFrame(name, source string, img image.Image) *FrameData {
	f := &FrameData{
		ID:     NewID(),
		Name:   name,
		Source: source,
		Image:  img,
	}
	if img != nil {
		b := img.Bounds()
		f.Width, f.Height = b.Dx(), b.Dy()
	}
	return f
}

// Point returns the frame's copy of logical point id.
func (f *FrameData) Point(id string) (*FramePoint, bool) {
	for i := range f.Points {
		if f.Points[i].ID == id {
			return &f.Points[i], true
		}
	}
	return nil, false
}

// NewID returns a fresh time-ordered identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// PointGroup collects point ids into indexed variants, for example one entry
// per equipment slot.
type PointGroup struct {
	ID      string
	Name    string
	Entries [][]string
}
