package frames

import (
	"fmt"

	"github.com/ivlev/nosgen/internal/keyframe"
)

// Session is the single source of truth for an editing session. Everything
// derived from it (fits, layouts, exports) is recomputed from scratch.
type Session struct {
	Frames  []*FrameData
	Groups  []PointGroup
	palette *Palette
}

func NewSession(frames []*FrameData, palette *Palette) *Session {
	if palette == nil {
		palette = NewPalette(1)
	}
	return &Session{Frames: frames, palette: palette}
}

// AddPoint adds a new logical point to every frame at (x, y) and returns its
// id. No frame holds it as a keyframe yet.
func (s *Session) AddPoint(name string, x, y float64) string {
	id := NewID()
	color := s.palette.Next()
	for _, f := range s.Frames {
		f.Points = append(f.Points, FramePoint{ID: id, Name: name, X: x, Y: y, Color: color})
	}
	return id
}

// RemovePoint deletes logical point id from every frame and from groups.
func (s *Session) RemovePoint(id string) {
	for _, f := range s.Frames {
		kept := f.Points[:0]
		for _, p := range f.Points {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		f.Points = kept
	}

	for gi := range s.Groups {
		for ei, entry := range s.Groups[gi].Entries {
			kept := entry[:0]
			for _, pid := range entry {
				if pid != id {
					kept = append(kept, pid)
				}
			}
			s.Groups[gi].Entries[ei] = kept
		}
	}
}

// MovePoint places point id on frame index at (x, y). A placed point is a
// keyframe.
func (s *Session) MovePoint(index int, id string, x, y float64) error {
	p, err := s.point(index, id)
	if err != nil {
		return err
	}
	p.X, p.Y = x, y
	p.IsKeyframe = true
	return nil
}

// SetKeyframe toggles the keyframe flag of point id on frame index.
func (s *Session) SetKeyframe(index int, id string, on bool) error {
	p, err := s.point(index, id)
	if err != nil {
		return err
	}
	p.IsKeyframe = on
	return nil
}

func (s *Session) point(index int, id string) (*FramePoint, error) {
	if index < 0 || index >= len(s.Frames) {
		return nil, fmt.Errorf("frame %d out of range (%d frames)", index, len(s.Frames))
	}
	p, ok := s.Frames[index].Point(id)
	if !ok {
		return nil, fmt.Errorf("point %s not found on frame %d", id, index)
	}
	return p, nil
}

// Keyframes snapshots the keyframes of point id in frame order.
func (s *Session) Keyframes(id string) []keyframe.Point {
	var out []keyframe.Point
	for i, f := range s.Frames {
		if p, ok := f.Point(id); ok && p.IsKeyframe {
			out = append(out, keyframe.Point{FrameIndex: i, X: p.X, Y: p.Y})
		}
	}
	return out
}

// PointIDs lists logical point ids in order of first appearance.
func (s *Session) PointIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, f := range s.Frames {
		for _, p := range f.Points {
			if !seen[p.ID] {
				seen[p.ID] = true
				ids = append(ids, p.ID)
			}
		}
	}
	return ids
}

// Template returns the first copy of point id found on any frame.
func (s *Session) Template(id string) (FramePoint, bool) {
	for _, f := range s.Frames {
		if p, ok := f.Point(id); ok {
			return *p, true
		}
	}
	return FramePoint{}, false
}

// PointByName finds the id of the logical point called name.
func (s *Session) PointByName(name string) (string, bool) {
	for _, f := range s.Frames {
		for _, p := range f.Points {
			if p.Name == name {
				return p.ID, true
			}
		}
	}
	return "", false
}

// FrameByName finds the index of the frame called name.
func (s *Session) FrameByName(name string) (int, bool) {
	for i, f := range s.Frames {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// NextColor draws the next point colour from the session palette.
func (s *Session) NextColor() string {
	return s.palette.Next()
}
