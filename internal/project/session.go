package project

import (
	"github.com/ivlev/nosgen/internal/frames"
)

// FromSession snapshots the points and groups of s on top of the settings
// in base.
func FromSession(s *frames.Session, base Project) *Project {
	p := base
	p.Version = Version
	p.Frames = make([]Frame, 0, len(s.Frames))
	p.Groups = nil

	for _, f := range s.Frames {
		out := Frame{Name: f.Name, Source: f.Source}
		for _, pt := range f.Points {
			out.Points = append(out.Points, Point{
				ID:       pt.ID,
				Name:     pt.Name,
				X:        pt.X,
				Y:        pt.Y,
				Color:    pt.Color,
				Keyframe: pt.IsKeyframe,
			})
		}
		p.Frames = append(p.Frames, out)
	}

	for _, g := range s.Groups {
		entries := make([][]string, len(g.Entries))
		for i, e := range g.Entries {
			entries[i] = append([]string(nil), e...)
		}
		p.Groups = append(p.Groups, Group{ID: g.ID, Name: g.Name, Entries: entries})
	}

	return &p
}

// ToSession restores the saved points onto the frames of s with the same
// name and returns how many frames matched. Frames left without a saved
// point get a non-keyframe copy of it so every logical point exists on
// every frame.
func ToSession(p *Project, s *frames.Session) int {
	matched := 0
	// hand-written files may omit ids and colours; points with one name share them
	ids := make(map[string]string)
	colors := make(map[string]string)
	for _, saved := range p.Frames {
		i, ok := s.FrameByName(saved.Name)
		if !ok {
			continue
		}
		matched++

		points := make([]frames.FramePoint, 0, len(saved.Points))
		for _, pt := range saved.Points {
			if pt.ID == "" {
				if ids[pt.Name] == "" {
					ids[pt.Name] = frames.NewID()
				}
				pt.ID = ids[pt.Name]
			}
			if pt.Color == "" {
				if colors[pt.ID] == "" {
					colors[pt.ID] = s.NextColor()
				}
				pt.Color = colors[pt.ID]
			}
			points = append(points, frames.FramePoint{
				ID:         pt.ID,
				Name:       pt.Name,
				X:          pt.X,
				Y:          pt.Y,
				Color:      pt.Color,
				IsKeyframe: pt.Keyframe,
			})
		}
		s.Frames[i].Points = points
	}

	for _, id := range s.PointIDs() {
		template, _ := s.Template(id)
		template.IsKeyframe = false
		for _, f := range s.Frames {
			if _, ok := f.Point(id); !ok {
				f.Points = append(f.Points, template)
			}
		}
	}

	s.Groups = s.Groups[:0]
	for _, g := range p.Groups {
		if g.ID == "" {
			g.ID = frames.NewID()
		}
		s.Groups = append(s.Groups, frames.PointGroup{ID: g.ID, Name: g.Name, Entries: g.Entries})
	}

	return matched
}
