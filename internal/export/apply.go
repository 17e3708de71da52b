package export

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/system"
)

// ApplyStats summarises an Apply call.
type ApplyStats struct {
	Frames    int // frames matched
	Points    int // points placed
	Unmatched []string
}

// Apply merges imported points into s. Atlas entries are matched by frame
// name, legacy entries by index. Points are created on first sight and every
// imported position becomes a keyframe. Groups replace session groups of
// the same name.
func Apply(s *frames.Session, imp *Imported) (ApplyStats, error) {
	var stats ApplyStats

	for _, in := range imp.Frames {
		index, ok := matchFrame(s, imp, in)
		if !ok {
			stats.Unmatched = append(stats.Unmatched, in.Name)
			continue
		}
		stats.Frames++
		f := s.Frames[index]

		for _, p := range in.Points {
			id, ok := s.PointByName(p.Name)
			if !ok {
				id = s.AddPoint(p.Name, 0, 0)
			}
			x, y := FromPivot(imp.Pivot, p.X, p.Y, f.Width, f.Height)
			if err := s.MovePoint(index, id, x, y); err != nil {
				return stats, errors.Wrapf(err, "frame %s point %s", f.Name, p.Name)
			}
			stats.Points++
		}
	}

	if stats.Frames == 0 {
		return stats, errors.Wrap(ErrUnusable, "no frame in the file matches the session")
	}
	if len(stats.Unmatched) > 0 {
		system.Logger().Warn("unmatched frames in points file", "frames", stats.Unmatched)
	}

	applyGroups(s, imp.Groups)
	return stats, nil
}

func matchFrame(s *frames.Session, imp *Imported, in ImportedFrame) (int, bool) {
	if imp.Legacy {
		return in.Index, in.Index >= 0 && in.Index < len(s.Frames)
	}
	return s.FrameByName(in.Name)
}

func applyGroups(s *frames.Session, groups map[string][][]string) {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g := frames.PointGroup{Name: name}
		for _, entry := range groups[name] {
			var ids []string
			for _, pname := range entry {
				if id, ok := s.PointByName(pname); ok {
					ids = append(ids, id)
				}
			}
			g.Entries = append(g.Entries, ids)
		}

		replaced := false
		for i := range s.Groups {
			if s.Groups[i].Name == name {
				g.ID = s.Groups[i].ID
				s.Groups[i] = g
				replaced = true
				break
			}
		}
		if !replaced {
			g.ID = frames.NewID()
			s.Groups = append(s.Groups, g)
		}
	}
}
