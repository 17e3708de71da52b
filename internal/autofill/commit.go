package autofill

import (
	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/system"
)

// Commit writes positions into point id of every frame where that point is
// not a keyframe, and returns how many frames changed. Frames that lack the
// point get a computed copy of it.
func Commit(s *frames.Session, id string, positions []geometry.Point) int {
	template, ok := s.Template(id)
	if !ok {
		return 0
	}

	changed := 0
	for i, f := range s.Frames {
		if i >= len(positions) {
			break
		}
		pos := positions[i]

		p, ok := f.Point(id)
		if !ok {
			added := template
			added.X, added.Y = pos.X, pos.Y
			added.IsKeyframe = false
			f.Points = append(f.Points, added)
			changed++
			continue
		}
		if p.IsKeyframe {
			continue
		}
		if p.X != pos.X || p.Y != pos.Y {
			p.X, p.Y = pos.X, pos.Y
			changed++
		}
	}
	return changed
}

// FillOptions configures a whole-session auto-fill run.
type FillOptions struct {
	Shape     Shape
	Direction fit.Direction
	Options
}

// Result is the outcome of auto-filling one logical point.
type Result struct {
	PointID   string
	Name      string
	Keyframes int
	Model     Model // nil when skipped
	Changed   int
}

// Filler auto-fills sessions, keeping one fit cache per logical point.
type Filler struct {
	opts   FillOptions
	caches map[string]*Cache
}

func NewFiller(opts FillOptions) *Filler {
	return &Filler{opts: opts, caches: make(map[string]*Cache)}
}

// Fill runs Compute, Sample and Commit for every logical point of s in the
// order the points first appear.
func (f *Filler) Fill(s *frames.Session) []Result {
	total := len(s.Frames)
	var results []Result

	for _, id := range s.PointIDs() {
		template, _ := s.Template(id)
		kfs := s.Keyframes(id)
		res := Result{PointID: id, Name: template.Name, Keyframes: len(kfs)}

		cache := f.caches[id]
		if cache == nil {
			cache = &Cache{}
			f.caches[id] = cache
		}

		res.Model = cache.Compute(f.opts.Shape, kfs, total, f.opts.Direction, f.opts.Options)
		if res.Model == nil {
			system.Logger().Debug("auto-fill skipped", "point", template.Name, "keyframes", len(kfs))
			results = append(results, res)
			continue
		}

		positions := Sample(res.Model, total, f.opts.Direction, kfs)
		res.Changed = Commit(s, id, positions)
		system.Logger().Debug("auto-fill applied", "point", template.Name,
			"shape", res.Model.Shape(), "changed", res.Changed)
		results = append(results, res)
	}
	return results
}

// FillAll is a one-shot Fill without cache reuse.
func FillAll(s *frames.Session, opts FillOptions) []Result {
	return NewFiller(opts).Fill(s)
}
