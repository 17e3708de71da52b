package autofill

import (
	"image"
	"math"
	"testing"

	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/keyframe"
)

var sampleKeyframes = []keyframe.Point{
	{FrameIndex: 0, X: 50, Y: 20},
	{FrameIndex: 3, X: 81.5, Y: 49},
	{FrameIndex: 6, X: 49, Y: 80.25},
	{FrameIndex: 9, X: 20, Y: 51},
}

func TestComputeDispatchesOnShape(t *testing.T) {
	for _, shape := range []Shape{ShapeEllipse, ShapeCircle, ShapeSquare, ShapeTangent, ShapeLinear} {
		m := Compute(shape, sampleKeyframes, 12, fit.Clockwise, Options{})
		if m == nil {
			t.Fatalf("%s: expected a model", shape)
		}
		if m.Shape() != shape {
			t.Errorf("model shape = %s, want %s", m.Shape(), shape)
		}
	}

	if m := Compute(ShapeLinear, sampleKeyframes[:1], 12, fit.Clockwise, Options{}); m != nil {
		t.Errorf("one keyframe must give no model, got %v", m)
	}
	if m := Compute(ShapeEllipse, sampleKeyframes, 0, fit.Clockwise, Options{}); m != nil {
		t.Errorf("zero frames must give no model, got %v", m)
	}
}

func TestSampleNeverOverridesKeyframes(t *testing.T) {
	for _, shape := range []Shape{ShapeEllipse, ShapeCircle, ShapeSquare, ShapeTangent, ShapeLinear} {
		for _, dir := range []fit.Direction{fit.Clockwise, fit.CounterClockwise} {
			m := Compute(shape, sampleKeyframes, 12, dir, Options{Rotation: 0.2})
			positions := Sample(m, 12, dir, sampleKeyframes)
			if len(positions) != 12 {
				t.Fatalf("%s/%s: %d positions", shape, dir, len(positions))
			}
			for _, kf := range sampleKeyframes {
				got := positions[kf.FrameIndex]
				if got.X != kf.X || got.Y != kf.Y {
					t.Errorf("%s/%s frame %d: got (%v, %v), want exact (%v, %v)",
						shape, dir, kf.FrameIndex, got.X, got.Y, kf.X, kf.Y)
				}
			}
		}
	}
}

func TestSampleFollowsModel(t *testing.T) {
	m := Circle{fit.CircleParams{CX: 10, CY: 10, R: 5, Phase: 0}}
	positions := Sample(m, 4, fit.Clockwise, nil)

	want := []geometry.Point{{X: 15, Y: 10}, {X: 10, Y: 15}, {X: 5, Y: 10}, {X: 10, Y: 5}}
	for i, w := range want {
		if math.Abs(positions[i].X-w.X) > 1e-9 || math.Abs(positions[i].Y-w.Y) > 1e-9 {
			t.Errorf("frame %d: got %v, want %v", i, positions[i], w)
		}
	}

	sq := Square{fit.SquareParams{CX: 0, CY: 0, Size: 2, Phase: 0.25}}
	p := Sample(sq, 4, fit.CounterClockwise, nil)
	// turn = -i/4 + 0.25: frame 1 lands on the right-middle vertex
	if p[1].X != 2 || p[1].Y != 0 {
		t.Errorf("square frame 1 = %v", p[1])
	}
}

func TestSampleWithoutModel(t *testing.T) {
	if Sample(nil, 10, fit.Clockwise, sampleKeyframes) != nil {
		t.Error("nil model must give nil positions")
	}
	m := Compute(ShapeLinear, sampleKeyframes, 12, fit.Clockwise, Options{})
	if Sample(m, 0, fit.Clockwise, sampleKeyframes) != nil {
		t.Error("zero frames must give nil positions")
	}
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]Shape{
		"circle": ShapeCircle, "Square": ShapeSquare, " tangent ": ShapeTangent,
		"linear": ShapeLinear, "ellipse": ShapeEllipse, "blob": ShapeEllipse,
	} {
		if got := ParseShape(in); got != want {
			t.Errorf("ParseShape(%q) = %s, want %s", in, got, want)
		}
	}
}

func newSession(n int) *frames.Session {
	var list []*frames.FrameData
	for i := 0; i < n; i++ {
		list = append(list, frames.NewFrame("f", "", image.NewRGBA(image.Rect(0, 0, 100, 100))))
	}
	return frames.NewSession(list, frames.NewPalette(1))
}

func TestCommitLeavesKeyframesUntouched(t *testing.T) {
	s := newSession(4)
	id := s.AddPoint("pivot", 0, 0)
	s.MovePoint(1, id, 33, 44)

	positions := []geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
	changed := Commit(s, id, positions)
	if changed != 3 {
		t.Errorf("changed = %d, want 3", changed)
	}

	kf, _ := s.Frames[1].Point(id)
	if kf.X != 33 || kf.Y != 44 || !kf.IsKeyframe {
		t.Errorf("keyframe was modified: %+v", *kf)
	}
	for _, i := range []int{0, 2, 3} {
		p, _ := s.Frames[i].Point(id)
		if p.X != positions[i].X || p.IsKeyframe {
			t.Errorf("frame %d: %+v", i, *p)
		}
	}

	// Frames missing the point receive a computed copy
	s.Frames[3].Points = nil
	Commit(s, id, positions)
	p, ok := s.Frames[3].Point(id)
	if !ok || p.X != 4 || p.IsKeyframe || p.Name != "pivot" {
		t.Errorf("restored point = %+v, %v", p, ok)
	}
}

func TestFillerFillsEveryPoint(t *testing.T) {
	s := newSession(8)
	orbit := s.AddPoint("orbit", 0, 0)
	lonely := s.AddPoint("lonely", 0, 0)

	circle := fit.CircleParams{CX: 50, CY: 50, R: 20}
	for _, f := range []int{0, 2, 4, 6} {
		p := circle.PointAt(f, 8, fit.Clockwise)
		s.MovePoint(f, orbit, p.X, p.Y)
	}
	s.MovePoint(3, lonely, 1, 1)

	filler := NewFiller(FillOptions{Shape: ShapeCircle, Direction: fit.Clockwise})
	results := filler.Fill(s)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Model == nil || results[0].Changed != 4 {
		t.Errorf("orbit result = %+v", results[0])
	}
	if results[1].Model != nil || results[1].Keyframes != 1 {
		t.Errorf("lonely result = %+v", results[1])
	}

	for _, f := range []int{1, 3, 5, 7} {
		want := circle.PointAt(f, 8, fit.Clockwise)
		got, _ := s.Frames[f].Point(orbit)
		if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
			t.Errorf("frame %d: got (%.3f, %.3f), want (%.3f, %.3f)", f, got.X, got.Y, want.X, want.Y)
		}
	}

	// Nothing changed: the second run is served from the cache and writes nothing
	again := filler.Fill(s)
	if again[0].Changed != 0 {
		t.Errorf("second run changed %d frames", again[0].Changed)
	}
	if filler.caches[orbit].Hits != 1 {
		t.Errorf("cache hits = %d, want 1", filler.caches[orbit].Hits)
	}
}

func TestCacheRecomputesOnChange(t *testing.T) {
	var c Cache
	m1 := c.Compute(ShapeLinear, sampleKeyframes, 12, fit.Clockwise, Options{})
	m2 := c.Compute(ShapeLinear, sampleKeyframes, 12, fit.Clockwise, Options{})
	if c.Hits != 1 || m1 == nil || m2 == nil {
		t.Fatalf("hits = %d", c.Hits)
	}

	c.Compute(ShapeLinear, sampleKeyframes, 16, fit.Clockwise, Options{})
	c.Compute(ShapeTangent, sampleKeyframes, 16, fit.Clockwise, Options{})
	if c.Hits != 1 {
		t.Errorf("changed inputs must miss the cache, hits = %d", c.Hits)
	}
}
