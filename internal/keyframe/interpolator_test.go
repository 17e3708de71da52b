package keyframe

import (
	"math"
	"testing"
)

func TestResolveSegmentWrapsAround(t *testing.T) {
	points := []Point{
		{FrameIndex: 10, X: 100, Y: 0},
		{FrameIndex: 0, X: 0, Y: 0},
	}

	seg, ok := ResolveSegment(points, 15, 20)
	if !ok {
		t.Fatal("expected a segment")
	}
	if seg.Start.FrameIndex != 10 || seg.End.FrameIndex != 0 {
		t.Errorf("segment = %d -> %d, want 10 -> 0", seg.Start.FrameIndex, seg.End.FrameIndex)
	}
	if math.Abs(seg.T-0.5) > 1e-12 {
		t.Errorf("t = %f, want 0.5", seg.T)
	}
}

func TestResolveSegment(t *testing.T) {
	points := []Point{
		{FrameIndex: 2},
		{FrameIndex: 6},
		{FrameIndex: 10},
	}

	tests := []struct {
		position   float64
		start, end int
		t          float64
	}{
		{2, 2, 6, 0},
		{4, 2, 6, 0.5},
		{6, 6, 10, 0},
		{9, 6, 10, 0.75},
		{10, 10, 2, 0},
		{13, 10, 2, 0.75},
		{0, 10, 2, 0.5},   // before the first keyframe
		{1, 10, 2, 0.75},  // before the first keyframe
		{-1, 10, 2, 0.25}, // negative positions wrap
		{16, 2, 6, 0.5},   // past the end wraps by totalFrames
	}

	for _, tt := range tests {
		seg, ok := ResolveSegment(points, tt.position, 12)
		if !ok {
			t.Fatalf("position %v: no segment", tt.position)
		}
		if seg.Start.FrameIndex != tt.start || seg.End.FrameIndex != tt.end {
			t.Errorf("position %v: segment %d -> %d, want %d -> %d",
				tt.position, seg.Start.FrameIndex, seg.End.FrameIndex, tt.start, tt.end)
		}
		if math.Abs(seg.T-tt.t) > 1e-12 {
			t.Errorf("position %v: t = %f, want %f", tt.position, seg.T, tt.t)
		}
	}
}

func TestResolveSegmentEdgeCases(t *testing.T) {
	if _, ok := ResolveSegment(nil, 3, 10); ok {
		t.Error("no keyframes must give no segment")
	}

	single := []Point{{FrameIndex: 4, X: 7, Y: 9}}
	seg, ok := ResolveSegment(single, 8, 10)
	if !ok {
		t.Fatal("single keyframe must resolve")
	}
	if seg.T != 0 || seg.Start != single[0] || seg.End != single[0] {
		t.Errorf("single keyframe segment = %+v", seg)
	}

	p, ok := InterpolateTangent(single, 1, 10)
	if !ok || p.X != 7 || p.Y != 9 {
		t.Errorf("single keyframe tangent = %v", p)
	}
}

func TestInterpolateLinear(t *testing.T) {
	points := []Point{
		{FrameIndex: 0, X: 0, Y: 0},
		{FrameIndex: 4, X: 40, Y: -8},
	}

	tests := []struct {
		index int
		x, y  float64
	}{
		{0, 0, 0},
		{1, 10, -2},
		{4, 40, -8},
		{6, 20, -4}, // halfway back to frame 0 on an 8-frame loop
	}

	for _, tt := range tests {
		p, ok := InterpolateLinear(points, tt.index, 8)
		if !ok {
			t.Fatalf("index %d: no position", tt.index)
		}
		if math.Abs(p.X-tt.x) > 1e-9 || math.Abs(p.Y-tt.y) > 1e-9 {
			t.Errorf("index %d: got (%.3f, %.3f), want (%.3f, %.3f)", tt.index, p.X, p.Y, tt.x, tt.y)
		}
	}
}

func TestInterpolateTangentPassesThroughKeyframes(t *testing.T) {
	points := []Point{
		{FrameIndex: 0, X: 10, Y: 0},
		{FrameIndex: 3, X: 0, Y: 10},
		{FrameIndex: 6, X: -10, Y: 0},
		{FrameIndex: 9, X: 0, Y: -10},
	}

	for _, kf := range points {
		p, ok := InterpolateTangent(points, kf.FrameIndex, 12)
		if !ok {
			t.Fatalf("frame %d: no position", kf.FrameIndex)
		}
		if math.Abs(p.X-kf.X) > 1e-9 || math.Abs(p.Y-kf.Y) > 1e-9 {
			t.Errorf("frame %d: got (%.3f, %.3f), want (%.3f, %.3f)", kf.FrameIndex, p.X, p.Y, kf.X, kf.Y)
		}
	}

	// Symmetric loop: the midpoint between (10,0) and (0,10) bulges outwards
	mid, _ := InterpolateTangent(points, 1, 12)
	lin, _ := InterpolateLinear(points, 1, 12)
	if math.Hypot(mid.X, mid.Y) <= math.Hypot(lin.X, lin.Y) {
		t.Errorf("spline point %v should lie outside the chord point %v", mid, lin)
	}
}

func TestCatmullRomEndpoints(t *testing.T) {
	if got := CatmullRom(1, 2, 5, 9, 0); got != 2 {
		t.Errorf("t=0 gives %f, want 2", got)
	}
	if got := CatmullRom(1, 2, 5, 9, 1); math.Abs(got-5) > 1e-12 {
		t.Errorf("t=1 gives %f, want 5", got)
	}
	// Collinear, evenly spaced control points reproduce the line
	if got := CatmullRom(0, 1, 2, 3, 0.5); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("linear data at t=0.5 gives %f, want 1.5", got)
	}
}
