package project

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/nosgen/internal/autofill"
	"github.com/ivlev/nosgen/internal/export"
	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/frames"
)

func newSession(names ...string) *frames.Session {
	var list []*frames.FrameData
	for _, name := range names {
		list = append(list, frames.NewFrame(name, name+".png", image.NewRGBA(image.Rect(0, 0, 16, 16))))
	}
	return frames.NewSession(list, frames.NewPalette(3))
}

func TestRoundTrip(t *testing.T) {
	s := newSession("walk_0", "walk_1", "walk_2")
	id := s.AddPoint("pivot", 8, 15)
	s.MovePoint(0, id, 7.5, 14)
	s.Groups = []frames.PointGroup{{ID: "g1", Name: "feet", Entries: [][]string{{id}}}}

	padding := 4
	base := Project{
		Name:      "hero",
		Input:     "sprites",
		Rows:      2,
		Padding:   &padding,
		Pivot:     export.PivotCenter,
		Shape:     autofill.ShapeCircle,
		Direction: fit.CounterClockwise,
		Rotation:  0.25,
		Mode:      export.ModeAnimation,
		Animation: &Animation{FPS: 10, Speed: 1.5, Loop: true},
	}
	path := filepath.Join(t.TempDir(), "nested", "hero.yaml")
	if err := Write(FromSession(s, base), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	p, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Version != Version || p.Name != "hero" || p.Rows != 2 || p.Padding == nil || *p.Padding != 4 {
		t.Errorf("settings = %+v", p)
	}
	if p.Pivot != export.PivotCenter || p.Shape != autofill.ShapeCircle || p.Direction != fit.CounterClockwise {
		t.Errorf("modes = %s %s %s", p.Pivot, p.Shape, p.Direction)
	}
	if p.Rotation != 0.25 || p.Animation == nil || p.Animation.FPS != 10 || !p.Animation.Loop {
		t.Errorf("extras = %v %+v", p.Rotation, p.Animation)
	}

	restored := newSession("walk_0", "walk_1", "walk_2")
	if n := ToSession(p, restored); n != 3 {
		t.Errorf("matched %d frames", n)
	}
	got, ok := restored.Frames[0].Point(id)
	if !ok || got.X != 7.5 || got.Y != 14 || !got.IsKeyframe || got.Name != "pivot" {
		t.Errorf("frame 0 point = %+v", got)
	}
	if got, _ := restored.Frames[2].Point(id); got.IsKeyframe || got.X != 8 {
		t.Errorf("frame 2 point = %+v", got)
	}
	if len(restored.Groups) != 1 || restored.Groups[0].Entries[0][0] != id {
		t.Errorf("groups = %+v", restored.Groups)
	}
}

func TestToSessionFillsGaps(t *testing.T) {
	p := &Project{Frames: []Frame{
		{Name: "a", Points: []Point{{Name: "hand", X: 1, Y: 2, Keyframe: true}}},
		{Name: "c", Points: []Point{{Name: "hand", X: 5, Y: 6, Keyframe: true}}},
		{Name: "missing"},
	}}
	s := newSession("a", "b", "c")

	if n := ToSession(p, s); n != 2 {
		t.Errorf("matched %d frames", n)
	}
	ids := s.PointIDs()
	if len(ids) != 1 {
		t.Fatalf("points without ids must share one id by name, got %v", ids)
	}
	for i, f := range s.Frames {
		pt, ok := f.Point(ids[0])
		if !ok {
			t.Fatalf("frame %d lacks the point", i)
		}
		if pt.Color == "" {
			t.Errorf("frame %d: no colour", i)
		}
		if wantKey := i != 1; pt.IsKeyframe != wantKey {
			t.Errorf("frame %d keyframe = %v", i, pt.IsKeyframe)
		}
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("frames: [unterminated"), 0644)
	if _, err := Read(bad); err == nil {
		t.Error("expected error for broken YAML")
	}

	future := filepath.Join(dir, "future.yaml")
	os.WriteFile(future, []byte("version: \"9\"\nframes: []\n"), 0644)
	if _, err := Read(future); err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("unsupported version: err = %v", err)
	}
}

func TestGeneratePath(t *testing.T) {
	path := GeneratePath("projects")

	if filepath.Dir(path) != "projects" {
		t.Errorf("path should be in projects: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "project_") || filepath.Ext(path) != ".yaml" {
		t.Errorf("unexpected name: %s", path)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"project_a.yaml", "project_b.yml", "project_c.yaml", "notes.txt"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		os.WriteFile(path, []byte("version: \"1\""), 0644)
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatest(dir)
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "project_c.yaml" {
		t.Errorf("latest = %s, want project_c.yaml", latest)
	}
}

func TestZeroPaddingSurvivesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	zero := 0

	withZero := filepath.Join(dir, "zero.yaml")
	Write(&Project{Name: "a", Padding: &zero}, withZero)
	p, err := Read(withZero)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Padding == nil || *p.Padding != 0 {
		t.Errorf("padding = %v, want saved 0", p.Padding)
	}

	without := filepath.Join(dir, "none.yaml")
	Write(&Project{Name: "b"}, without)
	p, _ = Read(without)
	if p.Padding != nil {
		t.Errorf("padding = %v, want nil when not saved", *p.Padding)
	}
}

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"b.png", "a.png"} {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2)))
		f.Close()
		paths = append(paths, path)
	}

	// Saved frame files keep the saved order
	p := &Project{Frames: []Frame{{Name: "b", Source: paths[0]}, {Name: "a", Source: paths[1]}}}
	src, err := p.OpenSource(72)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if src.Len() != 2 || src.Name(0) != "b" || src.Name(1) != "a" {
		t.Errorf("frames = %d, %s, %s", src.Len(), src.Name(0), src.Name(1))
	}

	// Without per-frame files the input directory is scanned again
	p = &Project{Input: dir, Frames: []Frame{{Name: "a"}, {Name: "b", Source: paths[0]}}}
	src, err = p.OpenSource(72)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if src.Len() != 2 || src.Name(0) != "a" {
		t.Errorf("input fallback frames = %d, %s", src.Len(), src.Name(0))
	}

	if _, err := (&Project{Name: "empty"}).OpenSource(72); err == nil {
		t.Error("expected error for a project without sources")
	}
}
