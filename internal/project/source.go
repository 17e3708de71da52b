package project

import (
	"fmt"

	"github.com/ivlev/nosgen/internal/frames"
)

// OpenSource reopens the frames a project was saved from. When every saved
// frame records its file the frames come back in saved order; otherwise the
// original input is opened again.
func (p *Project) OpenSource(dpi int) (frames.Source, error) {
	paths := make([]string, 0, len(p.Frames))
	for _, f := range p.Frames {
		if f.Source == "" {
			paths = nil
			break
		}
		paths = append(paths, f.Source)
	}
	if len(paths) > 0 {
		return frames.NewImageSourceFromPaths(paths), nil
	}

	if p.Input == "" {
		return nil, fmt.Errorf("project %q records no frame sources", p.Name)
	}
	return frames.Open(p.Input, dpi)
}
