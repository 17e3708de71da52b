package autofill

import (
	"slices"

	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/keyframe"
)

type cacheKey struct {
	shape       Shape
	dir         fit.Direction
	opts        Options
	totalFrames int
}

// Cache remembers the last model it computed and returns it again while the
// inputs are unchanged, so resampling does not repeat the phase search.
// A Cache is not safe for concurrent use.
type Cache struct {
	key    cacheKey
	points []keyframe.Point
	model  Model
	valid  bool
	Hits   int
}

// Compute behaves like the package-level Compute.
func (c *Cache) Compute(shape Shape, points []keyframe.Point, totalFrames int, dir fit.Direction, opts Options) Model {
	key := cacheKey{shape: shape, dir: dir, opts: opts, totalFrames: totalFrames}
	if c.valid && c.key == key && slices.Equal(c.points, points) {
		c.Hits++
		return c.model
	}

	c.key = key
	c.points = slices.Clone(points)
	c.model = Compute(shape, points, totalFrames, dir, opts)
	c.valid = true
	return c.model
}
