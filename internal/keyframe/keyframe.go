package keyframe

import "sort"

// Point is a user-confirmed pivot position at a specific frame.
type Point struct {
	FrameIndex int     `json:"frameIndex" yaml:"frame"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
}

// Sorted returns a copy of points ordered by frame index. Ties keep their
// input order.
func Sorted(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FrameIndex < sorted[j].FrameIndex
	})
	return sorted
}
