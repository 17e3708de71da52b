package export

import "strings"

// Pivot is the coordinate origin used for point coordinates in the file.
type Pivot string

const (
	PivotTopLeft    Pivot = "top-left"
	PivotBottomLeft Pivot = "bottom-left"
	PivotCenter     Pivot = "center"
)

// ParsePivot reads a pivot name. Anything unknown is top-left.
func ParsePivot(s string) Pivot {
	switch p := Pivot(strings.ToLower(strings.TrimSpace(s))); p {
	case PivotBottomLeft, PivotCenter:
		return p
	default:
		return PivotTopLeft
	}
}

// ToPivot converts frame-local top-left coordinates of a w×h frame into
// pivot space.
func ToPivot(p Pivot, x, y float64, w, h int) (float64, float64) {
	switch p {
	case PivotBottomLeft:
		return x, float64(h) - y
	case PivotCenter:
		return x - float64(w)/2, y - float64(h)/2
	default:
		return x, y
	}
}

// FromPivot is the inverse of ToPivot.
func FromPivot(p Pivot, x, y float64, w, h int) (float64, float64) {
	switch p {
	case PivotBottomLeft:
		return x, float64(h) - y
	case PivotCenter:
		return x + float64(w)/2, y + float64(h)/2
	default:
		return x, y
	}
}
