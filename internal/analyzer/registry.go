package analyzer

import (
	"fmt"
	"strings"
)

// NewDetector maps the -detector flag to a detector: "alpha" (the default)
// splits the frame into connected regions, "bounds" keeps one box around
// every opaque pixel.
func NewDetector(name string) (Detector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alpha", "":
		return NewAlphaDetector(), nil
	case "bounds":
		return NewBoundsDetector(), nil
	default:
		return nil, fmt.Errorf("неизвестный детектор %q (alpha, bounds)", name)
	}
}
