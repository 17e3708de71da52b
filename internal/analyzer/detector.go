// Package analyzer finds the opaque sprite content inside a frame.
package analyzer

import "image"

// Region is sprite content found in a frame. Bounds is in the image's own
// coordinates, so sub-images keep their offset.
type Region struct {
	Bounds image.Rectangle
	Opaque int
}

// Detector reports the content regions of img. A fully
// transparent image gives no regions and no error.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}
