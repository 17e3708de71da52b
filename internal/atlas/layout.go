// Package atlas arranges frames on a fixed row-major grid and renders the
// packed sheet.
package atlas

import "image"

// Size is the pixel size of one frame.
type Size struct {
	W, H int
}

// Rect is a cell position on the atlas.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Image returns r as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Layout is the result of Pack. Every cell has the same size; Positions[i]
// is the cell of frame i.
type Layout struct {
	Rows       int
	Columns    int
	Padding    int
	CellWidth  int
	CellHeight int
	Width      int
	Height     int
	Positions  []Rect
}

// Pack lays out frames of the given sizes on a grid with the requested number
// of rows. Cells take the size of the largest frame, and padding surrounds
// every cell including the outer edges.
func Pack(sizes []Size, rows, padding int) Layout {
	if rows < 1 {
		rows = 1
	}
	if padding < 0 {
		padding = 0
	}

	cellW, cellH := 1, 1
	for _, s := range sizes {
		cellW = max(cellW, s.W)
		cellH = max(cellH, s.H)
	}

	columns := (len(sizes) + rows - 1) / rows

	l := Layout{
		Rows:       rows,
		Columns:    columns,
		Padding:    padding,
		CellWidth:  cellW,
		CellHeight: cellH,
		Width:      columns*cellW + padding*(columns+1),
		Height:     rows*cellH + padding*(rows+1),
		Positions:  make([]Rect, len(sizes)),
	}

	for i := range sizes {
		row, col := i/columns, i%columns
		l.Positions[i] = Rect{
			X: padding + col*(cellW+padding),
			Y: padding + row*(cellH+padding),
			W: cellW,
			H: cellH,
		}
	}
	return l
}

// CellOrigin returns the top-left corner of a w×h frame centred in cell i.
func CellOrigin(l Layout, i, w, h int) image.Point {
	cell := l.Positions[i]
	return image.Point{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
	}
}

// FrameRect is the rectangle a w×h frame occupies inside cell i.
func FrameRect(l Layout, i, w, h int) Rect {
	o := CellOrigin(l, i, w, h)
	return Rect{X: o.X, Y: o.Y, W: w, H: h}
}
