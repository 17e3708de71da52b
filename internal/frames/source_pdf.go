package frames

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the frames of one import: a set of image files or the pages
// of a document.
type Source interface {
	Len() int
	Name(index int) string
	Decode(index int) (image.Image, error)
	Close() error
}

// PDFSource renders every page of a PDF as one frame.
type PDFSource struct {
	doc  *fitz.Document
	path string
	DPI  int
}

func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &PDFSource{doc: doc, path: path, DPI: dpi}, nil
}

func (s *PDFSource) Len() int {
	return s.doc.NumPage()
}

func (s *PDFSource) Name(index int) string {
	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	return fmt.Sprintf("%s_%03d", base, index+1)
}

func (s *PDFSource) Decode(index int) (image.Image, error) {
	// fitz documents are not safe for concurrent use; each call opens its own
	workerDoc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(s.DPI))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}

// Open picks a source for path: PDFs are rendered page by page, anything
// else is treated as an image file or a directory of images.
func Open(path string, dpi int) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path, dpi)
	}
	return NewImageSource(path)
}
