package frames

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether name has an extension the image source decodes.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ImageSource reads frames from image files. A directory contributes every
// image in it, in lexical order.
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && IsImage(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

// NewImageSourceFromPaths keeps the caller's order, which is how a project
// file pins frame order.
func NewImageSourceFromPaths(paths []string) *ImageSource {
	return &ImageSource{paths: append([]string(nil), paths...)}
}

func (s *ImageSource) Len() int {
	return len(s.paths)
}

func (s *ImageSource) Path(index int) string {
	return s.paths[index]
}

func (s *ImageSource) Name(index int) string {
	base := filepath.Base(s.paths[index])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *ImageSource) Decode(index int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
