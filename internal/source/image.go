package source

import (
	"fmt"
	"image"
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

// FrameExtensions lists the file types ImageSource decodes
var FrameExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}

// ImageSource reads frames from a single file or from a directory sorted by name
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
			if !entry.IsDir() && isFrameFile(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths}, nil
}

func isFrameFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range FrameExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *ImageSource) FrameCount() int {
	return len(s.paths)
}

// Path returns the file backing frame index
func (s *ImageSource) Path(index int) string {
	return s.paths[index]
}

func (s *ImageSource) Dimensions(index int) (int, int, error) {
	if err := s.checkIndex(index); err != nil {
		return 0, 0, err
	}
	f, err := os.Open(s.paths[index])
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", s.paths[index], err)
	}
	return cfg.Width, cfg.Height, nil
}

// RenderFrame decodes the frame; dpi only applies to vector sources
func (s *ImageSource) RenderFrame(index int, dpi int) (image.Image, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) checkIndex(index int) error {
	if index < 0 || index >= len(s.paths) {
		return fmt.Errorf("frame %d out of range [0, %d)", index, len(s.paths))
	}
	return nil
}

func (s *ImageSource) Close() error {
	return nil
}
