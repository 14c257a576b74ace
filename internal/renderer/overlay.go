package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/ivlev/fovea/internal/analyzer"
)

// Highlight is the default outline colour
var Highlight = color.RGBA{255, 0, 0, 255}

// BorderThickness of the outline in pixels
const BorderThickness = 3

// DrawBox outlines the inclusive box on img. The border is drawn inside the
// box and clipped to the image; unchanged boxes draw nothing.
func DrawBox(img *image.RGBA, box analyzer.BoundingBox, thickness int, c color.RGBA) {
	if !box.Changed || thickness <= 0 {
		return
	}
	rect := box.Rect().Add(img.Rect.Min).Intersect(img.Rect)
	if rect.Empty() {
		return
	}

	t := min(thickness, rect.Dx(), rect.Dy())
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), // top
		image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), // left
		image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

// WriteOverlay writes a PNG copy of frame with the box outlined
func WriteOverlay(path string, frame image.Image, box analyzer.BoundingBox) error {
	bounds := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Rect, frame, bounds.Min, draw.Src)
	DrawBox(out, box, BorderThickness, Highlight)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
