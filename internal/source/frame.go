package source

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ivlev/fovea/internal/system"
)

// Frame is one decoded frame in the tight RGBA8 layout the analyzer reads:
// zero origin, stride == 4*width.
type Frame struct {
	Index  int
	Image  *image.RGBA
	pooled bool
}

// NewFrame normalizes img. Images already in the tight layout are used as is;
// anything else is drawn into a buffer from the shared pool.
func NewFrame(index int, img image.Image) *Frame {
	if rgba, ok := img.(*image.RGBA); ok && isTight(rgba) {
		return &Frame{Index: index, Image: rgba}
	}

	bounds := img.Bounds()
	rect := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	rgba := system.GetImage(rect)
	draw.Draw(rgba, rect, img, bounds.Min, draw.Src)
	return &Frame{Index: index, Image: rgba, pooled: true}
}

// Width in pixels
func (f *Frame) Width() int { return f.Image.Rect.Dx() }

// Height in pixels
func (f *Frame) Height() int { return f.Image.Rect.Dy() }

// Release hands pooled buffers back. The frame must not be used afterwards.
func (f *Frame) Release() {
	if f == nil || f.Image == nil {
		return
	}
	if f.pooled {
		system.PutImage(f.Image)
	}
	f.Image = nil
}

func isTight(img *image.RGBA) bool {
	return img.Rect.Min.X == 0 && img.Rect.Min.Y == 0 &&
		img.Stride == img.Rect.Dx()*4 && len(img.Pix) == img.Stride*img.Rect.Dy()
}
