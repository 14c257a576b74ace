package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/fovea/internal/analyzer"
)

func TestDrawBox(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	box := analyzer.BoundingBox{MinX: 10, MaxX: 19, MinY: 10, MaxY: 19, Changed: true}

	DrawBox(img, box, BorderThickness, Highlight)

	// Border pixels on every edge
	for _, p := range []image.Point{{10, 10}, {19, 10}, {10, 19}, {19, 19}, {15, 12}, {12, 15}, {17, 15}, {15, 17}} {
		if got := img.RGBAAt(p.X, p.Y); got != Highlight {
			t.Errorf("Expected border at %v, got %v", p, got)
		}
	}
	// Interior and exterior untouched
	for _, p := range []image.Point{{15, 15}, {9, 9}, {20, 20}, {13, 13}} {
		if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{}) {
			t.Errorf("Expected untouched pixel at %v, got %v", p, got)
		}
	}
}

func TestDrawBoxUnchangedAndClipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))

	DrawBox(img, analyzer.BoundingBox{}, 3, Highlight)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("Unchanged box should not draw, byte %d = %d", i, v)
		}
	}

	// A box partly outside the image must not panic.
	DrawBox(img, analyzer.BoundingBox{MinX: 6, MaxX: 30, MinY: 6, MaxY: 30, Changed: true}, 3, Highlight)
	if got := img.RGBAAt(7, 7); got != Highlight {
		t.Errorf("Expected clipped border at (7,7), got %v", got)
	}

	// Single-pixel box
	img = image.NewRGBA(image.Rect(0, 0, 4, 4))
	DrawBox(img, analyzer.BoundingBox{MinX: 2, MaxX: 2, MinY: 1, MaxY: 1, Changed: true}, 3, Highlight)
	if got := img.RGBAAt(2, 1); got != Highlight {
		t.Errorf("Expected single pixel outline, got %v", got)
	}
	if got := img.RGBAAt(3, 1); got != (color.RGBA{}) {
		t.Errorf("Outline leaked outside the box: %v", got)
	}
}

func TestWriteOverlay(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 16, 16))
	path := filepath.Join(t.TempDir(), "overlays", "frame_0001.png")
	box := analyzer.BoundingBox{MinX: 2, MaxX: 9, MinY: 4, MaxY: 11, Changed: true}

	if err := WriteOverlay(path, frame, box); err != nil {
		t.Fatalf("WriteOverlay failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Overlay is not a PNG: %v", err)
	}

	r, _, _, _ := img.At(2, 4).RGBA()
	if r>>8 != 255 {
		t.Errorf("Expected red outline at box corner, got r=%d", r>>8)
	}
	// Source frame is not modified
	if frame.RGBAAt(2, 4) != (color.RGBA{}) {
		t.Error("WriteOverlay modified the source frame")
	}
}
