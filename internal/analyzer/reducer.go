package analyzer

import "fmt"

const bytesPerPixel = 4

// ComputeBoundingBox returns the tightest box around every pixel whose combined
// RGB delta exceeds threshold. Buffers are row-major RGBA8 and are only read.
func ComputeBoundingBox(current, previous []byte, width, height uint32, threshold uint8) (BoundingBox, error) {
	return Reduce(current, previous, width, height, threshold, SumRGB)
}

// Reduce is ComputeBoundingBox with a custom pixel classifier
func Reduce(current, previous []byte, width, height uint32, threshold uint8, classify Classifier) (BoundingBox, error) {
	if err := validate(current, previous, width, height); err != nil {
		return BoundingBox{}, err
	}
	if classify == nil {
		classify = SumRGB
	}
	return reduceRows(current, previous, width, 0, height, threshold, classify).Box(), nil
}

// validate checks the buffer contract before any pixel is read
func validate(current, previous []byte, width, height uint32) error {
	if width == 0 {
		return ErrZeroWidth
	}
	if len(current) != len(previous) {
		return fmt.Errorf("%w: current=%d previous=%d", ErrLengthMismatch, len(current), len(previous))
	}
	// pixels fits in uint64 for any uint32 dimensions; pixels*4 might not.
	pixels := uint64(width) * uint64(height)
	n := uint64(len(current))
	if n%bytesPerPixel != 0 || n/bytesPerPixel != pixels {
		return fmt.Errorf("%w: got %d bytes, want %d pixels for %dx%d", ErrBufferSize, n, pixels, width, height)
	}
	return nil
}

// reduceRows classifies rows [fromY, toY) and accumulates changed pixels
func reduceRows(current, previous []byte, width, fromY, toY uint32, threshold uint8, classify Classifier) Region {
	var region Region
	stride := int(width) * bytesPerPixel
	for y := fromY; y < toY; y++ {
		row := int(y) * stride
		for x := uint32(0); x < width; x++ {
			i := row + int(x)*bytesPerPixel
			if classify(current[i:i+bytesPerPixel], previous[i:i+bytesPerPixel], threshold) {
				region = region.Add(x, y)
			}
		}
	}
	return region
}
