package analyzer

import "image"

// BoundingBox is the inclusive rectangle enclosing every changed pixel of a frame pair.
// Field order is part of the external contract (wasm binding, reports).
type BoundingBox struct {
	MinX    uint32 `yaml:"min_x"`
	MaxX    uint32 `yaml:"max_x"`
	MinY    uint32 `yaml:"min_y"`
	MaxY    uint32 `yaml:"max_y"`
	Changed bool   `yaml:"changed"`
}

// Width returns the number of pixel columns covered by the box (0 when unchanged)
func (b BoundingBox) Width() uint32 {
	if !b.Changed {
		return 0
	}
	return b.MaxX - b.MinX + 1
}

// Height returns the number of pixel rows covered by the box (0 when unchanged)
func (b BoundingBox) Height() uint32 {
	if !b.Changed {
		return 0
	}
	return b.MaxY - b.MinY + 1
}

// Area returns the pixel area of the box
func (b BoundingBox) Area() uint64 {
	return uint64(b.Width()) * uint64(b.Height())
}

// Rect converts the inclusive box to a half-open image.Rectangle.
// An unchanged box maps to the empty rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	if !b.Changed {
		return image.Rectangle{}
	}
	return image.Rect(int(b.MinX), int(b.MinY), int(b.MaxX)+1, int(b.MaxY)+1)
}

// Region accumulates changed pixel coordinates.
// The zero value is the empty region and is the identity for Union.
type Region struct {
	minX, maxX uint32
	minY, maxY uint32
	nonEmpty   bool
}

// Point returns the region containing exactly (x, y)
func Point(x, y uint32) Region {
	return Region{minX: x, maxX: x, minY: y, maxY: y, nonEmpty: true}
}

// Empty reports whether no pixel has been added
func (r Region) Empty() bool {
	return !r.nonEmpty
}

// Add widens the region to include (x, y)
func (r Region) Add(x, y uint32) Region {
	if !r.nonEmpty {
		return Point(x, y)
	}
	if x < r.minX {
		r.minX = x
	}
	if x > r.maxX {
		r.maxX = x
	}
	if y < r.minY {
		r.minY = y
	}
	if y > r.maxY {
		r.maxY = y
	}
	return r
}

// Union returns the smallest region containing both r and o.
// It is commutative and associative; the empty region is its identity.
func (r Region) Union(o Region) Region {
	switch {
	case !o.nonEmpty:
		return r
	case !r.nonEmpty:
		return o
	}
	return Region{
		minX:     min(r.minX, o.minX),
		maxX:     max(r.maxX, o.maxX),
		minY:     min(r.minY, o.minY),
		maxY:     max(r.maxY, o.maxY),
		nonEmpty: true,
	}
}

// Box materializes the region. The empty region becomes the all-zero, unchanged box.
func (r Region) Box() BoundingBox {
	if !r.nonEmpty {
		return BoundingBox{}
	}
	return BoundingBox{
		MinX:    r.minX,
		MaxX:    r.maxX,
		MinY:    r.minY,
		MaxY:    r.maxY,
		Changed: true,
	}
}

// RegionOf converts a box back into a region so partial results can be merged
func RegionOf(b BoundingBox) Region {
	if !b.Changed {
		return Region{}
	}
	return Region{minX: b.MinX, maxX: b.MaxX, minY: b.MinY, maxY: b.MaxY, nonEmpty: true}
}
