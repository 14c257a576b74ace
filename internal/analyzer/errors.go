package analyzer

import "errors"

var (
	// ErrZeroWidth is returned when a frame is declared with no columns
	ErrZeroWidth = errors.New("frame width must be positive")
	// ErrLengthMismatch is returned when the two buffers differ in length
	ErrLengthMismatch = errors.New("frame buffers differ in length")
	// ErrBufferSize is returned when a buffer does not hold width*height RGBA pixels
	ErrBufferSize = errors.New("frame buffer does not match dimensions")
)
