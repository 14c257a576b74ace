package analyzer

// Classifier decides whether a pixel changed between two frames.
// cur and prev hold the four RGBA samples of the same pixel.
type Classifier func(cur, prev []byte, threshold uint8) bool

// SumRGB marks a pixel changed when |dR|+|dG|+|dB| exceeds the threshold.
// Alpha is ignored.
func SumRGB(cur, prev []byte, threshold uint8) bool {
	d := absDiff(cur[0], prev[0]) + absDiff(cur[1], prev[1]) + absDiff(cur[2], prev[2])
	return d > int(threshold)
}

// MaxChannel marks a pixel changed when any single colour channel moves by more than the threshold
func MaxChannel(cur, prev []byte, threshold uint8) bool {
	d := max(absDiff(cur[0], prev[0]), absDiff(cur[1], prev[1]), absDiff(cur[2], prev[2]))
	return d > int(threshold)
}

// Luma compares BT.601 luminance of both pixels
func Luma(cur, prev []byte, threshold uint8) bool {
	d := luma(cur) - luma(prev)
	if d < 0 {
		d = -d
	}
	return d > int(threshold)*1000
}

// luma returns 1000*Y using integer BT.601 weights
func luma(px []byte) int {
	return 299*int(px[0]) + 587*int(px[1]) + 114*int(px[2])
}

func absDiff(a, b byte) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
