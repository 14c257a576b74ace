package analyzer

import "fmt"

// NewClassifier returns the pixel classifier for the specified variant
func NewClassifier(variant string) (Classifier, error) {
	switch variant {
	case "sum", "":
		return SumRGB, nil
	case "max":
		return MaxChannel, nil
	case "luma":
		return Luma, nil
	default:
		return nil, fmt.Errorf("unknown classifier variant: %s", variant)
	}
}

// Variants lists the names accepted by NewClassifier
func Variants() []string {
	return []string{"sum", "max", "luma"}
}
