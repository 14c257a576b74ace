package report

import (
	"github.com/ivlev/fovea/internal/analyzer"
)

// Version of the report layout
const Version = "1.0"

// Report describes the dirty regions found across a frame sequence
type Report struct {
	Version    string      `yaml:"version"`
	Source     string      `yaml:"source"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Threshold  uint8       `yaml:"threshold"`
	Classifier string      `yaml:"classifier"`
	Frames     []FrameDiff `yaml:"frames"`
	Summary    Summary     `yaml:"summary"`
}

// FrameDiff is the result of comparing frame Index with frame Previous
type FrameDiff struct {
	Index    int                  `yaml:"index"`
	Previous int                  `yaml:"previous"`
	Changed  bool                 `yaml:"changed"`
	Box      Rectangle            `yaml:"box"`     // x/y/w/h of the dirty region
	Bounds   analyzer.BoundingBox `yaml:"bounds"`  // inclusive bounds as returned by the analyzer
	Savings  float64              `yaml:"savings"` // % of the frame outside the box
	Overlay  string               `yaml:"overlay,omitempty"`
}

// Summary aggregates all frame pairs
type Summary struct {
	Pairs        int       `yaml:"pairs"`
	ChangedPairs int       `yaml:"changed_pairs"`
	MeanSavings  float64   `yaml:"mean_savings"`
	Union        Rectangle `yaml:"union"` // smallest box containing every dirty region
}

// Rectangle represents a bounding box
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// RectangleOf converts inclusive analyzer bounds into x/y/w/h form
func RectangleOf(box analyzer.BoundingBox) Rectangle {
	if !box.Changed {
		return Rectangle{}
	}
	return Rectangle{
		X: int(box.MinX),
		Y: int(box.MinY),
		W: int(box.Width()),
		H: int(box.Height()),
	}
}

// NewFrameDiff builds the entry for one compared pair of a width x height sequence
func NewFrameDiff(index, previous int, box analyzer.BoundingBox, width, height int) FrameDiff {
	return FrameDiff{
		Index:    index,
		Previous: previous,
		Changed:  box.Changed,
		Box:      RectangleOf(box),
		Bounds:   box,
		Savings:  Savings(box, width, height),
	}
}

// Savings returns the percentage of the frame that does not need to be
// resent when only the box is transmitted.
func Savings(box analyzer.BoundingBox, width, height int) float64 {
	total := float64(width) * float64(height)
	if total <= 0 {
		return 0
	}
	return 100 - float64(box.Area())/total*100
}

// Summarize recomputes Summary from Frames
func (r *Report) Summarize() {
	var s Summary
	var union analyzer.Region
	total := 0.0

	for _, f := range r.Frames {
		s.Pairs++
		total += f.Savings
		if f.Changed {
			s.ChangedPairs++
			union = union.Union(analyzer.RegionOf(f.Bounds))
		}
	}
	if s.Pairs > 0 {
		s.MeanSavings = total / float64(s.Pairs)
	}
	s.Union = RectangleOf(union.Box())
	r.Summary = s
}
