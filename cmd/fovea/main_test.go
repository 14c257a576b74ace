package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/fovea/internal/analyzer"
	"github.com/ivlev/fovea/internal/report"
)

func TestShowLatest(t *testing.T) {
	dir := t.TempDir()
	rep := &report.Report{
		Version:    report.Version,
		Source:     "slides.pdf",
		Width:      10,
		Height:     10,
		Threshold:  30,
		Classifier: "sum",
		Frames: []report.FrameDiff{
			report.NewFrameDiff(1, 0, analyzer.BoundingBox{MinX: 2, MaxX: 3, MinY: 4, MaxY: 5, Changed: true}, 10, 10),
		},
	}
	rep.Summarize()
	path := filepath.Join(dir, "slides.yaml")
	require.NoError(t, report.WriteReport(rep, path))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.yaml"), filepath.Join(dir, "zz.yaml")))

	var out bytes.Buffer
	require.NoError(t, showLatest(&out, dir))
	assert.Contains(t, out.String(), "Report: "+path)
	assert.Contains(t, out.String(), "Source: slides.pdf (10x10, threshold 30, sum)")
	assert.Contains(t, out.String(), "Pairs: 1 | Changed: 1 | Mean savings: 96.0% | Union: 2x2 at (2,4)")
}

func TestShowLatestEmpty(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, showLatest(&out, t.TempDir()))
	assert.Error(t, showLatest(&out, filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, out.String())
}
