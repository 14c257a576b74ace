package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/fovea/internal/analyzer"
	"github.com/ivlev/fovea/internal/config"
	"github.com/ivlev/fovea/internal/renderer"
	"github.com/ivlev/fovea/internal/report"
	"github.com/ivlev/fovea/internal/source"
	"github.com/ivlev/fovea/internal/system"
)

// DiffProject compares every frame of a source with the one before it
type DiffProject struct {
	Config     *config.Config
	Source     source.Source
	Classifier analyzer.Classifier

	renderTime time.Duration
	diffTime   time.Duration
}

func NewDiffProject(cfg *config.Config, src source.Source) (*DiffProject, error) {
	classify, err := analyzer.NewClassifier(cfg.Classifier)
	if err != nil {
		return nil, err
	}
	return &DiffProject{
		Config:     cfg,
		Source:     src,
		Classifier: classify,
	}, nil
}

// Run renders frames in batches bounded by FrameBudget, reduces each successive
// pair and returns the summarized report. Fewer than two frames is not an error.
func (p *DiffProject) Run(ctx context.Context) (*report.Report, error) {
	startTime := time.Now()
	p.renderTime, p.diffTime = 0, 0

	rep := &report.Report{
		Version:    report.Version,
		Source:     p.Config.InputPath,
		Threshold:  p.Config.Threshold,
		Classifier: p.Config.Classifier,
		Frames:     []report.FrameDiff{},
	}

	frameCount := p.Source.FrameCount()
	if frameCount < 2 {
		logrus.WithFields(logrus.Fields{
			"function": "Run",
			"frames":   frameCount,
		}).Warn("Need at least two frames to compare")
		rep.Summarize()
		return rep, nil
	}

	// Dimensions are an estimate for vector sources; the report uses rendered sizes.
	width, height, err := p.Source.Dimensions(0)
	if err != nil {
		return nil, fmt.Errorf("frame 0 dimensions: %w", err)
	}

	budget := system.FrameBudget(uint64(width)*uint64(height)*4, p.Config.Workers)
	logrus.WithFields(logrus.Fields{
		"function":   "Run",
		"source":     p.Config.InputPath,
		"frames":     frameCount,
		"width":      width,
		"height":     height,
		"threshold":  p.Config.Threshold,
		"classifier": p.Config.Classifier,
		"budget":     budget,
	}).Info("Starting diff run")

	var prev *source.Frame
	defer func() { prev.Release() }()

	for start := 0; start < frameCount; start += budget {
		end := min(start+budget, frameCount)

		batch, err := p.renderBatch(ctx, start, end)
		if err != nil {
			return nil, err
		}

		if rep.Width == 0 {
			rep.Width, rep.Height = batch[0].Width(), batch[0].Height()
		}

		for i, cur := range batch {
			if prev != nil {
				diff, err := p.diffPair(ctx, prev, cur)
				if err != nil {
					prev.Release()
					releaseAll(batch[i:])
					prev = nil
					return nil, err
				}
				rep.Frames = append(rep.Frames, diff)
			}
			prev.Release()
			prev = cur
		}
	}

	rep.Summarize()

	logrus.WithFields(logrus.Fields{
		"function":      "Run",
		"pairs":         rep.Summary.Pairs,
		"changed_pairs": rep.Summary.ChangedPairs,
		"mean_savings":  fmt.Sprintf("%.1f%%", rep.Summary.MeanSavings),
		"elapsed":       time.Since(startTime).String(),
	}).Info("Diff run finished")

	if p.Config.ShowStats {
		p.printStats(frameCount, time.Since(startTime))
	}

	return rep, nil
}

// renderBatch renders frames [start, end) concurrently, preserving order
func (p *DiffProject) renderBatch(ctx context.Context, start, end int) ([]*source.Frame, error) {
	renderStart := time.Now()
	defer func() { p.renderTime += time.Since(renderStart) }()

	frames := make([]*source.Frame, end-start)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)

	for i := start; i < end; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := p.Source.RenderFrame(i, p.Config.DPI)
			if err != nil {
				return fmt.Errorf("render frame %d: %w", i, err)
			}
			frames[i-start] = source.NewFrame(i, img)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		releaseAll(frames)
		return nil, err
	}
	return frames, nil
}

// diffPair reduces one successive pair and writes its overlay when configured
func (p *DiffProject) diffPair(ctx context.Context, prev, cur *source.Frame) (report.FrameDiff, error) {
	diffStart := time.Now()
	defer func() { p.diffTime += time.Since(diffStart) }()

	if prev.Image.Rect != cur.Image.Rect {
		return report.FrameDiff{}, fmt.Errorf("frames %d and %d: %w: %v vs %v",
			prev.Index, cur.Index, analyzer.ErrBufferSize, prev.Image.Rect.Size(), cur.Image.Rect.Size())
	}

	width, height := cur.Width(), cur.Height()
	box, err := analyzer.ReduceParallel(ctx, cur.Image.Pix, prev.Image.Pix, uint32(width), uint32(height), p.Config.Threshold, analyzer.ParallelOptions{
		Workers:    p.Config.Workers,
		Bands:      p.Config.Bands,
		Classifier: p.Classifier,
	})
	if err != nil {
		return report.FrameDiff{}, fmt.Errorf("frames %d and %d: %w", prev.Index, cur.Index, err)
	}

	diff := report.NewFrameDiff(cur.Index, prev.Index, box, width, height)

	if box.Changed && p.Config.OverlayDir != "" {
		path := filepath.Join(p.Config.OverlayDir, fmt.Sprintf("frame_%04d.png", cur.Index))
		if err := renderer.WriteOverlay(path, cur.Image, box); err != nil {
			return report.FrameDiff{}, fmt.Errorf("overlay for frame %d: %w", cur.Index, err)
		}
		diff.Overlay = path
	}

	logrus.WithFields(logrus.Fields{
		"function": "diffPair",
		"frame":    cur.Index,
		"changed":  box.Changed,
		"box":      diff.Box,
		"savings":  fmt.Sprintf("%.1f%%", diff.Savings),
	}).Debug("Frame pair reduced")

	return diff, nil
}

func (p *DiffProject) printStats(frameCount int, total time.Duration) {
	fps := float64(frameCount) / total.Seconds()
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Reduction: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), p.renderTime.Seconds(), p.diffTime.Seconds(), fps,
	)
}

func releaseAll(frames []*source.Frame) {
	for _, f := range frames {
		f.Release()
	}
}
