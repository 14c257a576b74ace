package analyzer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelOptions controls how ReduceParallel shards a frame
type ParallelOptions struct {
	Workers    int        // Concurrent bands (<=0: GOMAXPROCS)
	Bands      int        // Horizontal bands (<=0: Workers)
	Classifier Classifier // nil: SumRGB
}

// ReduceParallel splits the frame into horizontal bands of whole rows, reduces each band
// independently and merges the partial regions. The result equals Reduce for any band count.
func ReduceParallel(ctx context.Context, current, previous []byte, width, height uint32, threshold uint8, opts ParallelOptions) (BoundingBox, error) {
	if err := validate(current, previous, width, height); err != nil {
		return BoundingBox{}, err
	}

	classify := opts.Classifier
	if classify == nil {
		classify = SumRGB
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := opts.Bands
	if bands <= 0 {
		bands = workers
	}
	if uint32(bands) > height {
		bands = int(height)
	}
	if bands <= 1 {
		if err := ctx.Err(); err != nil {
			return BoundingBox{}, err
		}
		return reduceRows(current, previous, width, 0, height, threshold, classify).Box(), nil
	}

	partial := make([]Region, bands)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	rowsPerBand := height / uint32(bands)
	extra := height % uint32(bands)
	var fromY uint32
	for b := 0; b < bands; b++ {
		rows := rowsPerBand
		if uint32(b) < extra {
			rows++
		}
		b, from, to := b, fromY, fromY+rows
		fromY = to

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partial[b] = reduceRows(current, previous, width, from, to, threshold, classify)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BoundingBox{}, err
	}

	return Merge(partial...).Box(), nil
}

// Merge folds partial regions with Union
func Merge(regions ...Region) Region {
	var out Region
	for _, r := range regions {
		out = out.Union(r)
	}
	return out
}
