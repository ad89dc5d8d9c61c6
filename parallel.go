package floatimg

import (
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// minBandRows keeps bands large enough that goroutine overhead stays
// small next to the work in each band.
const minBandRows = 16

var parallelism atomic.Int32

// SetParallelism limits how many goroutines Convolve and the resize
// functions use. n <= 0 restores the default of runtime.GOMAXPROCS(0);
// n == 1 runs everything on the calling goroutine.
//
// Output does not depend on the setting. Each output sample is computed
// from the source buffer only.
func SetParallelism(n int) {
	if n < 0 {
		n = 0
	}
	parallelism.Store(int32(n))
}

// Parallelism returns the effective goroutine limit.
func Parallelism() int {
	if n := int(parallelism.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// forEachBand splits rows [0, rows) into contiguous bands and calls fn for
// each band, concurrently when parallelism allows. fn must only write
// output rows inside its band.
func forEachBand(rows int, fn func(y0, y1 int)) {
	workers := Parallelism()
	if workers > rows/minBandRows {
		workers = rows / minBandRows
	}
	if workers <= 1 {
		fn(0, rows)
		return
	}

	bandSize := (rows + workers - 1) / workers
	Logger().Debug("row bands",
		slog.Int("rows", rows), slog.Int("workers", workers), slog.Int("band", bandSize))

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < rows; y0 += bandSize {
		y0 := y0 // per-iteration copy (go 1.21 loop semantics)
		y1 := min(y0+bandSize, rows)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	// fn never fails; Wait is only a barrier here.
	_ = g.Wait()
}
