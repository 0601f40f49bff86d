package eval

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// EvaluateParallel evaluates s over pos with several goroutines, each working
// a contiguous chunk of the buffers. workers <= 0 selects runtime.NumCPU().
//
// s must be safe for concurrent use. Evaluators returned by [NewCPUSDF3]
// qualify: the tree is read-only shared state and each worker receives its
// own [VecPool] for scratch buffers. A [CachedSDF3] does not qualify, it
// mutates its memo map on every call.
func EvaluateParallel(s SDF3, pos []r3.Vec, dist []float64, workers int) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pos) {
		workers = len(pos)
	}
	chunk := (len(pos) + workers - 1) / workers
	var group errgroup.Group
	for start := 0; start < len(pos); start += chunk {
		start := start
		end := start + chunk
		if end > len(pos) {
			end = len(pos)
		}
		group.Go(func() error {
			var vp VecPool
			return s.Evaluate(pos[start:end], dist[start:end], &vp)
		})
	}
	return group.Wait()
}
