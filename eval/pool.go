package eval

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// VecPool holds reusable scratch buffers for evaluations that need auxiliary
// storage, such as [NormalsCentralDiff]. A VecPool must not be shared between
// goroutines; parallel callers use one pool per worker.
type VecPool struct {
	Float bufPool[float64]
	V3    bufPool[r3.Vec]
}

// VecPooler is implemented by evaluators that carry their own [VecPool].
type VecPooler interface {
	VecPool() *VecPool
}

// GetVecPool extracts a [VecPool] from userData, which may be a *VecPool
// itself or a [VecPooler].
func GetVecPool(userData any) (*VecPool, error) {
	switch ud := userData.(type) {
	case *VecPool:
		return ud, nil
	case VecPooler:
		return ud.VecPool(), nil
	}
	return nil, fmt.Errorf("expected *VecPool or VecPooler userData, got %T", userData)
}

type bufPool[T any] struct {
	free [][]T
}

// Acquire returns a length-n buffer, reusing a released one when large
// enough. Contents are not zeroed.
func (bp *bufPool[T]) Acquire(n int) []T {
	for i, buf := range bp.free {
		if cap(buf) >= n {
			bp.free[i] = bp.free[len(bp.free)-1]
			bp.free = bp.free[:len(bp.free)-1]
			return buf[:n]
		}
	}
	return make([]T, n)
}

// Release returns buf to the pool for reuse by a later Acquire.
func (bp *bufPool[T]) Release(buf []T) {
	bp.free = append(bp.free, buf)
}
