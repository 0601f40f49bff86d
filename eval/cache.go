package eval

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// CachedSDF3 wraps an [SDF3] with exact memoization keyed on the bit patterns
// of the position components. Caching is sound because surface evaluation is
// a pure function of (tree, point); it pays off for samplers that revisit
// identical positions, such as shared voxel corners or repeated normal
// probes.
type CachedSDF3 struct {
	sdf     SDF3
	m       map[[3]uint64]float64
	posbuf  []r3.Vec
	distbuf []float64
	idxbuf  []int
	hits    uint64
	evals   uint64
}

// Reset points the cache at sdf, dropping all cached distances while reusing
// the underlying buffers. It also resets the hit and evaluation statistics.
func (c3 *CachedSDF3) Reset(sdf SDF3) error {
	if sdf == nil {
		return errors.New("nil SDF3 for CachedSDF3")
	}
	if c3.m == nil {
		c3.m = make(map[[3]uint64]float64)
	} else {
		clear(c3.m)
	}
	*c3 = CachedSDF3{
		sdf:     sdf,
		m:       c3.m,
		posbuf:  c3.posbuf[:0],
		distbuf: c3.distbuf[:0],
		idxbuf:  c3.idxbuf[:0],
	}
	return nil
}

// CacheHits returns the total amount of cached evaluations served throughout
// the cache's lifetime.
func (c3 *CachedSDF3) CacheHits() uint64 {
	return c3.hits
}

// Evaluations returns total evaluations performed successfully during the
// cache's lifetime, including cached ones.
func (c3 *CachedSDF3) Evaluations() uint64 {
	return c3.evals
}

// Evaluate implements the [SDF3] interface with cached evaluation.
func (c3 *CachedSDF3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	if c3.m == nil {
		c3.m = make(map[[3]uint64]float64)
	}
	seekPos := c3.posbuf[:0]
	idx := c3.idxbuf[:0]
	for i, p := range pos {
		k := [3]uint64{
			math.Float64bits(p.X),
			math.Float64bits(p.Y),
			math.Float64bits(p.Z),
		}
		d, cached := c3.m[k]
		if cached {
			dist[i] = d
		} else {
			seekPos = append(seekPos, p)
			idx = append(idx, i)
		}
	}
	if len(idx) > 0 {
		// Renew buffers in case they were grown.
		c3.idxbuf = idx
		c3.posbuf = seekPos
		c3.distbuf = slices.Grow(c3.distbuf[:0], len(seekPos))
		seekDist := c3.distbuf[:len(seekPos)]
		err := c3.sdf.Evaluate(seekPos, seekDist, userData)
		if err != nil {
			return err
		}
		// Add new entries to cache.
		for i, p := range seekPos {
			k := [3]uint64{
				math.Float64bits(p.X),
				math.Float64bits(p.Y),
				math.Float64bits(p.Z),
			}
			c3.m[k] = seekDist[i]
		}
		// Fill original buffer with new distances.
		for i, d := range seekDist {
			dist[idx[i]] = d
		}
	}
	c3.evals += uint64(len(dist))
	c3.hits += uint64(len(dist) - len(seekPos))
	return nil
}
