// Package eval provides vectorized evaluation of implicit surface trees:
// batched distance buffers, central-difference normals, memoization and
// parallel sampling. It is the boundary an external sampler (grid rasterizer,
// ray marcher) consumes; the package performs no I/O and no rendering.
package eval

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/implicit-dev/implicit"
)

// SDF3 implements a 3D signed distance field in vectorized form.
type SDF3 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length. Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in
	// processing, such as [VecPool].
	Evaluate(pos []r3.Vec, dist []float64, userData any) error
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// NewCPUSDF3 adapts a pointwise surface to the vectorized [SDF3] interface.
// The returned evaluator is stateless and safe for concurrent use whenever s
// is an immutable tree built by an [implicit.Builder].
func NewCPUSDF3(s implicit.Surface) SDF3 {
	if s == nil {
		panic("nil Surface argument to NewCPUSDF3")
	}
	return sdf3cpu{s: s}
}

type sdf3cpu struct {
	s implicit.Surface
}

// Evaluate implements [SDF3].
func (a sdf3cpu) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	for i, p := range pos {
		dist[i] = a.s.Evaluate(p)
	}
	return nil
}

// NormalsCentralDiff uses the central differences algorithm for normal
// calculation, storing one normal per position. The returned normals are not
// normalized (converted to unit length); step is the total distance between
// the two samples taken along each axis.
//
// Scratch buffers are taken from a [VecPool] found through userData; when
// none is supplied a temporary pool is allocated.
func NormalsCentralDiff(s SDF3, pos []r3.Vec, normals []r3.Vec, step float64, userData any) error {
	step *= 0.5
	if step <= 0 {
		return errors.New("invalid step")
	} else if len(pos) != len(normals) {
		return errors.New("length of position must match length of normals")
	} else if s == nil {
		return errors.New("nil SDF3")
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	vp, err := GetVecPool(userData)
	if err != nil {
		vp = &VecPool{}
	}
	d1 := vp.Float.Acquire(len(pos))
	d2 := vp.Float.Acquire(len(pos))
	auxPos := vp.V3.Acquire(len(pos))
	defer vp.Float.Release(d1)
	defer vp.Float.Release(d2)
	defer vp.V3.Release(auxPos)
	var vecs = [3]r3.Vec{{X: step}, {Y: step}, {Z: step}}
	for dim := 0; dim < 3; dim++ {
		h := vecs[dim]
		for i, p := range pos {
			auxPos[i] = r3.Add(p, h)
		}
		err = s.Evaluate(auxPos, d1, userData)
		if err != nil {
			return err
		}
		for i, p := range pos {
			auxPos[i] = r3.Sub(p, h)
		}
		err = s.Evaluate(auxPos, d2, userData)
		if err != nil {
			return err
		}

		switch dim {
		case 0:
			for i, d := range d1 {
				normals[i].X = d - d2[i]
			}
		case 1:
			for i, d := range d1 {
				normals[i].Y = d - d2[i]
			}
		case 2:
			for i, d := range d1 {
				normals[i].Z = d - d2[i]
			}
		}
	}
	return nil
}

// AppendGrid appends the centers of a regular nx by ny by nz cell subdivision
// of the axis-aligned region spanned by p0 and p1 to dst and returns the
// result. Points are laid out x-fastest.
func AppendGrid(dst []r3.Vec, p0, p1 r3.Vec, nx, ny, nz int) []r3.Vec {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("zero or negative grid divisions")
	}
	size := r3.Sub(p1, p0)
	for k := 0; k < nz; k++ {
		z := p0.Z + size.Z*(float64(k)+0.5)/float64(nz)
		for j := 0; j < ny; j++ {
			y := p0.Y + size.Y*(float64(j)+0.5)/float64(ny)
			for i := 0; i < nx; i++ {
				x := p0.X + size.X*(float64(i)+0.5)/float64(nx)
				dst = append(dst, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return dst
}
