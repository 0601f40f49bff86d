package implicit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/implicit-dev/implicit/internal/d3"
)

// Node types in this package are exported so that external presenters, such
// as shader-code emitters or scene inspectors, can recognize scene structure
// by type-switching over a Surface tree ("this scene is exactly the union of
// two spheres"). Fields stay unexported with read-only accessors: nodes are
// immutable once constructed and children are shared by reference, never
// copied per evaluation.

// Sphere is the distance field of a sphere: |p-center| - radius. Its distance
// is exact everywhere.
type Sphere struct {
	center r3.Vec
	r      float64
}

// NewSphere creates a sphere at center with radius r. r must be positive.
func (bld *Builder) NewSphere(center r3.Vec, r float64) Surface {
	if r <= 0 {
		bld.shapeErrorf("zero or negative sphere radius")
	}
	return &Sphere{center: center, r: r}
}

// Center returns the sphere center.
func (s *Sphere) Center() r3.Vec { return s.center }

// Radius returns the sphere radius.
func (s *Sphere) Radius() float64 { return s.r }

// Evaluate implements [Surface].
func (s *Sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, s.center)) - s.r
}

func (s *Sphere) gradient(p r3.Vec) r3.Vec {
	return d3.Unit(r3.Sub(p, s.center))
}

// ForEachChild implements [Surface].
func (s *Sphere) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	return nil
}

// Box is the distance field of an axis-aligned box with rounded edges. The
// formula is the classic rounded-box approximation
//
//	q = |p-center| - halfExtents
//	d = length(max(q,0)) + min(maxcomp(q),0) - round
//
// which is not the exact Euclidean distance near edges. That approximation is
// intentional and load-bearing: smooth combinator blends are tuned to its
// gradient behavior, so it must not be replaced with an exact point-to-box
// distance.
type Box struct {
	center r3.Vec
	half   r3.Vec
	round  float64
}

// NewBox creates a box at center with the given half-extents and an edge
// rounding radius. Half-extent components and round must be non-negative.
func (bld *Builder) NewBox(center, halfExtents r3.Vec, round float64) Surface {
	if halfExtents.X < 0 || halfExtents.Y < 0 || halfExtents.Z < 0 {
		bld.shapeErrorf("negative box half-extent")
	}
	if round < 0 {
		bld.shapeErrorf("negative box rounding value")
	}
	return &Box{center: center, half: halfExtents, round: round}
}

// Center returns the box center.
func (b *Box) Center() r3.Vec { return b.center }

// HalfExtents returns the box half-extents.
func (b *Box) HalfExtents() r3.Vec { return b.half }

// Rounding returns the edge rounding radius.
func (b *Box) Rounding() float64 { return b.round }

// Evaluate implements [Surface].
func (b *Box) Evaluate(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(r3.Sub(p, b.center)), b.half)
	return r3.Norm(d3.MaxElem(q, r3.Vec{})) + minf(d3.MaxComp(q), 0) - b.round
}

// ForEachChild implements [Surface].
func (b *Box) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	return nil
}

// Plane is the half-space distance field dot(normal, p) + offset, exact
// everywhere. The offset is an additive term, not a point: a positive offset
// shifts the zero set away from the origin along -normal.
type Plane struct {
	n   r3.Vec // unit length
	off float64
}

// NewPlane creates a plane from a normal and a signed offset. The normal is
// normalized by the constructor and must have non-zero length.
func (bld *Builder) NewPlane(normal r3.Vec, offset float64) Surface {
	if r3.Norm2(normal) == 0 {
		bld.shapeErrorf("zero-length plane normal")
	}
	return &Plane{n: d3.Unit(normal), off: offset}
}

// Normal returns the unit normal of the plane.
func (pl *Plane) Normal() r3.Vec { return pl.n }

// Offset returns the signed offset of the plane.
func (pl *Plane) Offset() float64 { return pl.off }

// Evaluate implements [Surface].
func (pl *Plane) Evaluate(p r3.Vec) float64 {
	return r3.Dot(pl.n, p) + pl.off
}

func (pl *Plane) gradient(r3.Vec) r3.Vec { return pl.n }

// ForEachChild implements [Surface].
func (pl *Plane) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	return nil
}

// Cylinder is the distance field of a capped cylinder defined by the axis
// segment from a to b and a radius. The projection onto the axis is clamped
// to the segment, so points beyond either endpoint measure distance to the
// nearest cap, not to the infinite line.
type Cylinder struct {
	a, b r3.Vec
	r    float64
}

// NewCylinder creates a capped cylinder between endpoints a and b with radius
// r. r must be positive and the endpoints must not coincide.
func (bld *Builder) NewCylinder(a, b r3.Vec, r float64) Surface {
	if r <= 0 {
		bld.shapeErrorf("zero or negative cylinder radius")
	}
	if a == b {
		bld.shapeErrorf("coincident cylinder endpoints")
	}
	return &Cylinder{a: a, b: b, r: r}
}

// Start returns the first axis endpoint.
func (c *Cylinder) Start() r3.Vec { return c.a }

// End returns the second axis endpoint.
func (c *Cylinder) End() r3.Vec { return c.b }

// Radius returns the cylinder radius.
func (c *Cylinder) Radius() float64 { return c.r }

// Evaluate implements [Surface].
func (c *Cylinder) Evaluate(p r3.Vec) float64 {
	ba := r3.Sub(c.b, c.a)
	pa := r3.Sub(p, c.a)
	h := clampf(r3.Dot(pa, ba)/r3.Norm2(ba), 0, 1)
	return r3.Norm(r3.Sub(pa, r3.Scale(h, ba))) - c.r
}

// ForEachChild implements [Surface].
func (c *Cylinder) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	return nil
}
