// Package d3 provides 3D vector helpers missing from gonum's spatial/r3:
// elementwise operations used by distance field formulas and a normalization
// that is safe on the zero vector.
package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Unit returns the unit-length vector in the direction of v. The zero vector
// is returned unchanged instead of dividing by zero, so callers never receive
// NaN components from a degenerate input.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(1/n, v)
}

// AbsElem returns the elementwise absolute value of v.
func AbsElem(v r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// MaxElem returns the elementwise maximum of a and b.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// MaxComp returns the largest component of v.
func MaxComp(v r3.Vec) float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}
