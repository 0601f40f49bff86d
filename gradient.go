package implicit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/implicit-dev/implicit/internal/d3"
)

// gradientStep is the perturbation applied on each axis by the
// central-difference gradient estimate.
const gradientStep = 1e-4

// grader is implemented by shapes whose gradient has a trivial closed form.
// It is deliberately unexported: the numerical estimate in [Gradient] is the
// normative semantics and analytic shortcuts may only reproduce it faster,
// never change it.
type grader interface {
	gradient(p r3.Vec) r3.Vec
}

// Gradient returns the unit-length direction of fastest increase of the
// distance field of s at p, used as the surface normal for shading.
//
// The estimate is a central finite difference with perturbation 1e-4 on each
// axis, normalized. Distance fields need not be differentiable everywhere
// (box corners, min/max seams of combinators); the finite difference yields a
// usable normal at such points. If the raw difference vector has zero length
// the zero vector is returned rather than normalized.
//
// Sphere and Plane short-circuit to their analytic gradient.
func Gradient(s Surface, p r3.Vec) r3.Vec {
	if g, ok := s.(grader); ok {
		return g.gradient(p)
	}
	const h = gradientStep
	grad := r3.Vec{
		X: s.Evaluate(r3.Vec{X: p.X + h, Y: p.Y, Z: p.Z}) - s.Evaluate(r3.Vec{X: p.X - h, Y: p.Y, Z: p.Z}),
		Y: s.Evaluate(r3.Vec{X: p.X, Y: p.Y + h, Z: p.Z}) - s.Evaluate(r3.Vec{X: p.X, Y: p.Y - h, Z: p.Z}),
		Z: s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z + h}) - s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z - h}),
	}
	return d3.Unit(grad)
}
