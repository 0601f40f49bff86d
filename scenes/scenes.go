// Package scenes provides prebuilt CSG demonstration scenes: small immutable
// surface trees exercising every primitive and boolean operator. A renderer
// front end selects one scene root and samples it; swapping scenes is a
// root-reference rebind by the owner, never a mutation of existing nodes.
package scenes

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/implicit-dev/implicit"
)

// Scene pairs a display name with the root of an immutable surface tree.
// Subtrees may be shared between scenes.
type Scene struct {
	Name string
	Root implicit.Surface
}

// boxRound is the edge rounding applied to every demo box.
const boxRound = 0.1

// SingleSphere is a unit sphere at the origin.
func SingleSphere(bld *implicit.Builder) implicit.Surface {
	return bld.NewSphere(r3.Vec{}, 1)
}

// UnionSpheres joins two unit spheres offset half a unit from the origin
// along x.
func UnionSpheres(bld *implicit.Builder) implicit.Surface {
	s1 := bld.NewSphere(r3.Vec{X: -0.5}, 1)
	s2 := bld.NewSphere(r3.Vec{X: 0.5}, 1)
	return bld.Union(s1, s2)
}

// IntersectSphereBox keeps the lens common to a unit sphere and a box at the
// origin.
func IntersectSphereBox(bld *implicit.Builder) implicit.Surface {
	sphere := bld.NewSphere(r3.Vec{}, 1)
	box := bld.NewBox(r3.Vec{}, r3.Vec{X: 0.8, Y: 0.8, Z: 0.8}, boxRound)
	return bld.Intersection(sphere, box)
}

// SphereMinusBox carves an off-center box out of a unit sphere.
func SphereMinusBox(bld *implicit.Builder) implicit.Surface {
	sphere := bld.NewSphere(r3.Vec{}, 1)
	box := bld.NewBox(r3.Vec{X: 0.5}, r3.Vec{X: 0.8, Y: 0.8, Z: 0.8}, boxRound)
	return bld.Difference(sphere, box)
}

// ComplexCSG carves a centered box out of the union of two large overlapping
// spheres.
func ComplexCSG(bld *implicit.Builder) implicit.Surface {
	s1 := bld.NewSphere(r3.Vec{X: -1}, 1.2)
	s2 := bld.NewSphere(r3.Vec{X: 1}, 1.2)
	spheres := bld.Union(s1, s2)
	box := bld.NewBox(r3.Vec{}, r3.Vec{X: 0.8, Y: 0.8, Z: 0.8}, boxRound)
	return bld.Difference(spheres, box)
}

// Showcase chains every smooth operator: two blended spheres, a box carved
// out softly, the result confined to a vertical cylinder.
func Showcase(bld *implicit.Builder) implicit.Surface {
	s1 := bld.NewSphere(r3.Vec{X: -0.8, Y: 0.3}, 1)
	s2 := bld.NewSphere(r3.Vec{X: 0.8, Y: -0.2}, 0.8)
	box := bld.NewBox(r3.Vec{}, r3.Vec{X: 0.6, Y: 0.6, Z: 2}, 0)
	cyl := bld.NewCylinder(r3.Vec{Z: -1.5}, r3.Vec{Z: 1.5}, 0.4)
	blob := bld.SmoothUnion(0.2, s1, s2)
	carved := bld.SmoothDifference(0.1, blob, box)
	return bld.SmoothIntersect(0.1, carved, cyl)
}

// All returns the predefined scenes in demo order.
func All(bld *implicit.Builder) []Scene {
	return []Scene{
		{Name: "sphere", Root: SingleSphere(bld)},
		{Name: "union", Root: UnionSpheres(bld)},
		{Name: "intersection", Root: IntersectSphereBox(bld)},
		{Name: "difference", Root: SphereMinusBox(bld)},
		{Name: "complex", Root: ComplexCSG(bld)},
		{Name: "showcase", Root: Showcase(bld)},
	}
}
