package implicit_test

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/implicit-dev/implicit"
)

// testGrid returns sample points spread around the shapes used in these
// tests, including points inside, on seams and far outside.
func testGrid() []r3.Vec {
	var pts []r3.Vec
	for x := -2.0; x <= 2.0; x += 0.5 {
		for y := -2.0; y <= 2.0; y += 0.5 {
			for z := -2.0; z <= 2.0; z += 0.5 {
				pts = append(pts, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func TestBooleanOps(t *testing.T) {
	var bld implicit.Builder
	a := bld.NewSphere(r3.Vec{X: -0.5}, 1)
	b := bld.NewBox(r3.Vec{X: 0.4, Y: 0.1, Z: -0.2}, r3.Vec{X: 0.7, Y: 0.5, Z: 0.9}, 0.1)
	union := bld.Union(a, b)
	intersect := bld.Intersection(a, b)
	diff := bld.Difference(a, b)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	for _, p := range testGrid() {
		da, db := a.Evaluate(p), b.Evaluate(p)
		if got, want := union.Evaluate(p), min(da, db); got != want {
			t.Fatalf("union at %+v: got %g, want %g", p, got, want)
		}
		if got, want := intersect.Evaluate(p), max(da, db); got != want {
			t.Fatalf("intersection at %+v: got %g, want %g", p, got, want)
		}
		if got, want := diff.Evaluate(p), max(da, -db); got != want {
			t.Fatalf("difference at %+v: got %g, want %g", p, got, want)
		}
	}
}

func TestSmoothOpsSharpLimit(t *testing.T) {
	// Once the children's distances differ by k or more the cubic kernel
	// vanishes and the smooth operators must equal their sharp counterparts
	// exactly.
	var bld implicit.Builder
	a := bld.NewSphere(r3.Vec{X: -0.5}, 1)
	b := bld.NewSphere(r3.Vec{X: 0.5}, 1)
	const k = 0.2
	su := bld.SmoothUnion(k, a, b)
	si := bld.SmoothIntersect(k, a, b)
	sd := bld.SmoothDifference(k, a, b)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	p := r3.Vec{X: 5} // da = 4.5, db = 3.5, gap 1 >= k.
	da, db := a.Evaluate(p), b.Evaluate(p)
	if gap := da - db; gap < k {
		t.Fatalf("bad test point, gap %g < k", gap)
	}
	if got := su.Evaluate(p); got != min(da, db) {
		t.Errorf("smooth union beyond blend width: got %g, want %g", got, min(da, db))
	}
	if got := si.Evaluate(p); got != max(da, db) {
		t.Errorf("smooth intersect beyond blend width: got %g, want %g", got, max(da, db))
	}
	if got := sd.Evaluate(p); got != max(da, -db) {
		t.Errorf("smooth difference beyond blend width: got %g, want %g", got, max(da, -db))
	}
}

func TestSmoothOpsMaxBlend(t *testing.T) {
	var bld implicit.Builder
	a := bld.NewSphere(r3.Vec{X: -0.5}, 1)
	b := bld.NewSphere(r3.Vec{X: 0.5}, 1)
	const k = 0.2

	// At the symmetric point both children evaluate to -0.5, h = 1 and the
	// blend offset peaks at exactly k/6.
	origin := r3.Vec{}
	su := bld.SmoothUnion(k, a, b)
	if got, want := su.Evaluate(origin), -0.5-k*(1.0/6.0); got != want {
		t.Errorf("smooth union peak blend: got %g, want %g", got, want)
	}
	si := bld.SmoothIntersect(k, a, b)
	if got, want := si.Evaluate(origin), -0.5+k*(1.0/6.0); got != want {
		t.Errorf("smooth intersect peak blend: got %g, want %g", got, want)
	}

	// For the difference the peak sits where left = -right: at x=1,
	// a = 0.5 and -b = 0.5.
	sd := bld.SmoothDifference(k, a, b)
	p := r3.Vec{X: 1}
	if got, want := sd.Evaluate(p), 0.5+k*(1.0/6.0); got != want {
		t.Errorf("smooth difference peak blend: got %g, want %g", got, want)
	}
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestUnionTwoSpheresAtOrigin(t *testing.T) {
	var bld implicit.Builder
	u := bld.Union(
		bld.NewSphere(r3.Vec{X: -0.5}, 1),
		bld.NewSphere(r3.Vec{X: 0.5}, 1),
	)
	if got := u.Evaluate(r3.Vec{}); got != -0.5 {
		t.Fatalf("two unit spheres at ±0.5: got %g, want -0.5", got)
	}
}

func TestGradientSphere(t *testing.T) {
	var bld implicit.Builder
	small := bld.NewSphere(r3.Vec{}, 1)
	big := bld.NewSphere(r3.Vec{}, 3)
	p := r3.Vec{X: 2, Y: 3, Z: 6} // |p| = 7.
	want := r3.Scale(1.0/7.0, p)
	if g := implicit.Gradient(small, p); !vecWithin(g, want, 1e-12) {
		t.Errorf("sphere gradient: got %+v, want %+v", g, want)
	}
	// The gradient direction is independent of the radius.
	if g1, g2 := implicit.Gradient(small, p), implicit.Gradient(big, p); g1 != g2 {
		t.Errorf("gradient depends on radius: %+v vs %+v", g1, g2)
	}
	// At the center the raw gradient is zero and stays zero, mirroring the
	// zero-vector normalization contract.
	if g := implicit.Gradient(small, r3.Vec{}); g != (r3.Vec{}) {
		t.Errorf("gradient at sphere center: got %+v, want zero", g)
	}
}

func TestGradientNumericCombinator(t *testing.T) {
	var bld implicit.Builder
	u := bld.Union(
		bld.NewSphere(r3.Vec{X: -0.5}, 1),
		bld.NewSphere(r3.Vec{X: 0.5}, 1),
	)
	// Away from the seam the union's numerical gradient points away from
	// the nearest sphere's center.
	p := r3.Vec{X: 1.5, Y: 0.5}
	want := r3.Scale(1/r3.Norm(r3.Vec{X: 1, Y: 0.5}), r3.Vec{X: 1, Y: 0.5})
	if g := implicit.Gradient(u, p); !vecWithin(g, want, 1e-6) {
		t.Errorf("union gradient: got %+v, want %+v", g, want)
	}
	// The origin is a singular point of min: the central differences cancel
	// on every axis and the zero vector is returned unnormalized.
	if g := implicit.Gradient(u, r3.Vec{}); g != (r3.Vec{}) {
		t.Errorf("union gradient at singular point: got %+v, want zero", g)
	}
}

func TestChildrenRoundTrip(t *testing.T) {
	var bld implicit.Builder
	a := bld.NewSphere(r3.Vec{}, 1)
	b := bld.NewBox(r3.Vec{X: 0.5}, r3.Vec{X: 0.8, Y: 0.8, Z: 0.8}, 0.1)

	d := bld.Difference(a, b).(*implicit.OpDiff)
	if d.Left() != a || d.Right() != b {
		t.Error("difference children are not reference-identical to the constructed nodes")
	}

	su := bld.SmoothUnion(0.2, a, b).(*implicit.OpSmoothUnion)
	if su.Left() != a || su.Right() != b {
		t.Error("smooth union children are not reference-identical")
	}
	if su.Smoothing() != 0.2 {
		t.Errorf("smoothing accessor: got %g", su.Smoothing())
	}

	var children []implicit.Surface
	err := d.ForEachChild(nil, func(_ any, s *implicit.Surface) error {
		children = append(children, *s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("ForEachChild traversal: got %d children", len(children))
	}
	// Primitives have no children.
	err = a.ForEachChild(nil, func(_ any, s *implicit.Surface) error {
		t.Error("primitive reported a child")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBuilderAccumulatesErrors(t *testing.T) {
	var bld implicit.Builder
	bld.SetFlags(implicit.FlagNoDimensionPanic)
	ok := bld.NewSphere(r3.Vec{}, 1)

	bld.NewSphere(r3.Vec{}, 0)
	bld.NewSphere(r3.Vec{}, -1)
	bld.NewBox(r3.Vec{}, r3.Vec{X: -0.1, Y: 1, Z: 1}, 0)
	bld.NewBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, -0.5)
	bld.NewPlane(r3.Vec{}, 1)
	bld.NewCylinder(r3.Vec{}, r3.Vec{Z: 1}, 0)
	bld.NewCylinder(r3.Vec{X: 1}, r3.Vec{X: 1}, 0.5)
	bld.SmoothUnion(0, ok, ok)
	bld.SmoothIntersect(-1, ok, ok)
	bld.SmoothDifference(0, ok, ok)

	err := bld.Err()
	if err == nil {
		t.Fatal("expected accumulated construction errors")
	}
	if !strings.Contains(err.Error(), "smoothing factor") {
		t.Errorf("missing smoothing factor error in %q", err.Error())
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("expected builder errors to be cleared")
	}
}

func TestBuilderPanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	var bld implicit.Builder
	s := bld.NewSphere(r3.Vec{}, 1)
	mustPanic("negative radius", func() { bld.NewSphere(r3.Vec{}, -1) })
	mustPanic("nonpositive k", func() { bld.SmoothUnion(0, s, s) })
	mustPanic("nil union child", func() { bld.Union(nil, s) })
	mustPanic("nil difference child", func() { bld.Difference(s, nil) })

	// Nil children panic even in error accumulation mode: a combinator with
	// a missing child must never be constructed.
	bld.SetFlags(implicit.FlagNoDimensionPanic)
	mustPanic("nil child with accumulation flag", func() { bld.Intersection(nil, s) })
	if err := bld.Err(); err != nil {
		t.Errorf("nil child must not be accumulated: %v", err)
	}
}
