package implicit

import "gonum.org/v1/gonum/spatial/r3"

// OpUnion is the result of the [Builder.Union] operation: the pointwise
// minimum of its two children. Union is exact: wherever the children are true
// distance fields the result is one too.
type OpUnion struct {
	s1, s2 Surface
}

// Union joins the shapes of two surfaces into one.
func (bld *Builder) Union(s1, s2 Surface) Surface {
	if s1 == nil || s2 == nil {
		bld.nilsdf("Union")
	}
	return &OpUnion{s1: s1, s2: s2}
}

// Evaluate implements [Surface].
func (u *OpUnion) Evaluate(p r3.Vec) float64 {
	return minf(u.s1.Evaluate(p), u.s2.Evaluate(p))
}

// Left returns the first child supplied at construction.
func (u *OpUnion) Left() Surface { return u.s1 }

// Right returns the second child supplied at construction.
func (u *OpUnion) Right() Surface { return u.s2 }

// ForEachChild implements [Surface].
func (u *OpUnion) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	err := fn(userData, &u.s1)
	if err != nil {
		return err
	}
	return fn(userData, &u.s2)
}

// OpIntersect is the result of the [Builder.Intersection] operation: the
// pointwise maximum of its two children. The result is a correct boundary but
// may be conservative (not exact Euclidean distance) away from the zero set.
type OpIntersect struct {
	s1, s2 Surface
}

// Intersection keeps the shape common to both surfaces.
func (bld *Builder) Intersection(s1, s2 Surface) Surface {
	if s1 == nil || s2 == nil {
		bld.nilsdf("Intersection")
	}
	return &OpIntersect{s1: s1, s2: s2}
}

// Evaluate implements [Surface].
func (s *OpIntersect) Evaluate(p r3.Vec) float64 {
	return maxf(s.s1.Evaluate(p), s.s2.Evaluate(p))
}

// Left returns the first child supplied at construction.
func (s *OpIntersect) Left() Surface { return s.s1 }

// Right returns the second child supplied at construction.
func (s *OpIntersect) Right() Surface { return s.s2 }

// ForEachChild implements [Surface].
func (s *OpIntersect) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	err := fn(userData, &s.s1)
	if err != nil {
		return err
	}
	return fn(userData, &s.s2)
}

// OpDiff is the result of the [Builder.Difference] operation: max(a, -b),
// the left shape with the right shape carved out. Like intersection it is
// conservative away from the zero set.
type OpDiff struct {
	s1, s2 Surface // Performs s1-s2.
}

// Difference subtracts the shape of b from the shape of a.
func (bld *Builder) Difference(a, b Surface) Surface {
	if a == nil || b == nil {
		bld.nilsdf("Difference")
	}
	return &OpDiff{s1: a, s2: b}
}

// Evaluate implements [Surface].
func (s *OpDiff) Evaluate(p r3.Vec) float64 {
	return maxf(s.s1.Evaluate(p), -s.s2.Evaluate(p))
}

// Left returns the minuend child supplied at construction.
func (s *OpDiff) Left() Surface { return s.s1 }

// Right returns the subtrahend child supplied at construction.
func (s *OpDiff) Right() Surface { return s.s2 }

// ForEachChild implements [Surface].
func (s *OpDiff) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	err := fn(userData, &s.s1)
	if err != nil {
		return err
	}
	return fn(userData, &s.s2)
}

// Smooth variants blend the transition region of their sharp counterpart with
// the cubic polynomial kernel
//
//	h = max(k - |a-b|, 0) / k
//	union:     min(a,b) - h³k/6
//	intersect: max(a,b) + h³k/6
//
// where k > 0 is the blend width. Once |a-b| >= k the kernel vanishes and the
// result equals the sharp operator exactly; at a == b the blend offset peaks
// at k/6.

// OpSmoothUnion is the result of the [Builder.SmoothUnion] operation.
type OpSmoothUnion struct {
	s1, s2 Surface
	k      float64
}

// SmoothUnion joins the shapes of two surfaces with a smoothing blend of
// width k. k must be positive; smaller k approaches the sharp union.
func (bld *Builder) SmoothUnion(k float64, s1, s2 Surface) Surface {
	if s1 == nil || s2 == nil {
		bld.nilsdf("SmoothUnion")
	}
	if k <= 0 {
		bld.shapeErrorf("zero or negative smoothing factor")
	}
	return &OpSmoothUnion{s1: s1, s2: s2, k: k}
}

// Evaluate implements [Surface].
func (s *OpSmoothUnion) Evaluate(p r3.Vec) float64 {
	a := s.s1.Evaluate(p)
	b := s.s2.Evaluate(p)
	h := maxf(s.k-absf(a-b), 0) / s.k
	return minf(a, b) - h*h*h*s.k*(1.0/6.0)
}

// Smoothing returns the blend width k.
func (s *OpSmoothUnion) Smoothing() float64 { return s.k }

// Left returns the first child supplied at construction.
func (s *OpSmoothUnion) Left() Surface { return s.s1 }

// Right returns the second child supplied at construction.
func (s *OpSmoothUnion) Right() Surface { return s.s2 }

// ForEachChild implements [Surface].
func (s *OpSmoothUnion) ForEachChild(userData any, fn func(userData any, s *Surface) error) error {
	err := fn(userData, &s.s1)
	if err != nil {
		return err
	}
	return fn(userData, &s.s2)
}

// OpSmoothIntersect is the result of the [Builder.SmoothIntersect] operation.
type OpSmoothIntersect struct {
	OpIntersect
	k float64
}

// SmoothIntersect keeps the shape common to both surfaces with a smoothing
// blend of width k. k must be positive.
func (bld *Builder) SmoothIntersect(k float64, s1, s2 Surface) Surface {
	if s1 == nil || s2 == nil {
		bld.nilsdf("SmoothIntersect")
	}
	if k <= 0 {
		bld.shapeErrorf("zero or negative smoothing factor")
	}
	return &OpSmoothIntersect{OpIntersect: OpIntersect{s1: s1, s2: s2}, k: k}
}

// Evaluate implements [Surface].
func (s *OpSmoothIntersect) Evaluate(p r3.Vec) float64 {
	a := s.s1.Evaluate(p)
	b := s.s2.Evaluate(p)
	h := maxf(s.k-absf(a-b), 0) / s.k
	return maxf(a, b) + h*h*h*s.k*(1.0/6.0)
}

// Smoothing returns the blend width k.
func (s *OpSmoothIntersect) Smoothing() float64 { return s.k }

// OpSmoothDiff is the result of the [Builder.SmoothDifference] operation:
// the smooth intersection of the left child with the complement of the right.
type OpSmoothDiff struct {
	OpDiff
	k float64
}

// SmoothDifference subtracts the shape of b from the shape of a with a
// smoothing blend of width k. k must be positive.
func (bld *Builder) SmoothDifference(k float64, a, b Surface) Surface {
	if a == nil || b == nil {
		bld.nilsdf("SmoothDifference")
	}
	if k <= 0 {
		bld.shapeErrorf("zero or negative smoothing factor")
	}
	return &OpSmoothDiff{OpDiff: OpDiff{s1: a, s2: b}, k: k}
}

// Evaluate implements [Surface].
func (s *OpSmoothDiff) Evaluate(p r3.Vec) float64 {
	a := s.s1.Evaluate(p)
	b := -s.s2.Evaluate(p)
	h := maxf(s.k-absf(a-b), 0) / s.k
	return maxf(a, b) + h*h*h*s.k*(1.0/6.0)
}

// Smoothing returns the blend width k.
func (s *OpSmoothDiff) Smoothing() float64 { return s.k }
