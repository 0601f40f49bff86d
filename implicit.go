// Package implicit represents solid geometry as signed distance fields and
// composes primitive shapes into scenes with boolean (CSG) and smooth-blended
// boolean operators. The package answers exactly two questions about a scene:
// the signed distance from a point to the surface and the field gradient at a
// point. Samplers, ray marchers and shader-code emitters are external
// consumers of those two answers.
//
// Scene trees are built bottom-up through a [Builder] and are immutable once
// constructed, so a tree may be shared freely across goroutines and across
// scenes.
package implicit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a 3D signed distance field node: either a primitive shape or a
// boolean combination of two child surfaces.
type Surface interface {
	// Evaluate returns the signed distance from p to the surface boundary:
	// negative inside the solid, zero on the boundary, positive outside.
	// Evaluate is a pure function, total over finite points.
	Evaluate(p r3.Vec) float64
	// ForEachChild calls fn for each direct child node. Primitives have no
	// children and return nil immediately. fn receives a pointer into the
	// node so that callers may inspect child identity during traversal.
	ForEachChild(userData any, fn func(userData any, s *Surface) error) error
}

// Flags controls construction-time behavior of a [Builder].
type Flags uint64

const (
	// FlagNoDimensionPanic causes shape dimension errors to be accumulated
	// in the Builder instead of panicking. See [Builder.Err].
	FlagNoDimensionPanic Flags = 1 << iota
)

// Builder constructs all primitive and operation nodes in this package.
// It provides error handling strategies with panics (the default) or error
// accumulation during shape construction. A Builder with accumulated errors
// has produced at least one malformed node; callers must check [Builder.Err]
// before using the resulting tree.
type Builder struct {
	flags     Flags
	accumErrs []error
}

// Flags returns the current Builder flags.
func (bld *Builder) Flags() Flags { return bld.flags }

// SetFlags replaces the Builder flags.
func (bld *Builder) SetFlags(flags Flags) { bld.flags = flags }

// Err returns accumulated construction errors, or nil if construction has
// been valid so far. Only populated under [FlagNoDimensionPanic].
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated construction errors.
func (bld *Builder) ClearErrors() { bld.accumErrs = nil }

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if bld.flags&FlagNoDimensionPanic == 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

// nilsdf panics unconditionally: a combinator with a missing child must never
// enter a tree, regardless of the error accumulation flag.
func (*Builder) nilsdf(msg string) {
	panic("nil Surface argument: " + msg)
}

func minf(a, b float64) float64 {
	return math.Min(a, b)
}

func maxf(a, b float64) float64 {
	return math.Max(a, b)
}

func absf(a float64) float64 {
	return math.Abs(a)
}

func clampf(v, Min, Max float64) float64 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}
