// Package spline implements piecewise cubic Bézier splines stored as a flat
// sequence of alternating anchor points and tangent half-vectors.
package spline

import (
	"github.com/max-kay/linewise/geom"
)

// Segment is one cubic Bézier arc between two consecutive anchors, given by
// its four control points P0..P3: P0 and P3 are anchors, P1 and P2 are the
// anchors' outgoing/incoming tangent endpoints.
type Segment struct {
	P0, P1, P2, P3 geom.Vector
}

// NewSegment builds a Segment from an anchor a0, its outgoing tangent
// half-vector v0, the next anchor a1, and a1's incoming tangent half-vector
// v1. This matches the arena layout: a segment's P1 is a0+v0 and its P2 is
// a1-v1.
func NewSegment(a0, v0, a1, v1 geom.Vector) Segment {
	return Segment{
		P0: a0,
		P1: geom.Add(a0, v0),
		P2: geom.Sub(a1, v1),
		P3: a1,
	}
}

// Position evaluates the cubic Bézier curve at parameter t in [0,1] using
// the cubic Bernstein basis.
func (s Segment) Position(t float32) geom.Vector {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return geom.Vector{
		X: b0*s.P0.X + b1*s.P1.X + b2*s.P2.X + b3*s.P3.X,
		Y: b0*s.P0.Y + b1*s.P1.Y + b2*s.P2.Y + b3*s.P3.Y,
	}
}

// Derivative evaluates the curve's first derivative at t using the
// quadratic Bernstein basis scaled by 3.
func (s Segment) Derivative(t float32) geom.Vector {
	mt := 1 - t
	d0 := 3 * mt * mt
	d1 := 6 * mt * t
	d2 := 3 * t * t
	d01 := geom.Sub(s.P1, s.P0)
	d12 := geom.Sub(s.P2, s.P1)
	d23 := geom.Sub(s.P3, s.P2)
	return geom.Add(geom.Add(geom.Scale(d0, d01), geom.Scale(d1, d12)), geom.Scale(d2, d23))
}

// Derivative2 evaluates the curve's second derivative at t using the linear
// Bernstein basis scaled by 6.
func (s Segment) Derivative2(t float32) geom.Vector {
	acc0 := geom.Add(geom.Sub(s.P2, geom.Scale(2, s.P1)), s.P0)
	acc1 := geom.Add(geom.Sub(s.P3, geom.Scale(2, s.P2)), s.P1)
	return geom.Scale(6, geom.Add(geom.Scale(1-t, acc0), geom.Scale(t, acc1)))
}

// Bounds returns the smallest Rect containing all four control points. This
// is a cheap convex-hull-based over-approximation of the curve's true
// bounding box, matching calculateBounds' strategy of
// unioning anchor and control-point boxes rather than solving for the
// curve's extrema.
func (s Segment) Bounds() geom.Rect {
	return geom.FromPoints([]geom.Vector{s.P0, s.P1, s.P2, s.P3})
}

// PositionIter returns n samples of Position at s=i/n for i in 0..n
// (half-open: s=1 is excluded so that consecutive segments don't
// double-count the shared anchor).
func (s Segment) PositionIter(n int) []geom.Vector {
	out := make([]geom.Vector, n)
	for i := 0; i < n; i++ {
		out[i] = s.Position(float32(i) / float32(n))
	}
	return out
}

// DerivativeIter returns n samples of Derivative at s=i/n for i in 0..n.
func (s Segment) DerivativeIter(n int) []geom.Vector {
	out := make([]geom.Vector, n)
	for i := 0; i < n; i++ {
		out[i] = s.Derivative(float32(i) / float32(n))
	}
	return out
}

// Derivative2Iter returns n samples of Derivative2 at s=i/n for i in 0..n.
func (s Segment) Derivative2Iter(n int) []geom.Vector {
	out := make([]geom.Vector, n)
	for i := 0; i < n; i++ {
		out[i] = s.Derivative2(float32(i) / float32(n))
	}
	return out
}

// Sample bundles a segment's position and first two derivatives at a single
// parameter, the unit of work the energy functional integrates over.
type Sample struct {
	Pos, Deriv, Deriv2 geom.Vector
}

// AllIter returns n combined position/derivative/derivative2 samples at
// s=i/n for i in 0..n, in one pass over the segment.
func (s Segment) AllIter(n int) []Sample {
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n)
		out[i] = Sample{Pos: s.Position(t), Deriv: s.Derivative(t), Deriv2: s.Derivative2(t)}
	}
	return out
}

// ShortestDistance returns the minimum pairwise Euclidean distance between
// precision samples of s and precision samples of other, a coarse
// nearest-neighbor measure.
func (s Segment) ShortestDistance(other Segment, precision int) float32 {
	a := s.PositionIter(precision)
	b := other.PositionIter(precision)
	best := geom.Sub(a[0], b[0]).Norm()
	for _, pa := range a {
		for _, pb := range b {
			if d := geom.Sub(pa, pb).Norm(); d < best {
				best = d
			}
		}
	}
	return best
}

// Intersects reports whether s and other's sampled polylines cross, tested
// by checking every pair of consecutive-sample line segments for a proper
// intersection.
func (s Segment) Intersects(other Segment, precision int) bool {
	a := s.PositionIter(precision + 1)
	b := other.PositionIter(precision + 1)
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsCross(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether line segments p0p1 and q0q1 properly cross,
// via the standard orientation test.
func segmentsCross(p0, p1, q0, q1 geom.Vector) bool {
	d1 := orient(q0, q1, p0)
	d2 := orient(q0, q1, p1)
	d3 := orient(p0, p1, q0)
	d4 := orient(p0, p1, q1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c geom.Vector) float32 {
	return geom.Cross(geom.Sub(b, a), geom.Sub(c, a))
}
