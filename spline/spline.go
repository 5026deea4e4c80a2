package spline

import (
	"fmt"

	math "github.com/chewxy/math32"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/rng"
)

// Spline is an owning, mutable sequence of (anchor, tangent) pairs stored
// interleaved as [A0,V0,A1,V1,...]. It defines NumSegments() cubic Bézier
// segments, one between each pair of consecutive anchors. Its Bounds field
// caches the union of every anchor's and every segment's control-point
// bounding box, and must be refreshed (via updateBounds) after any mutation.
type Spline struct {
	PointsAndVecs []geom.Vector
	Bounds        geom.Rect
}

// New builds a Spline from equal-length anchor and tangent slices. It
// returns an error if the lengths differ, if either has fewer than 2
// elements, or if any component is non-finite.
func New(anchors, tangents []geom.Vector) (*Spline, error) {
	if len(anchors) != len(tangents) {
		return nil, fmt.Errorf("spline: anchor/tangent length mismatch: %d vs %d", len(anchors), len(tangents))
	}
	if len(anchors) < 2 {
		return nil, fmt.Errorf("spline: need at least 2 anchor/tangent pairs, got %d", len(anchors))
	}
	pv := make([]geom.Vector, 0, 2*len(anchors))
	for i := range anchors {
		if !anchors[i].IsFinite() || !tangents[i].IsFinite() {
			return nil, fmt.Errorf("spline: non-finite anchor or tangent at index %d", i)
		}
		pv = append(pv, anchors[i], tangents[i])
	}
	s := &Spline{PointsAndVecs: pv}
	s.updateBounds()
	return s, nil
}

// FromParts builds a Spline directly from an interleaved [A0,V0,A1,V1,...]
// slice, as read back out of a storage arena slot. The caller owns pv; it
// is not copied.
func FromParts(pv []geom.Vector) *Spline {
	s := &Spline{PointsAndVecs: pv}
	s.updateBounds()
	return s
}

// NumAnchors returns the number of anchor/tangent pairs.
func (s *Spline) NumAnchors() int { return len(s.PointsAndVecs) / 2 }

// NumSegments returns the number of cubic Bézier segments, one fewer than
// the number of anchors.
func (s *Spline) NumSegments() int { return s.NumAnchors() - 1 }

// Anchor returns the i'th anchor.
func (s *Spline) Anchor(i int) geom.Vector { return s.PointsAndVecs[2*i] }

// Tangent returns the i'th tangent half-vector.
func (s *Spline) Tangent(i int) geom.Vector { return s.PointsAndVecs[2*i+1] }

// SetAnchor overwrites the i'th anchor. Callers must call updateBounds (or
// a mutator that does) before relying on s.Bounds again.
func (s *Spline) SetAnchor(i int, v geom.Vector) { s.PointsAndVecs[2*i] = v }

// SetTangent overwrites the i'th tangent half-vector.
func (s *Spline) SetTangent(i int, v geom.Vector) { s.PointsAndVecs[2*i+1] = v }

// Segment returns the i'th segment, built from anchors i,i+1 and tangents
// i,i+1.
func (s *Spline) Segment(i int) Segment {
	return NewSegment(s.Anchor(i), s.Tangent(i), s.Anchor(i+1), s.Tangent(i+1))
}

// Segments returns every segment of the spline in order.
func (s *Spline) Segments() []Segment {
	n := s.NumSegments()
	out := make([]Segment, n)
	for i := 0; i < n; i++ {
		out[i] = s.Segment(i)
	}
	return out
}

// Borrow returns a read-only view over the same backing storage, for
// iteration-only consumers (e.g. storage.AllSplines).
func (s *Spline) Borrow() BorrowedSpline {
	return BorrowedSpline{PointsAndVecs: s.PointsAndVecs}
}

// updateBounds recomputes s.Bounds as the union of every anchor's bounding
// box and every segment's C0/C1 control-point bounding box.
func (s *Spline) updateBounds() {
	s.Bounds = CalculateBounds(s.PointsAndVecs)
}

// CalculateBounds computes the bounds of an interleaved [A0,V0,A1,V1,...]
// slice: the union of every anchor's bounding box and every segment's
// C0/C1 control-point bounding box. Exported for storage, which needs it
// both for fresh spline arrivals and for handle bounds refresh on
// overwrite.
func CalculateBounds(pv []geom.Vector) geom.Rect {
	return calculateBounds(pv)
}

func calculateBounds(pv []geom.Vector) geom.Rect {
	n := len(pv) / 2
	pts := make([]geom.Vector, 0, n+2*(n-1))
	for i := 0; i < n; i++ {
		pts = append(pts, pv[2*i])
	}
	for i := 0; i < n-1; i++ {
		a0, v0, a1, v1 := pv[2*i], pv[2*i+1], pv[2*i+2], pv[2*i+3]
		pts = append(pts, geom.Add(a0, v0), geom.Sub(a1, v1))
	}
	return geom.FromPoints(pts)
}

// Translate adds v to every anchor; tangents are unchanged.
func (s *Spline) Translate(v geom.Vector) {
	for i := 0; i < s.NumAnchors(); i++ {
		s.SetAnchor(i, geom.Add(s.Anchor(i), v))
	}
	s.updateBounds()
}

// Rotate rotates every anchor about the spline's current bounds-center by
// theta, and rotates every tangent (as a free vector, about the origin) by
// theta.
func (s *Spline) Rotate(theta float32) {
	center := s.Bounds.Center()
	for i := 0; i < s.NumAnchors(); i++ {
		s.SetAnchor(i, geom.RotateAbout(s.Anchor(i), center, theta))
		s.SetTangent(i, geom.Rotate(s.Tangent(i), theta))
	}
	s.updateBounds()
}

// RotateSegment rotates the two anchors of segment i about their midpoint
// by theta, and rotates both of the segment's tangents by theta/2.
func (s *Spline) RotateSegment(i int, theta float32) {
	a0, a1 := s.Anchor(i), s.Anchor(i+1)
	mid := geom.Scale(0.5, geom.Add(a0, a1))
	s.SetAnchor(i, geom.RotateAbout(a0, mid, theta))
	s.SetAnchor(i+1, geom.RotateAbout(a1, mid, theta))
	half := theta / 2
	s.SetTangent(i, geom.Rotate(s.Tangent(i), half))
	s.SetTangent(i+1, geom.Rotate(s.Tangent(i+1), half))
	s.updateBounds()
}

// ScaleTangents multiplies every tangent by f.
func (s *Spline) ScaleTangents(f float32) {
	for i := 0; i < s.NumAnchors(); i++ {
		s.SetTangent(i, geom.Scale(f, s.Tangent(i)))
	}
	s.updateBounds()
}

// ScaleTangentsRandom multiplies each tangent by its own factor,
// independently drawn as uniform(-1,1)*f.
func (s *Spline) ScaleTangentsRandom(f float32, src rng.Source) {
	for i := 0; i < s.NumAnchors(); i++ {
		factor := rng.SignedUniform(src, 1) * f
		s.SetTangent(i, geom.Scale(factor, s.Tangent(i)))
	}
	s.updateBounds()
}

// Stretch scales every anchor relative to the midpoint of the first and
// last anchor by f, and scales every tangent by f.
func (s *Spline) Stretch(f float32) {
	last := s.NumAnchors() - 1
	mid := geom.Scale(0.5, geom.Add(s.Anchor(0), s.Anchor(last)))
	for i := 0; i <= last; i++ {
		a := s.Anchor(i)
		s.SetAnchor(i, geom.Add(mid, geom.Scale(f, geom.Sub(a, mid))))
		s.SetTangent(i, geom.Scale(f, s.Tangent(i)))
	}
	s.updateBounds()
}

// NewRandom builds a random spline of the given segment count and target
// segment length, centered approximately at center and oriented by a
// uniform random rotation.
//
// Construction: starting from the origin, take `segments` random unit
// steps, each rejection-sampled until its dot product with +x is at least
// 0.2, scaled by segmentLen. Internal tangents run half a segment length
// along the direction between their neighboring anchors; the two end
// tangents run half a segment length along +x. The whole spline is then
// translated so its bounding-box center coincides with center, and rotated
// by a uniform angle in [0, 2π).
func NewRandom(src rng.Source, segments int, segmentLen float32, center geom.Vector) (*Spline, error) {
	if segments < 1 {
		return nil, fmt.Errorf("spline: NewRandom requires at least 1 segment, got %d", segments)
	}
	n := segments + 1
	anchors := make([]geom.Vector, n)
	anchors[0] = geom.Vector{}
	for i := 1; i < n; i++ {
		step := rejectedUnitStep(src)
		anchors[i] = geom.Add(anchors[i-1], geom.Scale(segmentLen, step))
	}

	tangents := make([]geom.Vector, n)
	half := segmentLen / 2
	tangents[0] = geom.Vector{X: half}
	tangents[n-1] = geom.Vector{X: half}
	for i := 1; i < n-1; i++ {
		dir := geom.Sub(anchors[i+1], anchors[i-1]).Unit()
		tangents[i] = geom.Scale(half, dir)
	}

	s, err := New(anchors, tangents)
	if err != nil {
		return nil, err
	}
	s.Translate(geom.Sub(center, s.Bounds.Center()))
	s.Rotate(rng.Uniform(src, 0, 2*math.Pi))
	return s, nil
}

// minForwardDot is the minimum dot product with +x a random unit step must
// have to be accepted, biasing random walks to make net forward progress.
const minForwardDot = 0.2

func rejectedUnitStep(src rng.Source) geom.Vector {
	for {
		v := rng.UnitVector(src)
		if v.X >= minForwardDot {
			return v
		}
	}
}

// BorrowedSpline is a read-only view over an interleaved [A0,V0,A1,V1,...]
// slice, used by iteration-only consumers that should not be able to
// mutate the underlying arena directly.
type BorrowedSpline struct {
	PointsAndVecs []geom.Vector
}

// NumAnchors returns the number of anchor/tangent pairs.
func (b BorrowedSpline) NumAnchors() int { return len(b.PointsAndVecs) / 2 }

// NumSegments returns the number of segments.
func (b BorrowedSpline) NumSegments() int { return b.NumAnchors() - 1 }

// Anchor returns the i'th anchor.
func (b BorrowedSpline) Anchor(i int) geom.Vector { return b.PointsAndVecs[2*i] }

// Tangent returns the i'th tangent half-vector.
func (b BorrowedSpline) Tangent(i int) geom.Vector { return b.PointsAndVecs[2*i+1] }

// Segment returns the i'th segment.
func (b BorrowedSpline) Segment(i int) Segment {
	return NewSegment(b.Anchor(i), b.Tangent(i), b.Anchor(i+1), b.Tangent(i+1))
}

// Segments returns every segment in order.
func (b BorrowedSpline) Segments() []Segment {
	n := b.NumSegments()
	out := make([]Segment, n)
	for i := 0; i < n; i++ {
		out[i] = b.Segment(i)
	}
	return out
}

// Bounds computes the bounds of the borrowed view on demand (it is not
// cached, since the backing arena may change between calls).
func (b BorrowedSpline) Bounds() geom.Rect {
	return calculateBounds(b.PointsAndVecs)
}

// IntersectsSpline reports whether any segment of b crosses any segment of
// other, each tested at the given sampling precision. Used by seeding to
// reject candidate placements that overlap existing splines.
func (b BorrowedSpline) IntersectsSpline(other BorrowedSpline, precision int) bool {
	segsA := b.Segments()
	segsB := other.Segments()
	for _, sa := range segsA {
		for _, sb := range segsB {
			if sa.Intersects(sb, precision) {
				return true
			}
		}
	}
	return false
}
