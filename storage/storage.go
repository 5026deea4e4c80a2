// Package storage implements the arena-style spline storage: a single flat
// buffer of interleaved anchor/tangent Vectors, handed out through opaque
// SplineHandle references, plus the per-spline/per-segment auxiliary
// tables indexed off those handles.
package storage

import (
	"fmt"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/spline"
)

// SplineHandle is an opaque reference to a spline living in a
// SplineStorage arena. Equality and ordering are by StorageIndex, the
// handle's position in the flat buffer; the cached Bounds snapshot is what
// the quadtree indexes by at insertion time.
type SplineHandle struct {
	StorageIndex int
	SegmentCount int
	ListIndex    int
	CachedBounds geom.Rect
}

// Bounds implements geom.Bounded.
func (h SplineHandle) Bounds() geom.Rect { return h.CachedBounds }

// Less orders handles by StorageIndex, used by the energy functional's
// "global audit" single-count pairing rule.
func (h SplineHandle) Less(o SplineHandle) bool { return h.StorageIndex < o.StorageIndex }

// Equal compares handles by StorageIndex.
func (h SplineHandle) Equal(o SplineHandle) bool { return h.StorageIndex == o.StorageIndex }

// SplineStorage is an append-only flat buffer of Vectors laid out as
// [A0,V0,A1,V1,...] per spline, concatenated spline after spline, plus a
// parallel list of each spline's starting offset. Splines are never
// relocated and a handle's segment count never changes. At most one spline
// may be checked out (read but not yet written back or revalidated) at a
// time; emptySlot records which handle that is.
type SplineStorage struct {
	pointsAndVecs []geom.Vector
	starts        []int
	emptySlot     *SplineHandle
}

// New returns an empty arena.
func New() *SplineStorage {
	return &SplineStorage{}
}

// Len returns the number of splines in the arena.
func (s *SplineStorage) Len() int { return len(s.starts) }

// AddSpline appends sp's anchor/tangent pairs to the arena and returns a
// handle to them. sp is copied; the caller retains ownership of sp.
func (s *SplineStorage) AddSpline(sp *spline.Spline) SplineHandle {
	storageIndex := len(s.pointsAndVecs)
	listIndex := len(s.starts)
	s.starts = append(s.starts, storageIndex)
	pv := make([]geom.Vector, len(sp.PointsAndVecs))
	copy(pv, sp.PointsAndVecs)
	s.pointsAndVecs = append(s.pointsAndVecs, pv...)
	return SplineHandle{
		StorageIndex: storageIndex,
		SegmentCount: sp.NumSegments(),
		ListIndex:    listIndex,
		CachedBounds: sp.Bounds,
	}
}

// sliceFor returns the arena's backing slice for a handle's spline.
func (s *SplineStorage) sliceFor(h SplineHandle) []geom.Vector {
	n := 2 * (h.SegmentCount + 1)
	return s.pointsAndVecs[h.StorageIndex : h.StorageIndex+n]
}

// IsEmpty reports whether h is exactly the handle currently checked out.
func (s *SplineStorage) IsEmpty(h SplineHandle) bool {
	return s.emptySlot != nil && s.emptySlot.Equal(h)
}

// Read checks h's spline out of the arena into an owning copy and marks
// the empty slot. Read panics if another handle is already checked out;
// the engine's pop/read/overwrite-or-revalidate/insert protocol ensures
// this never happens in practice.
func (s *SplineStorage) Read(h SplineHandle) *spline.Spline {
	if s.emptySlot != nil {
		panic("storage: a spline is already checked out")
	}
	raw := s.sliceFor(h)
	owned := make([]geom.Vector, len(raw))
	copy(owned, raw)
	hCopy := h
	s.emptySlot = &hCopy
	return spline.FromParts(owned)
}

// Overwrite requires the empty slot to be set and sp's segment count to
// match the checked-out handle's, writes sp's vectors back into the slot,
// clears the slot, and returns a handle with refreshed bounds.
func (s *SplineStorage) Overwrite(sp *spline.Spline) (SplineHandle, error) {
	if s.emptySlot == nil {
		return SplineHandle{}, fmt.Errorf("storage: overwrite with no spline checked out")
	}
	h := *s.emptySlot
	if sp.NumSegments() != h.SegmentCount {
		return SplineHandle{}, fmt.Errorf("storage: segment count changed on overwrite: had %d, got %d", h.SegmentCount, sp.NumSegments())
	}
	dst := s.sliceFor(h)
	copy(dst, sp.PointsAndVecs)
	h.CachedBounds = sp.Bounds
	s.emptySlot = nil
	return h, nil
}

// Revalidate requires the empty slot to be set, drops sp without writing
// it back, clears the slot, and returns the original handle unchanged.
func (s *SplineStorage) Revalidate(sp *spline.Spline) (SplineHandle, error) {
	if s.emptySlot == nil {
		return SplineHandle{}, fmt.Errorf("storage: revalidate with no spline checked out")
	}
	h := *s.emptySlot
	s.emptySlot = nil
	return h, nil
}

// spanFor returns the [start,end) range of a spline by its list index.
func (s *SplineStorage) spanFor(listIndex int) (start, end int) {
	start = s.starts[listIndex]
	if listIndex+1 < len(s.starts) {
		end = s.starts[listIndex+1]
	} else {
		end = len(s.pointsAndVecs)
	}
	return start, end
}

// GetSpline returns a read-only borrowed view of h's spline without
// checking it out.
func (s *SplineStorage) GetSpline(h SplineHandle) spline.BorrowedSpline {
	return spline.BorrowedSpline{PointsAndVecs: s.sliceFor(h)}
}

// AllSplines returns a read-only borrowed view of every spline in the
// arena, in list-index order.
func (s *SplineStorage) AllSplines() []spline.BorrowedSpline {
	out := make([]spline.BorrowedSpline, len(s.starts))
	for i := range s.starts {
		start, end := s.spanFor(i)
		out[i] = spline.BorrowedSpline{PointsAndVecs: s.pointsAndVecs[start:end]}
	}
	return out
}

// AllSegments returns every segment across every spline in the arena, in
// (spline, then segment) order; windows that would span two different
// splines are never formed since each spline's segments are derived only
// from its own slice.
func (s *SplineStorage) AllSegments() []spline.Segment {
	var out []spline.Segment
	for _, bs := range s.AllSplines() {
		out = append(out, bs.Segments()...)
	}
	return out
}

// Clone returns a deep copy of the arena's spline data, with the empty
// slot cleared. Used to hand a point-in-time snapshot to an external
// display collaborator without exposing the live, possibly mid-step,
// arena.
func (s *SplineStorage) Clone() *SplineStorage {
	pv := make([]geom.Vector, len(s.pointsAndVecs))
	copy(pv, s.pointsAndVecs)
	st := make([]int, len(s.starts))
	copy(st, s.starts)
	return &SplineStorage{pointsAndVecs: pv, starts: st}
}
