package storage

import "github.com/max-kay/linewise/spline"

// SplineInfo is a per-spline auxiliary table, indexed by a handle's
// ListIndex.
type SplineInfo[T any] struct {
	values []T
}

// NewSplineInfo builds a SplineInfo with every entry set to value.
func NewSplineInfo[T any](s *SplineStorage, value T) *SplineInfo[T] {
	values := make([]T, s.Len())
	for i := range values {
		values[i] = value
	}
	return &SplineInfo[T]{values: values}
}

// MakeSplineInfo builds a SplineInfo by applying f to every spline in the
// arena, in list-index order.
func MakeSplineInfo[T any](s *SplineStorage, f func(spline.BorrowedSpline) T) *SplineInfo[T] {
	splines := s.AllSplines()
	values := make([]T, len(splines))
	for i, bs := range splines {
		values[i] = f(bs)
	}
	return &SplineInfo[T]{values: values}
}

// Get returns the entry for h.
func (si *SplineInfo[T]) Get(h SplineHandle) T { return si.values[h.ListIndex] }

// Set overwrites the entry for h.
func (si *SplineInfo[T]) Set(h SplineHandle, v T) { si.values[h.ListIndex] = v }

// SegmentInfo is a per-segment auxiliary table covering every segment of
// every spline in the arena, addressed by (handle, local segment index).
// Because the interleaved buffer holds exactly one more Vector-pair per
// spline than it has segments, the global index of a spline's first
// segment is h.StorageIndex/2 - h.ListIndex: StorageIndex/2 is the count
// of anchor/tangent pairs preceding this spline, and subtracting
// ListIndex (the number of splines preceding this one) removes the one
// "extra" pair each of those splines contributes relative to its segment
// count.
type SegmentInfo[T any] struct {
	values []T
}

func totalSegments(s *SplineStorage) int {
	total := 0
	for _, bs := range s.AllSplines() {
		total += bs.NumSegments()
	}
	return total
}

// NewSegmentInfo builds a SegmentInfo with every entry set to value.
func NewSegmentInfo[T any](s *SplineStorage, value T) *SegmentInfo[T] {
	values := make([]T, totalSegments(s))
	for i := range values {
		values[i] = value
	}
	return &SegmentInfo[T]{values: values}
}

// MakeSegmentInfo builds a SegmentInfo by applying f to every segment of
// every spline in the arena, in (spline, then segment) order.
func MakeSegmentInfo[T any](s *SplineStorage, f func(spline.Segment) T) *SegmentInfo[T] {
	var values []T
	for _, bs := range s.AllSplines() {
		for _, seg := range bs.Segments() {
			values = append(values, f(seg))
		}
	}
	return &SegmentInfo[T]{values: values}
}

func (h SplineHandle) segmentBase() int {
	return h.StorageIndex/2 - h.ListIndex
}

// Get returns the entry for segment localIdx of h's spline.
func (sg *SegmentInfo[T]) Get(h SplineHandle, localIdx int) T {
	return sg.values[h.segmentBase()+localIdx]
}

// Set overwrites the entry for segment localIdx of h's spline.
func (sg *SegmentInfo[T]) Set(h SplineHandle, localIdx int, v T) {
	sg.values[h.segmentBase()+localIdx] = v
}
