package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/spline"
	"github.com/max-kay/linewise/storage"
)

func newTestSpline(t *testing.T, x0 float32) *spline.Spline {
	t.Helper()
	sp, err := spline.New(
		[]geom.Vector{{X: x0, Y: 0}, {X: x0 + 4, Y: 0}, {X: x0 + 8, Y: 0}},
		[]geom.Vector{{X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}},
	)
	require.NoError(t, err)
	return sp
}

func TestAddAndGetSpline(t *testing.T) {
	s := storage.New()
	sp := newTestSpline(t, 0)
	h := s.AddSpline(sp)
	assert.Equal(t, 1, s.Len())
	got := s.GetSpline(h)
	assert.Equal(t, sp.PointsAndVecs, got.PointsAndVecs)
}

func TestReadOverwriteRoundTrip(t *testing.T) {
	s := storage.New()
	h := s.AddSpline(newTestSpline(t, 0))

	checkedOut := s.Read(h)
	checkedOut.Translate(geom.Vector{X: 1, Y: 1})
	newHandle, err := s.Overwrite(checkedOut)
	require.NoError(t, err)

	got := s.GetSpline(newHandle)
	assert.Equal(t, checkedOut.PointsAndVecs, got.PointsAndVecs)
}

func TestReadRevalidateLeavesOriginal(t *testing.T) {
	s := storage.New()
	h := s.AddSpline(newTestSpline(t, 0))
	original := s.GetSpline(h).PointsAndVecs
	originalCopy := append([]geom.Vector(nil), original...)

	checkedOut := s.Read(h)
	checkedOut.Translate(geom.Vector{X: 5, Y: 5})
	newHandle, err := s.Revalidate(checkedOut)
	require.NoError(t, err)

	got := s.GetSpline(newHandle)
	assert.Equal(t, originalCopy, got.PointsAndVecs)
}

func TestReadTwiceWithoutResolvingPanics(t *testing.T) {
	s := storage.New()
	h := s.AddSpline(newTestSpline(t, 0))
	s.Read(h)
	assert.Panics(t, func() { s.Read(h) })
}

func TestOverwriteRejectsSegmentCountChange(t *testing.T) {
	s := storage.New()
	h := s.AddSpline(newTestSpline(t, 0))
	checkedOut := s.Read(h)

	shorter, err := spline.New(
		[]geom.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}},
		[]geom.Vector{{X: 1, Y: 0}, {X: 1, Y: 0}},
	)
	require.NoError(t, err)
	_, err = s.Overwrite(shorter)
	assert.Error(t, err)
	_, _ = s.Revalidate(checkedOut)
}

func TestAllSplinesAndSegmentsCoverEveryEntry(t *testing.T) {
	s := storage.New()
	s.AddSpline(newTestSpline(t, 0))
	s.AddSpline(newTestSpline(t, 100))

	assert.Len(t, s.AllSplines(), 2)
	assert.Len(t, s.AllSegments(), 4)
}

func TestCloneIsIndependent(t *testing.T) {
	s := storage.New()
	h := s.AddSpline(newTestSpline(t, 0))
	clone := s.Clone()

	checkedOut := s.Read(h)
	checkedOut.Translate(geom.Vector{X: 9, Y: 9})
	_, err := s.Overwrite(checkedOut)
	require.NoError(t, err)

	assert.NotEqual(t, s.GetSpline(h).PointsAndVecs, clone.AllSplines()[0].PointsAndVecs)
}

func TestSplineInfoIndexedByHandle(t *testing.T) {
	s := storage.New()
	h0 := s.AddSpline(newTestSpline(t, 0))
	h1 := s.AddSpline(newTestSpline(t, 50))

	info := storage.NewSplineInfo(s, false)
	info.Set(h1, true)
	assert.False(t, info.Get(h0))
	assert.True(t, info.Get(h1))
}

func TestSegmentInfoCoversEverySegment(t *testing.T) {
	s := storage.New()
	h0 := s.AddSpline(newTestSpline(t, 0))
	h1 := s.AddSpline(newTestSpline(t, 50))

	info := storage.MakeSegmentInfo(s, func(seg spline.Segment) float32 {
		return seg.P0.X
	})
	assert.InDelta(t, 0, info.Get(h0, 0), 1e-4)
	assert.InDelta(t, 50, info.Get(h1, 0), 1e-4)
	assert.InDelta(t, 54, info.Get(h1, 1), 1e-4)
}

func TestHandleOrderingAndEquality(t *testing.T) {
	s := storage.New()
	h0 := s.AddSpline(newTestSpline(t, 0))
	h1 := s.AddSpline(newTestSpline(t, 50))
	assert.True(t, h0.Less(h1))
	assert.False(t, h1.Less(h0))
	assert.True(t, h0.Equal(h0))
	assert.False(t, h0.Equal(h1))
}
