package spline_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/spline"
)

func straightSpline(t *testing.T) *spline.Spline {
	t.Helper()
	anchors := []geom.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 8, Y: 0}}
	tangents := []geom.Vector{{X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}
	sp, err := spline.New(anchors, tangents)
	require.NoError(t, err)
	return sp
}

func TestNewRejectsMismatchedLengths(t *testing.T) {
	_, err := spline.New([]geom.Vector{{}}, []geom.Vector{{}, {}})
	assert.Error(t, err)
}

func TestNewRejectsTooFewAnchors(t *testing.T) {
	_, err := spline.New([]geom.Vector{{}}, []geom.Vector{{}})
	assert.Error(t, err)
}

func TestSplineSegmentCount(t *testing.T) {
	sp := straightSpline(t)
	assert.Equal(t, 3, sp.NumAnchors())
	assert.Equal(t, 2, sp.NumSegments())
}

func TestTranslateShiftsBoundsCenter(t *testing.T) {
	sp := straightSpline(t)
	before := sp.Bounds.Center()
	sp.Translate(geom.Vector{X: 5, Y: -2})
	after := sp.Bounds.Center()
	assert.InDelta(t, before.X+5, after.X, 1e-4)
	assert.InDelta(t, before.Y-2, after.Y, 1e-4)
}

func TestRotateByFullTurnIsIdentity(t *testing.T) {
	sp := straightSpline(t)
	a0 := sp.Anchor(0)
	sp.Rotate(2 * 3.14159265)
	assert.InDelta(t, a0.X, sp.Anchor(0).X, 1e-3)
	assert.InDelta(t, a0.Y, sp.Anchor(0).Y, 1e-3)
}

func TestStretchScalesEndpointSeparation(t *testing.T) {
	sp := straightSpline(t)
	before := geom.Distance(sp.Anchor(0), sp.Anchor(sp.NumAnchors()-1))
	sp.Stretch(2)
	after := geom.Distance(sp.Anchor(0), sp.Anchor(sp.NumAnchors()-1))
	assert.InDelta(t, before*2, after, 1e-3)
}

func TestScaleTangentsScalesAllTangents(t *testing.T) {
	sp := straightSpline(t)
	sp.ScaleTangents(0.5)
	for i := 0; i < sp.NumAnchors(); i++ {
		assert.InDelta(t, 0.5, sp.Tangent(i).X, 1e-5)
	}
}

func TestNewRandomProducesRequestedSegmentCount(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	sp, err := spline.NewRandom(src, 5, 1.0, geom.Vector{X: 10, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, sp.NumSegments())
}

func TestNewRandomCentersApproximatelyAtCenter(t *testing.T) {
	src := rand.New(rand.NewSource(8))
	center := geom.Vector{X: 3, Y: -4}
	sp, err := spline.NewRandom(src, 4, 0.5, center)
	require.NoError(t, err)
	got := sp.Bounds.Center()
	assert.InDelta(t, center.X, got.X, 1e-3)
	assert.InDelta(t, center.Y, got.Y, 1e-3)
}

func TestBorrowReflectsLiveMutation(t *testing.T) {
	sp := straightSpline(t)
	view := sp.Borrow()
	sp.Translate(geom.Vector{X: 1, Y: 1})
	assert.Equal(t, sp.Anchor(0), view.Anchor(0))
}

func TestIntersectsSplineDetectsCrossing(t *testing.T) {
	a, err := spline.New(
		[]geom.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}},
		[]geom.Vector{{X: 1, Y: 0}, {X: 1, Y: 0}},
	)
	require.NoError(t, err)
	b, err := spline.New(
		[]geom.Vector{{X: 2, Y: -2}, {X: 2, Y: 2}},
		[]geom.Vector{{X: 0, Y: 1}, {X: 0, Y: 1}},
	)
	require.NoError(t, err)
	assert.True(t, a.Borrow().IntersectsSpline(b.Borrow(), 16))
}

func TestIntersectsSplineFalseWhenFarApart(t *testing.T) {
	a := straightSpline(t)
	b, err := spline.New(
		[]geom.Vector{{X: 0, Y: 100}, {X: 4, Y: 100}},
		[]geom.Vector{{X: 1, Y: 0}, {X: 1, Y: 0}},
	)
	require.NoError(t, err)
	assert.False(t, a.Borrow().IntersectsSpline(b.Borrow(), 16))
}
