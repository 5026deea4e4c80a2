package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/geom"
)

func TestVectorArith(t *testing.T) {
	a := geom.Vector{X: 1, Y: 2}
	b := geom.Vector{X: 3, Y: -1}
	assert.Equal(t, geom.Vector{X: 4, Y: 1}, geom.Add(a, b))
	assert.Equal(t, geom.Vector{X: -2, Y: 3}, geom.Sub(a, b))
	assert.Equal(t, geom.Vector{X: -1, Y: -2}, geom.Neg(a))
	assert.InDelta(t, 1, geom.Dot(a, b), 1e-6)
}

func TestVectorNorm(t *testing.T) {
	v := geom.Vector{X: 3, Y: 4}
	assert.InDelta(t, 5, v.Norm(), 1e-6)
	assert.InDelta(t, 25, v.Norm2(), 1e-6)
	u := v.Unit()
	assert.InDelta(t, 1, u.Norm(), 1e-6)
}

func TestVectorIsFinite(t *testing.T) {
	assert.True(t, geom.Vector{X: 1, Y: 2}.IsFinite())
	assert.False(t, geom.Vector{X: float32(math.NaN()), Y: 0}.IsFinite())
	assert.False(t, geom.Vector{X: float32(math.Inf(1)), Y: 0}.IsFinite())
}

func TestRotateAboutOrigin(t *testing.T) {
	v := geom.Vector{X: 1, Y: 0}
	rotated := geom.Rotate(v, math.Pi/2)
	assert.InDelta(t, 0, rotated.X, 1e-5)
	assert.InDelta(t, 1, rotated.Y, 1e-5)
}

func TestRotateAboutPoint(t *testing.T) {
	center := geom.Vector{X: 1, Y: 1}
	v := geom.Vector{X: 2, Y: 1}
	rotated := geom.RotateAbout(v, center, math.Pi)
	assert.InDelta(t, 0, rotated.X, 1e-5)
	assert.InDelta(t, 1, rotated.Y, 1e-5)
}

func TestRectCanonicalPanics(t *testing.T) {
	assert.Panics(t, func() { geom.NewRect(1, 0, 0, 1) })
	assert.NotPanics(t, func() { geom.NewRect(0, 1, 0, 1) })
}

func TestRectFromPoints(t *testing.T) {
	r := geom.FromPoints([]geom.Vector{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}})
	assert.Equal(t, float32(-1), r.XMin)
	assert.Equal(t, float32(3), r.XMax)
	assert.Equal(t, float32(-4), r.YMin)
	assert.Equal(t, float32(2), r.YMax)
}

func TestRectBoxCoordsRoundTrip(t *testing.T) {
	r := geom.NewRect(-2, 4, 1, 9)
	p := geom.Vector{X: 1, Y: 5}
	box := r.ToBoxCoords(p)
	back := r.FromBoxCoords(box)
	assert.InDelta(t, p.X, back.X, 1e-4)
	assert.InDelta(t, p.Y, back.Y, 1e-4)
}

func TestRectSignedDistance(t *testing.T) {
	r := geom.NewRect(0, 10, 0, 10)
	assert.Less(t, r.SignedDistance(geom.Vector{X: 5, Y: 5}), float32(0))
	assert.Greater(t, r.SignedDistance(geom.Vector{X: 15, Y: 5}), float32(0))
	assert.InDelta(t, 0, r.SignedDistance(geom.Vector{X: 10, Y: 5}), 1e-6)
}

func TestRectQuadrantsPartitionCenter(t *testing.T) {
	r := geom.NewRect(0, 4, 0, 4)
	quads := r.Quadrants()
	require.Len(t, quads, 4)
	for _, q := range quads {
		assert.InDelta(t, 2, q.Width(), 1e-6)
		assert.InDelta(t, 2, q.Height(), 1e-6)
		assert.True(t, r.Contains(q))
	}
}

func TestRectIntersectsAndContains(t *testing.T) {
	a := geom.NewRect(0, 10, 0, 10)
	b := geom.NewRect(5, 15, 5, 15)
	c := geom.NewRect(20, 30, 20, 30)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.True(t, a.Contains(geom.NewRect(2, 8, 2, 8)))
	assert.False(t, a.Contains(b))
}
