package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
)

func TestNewPanicsOnDimensionMismatch(t *testing.T) {
	assert.Panics(t, func() {
		sampler.New([]int{1, 2, 3}, 2, 2, geom.NewRect(0, 1, 0, 1))
	})
}

func TestSampleOutOfBoundsFails(t *testing.T) {
	s := sampler.NewFilled(4, 4, geom.NewRect(0, 4, 0, 4), 1.5)
	_, ok := s.Sample(geom.Vector{X: 100, Y: 100})
	assert.False(t, ok)
}

func TestSampleNearestCell(t *testing.T) {
	bounds := geom.NewRect(0, 4, 0, 4)
	s := sampler.FromFunc(4, 4, bounds, func(p geom.Vector) float32 {
		return p.X
	})
	v, ok := s.Sample(geom.Vector{X: 3.4, Y: 1.1})
	require.True(t, ok)
	assert.InDelta(t, 3.5, v, 1.0)
}

func TestMapTransformsEveryCell(t *testing.T) {
	bounds := geom.NewRect(0, 2, 0, 2)
	s := sampler.NewFilled(2, 2, bounds, 2)
	doubled := sampler.Map(s, func(v int) int { return v * 2 })
	v, ok := doubled.Sample(geom.Vector{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestFromFuncEvaluatesAtCellCenters(t *testing.T) {
	bounds := geom.NewRect(0, 1, 0, 1)
	s := sampler.FromFunc(2, 1, bounds, func(p geom.Vector) geom.Vector { return p })
	v, ok := s.Sample(geom.Vector{X: 0.25, Y: 0.5})
	require.True(t, ok)
	assert.InDelta(t, 0.25, v.X, 1e-4)
	assert.InDelta(t, 0.5, v.Y, 1e-4)
}
