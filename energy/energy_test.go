package energy_test

import (
	"testing"

	math32 "github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/energy"
	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
	"github.com/max-kay/linewise/spline"
)

func TestEnergyAddIsComponentwise(t *testing.T) {
	a := energy.Energy{Strain: 1, Bending: 2}
	b := energy.Energy{Strain: 3, Potential: 4}
	sum := a.Add(b)
	assert.Equal(t, float32(4), sum.Strain)
	assert.Equal(t, float32(2), sum.Bending)
	assert.Equal(t, float32(4), sum.Potential)
}

func TestEnergySum(t *testing.T) {
	e := energy.Energy{Strain: 1, Bending: 2, Potential: 3, Field: 4, Interaction: 5, Boundary: 6}
	assert.Equal(t, float32(21), e.Sum())
}

func TestEnergyIsFiniteCatchesNaNAndInf(t *testing.T) {
	assert.True(t, energy.Zero().IsFinite())
	bad := energy.Energy{Boundary: math32.Inf(1)}
	assert.False(t, bad.IsFinite())
}

func TestHalfInteractionOnlyAffectsInteraction(t *testing.T) {
	e := energy.Energy{Strain: 2, Interaction: 10}
	h := e.HalfInteraction()
	assert.Equal(t, float32(2), h.Strain)
	assert.Equal(t, float32(5), h.Interaction)
}

func TestInteractionPotentialVanishesAtCutoff(t *testing.T) {
	const r = float32(2.0)
	assert.Equal(t, float32(0), energy.InteractionPotential(r, r))
	assert.Equal(t, float32(0), energy.InteractionPotential(r*2, r))
}

func TestInteractionPotentialApproachesMinusQuarterAtCutoff(t *testing.T) {
	const r = float32(2.0)
	d := r * 0.999999
	assert.InDelta(t, -0.25, energy.InteractionPotential(d, r), 1e-3)
}

func TestInteractionPotentialIsRepulsiveAtShortRange(t *testing.T) {
	const r = float32(2.0)
	assert.Greater(t, energy.InteractionPotential(r*0.1, r), float32(0))
}

func straightSpline(t *testing.T, x0 float32) spline.BorrowedSpline {
	t.Helper()
	sp, err := spline.New(
		[]geom.Vector{{X: x0, Y: 0}, {X: x0 + 1, Y: 0}},
		[]geom.Vector{{X: 0.5, Y: 0}, {X: 0.5, Y: 0}},
	)
	require.NoError(t, err)
	return sp.Borrow()
}

func TestSegmentEnergyStrainZeroWhenLengthMatchesTarget(t *testing.T) {
	sp := straightSpline(t, 0)
	coef := energy.Coefficients{Strain: 1}
	boundary := geom.NewRect(-100, 100, -100, 100)
	e := energy.SplineEnergy(sp, 1.0, 32, coef, energy.Fields{}, boundary)
	assert.InDelta(t, 0, e.Strain, 1e-2)
}

func TestSegmentEnergyBoundaryInfiniteOutsideRegion(t *testing.T) {
	sp := straightSpline(t, 0)
	coef := energy.Coefficients{Boundary: 1}
	tinyBoundary := geom.NewRect(0.4, 0.6, -0.1, 0.1)
	e := energy.SplineEnergy(sp, 1.0, 8, coef, energy.Fields{}, tinyBoundary)
	assert.True(t, math32.IsInf(e.Boundary, 1))
}

func TestSegmentEnergyPotentialFollowsField(t *testing.T) {
	sp := straightSpline(t, 0)
	coef := energy.Coefficients{Potential: 1}
	boundary := geom.NewRect(-100, 100, -100, 100)
	pot := sampler.NewFilled(4, 4, geom.NewRect(-10, 10, -10, 10), float32(2))
	e := energy.SplineEnergy(sp, 1.0, 16, coef, energy.Fields{Potential: pot}, boundary)
	assert.Greater(t, e.Potential, float32(0))
}

func TestInteractionEnergyZeroWhenFarApart(t *testing.T) {
	a := straightSpline(t, 0)
	b := straightSpline(t, 1000)
	got := energy.InteractionEnergy(a, b, 2, 1, 8)
	assert.Equal(t, float32(0), got)
}

func TestInteractionEnergyNonzeroWhenClose(t *testing.T) {
	a := straightSpline(t, 0)
	b := straightSpline(t, 0.5)
	got := energy.InteractionEnergy(a, b, 2, 1, 8)
	assert.NotEqual(t, float32(0), got)
}
