package mc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/energy"
	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/quadtree"
	"github.com/max-kay/linewise/spline"
	"github.com/max-kay/linewise/storage"
)

// fixedSource is a deterministic rng.Source: Intn always picks index zero
// (the population's only member, the translate kernel, Gaussian2's
// unmirrored branch), and Float32 plays back a short queued sequence before
// settling on zero.
type fixedSource struct {
	floats []float32
	i      int
}

func (f *fixedSource) Intn(int) int { return 0 }

func (f *fixedSource) Float32() float32 {
	if f.i < len(f.floats) {
		v := f.floats[f.i]
		f.i++
		return v
	}
	return 0
}

// TestStepRecordsLowerOutcomeForGuaranteedEnergyDrop covers the Metropolis
// acceptance of a lowering move: a single spline sits close enough to the
// boundary's left edge that its boundary term dominates, and the rigged
// source drives the translate kernel to push it straight toward the
// interior. Strain and bending are translation-invariant and potential/
// field/interaction are all disabled here, so the only term that can move
// is boundary, and it strictly drops; the Metropolis step must therefore
// record exactly one "lower" outcome and no "accepted" or "rejected" one.
func TestStepRecordsLowerOutcomeForGuaranteedEnergyDrop(t *testing.T) {
	boundary := geom.NewRect(0, 100, 0, 100)
	params := ModelParameters{
		SplineCount:       1,
		SegmentLen:        1.0,
		MaxSegments:       1,
		InteractionRadius: 1.5,
		Coefficients:      energy.Coefficients{Boundary: 1},
		Precision:         4,
		THi:               1,
		TLo:               1,
		TempSteps:         1,
		SweepsPerTemp:     1,
	}
	require.NoError(t, params.Validate())

	geomSrc := rand.New(rand.NewSource(1))
	candidate, err := spline.NewRandom(geomSrc, 1, params.SegmentLen, geom.Vector{X: 5, Y: 50})
	require.NoError(t, err)

	st := storage.New()
	h := st.AddSpline(candidate)
	tree := quadtree.WithBounds[storage.SplineHandle](boundary, nil)
	tree.Insert(h)

	e := &Engine{
		params:   params,
		boundary: boundary,
		src:      &fixedSource{floats: []float32{0.5, 0}},
		storage:  st,
		tree:     tree,
	}
	e.scales[kernelTranslate] = 20
	e.badEnergy = storage.NewSplineInfo(st, false)

	before := e.AuditEnergy().Sum()
	e.step(1.0)
	after := e.AuditEnergy().Sum()

	assert.Less(t, after, before)
	assert.Equal(t, tally{Lower: 1}, e.tallys[kernelTranslate])
}
