// Package mc implements the simulated-annealing Monte-Carlo engine: seeding
// a population of splines into a bounded region, then repeatedly perturbing
// and accepting-or-rejecting them against a geometric temperature schedule
// until the population settles into a low-energy arrangement.
package mc

import (
	"sync/atomic"

	math "github.com/chewxy/math32"
	"golang.org/x/exp/slog"

	"github.com/max-kay/linewise/energy"
	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/quadtree"
	"github.com/max-kay/linewise/rng"
	"github.com/max-kay/linewise/spline"
	"github.com/max-kay/linewise/storage"
)

// seedingAttemptFactor bounds how many placement attempts the engine makes
// per requested spline before giving up and reporting a SeedingError.
const seedingAttemptFactor = 100

// seedingIntersectionPrecision scales Precision up for the polyline
// intersection test used during seeding, where a coarse per-step precision
// would let two splines slip past each other between samples.
const seedingIntersectionPrecision = 20

// defaultScale is every proposal kernel's adaptive step size at the start
// of a run.
const defaultScale = 0.1

// Engine owns the live arena, its spatial index, and the per-kernel
// adaptive scales, and drives the seed/anneal/report lifecycle described by
// ModelParameters.
type Engine struct {
	params   ModelParameters
	fields   energy.Fields
	boundary geom.Rect
	src      rng.Source

	storage *storage.SplineStorage
	tree    *quadtree.Quadtree[storage.SplineHandle]

	scales [numKernels]float32
	tallys [numKernels]tally

	log      *slog.Logger
	snapshot chan<- *storage.SplineStorage
	cancel   *atomic.Bool

	badEnergy *storage.SplineInfo[bool]
}

// Options carries the engine's optional collaborators. The zero value
// disables all of them: no logging, no snapshot hand-off, no cancellation.
type Options struct {
	Logger   *slog.Logger
	Snapshot chan<- *storage.SplineStorage
	Cancel   *atomic.Bool
}

// New validates params and constructs an Engine ready to Run. It does not
// seed the population; that happens at the start of Run.
func New(params ModelParameters, fields energy.Fields, boundary geom.Rect, src rng.Source, opts Options) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		params:   params,
		fields:   fields,
		boundary: boundary,
		src:      src,
		storage:  storage.New(),
		log:      opts.Logger,
		snapshot: opts.Snapshot,
		cancel:   opts.Cancel,
	}
	for i := range e.scales {
		e.scales[i] = defaultScale
	}
	return e, nil
}

// Storage exposes the engine's arena for read-only inspection (e.g. by a
// caller that wants the final layout after Run returns).
func (e *Engine) Storage() *storage.SplineStorage { return e.storage }

// BadEnergy reports whether the last proposal evaluated for h's spline had
// a non-finite energy. Such proposals are logged, not rejected outright by
// the Metropolis step itself: a non-finite proposed energy gives a +Inf or
// NaN difference, which never satisfies the acceptance test, so the
// population self-corrects without this table needing to intervene.
func (e *Engine) BadEnergy(h storage.SplineHandle) bool {
	if e.badEnergy == nil {
		return false
	}
	return e.badEnergy.Get(h)
}

// seed places ModelParameters.SplineCount non-intersecting random splines
// inside the boundary, inflated inward so no spline's extent can reach past
// it. seed gives up with a SeedingError once attempts exceed
// SplineCount*seedingAttemptFactor.
func (e *Engine) seed() error {
	inflate := -float32(e.params.MaxSegments) * e.params.SegmentLen
	placementArea := e.boundary.AddRadius(inflate)
	if placementArea.Width() <= 0 || placementArea.Height() <= 0 {
		return &ConfigError{Reason: "boundary too small for max_segments*segment_len inflation"}
	}

	e.tree = quadtree.WithBounds[storage.SplineHandle](e.boundary, nil)

	placed := 0
	attempts := 0
	maxAttempts := e.params.SplineCount * seedingAttemptFactor
	for placed < e.params.SplineCount && attempts < maxAttempts {
		attempts++
		center := placementArea.FromBoxCoords(geom.Vector{X: e.src.Float32(), Y: e.src.Float32()})
		segments := 1 + e.src.Intn(e.params.MaxSegments)

		candidate, err := spline.NewRandom(e.src, segments, e.params.SegmentLen, center)
		if err != nil {
			return &InvariantError{Reason: err.Error()}
		}
		candidateView := candidate.Borrow()

		clear := true
		for _, nb := range e.tree.Query(candidateView.Bounds()) {
			if candidateView.IntersectsSpline(e.storage.GetSpline(nb), e.params.Precision*seedingIntersectionPrecision) {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		h := e.storage.AddSpline(candidate)
		e.tree.Insert(h)
		placed++
	}
	if placed < e.params.SplineCount {
		return &SeedingError{Requested: e.params.SplineCount, Placed: placed, Attempts: attempts}
	}
	e.badEnergy = storage.NewSplineInfo(e.storage, false)
	return nil
}

// localEnergy evaluates bs's own energy plus its "full-count" interaction
// with every spline currently in the tree within InteractionRadius of bs's
// bounds. It is used while a candidate spline is checked out (and therefore
// already absent from the tree), so every remaining spline counts as a
// distinct neighbor.
func (e *Engine) localEnergy(bs spline.BorrowedSpline) energy.Energy {
	total := energy.SplineEnergy(bs, e.params.SegmentLen, e.params.Precision, e.params.Coefficients, e.fields, e.boundary)
	neighborhood := bs.Bounds().AddRadius(e.params.InteractionRadius)
	for _, nb := range e.tree.Query(neighborhood) {
		total.Interaction += energy.InteractionEnergy(bs, e.storage.GetSpline(nb), e.params.InteractionRadius, e.params.Coefficients.Interaction, e.params.Precision)
	}
	return total
}

// AuditEnergy computes the global "audit" energy of the whole arena:
// every spline's own energy, plus every unordered pair's interaction
// counted exactly once (by comparing handle StorageIndex order, rather than
// the full-count rule localEnergy uses during a proposal).
func (e *Engine) AuditEnergy() energy.Energy {
	total := energy.Zero()
	all := e.tree.Query(e.tree.Bounds())
	for _, h := range all {
		bs := e.storage.GetSpline(h)
		total = total.Add(energy.SplineEnergy(bs, e.params.SegmentLen, e.params.Precision, e.params.Coefficients, e.fields, e.boundary))

		// Each unordered pair {h, nb} is counted exactly once, from the
		// lower-indexed handle's side.
		neighborhood := h.Bounds().AddRadius(e.params.InteractionRadius)
		for _, nb := range e.tree.Query(neighborhood) {
			if !h.Less(nb) {
				continue
			}
			total.Interaction += energy.InteractionEnergy(bs, e.storage.GetSpline(nb), e.params.InteractionRadius, e.params.Coefficients.Interaction, e.params.Precision)
		}
	}
	return total
}

// step pops one random spline, proposes a random kernel's perturbation, and
// applies the Metropolis criterion at temperature temp.
func (e *Engine) step(temp float32) {
	h, ok := e.tree.PopRandom(e.src)
	if !ok {
		return
	}
	sp := e.storage.Read(h)

	e0 := e.localEnergy(sp.Borrow())
	kernel := e.src.Intn(numKernels)
	applyKernel(sp, kernel, e.scales[kernel], e.src)
	e1 := e.localEnergy(sp.Borrow())

	delta := e1.Sum() - e0.Sum()
	var o outcome
	switch {
	case delta < 0:
		o = outcomeLower
	case e.src.Float32() < math.Exp(-delta/temp):
		o = outcomeAccepted
	default:
		o = outcomeRejected
	}

	var newHandle storage.SplineHandle
	var err error
	if o == outcomeRejected {
		newHandle, err = e.storage.Revalidate(sp)
	} else {
		newHandle, err = e.storage.Overwrite(sp)
	}
	if err != nil {
		panic("mc: storage protocol violated: " + err.Error())
	}

	bad := !e1.IsFinite()
	e.badEnergy.Set(newHandle, bad)
	if bad && e.log != nil {
		e.log.Warn("non-finite spline energy", "kernel", kernel, "outcome", o.String())
	}

	e.tree.Insert(newHandle)
	e.tallys[kernel].record(o)
}

// sweep runs SplineCount steps at temp, then folds the sweep's per-kernel
// tallies into the adaptive scales and resets them.
func (e *Engine) sweep(temp float32) {
	n := e.storage.Len()
	for i := 0; i < n; i++ {
		e.step(temp)
	}
	for k := range e.scales {
		e.scales[k] = nextScale(e.scales[k], e.tallys[k])
	}
	if e.log != nil && e.params.EmitDiagnostics {
		e.logSweep(temp)
	}
	e.tallys = [numKernels]tally{}
}

func (e *Engine) logSweep(temp float32) {
	var lower, accepted, rejected, total int
	for _, t := range e.tallys {
		lower += t.Lower
		accepted += t.Accepted
		rejected += t.Rejected
		total += t.total()
	}
	var lowerRate, acceptRate, rejectRate float32
	if total > 0 {
		lowerRate = float32(lower) / float32(total)
		acceptRate = float32(accepted) / float32(total)
		rejectRate = float32(rejected) / float32(total)
	}
	e.log.Info("sweep",
		"temp", temp,
		"lower_rate", lowerRate,
		"accept_rate", acceptRate,
		"reject_rate", rejectRate,
		"energy", e.AuditEnergy().Sum(),
	)
}

// trySnapshot clones the arena and offers it on the snapshot channel
// without blocking. A nil channel is a no-op. A full or closed channel is
// reported as a RunError, per the hand-off being "non-blocking from the
// engine's perspective."
func (e *Engine) trySnapshot() (err error) {
	if e.snapshot == nil {
		return nil
	}
	clone := e.storage.Clone()
	defer func() {
		if recover() != nil {
			err = &RunError{Reason: "snapshot channel closed"}
		}
	}()
	select {
	case e.snapshot <- clone:
		return nil
	default:
		return &RunError{Reason: "snapshot channel not ready to receive"}
	}
}

// Run seeds the population, verifies the seeded arrangement has finite
// energy, then anneals it through ModelParameters.Temperatures(), sending
// one snapshot hand-off per sweep and polling the cancel flag once per
// temperature step.
func (e *Engine) Run() error {
	if err := e.seed(); err != nil {
		return err
	}

	initial := e.AuditEnergy()
	if !initial.IsFinite() {
		return &InvariantError{Reason: "initial energy needs to be finite"}
	}

	for _, temp := range e.params.Temperatures() {
		for i := 0; i < e.params.SweepsPerTemp; i++ {
			if e.storage.Len() != e.params.SplineCount || e.tree.Len() != e.params.SplineCount {
				return &InvariantError{Reason: "spline count drifted from spline_count during run"}
			}
			e.sweep(temp)
			if err := e.trySnapshot(); err != nil {
				return err
			}
		}
		if e.cancel != nil && e.cancel.Load() {
			_ = e.trySnapshot()
			return &RunError{Reason: "interrupted"}
		}
	}
	return nil
}
