package mc

import (
	math "github.com/chewxy/math32"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/rng"
	"github.com/max-kay/linewise/spline"
)

// The six proposal kernels, dispatched by index rather than by dynamic
// dispatch; the adaptive-scale table is parallel to this index space.
const (
	kernelTranslate = iota
	kernelRotate
	kernelRotateSegment
	kernelScaleTangents
	kernelScaleTangentsRandom
	kernelStretch
	numKernels
)

// applyKernel mutates sp in place according to kernel, using scale as that
// kernel's current adaptive step size.
func applyKernel(sp *spline.Spline, kernel int, scale float32, src rng.Source) {
	switch kernel {
	case kernelTranslate:
		d := rng.Gaussian2(src)
		sp.Translate(geom.Scale(scale, d))
	case kernelRotate:
		theta := rng.SignedUniform(src, scale/2) * 2 * math.Pi
		sp.Rotate(theta)
	case kernelRotateSegment:
		i := src.Intn(sp.NumSegments())
		theta := rng.SignedUniform(src, scale/2) * 2 * math.Pi
		sp.RotateSegment(i, theta)
	case kernelScaleTangents:
		f := 1 - rng.SignedUniform(src, scale)
		sp.ScaleTangents(f)
	case kernelScaleTangentsRandom:
		sp.ScaleTangentsRandom(scale, src)
	case kernelStretch:
		f := 1 - rng.SignedUniform(src, scale)
		sp.Stretch(f)
	}
}

// outcome classifies a Metropolis decision.
type outcome int

const (
	outcomeLower outcome = iota
	outcomeAccepted
	outcomeRejected
)

func (o outcome) String() string {
	switch o {
	case outcomeLower:
		return "lower"
	case outcomeAccepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// tally counts a sweep's outcomes for one kernel.
type tally struct {
	Lower, Accepted, Rejected int
}

func (t *tally) record(o outcome) {
	switch o {
	case outcomeLower:
		t.Lower++
	case outcomeAccepted:
		t.Accepted++
	default:
		t.Rejected++
	}
}

func (t tally) total() int { return t.Lower + t.Accepted + t.Rejected }

const (
	minScale        = 1e-4
	maxScale        = 1.0
	scaleStep       = 1.4
	lowRejectCutoff = 0.5
	hiRejectCutoff  = 0.6
)

// nextScale applies the adaptive-scale update rule: after a sweep, if the
// kernel's rejection fraction is below lowRejectCutoff the scale grows by
// scaleStep (clamped to maxScale); if above hiRejectCutoff it shrinks by
// the same factor (clamped to minScale); otherwise it is unchanged.
func nextScale(current float32, t tally) float32 {
	total := t.total()
	if total == 0 {
		return current
	}
	rejectFrac := float32(t.Rejected) / float32(total)
	switch {
	case rejectFrac < lowRejectCutoff:
		return math.Min(current*scaleStep, maxScale)
	case rejectFrac > hiRejectCutoff:
		return math.Max(current/scaleStep, minScale)
	default:
		return current
	}
}
