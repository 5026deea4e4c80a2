package energy

import (
	math "github.com/chewxy/math32"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
	"github.com/max-kay/linewise/spline"
)

// Fields bundles the two environmental samplers a run couples splines to.
// Either may be nil, in which case the corresponding term contributes
// nothing.
type Fields struct {
	Potential *sampler.Sampler2D[float32]
	Field     *sampler.Sampler2D[geom.Vector]
}

// SegmentEnergy evaluates a single segment's intra-curve energy terms
// (strain, bending, potential, field, boundary) by sampling it at
// precision points s_k=k/precision, k=0..precision-1.
func SegmentEnergy(seg spline.Segment, segmentLen float32, precision int, coef Coefficients, fields Fields, boundary geom.Rect) Energy {
	n := precision
	samples := seg.AllIter(n)

	var lengthSum, bendSum, potSum, fieldSum, boundarySum float32
	infiniteBoundary := false
	for _, s := range samples {
		dnorm := s.Deriv.Norm()
		lengthSum += dnorm

		if dnorm != 0 {
			cross := s.Deriv.X*s.Deriv2.Y - s.Deriv2.X*s.Deriv.Y
			bendSum += (cross * cross) / math.Pow(dnorm, 5)
		}

		if fields.Potential != nil {
			if v, ok := fields.Potential.Sample(s.Pos); ok {
				potSum += v * dnorm
			}
		}
		if fields.Field != nil {
			if v, ok := fields.Field.Sample(s.Pos); ok {
				fieldSum += math.Abs(geom.Dot(s.Deriv, v))
			}
		}

		sd := boundary.SignedDistance(s.Pos)
		if sd > 0 {
			infiniteBoundary = true
		} else {
			boundarySum += 1 / (sd * sd)
		}
	}

	nf := float32(n)
	lengthHat := lengthSum / nf
	relErr := (segmentLen - lengthHat) / segmentLen

	var boundaryTerm float32
	if infiniteBoundary {
		boundaryTerm = math.Inf(1)
	} else {
		boundaryTerm = coef.Boundary * boundarySum / nf
	}

	return Energy{
		Strain:    coef.Strain * lengthHat * relErr * relErr / 2,
		Bending:   coef.Bending * bendSum / nf,
		Potential: coef.Potential * potSum / nf,
		Field:     -coef.Field * fieldSum / nf,
		Boundary:  boundaryTerm,
	}
}

// SplineEnergy sums SegmentEnergy over every segment of sp; it carries no
// interaction term (interaction is evaluated separately, against specific
// neighbors).
func SplineEnergy(sp spline.BorrowedSpline, segmentLen float32, precision int, coef Coefficients, fields Fields, boundary geom.Rect) Energy {
	total := Zero()
	for _, seg := range sp.Segments() {
		total = total.Add(SegmentEnergy(seg, segmentLen, precision, coef, fields, boundary))
	}
	return total
}

// sixthRootTwo is 2^(1/6), the factor relating the interaction radius r to
// the Lennard-Jones sigma parameter sigma=r/2^(1/6) that places the
// potential's unshifted minimum exactly at d=r.
var sixthRootTwo = math.Pow(2, 1.0/6.0)

// InteractionPotential evaluates the truncated Lennard-Jones well U(d):
// zero for d>=r, and (sigma/d)^12-(sigma/d)^6 for d<r, where
// sigma=r/2^(1/6) is chosen so the well's natural minimum sits exactly at
// the cutoff r, giving U(r⁻)=-1/4 with no separate additive shift needed.
func InteractionPotential(d, r float32) float32 {
	if d >= r {
		return 0
	}
	sigma := r / sixthRootTwo
	ratio := sigma / d
	r6 := ratio * ratio * ratio * ratio * ratio * ratio
	r12 := r6 * r6
	return r12 - r6
}

// InteractionEnergy evaluates the double Riemann sum interaction energy
// between splines a and b at the given interaction radius r and
// precision, weighted by coefficient kInt:
//
//	I(A,B) = kInt * (1/n^2) * sum_i ||b'(s_i)|| * sum_j U(|a(s_j)-b(s_i)|) * ||a'(s_j)||
//
// summed over every pair of segments (one from a, one from b).
func InteractionEnergy(a, b spline.BorrowedSpline, r, kInt float32, precision int) float32 {
	n := precision
	var total float32
	for _, sa := range a.Segments() {
		samplesA := sa.AllIter(n)
		for _, sb := range b.Segments() {
			samplesB := sb.AllIter(n)
			for _, si := range samplesB {
				var innerSum float32
				for _, sj := range samplesA {
					d := geom.Distance(sj.Pos, si.Pos)
					innerSum += InteractionPotential(d, r) * sj.Deriv.Norm()
				}
				total += si.Deriv.Norm() * innerSum
			}
		}
	}
	nf := float32(n)
	return kInt * total / (nf * nf)
}
