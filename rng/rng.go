// Package rng defines the random-number-source contract the rest of this
// module depends on, plus the derived sampling helpers built on top of it.
// No concrete generator is shipped: a *math/rand.Rand satisfies Source
// directly, matching the teacher's own test-file usage of math/rand.
package rng

import (
	math "github.com/chewxy/math32"

	"github.com/max-kay/linewise/geom"
)

// Source is the minimal random stream the engine needs: uniform floats in
// [0,1) and uniform integers in [0,n). *math/rand.Rand implements this
// directly.
type Source interface {
	Float32() float32
	Intn(n int) int
}

// Uniform returns a uniform sample in [lo, hi).
func Uniform(src Source, lo, hi float32) float32 {
	return lo + src.Float32()*(hi-lo)
}

// SignedUniform returns a uniform sample in [-a, a).
func SignedUniform(src Source, a float32) float32 {
	return Uniform(src, -a, a)
}

// Gaussian2 draws a 2D vector whose components are each approximately
// standard-normal, via a Box-Muller pair followed by a uniform choice of
// sign/axis-swap among {(c,s),(-c,-s),(s,c),(-s,-c)} so that both output
// components draw from the full Box-Muller pair rather than consistently
// favoring one of the two generated Gaussians.
func Gaussian2(src Source) geom.Vector {
	u1 := src.Float32()
	for u1 <= 0 {
		u1 = src.Float32()
	}
	u2 := src.Float32()
	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	s, c := math.Sincos(theta)
	z0, z1 := r*c, r*s
	switch src.Intn(4) {
	case 0:
		return geom.Vector{X: z0, Y: z1}
	case 1:
		return geom.Vector{X: -z0, Y: -z1}
	case 2:
		return geom.Vector{X: z1, Y: z0}
	default:
		return geom.Vector{X: -z1, Y: -z0}
	}
}

// UnitVector draws a uniformly-oriented unit vector by normalizing a
// Gaussian2 draw.
func UnitVector(src Source) geom.Vector {
	return Gaussian2(src).Unit()
}
