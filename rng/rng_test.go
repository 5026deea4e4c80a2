package rng_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/max-kay/linewise/rng"
)

func TestUniformRange(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := rng.Uniform(src, -2, 3)
		assert.GreaterOrEqual(t, v, float32(-2))
		assert.Less(t, v, float32(3))
	}
}

func TestSignedUniformSymmetric(t *testing.T) {
	src := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		v := rng.SignedUniform(src, 0.5)
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}
}

func TestGaussian2IsFinite(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	var sum float32
	const n = 5000
	for i := 0; i < n; i++ {
		v := rng.Gaussian2(src)
		assert.True(t, v.IsFinite())
		sum += v.X + v.Y
	}
	// Mean over many draws should sit near zero for a standard-normal source.
	assert.InDelta(t, 0, sum/float32(2*n), 0.1)
}

func TestUnitVectorIsNormalized(t *testing.T) {
	src := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		v := rng.UnitVector(src)
		assert.InDelta(t, 1, v.Norm(), 1e-4)
	}
}
