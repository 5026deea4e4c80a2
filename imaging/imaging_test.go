package imaging_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/imaging"
)

func checkerboard(n int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestLoadProducesCorrectlyShapedSamplers(t *testing.T) {
	src := checkerboard(16)
	bounds := geom.NewRect(0, 1, 0, 1)

	potential, field := imaging.Load(src, 8, 8, bounds)
	require.NotNil(t, potential)
	require.NotNil(t, field)
	assert.Equal(t, 8, potential.Width())
	assert.Equal(t, 8, potential.Height())
	assert.Equal(t, 8, field.Width())
	assert.Equal(t, 8, field.Height())
}

func TestLoadPotentialWithinUnitRange(t *testing.T) {
	src := checkerboard(16)
	bounds := geom.NewRect(0, 1, 0, 1)

	potential, _ := imaging.Load(src, 8, 8, bounds)
	for row := 0; row < potential.Height(); row++ {
		for col := 0; col < potential.Width(); col++ {
			p := bounds.FromBoxCoords(geom.Vector{
				X: (float32(col) + 0.5) / float32(potential.Width()),
				Y: (float32(row) + 0.5) / float32(potential.Height()),
			})
			v, ok := potential.Sample(p)
			require.True(t, ok)
			assert.GreaterOrEqual(t, v, float32(0))
			assert.LessOrEqual(t, v, float32(1))
		}
	}
}

func TestLoadFieldIsFiniteEverywhere(t *testing.T) {
	src := checkerboard(16)
	bounds := geom.NewRect(0, 1, 0, 1)

	_, field := imaging.Load(src, 8, 8, bounds)
	for row := 0; row < field.Height(); row++ {
		for col := 0; col < field.Width(); col++ {
			p := bounds.FromBoxCoords(geom.Vector{
				X: (float32(col) + 0.5) / float32(field.Width()),
				Y: (float32(row) + 0.5) / float32(field.Height()),
			})
			v, ok := field.Sample(p)
			require.True(t, ok)
			assert.True(t, v.IsFinite())
		}
	}
}

func TestLoadFlatImageHasZeroGradient(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	bounds := geom.NewRect(0, 1, 0, 1)

	_, field := imaging.Load(img, 8, 8, bounds)
	p := bounds.FromBoxCoords(geom.Vector{X: 0.5, Y: 0.5})
	v, ok := field.Sample(p)
	require.True(t, ok)
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 0, v.Y, 1e-6)
}
