// Package imaging turns an image.Image into the two samplers the
// Monte-Carlo engine couples splines to: a scalar potential from
// grayscale luminance and a vector field from its Sobel gradient. It does
// not depend on package mc; the engine only ever sees the resulting
// sampler.Sampler2D values.
package imaging

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
)

// gradientScale normalizes the Sobel kernel response for an 8-bit source:
// each kernel's absolute weights sum to 8 (three neighbors weighted 1, 2, 1
// on either side), so dividing by 8 keeps the gradient in roughly the same range as
// the source luminance.
const gradientScale = 1.0 / 8.0

var sobelX = [3][3]float32{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float32{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// Load resamples src down to width x height with golang.org/x/image/draw
// and returns the potential sampler (grayscale luminance in [0,1]) and
// field sampler (Sobel gradient of that luminance), both covering bounds.
func Load(src image.Image, width, height int, bounds geom.Rect) (potential *sampler.Sampler2D[float32], field *sampler.Sampler2D[geom.Vector]) {
	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(gray, gray.Bounds(), src, src.Bounds(), draw.Over, nil)

	luma := make([]float32, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			luma[row*width+col] = float32(gray.GrayAt(col, row).Y) / 255
		}
	}

	grad := make([]geom.Vector, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			grad[row*width+col] = sobelAt(luma, width, height, col, row)
		}
	}

	potential = sampler.New(luma, width, height, bounds)
	field = sampler.New(grad, width, height, bounds)
	return potential, field
}

// sobelAt evaluates the Sobel gradient at (col,row), clamping
// out-of-range neighbors to the nearest edge pixel.
func sobelAt(luma []float32, width, height, col, row int) geom.Vector {
	var gx, gy float32
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c := clamp(col+dx, width)
			r := clamp(row+dy, height)
			v := luma[r*width+c]
			gx += sobelX[dy+1][dx+1] * v
			gy += sobelY[dy+1][dx+1] * v
		}
	}
	return geom.Vector{X: gx * gradientScale, Y: gy * gradientScale}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
