// Package plot renders diagnostic line charts (total energy, per-term
// divergence from the starting sweep, and per-outcome rates) straight to
// raster PNGs. No charting library appears anywhere in the retrieval pack
// for this domain, so these renderers draw directly onto image.RGBA and
// label axes with golang.org/x/image/font/basicfont.
package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	chartWidth  = 1012
	chartHeight = 756
	marginLeft  = 60
	marginRight = 20
	marginTop   = 40
	marginBot   = 40
)

var (
	white = color.White
	black = color.Black
)

// palette mirrors the six energy terms' drawing order: strain, bending,
// potential, field, interaction, boundary.
var palette = []color.RGBA{
	{R: 0xd6, G: 0x28, B: 0x28, A: 0xff},
	{R: 0x28, G: 0x7d, B: 0xd6, A: 0xff},
	{R: 0x28, G: 0xa7, B: 0x45, A: 0xff},
	{R: 0xd6, G: 0x9b, B: 0x28, A: 0xff},
	{R: 0x8a, G: 0x28, B: 0xd6, A: 0xff},
	{R: 0x28, G: 0xc7, B: 0xc2, A: 0xff},
}

func newCanvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func plotArea() (x0, y0, x1, y1 int) {
	return marginLeft, marginTop, chartWidth - marginRight, chartHeight - marginBot
}

// project maps a data point (i in [0,n), v in [lo,hi]) to pixel
// coordinates within the plot area.
func project(i, n int, v, lo, hi float64) (x, y int) {
	x0, y0, x1, y1 := plotArea()
	if n <= 1 {
		n = 2
	}
	fx := float64(i) / float64(n-1)
	x = x0 + int(fx*float64(x1-x0))
	fy := 0.0
	if hi > lo {
		fy = (v - lo) / (hi - lo)
	}
	y = y1 - int(fy*float64(y1-y0))
	return x, y
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawAxes(img *image.RGBA, xLabel, yLabel string) {
	x0, y0, x1, y1 := plotArea()
	drawLine(img, x0, y0, x0, y1, black)
	drawLine(img, x0, y1, x1, y1, black)
	drawLabel(img, x0, y1+20, xLabel)
	drawLabel(img, 5, y0, yLabel)
}

func drawLabel(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func minMax(values []float32) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		f := float64(v)
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// SimpleLine draws a single series against its sweep index.
func SimpleLine(values []float32, caption string, w io.Writer) error {
	img := newCanvas()
	if len(values) > 1 {
		lo, hi := minMax(values)
		for i := 1; i < len(values); i++ {
			x0, y0 := project(i-1, len(values), float64(values[i-1]), lo, hi)
			x1, y1 := project(i, len(values), float64(values[i]), lo, hi)
			drawLine(img, x0, y0, x1, y1, black)
		}
	}
	drawAxes(img, "sweep", "energy")
	drawLabel(img, marginLeft, marginTop-10, caption)
	return png.Encode(w, img)
}

// DivergentChart draws each of the six energy-term series, offset so that
// it starts at zero relative to its own first sweep, one color per term.
func DivergentChart(terms [][6]float32, names [6]string, caption string, w io.Writer) error {
	img := newCanvas()
	if len(terms) > 1 {
		first := terms[0]
		for k := 0; k < 6; k++ {
			series := make([]float32, len(terms))
			for i, t := range terms {
				series[i] = t[k] - first[k]
			}
			lo, hi := minMax(series)
			for i := 1; i < len(series); i++ {
				x0, y0 := project(i-1, len(series), float64(series[i-1]), lo, hi)
				x1, y1 := project(i, len(series), float64(series[i]), lo, hi)
				drawLine(img, x0, y0, x1, y1, palette[k%len(palette)])
			}
			drawLabel(img, chartWidth-marginRight-100, marginTop+13*k, names[k])
		}
	}
	drawAxes(img, "sweep", "energy delta")
	drawLabel(img, marginLeft, marginTop-10, caption)
	return png.Encode(w, img)
}

// RatePlot draws the lower/accepted/rejected rate series, all sharing the
// fixed [0,1] range a rate is defined over.
func RatePlot(lower, accepted, rejected []float32, caption string, w io.Writer) error {
	img := newCanvas()
	series := [][]float32{lower, accepted, rejected}
	names := [3]string{"lower", "accepted", "rejected"}
	n := len(lower)
	for k, s := range series {
		for i := 1; i < len(s) && i < n; i++ {
			x0, y0 := project(i-1, n, float64(s[i-1]), 0, 1)
			x1, y1 := project(i, n, float64(s[i]), 0, 1)
			drawLine(img, x0, y0, x1, y1, palette[k%len(palette)])
		}
		drawLabel(img, chartWidth-marginRight-100, marginTop+13*k, names[k])
	}
	drawAxes(img, "sweep", "rate")
	drawLabel(img, marginLeft, marginTop-10, caption)
	return png.Encode(w, img)
}
