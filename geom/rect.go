package geom

import (
	"fmt"

	math "github.com/chewxy/math32"
)

// Bounded is implemented by anything that can report its own bounding Rect.
// quadtree.Quadtree is generic over Bounded.
type Bounded interface {
	Bounds() Rect
}

// Rect is an axis-aligned rectangle, always in canonical form: XMin<=XMax
// and YMin<=YMax.
type Rect struct {
	XMin, XMax, YMin, YMax float32
}

// NewRect builds a Rect from its bounds. NewRect panics if the bounds are
// not canonical, mirroring the teacher's own panic-on-invalid-construction
// style for math primitives (e.g. ms2.NewBox).
func NewRect(xMin, xMax, yMin, yMax float32) Rect {
	if xMin > xMax || yMin > yMax {
		panic("geom: invalid Rect bounds")
	}
	return Rect{xMin, xMax, yMin, yMax}
}

// FromPoints returns the smallest Rect containing every point in pts.
// FromPoints panics if pts is empty.
func FromPoints(pts []Vector) Rect {
	if len(pts) == 0 {
		panic("geom: FromPoints requires at least one point")
	}
	r := Rect{pts[0].X, pts[0].X, pts[0].Y, pts[0].Y}
	for _, p := range pts[1:] {
		r = r.IncludePoint(p)
	}
	return r
}

// Width returns the extent of r along X.
func (r Rect) Width() float32 { return r.XMax - r.XMin }

// Height returns the extent of r along Y.
func (r Rect) Height() float32 { return r.YMax - r.YMin }

// AspectRatio returns Width/Height.
func (r Rect) AspectRatio() float32 { return r.Width() / r.Height() }

// Center returns the midpoint of r.
func (r Rect) Center() Vector {
	return Vector{(r.XMin + r.XMax) / 2, (r.YMin + r.YMax) / 2}
}

// IncludePoint returns the smallest Rect containing both r and p.
func (r Rect) IncludePoint(p Vector) Rect {
	return Rect{
		XMin: math.Min(r.XMin, p.X),
		XMax: math.Max(r.XMax, p.X),
		YMin: math.Min(r.YMin, p.Y),
		YMax: math.Max(r.YMax, p.Y),
	}
}

// Combine returns the smallest Rect containing both r and o.
func (r Rect) Combine(o Rect) Rect {
	return Rect{
		XMin: math.Min(r.XMin, o.XMin),
		XMax: math.Max(r.XMax, o.XMax),
		YMin: math.Min(r.YMin, o.YMin),
		YMax: math.Max(r.YMax, o.YMax),
	}
}

// Intersects reports whether r and o share any area, touching edges
// counting as intersecting.
func (r Rect) Intersects(o Rect) bool {
	return r.XMin <= o.XMax && r.XMax >= o.XMin &&
		r.YMin <= o.YMax && r.YMax >= o.YMin
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return r.XMin <= o.XMin && r.XMax >= o.XMax &&
		r.YMin <= o.YMin && r.YMax >= o.YMax
}

// ContainsPoint reports whether p lies within r, inclusive of the boundary.
func (r Rect) ContainsPoint(p Vector) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Vector) Rect {
	return Rect{r.XMin + d.X, r.XMax + d.X, r.YMin + d.Y, r.YMax + d.Y}
}

// AddRadius returns r grown (or, for negative radius, shrunk) by radius on
// every side. The result is not re-canonicalized: a radius large enough to
// invert an axis produces XMin>XMax or YMin>YMax, matching the original's
// behavior where callers are expected to only ever shrink by a radius that
// leaves the rect valid for their use (see mc.Engine's seeding boundary
// inflation).
func (r Rect) AddRadius(radius float32) Rect {
	return Rect{
		XMin: r.XMin - radius,
		XMax: r.XMax + radius,
		YMin: r.YMin - radius,
		YMax: r.YMax + radius,
	}
}

// ToBoxCoords maps p from r's coordinate space into normalized [0,1]x[0,1]
// box coordinates.
func (r Rect) ToBoxCoords(p Vector) Vector {
	return Vector{
		X: (p.X - r.XMin) / r.Width(),
		Y: (p.Y - r.YMin) / r.Height(),
	}
}

// FromBoxCoords maps normalized [0,1]x[0,1] box coordinates b into r's
// coordinate space.
func (r Rect) FromBoxCoords(b Vector) Vector {
	return Vector{
		X: r.XMin + b.X*r.Width(),
		Y: r.YMin + b.Y*r.Height(),
	}
}

// SignedDistance returns the signed distance from p to r: negative while p
// is inside r, zero on the boundary, positive outside. It is the max of the
// per-axis distance to the nearest edge, matching a Chebyshev-style
// exterior distance.
func (r Rect) SignedDistance(p Vector) float32 {
	xDist := math.Max(r.XMin-p.X, p.X-r.XMax)
	yDist := math.Max(r.YMin-p.Y, p.Y-r.YMax)
	return math.Max(xDist, yDist)
}

// Quadrants splits r into four equal quadrants in the fixed order:
//
//	[0] = (XMin..mid.X, YMin..mid.Y)   lower-left
//	[1] = (XMin..mid.X, mid.Y..YMax)   upper-left
//	[2] = (mid.X..XMax, YMin..mid.Y)   lower-right
//	[3] = (mid.X..XMax, mid.Y..YMax)   upper-right
//
// This order is load-bearing: the quadtree package's node type relies on it
// to index its children array.
func (r Rect) Quadrants() [4]Rect {
	c := r.Center()
	return [4]Rect{
		{r.XMin, c.X, r.YMin, c.Y},
		{r.XMin, c.X, c.Y, r.YMax},
		{c.X, r.XMax, r.YMin, c.Y},
		{c.X, r.XMax, c.Y, r.YMax},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
}
