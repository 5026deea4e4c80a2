// Package geom implements the 2D vector and axis-aligned rectangle algebra
// shared by the spline, storage, quadtree and sampler packages.
package geom

import (
	"fmt"

	math "github.com/chewxy/math32"
)

// Vector is a 2D float32 vector. It is used both as a point and as a
// displacement, matching the dual role anchors/tangents play in a Spline.
type Vector struct {
	X, Y float32
}

// Zero is the additive identity.
var Zero = Vector{}

// Add returns a+b.
func Add(a, b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y}
}

// Sub returns a-b.
func Sub(a, b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y}
}

// Scale returns v scaled by k.
func Scale(k float32, v Vector) Vector {
	return Vector{k * v.X, k * v.Y}
}

// Neg returns -v.
func Neg(v Vector) Vector {
	return Vector{-v.X, -v.Y}
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the Z component of the 3D cross product of a and b treated
// as vectors in the XY plane.
func Cross(a, b Vector) float32 {
	return a.X*b.Y - a.Y*b.X
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float32 {
	return math.Sqrt(v.Norm2())
}

// Norm2 returns the squared Euclidean length of v.
func (v Vector) Norm2() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector) float32 {
	return Sub(a, b).Norm()
}

// Unit returns v scaled to unit length. Unit returns the zero vector if v is
// the zero vector.
func (v Vector) Unit() Vector {
	n := v.Norm()
	if n == 0 {
		return Vector{}
	}
	return Scale(1/n, v)
}

// Rotate returns v rotated by angle radians counterclockwise about the
// origin.
func Rotate(v Vector, angle float32) Vector {
	s, c := math.Sincos(angle)
	return Vector{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
	}
}

// RotateAbout returns v rotated by angle radians counterclockwise about
// pivot.
func RotateAbout(v, pivot Vector, angle float32) Vector {
	return Add(pivot, Rotate(Sub(v, pivot), angle))
}

// Interp linearly interpolates between a and b, where t=0 returns a and t=1
// returns b.
func Interp(a, b Vector, t float32) Vector {
	return Vector{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// MulElem multiplies a and b component-wise.
func MulElem(a, b Vector) Vector {
	return Vector{a.X * b.X, a.Y * b.Y}
}

// MinElem returns the component-wise minimum of a and b.
func MinElem(a, b Vector) Vector {
	return Vector{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// MaxElem returns the component-wise maximum of a and b.
func MaxElem(a, b Vector) Vector {
	return Vector{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// IsFinite reports whether both components of v are finite.
func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Array returns v as a [2]float32 in X,Y order.
func (v Vector) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
