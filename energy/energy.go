// Package energy implements the composite energy functional the
// Monte-Carlo engine minimizes: six additive per-spline terms plus a
// pairwise inter-spline interaction potential.
package energy

import math "github.com/chewxy/math32"

// Names labels the six terms in Energy's field order, for diagnostics.
var Names = [6]string{"strain", "bending", "potential", "field", "interaction", "boundary"}

// Energy is the fixed-arity additive energy record: six named terms
// addressed directly by field rather than through a map or slice.
type Energy struct {
	Strain      float32
	Bending     float32
	Potential   float32
	Field       float32
	Interaction float32
	Boundary    float32
}

// Zero is the additive identity.
func Zero() Energy { return Energy{} }

// Add returns the componentwise sum of e and o.
func (e Energy) Add(o Energy) Energy {
	return Energy{
		Strain:      e.Strain + o.Strain,
		Bending:     e.Bending + o.Bending,
		Potential:   e.Potential + o.Potential,
		Field:       e.Field + o.Field,
		Interaction: e.Interaction + o.Interaction,
		Boundary:    e.Boundary + o.Boundary,
	}
}

// Sum returns the total scalar energy, the sum of all six terms.
func (e Energy) Sum() float32 {
	return e.Strain + e.Bending + e.Potential + e.Field + e.Interaction + e.Boundary
}

// HalfInteraction returns e with its interaction term halved, for contexts
// that otherwise double-count a symmetric pairwise term.
func (e Energy) HalfInteraction() Energy {
	o := e
	o.Interaction /= 2
	return o
}

// AsArray returns e's six terms in Names order.
func (e Energy) AsArray() [6]float32 {
	return [6]float32{e.Strain, e.Bending, e.Potential, e.Field, e.Interaction, e.Boundary}
}

// IsFinite reports whether every term of e is finite.
func (e Energy) IsFinite() bool {
	for _, v := range e.AsArray() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Coefficients weights the six energy terms; one scalar per Energy field.
type Coefficients struct {
	Strain      float32
	Bending     float32
	Potential   float32
	Field       float32
	Interaction float32
	Boundary    float32
}
