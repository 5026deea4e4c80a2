package mc

import (
	math "github.com/chewxy/math32"

	"github.com/max-kay/linewise/energy"
)

// ModelParameters configures a run: population size and shape, the energy
// coefficients, sampling precision, and the temperature schedule.
type ModelParameters struct {
	SplineCount      int
	SegmentLen       float32
	MaxSegments      int
	InteractionRadius float32
	Coefficients     energy.Coefficients
	Precision        int

	THi, TLo     float32
	TempSteps    int
	SweepsPerTemp int

	// Diagnostics toggles; nil/false values simply skip that output.
	EmitDiagnostics bool
}

// Validate checks ModelParameters for the configuration errors named in
// the error-handling design: non-positive counts/dimensions and an
// inverted temperature range are all rejected before a run starts.
func (p ModelParameters) Validate() error {
	switch {
	case p.SplineCount <= 0:
		return &ConfigError{Reason: "spline_count must be positive"}
	case p.SegmentLen <= 0:
		return &ConfigError{Reason: "segment_len must be positive"}
	case p.MaxSegments <= 0:
		return &ConfigError{Reason: "max_segments must be positive"}
	case p.InteractionRadius <= 0:
		return &ConfigError{Reason: "interaction_radius must be positive"}
	case p.Precision <= 0:
		return &ConfigError{Reason: "precision must be positive"}
	case p.TempSteps <= 0:
		return &ConfigError{Reason: "temp_steps must be positive"}
	case p.SweepsPerTemp <= 0:
		return &ConfigError{Reason: "sweeps_per_temp must be positive"}
	case p.THi <= 0 || p.TLo <= 0:
		return &ConfigError{Reason: "T_hi and T_lo must be positive"}
	case p.TempSteps > 1 && p.TLo > p.THi:
		return &ConfigError{Reason: "T_lo must not exceed T_hi"}
	}
	return nil
}

// Temperatures returns the geometric temperature schedule: a single
// temperature T_hi if TempSteps==1, else T_i = T_hi*(T_lo/T_hi)^(i/(n-1))
// for i=0..TempSteps-1.
func (p ModelParameters) Temperatures() []float32 {
	if p.TempSteps == 1 {
		return []float32{p.THi}
	}
	out := make([]float32, p.TempSteps)
	ratio := p.TLo / p.THi
	last := float32(p.TempSteps - 1)
	for i := 0; i < p.TempSteps; i++ {
		exp := float32(i) / last
		out[i] = p.THi * math.Pow(ratio, exp)
	}
	return out
}
