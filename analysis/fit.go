package analysis

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// StandardGravity in m/s^2
const StandardGravity = 9.80665

var (
	ErrTooFewSamples = errors.New("need at least two tracked samples")
	ErrNoMotion      = errors.New("terminal velocity is zero")
)

// Fit is a least-squares line p(t) = Offset + Velocity*t
type Fit struct {
	Velocity float64
	Offset   float64
	RSquared float64
	Samples  int
}

// FitTerminalVelocity fits position against time over the valid samples only.
// The slope is the terminal velocity in position units per second.
func FitTerminalVelocity(t, p []float64, valid []bool) (Fit, error) {
	xs := make([]float64, 0, len(t))
	ys := make([]float64, 0, len(t))
	for j := range t {
		if j < len(valid) && valid[j] {
			xs = append(xs, t[j])
			ys = append(ys, p[j])
		}
	}
	if len(xs) < 2 {
		return Fit{}, errors.Wrapf(ErrTooFewSamples, "got %d", len(xs))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fit := Fit{Velocity: beta, Offset: alpha, Samples: len(xs)}
	if stat.Variance(ys, nil) > 0 {
		fit.RSquared = stat.RSquared(xs, ys, nil, alpha, beta)
	} else {
		fit.RSquared = 1
	}
	return fit, nil
}

// Stokes is a drag estimate for a sphere settling at terminal velocity
type Stokes struct {
	// DragForce balances the droplet weight, in newtons
	DragForce float64
	// Viscosity is the fluid viscosity implied by Stokes' law, in Pa*s
	Viscosity float64
}

// StokesEstimate balances the weight of a sphere of the given diameter
// (microns) and density (kg/m^3) against Stokes drag 3*pi*mu*d*v at the
// measured velocity (microns/s).
func StokesEstimate(diameter, density, velocity float64) (Stokes, error) {
	if !(diameter > 0) || !(density > 0) {
		return Stokes{}, errors.Errorf("diameter %v and density %v must be positive", diameter, density)
	}
	v := math.Abs(velocity) * 1e-6
	if v == 0 {
		return Stokes{}, ErrNoMotion
	}
	d := diameter * 1e-6
	weight := math.Pi / 6 * d * d * d * density * StandardGravity
	return Stokes{
		DragForce: weight,
		Viscosity: weight / (3 * math.Pi * d * v),
	}, nil
}
