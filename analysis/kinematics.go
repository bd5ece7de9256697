// Package analysis derives velocities, accelerations and drag estimates from
// an exported trajectory dataset.
package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"droptracker/dataset"
)

var (
	ErrNoTrajectories = errors.New("dataset has no x_i/y_i column pairs")
	ErrBadTimeStep    = errors.New("time step must be positive")
	ErrMissingColumn  = errors.New("missing column")
)

// Trajectory is the position series of one droplet. A sample is invalid when
// both coordinates hold the sentinel, which is how failed updates are stored.
type Trajectory struct {
	Index int
	X, Y  []float64
	Valid []bool
}

// Kinematics holds finite-difference derivatives of a trajectory. V[j] needs
// samples j-1 and j; A[j] needs samples j-2 through j.
type Kinematics struct {
	T              []float64
	VX, VY, AX, AY []float64
	VValid, AValid []bool
}

// Trajectories extracts every x_i/y_i pair from cols, ordered by droplet index
func Trajectories(cols []dataset.Column) ([]Trajectory, error) {
	byName := make(map[string]dataset.Column, len(cols))
	var indices []int
	for _, c := range cols {
		byName[c.Name] = c
		if !strings.HasPrefix(c.Name, "x_") {
			continue
		}
		if i, err := strconv.Atoi(strings.TrimPrefix(c.Name, "x_")); err == nil && i >= 0 {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return nil, ErrNoTrajectories
	}
	sort.Ints(indices)

	out := make([]Trajectory, 0, len(indices))
	for _, i := range indices {
		xc := byName[dataset.XName(i)]
		yc, ok := byName[dataset.YName(i)]
		if !ok {
			return nil, errors.Wrap(ErrMissingColumn, dataset.YName(i))
		}
		if xc.Len() != yc.Len() {
			return nil, errors.Wrapf(dataset.ErrRaggedColumns, "droplet %d has %d x and %d y samples", i, xc.Len(), yc.Len())
		}
		tr := Trajectory{
			Index: i,
			X:     append([]float64(nil), xc.Values...),
			Y:     append([]float64(nil), yc.Values...),
			Valid: make([]bool, xc.Len()),
		}
		for j := range tr.Valid {
			tr.Valid[j] = !(tr.X[j] == dataset.Sentinel && tr.Y[j] == dataset.Sentinel)
		}
		out = append(out, tr)
	}
	return out, nil
}

// Differentiate returns the backward difference of values over dt with out[0] = 0
func Differentiate(values []float64, dt float64) []float64 {
	out := make([]float64, len(values))
	for j := 1; j < len(values); j++ {
		out[j] = (values[j] - values[j-1]) / dt
	}
	return out
}

// Times returns t_j = j * dt for n samples
func Times(n int, dt float64) []float64 {
	t := make([]float64, n)
	for j := range t {
		t[j] = float64(j) * dt
	}
	return t
}

// Compute derives velocity and acceleration of tr for a frame interval dt
func Compute(tr Trajectory, dt float64) (Kinematics, error) {
	if !(dt > 0) {
		return Kinematics{}, errors.Wrapf(ErrBadTimeStep, "dt = %v", dt)
	}
	n := len(tr.X)
	k := Kinematics{
		T:      Times(n, dt),
		VX:     Differentiate(tr.X, dt),
		VY:     Differentiate(tr.Y, dt),
		VValid: make([]bool, n),
		AValid: make([]bool, n),
	}
	k.AX = Differentiate(k.VX, dt)
	k.AY = Differentiate(k.VY, dt)

	for j := 1; j < n; j++ {
		k.VValid[j] = tr.Valid[j] && tr.Valid[j-1]
		if j >= 2 {
			k.AValid[j] = k.VValid[j] && k.VValid[j-1]
		}
	}
	return k, nil
}

// ReadMetadata recovers the run metadata stored in the DIAMETERS, DENSITY and
// FPS columns. Missing columns leave the corresponding field zero.
func ReadMetadata(cols []dataset.Column) dataset.Metadata {
	var meta dataset.Metadata
	for _, c := range cols {
		switch c.Name {
		case dataset.DiametersColumn:
			for j, v := range c.Values {
				if c.IsNull(j) {
					break
				}
				meta.Diameters = append(meta.Diameters, v)
			}
		case dataset.DensityColumn:
			if c.Len() > 0 && !c.IsNull(0) {
				meta.Density = c.Values[0]
			}
		case dataset.FPSColumn:
			if c.Len() > 0 && !c.IsNull(0) {
				meta.FPS = c.Values[0]
			}
		}
	}
	return meta
}
