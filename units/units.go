// Package units converts between pixel and physical (micron) distances
package units

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"droptracker/types"
)

// ErrInvalidDistance is returned when a reference distance is zero, negative or not finite
var ErrInvalidDistance = errors.New("reference distance must be a positive finite number")

// Converter maps pixel distances to physical distances using a fixed ratio
type Converter struct {
	ratio float64
}

// NewConverter builds a converter from a known physical distance and the
// same distance measured in pixels.
func NewConverter(distance, pixels float64) (Converter, error) {
	if !valid(distance) {
		return Converter{}, errors.Wrapf(ErrInvalidDistance, "physical distance %v", distance)
	}
	if !valid(pixels) {
		return Converter{}, errors.Wrapf(ErrInvalidDistance, "pixel distance %v", pixels)
	}
	return Converter{ratio: distance / pixels}, nil
}

func valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Ratio returns physical units per pixel
func (c Converter) Ratio() float64 {
	return c.ratio
}

// ToPhysical converts a pixel distance to physical units
func (c Converter) ToPhysical(px float64) float64 {
	return px * c.ratio
}

// ToPixels converts a physical distance back to pixels
func (c Converter) ToPixels(phys float64) float64 {
	return phys / c.ratio
}

// Center returns the physical-unit coordinate of the box center
func (c Converter) Center(b types.BBox) (float64, float64) {
	x, y := b.Center()
	return c.ToPhysical(x), c.ToPhysical(y)
}

// Scale converts every value to physical units. The input is not modified.
func (c Converter) Scale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	floats.ScaleTo(out, c.ratio, values)
	return out
}
