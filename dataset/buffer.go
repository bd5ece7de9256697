// Package dataset accumulates per-droplet measurements and assembles them
// into the rectangular column set that gets exported.
package dataset

import (
	"github.com/pkg/errors"
)

// Sentinel is the value left in a cell with no successful measurement
const Sentinel = 0.0

var ErrOutOfRange = errors.New("measurement index out of range")

// Buffer holds physical x/y coordinates per object per frame.
// Every cell starts at Sentinel.
type Buffer struct {
	x [][]float64
	y [][]float64
	n int
	f int
}

// NewBuffer allocates an objects x frames buffer filled with Sentinel
func NewBuffer(objects, frames int) *Buffer {
	if objects < 0 {
		objects = 0
	}
	if frames < 0 {
		frames = 0
	}
	b := &Buffer{
		x: make([][]float64, objects),
		y: make([][]float64, objects),
		n: objects,
		f: frames,
	}
	for i := 0; i < objects; i++ {
		b.x[i] = make([]float64, frames)
		b.y[i] = make([]float64, frames)
	}
	return b
}

// Objects returns the number of objects
func (b *Buffer) Objects() int { return b.n }

// Frames returns the number of frames
func (b *Buffer) Frames() int { return b.f }

// Record stores one sample
func (b *Buffer) Record(object, frame int, x, y float64) error {
	if object < 0 || object >= b.n || frame < 0 || frame >= b.f {
		return errors.Wrapf(ErrOutOfRange, "droplet %d frame %d (buffer is %dx%d)", object, frame, b.n, b.f)
	}
	b.x[object][frame] = x
	b.y[object][frame] = y
	return nil
}

// X returns a copy of the x series for object
func (b *Buffer) X(object int) []float64 {
	return clone(b.x[object])
}

// Y returns a copy of the y series for object
func (b *Buffer) Y(object int) []float64 {
	return clone(b.y[object])
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
