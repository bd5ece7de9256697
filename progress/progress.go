// Package progress draws a coarse text progress bar for the tracking loop
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Interval returns the number of frames between bar updates: the largest
// power of two not above frames/20, and never less than 1.
func Interval(frames int) int {
	return msb(frames / 20)
}

// msb returns the most significant bit of val as a power of two, or 1 for val < 1
func msb(val int) int {
	if val < 1 {
		return 1
	}
	shift := 0
	for val >>= 1; val != 0; val >>= 1 {
		shift++
	}
	return 1 << shift
}

// Reporter prints roughly 5% progress steps as frames are processed
type Reporter struct {
	w        io.Writer
	frames   int
	interval int
	bar      []byte
	count    int
}

// NewReporter creates a reporter for a video of the given frame count
func NewReporter(w io.Writer, frames int) *Reporter {
	interval := Interval(frames)
	slots := (frames + interval - 1) / interval
	if slots < 1 {
		slots = 1
	}
	return &Reporter{
		w:        w,
		frames:   frames,
		interval: interval,
		bar:      []byte(strings.Repeat(".", slots)),
	}
}

// Interval returns the reporter's update interval
func (r *Reporter) Interval() int {
	return r.interval
}

// Count returns the number of filled slots
func (r *Reporter) Count() int {
	return r.count
}

// Start prints the empty bar
func (r *Reporter) Start() {
	fmt.Fprintln(r.w, "Tracking...")
	r.print()
}

// Step records that frame has been processed
func (r *Reporter) Step(frame int) {
	// interval is a power of two, so the mask test is a modulo
	if frame&(r.interval-1) != 0 {
		return
	}
	r.fill()
	r.print()
}

// Finish fills the bar and prints the completion line
func (r *Reporter) Finish() {
	for r.count < len(r.bar) {
		r.fill()
	}
	fmt.Fprintf(r.w, "[%s] 100%%\t\n", r.bar)
	fmt.Fprintln(r.w, "Tracking complete!")
}

func (r *Reporter) fill() {
	if r.count < len(r.bar) {
		r.bar[r.count] = '='
		r.count++
	}
}

func (r *Reporter) percent() float64 {
	if r.frames < 1 {
		return 100
	}
	p := float64(r.count*r.interval) * 100 / float64(r.frames)
	if p > 100 {
		p = 100
	}
	return p
}

func (r *Reporter) print() {
	fmt.Fprintf(r.w, "[%s] %.4g%%\t\r", r.bar, r.percent())
}
