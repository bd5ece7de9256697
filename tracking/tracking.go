package tracking

import (
	"log"

	"github.com/pkg/errors"

	"droptracker/types"
)

var (
	ErrInitFailed     = errors.New("tracker initialization failed")
	ErrNotInitialized = errors.New("ensemble is not initialized")
	ErrBoxCount       = errors.New("number of initial boxes does not match number of droplets")
)

// Logf is the package diagnostic logger. Tests may replace it.
var Logf func(format string, v ...interface{}) = log.Printf

// Tracker follows a single object across frames of type F
type Tracker[F any] interface {
	Init(frame F, box types.BBox) bool
	Update(frame F) (types.BBox, bool)
	Close() error
}

// Factory creates a fresh tracker for one object
type Factory[F any] func() (Tracker[F], error)

// State is the last known outcome for one object
type State int

const (
	Uninitialized State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Result is the outcome of one object's update on one frame
type Result struct {
	Object int
	Box    types.BBox
	OK     bool
}

// Ensemble owns one independent tracker per object
type Ensemble[F any] struct {
	factory  Factory[F]
	trackers []Tracker[F]
	boxes    []types.BBox
	states   []State
	failures []int
	ready    bool
}

// NewEnsemble creates an ensemble for n objects. Trackers are created on Init.
func NewEnsemble[F any](n int, factory Factory[F]) *Ensemble[F] {
	return &Ensemble[F]{
		factory:  factory,
		boxes:    make([]types.BBox, n),
		states:   make([]State, n),
		failures: make([]int, n),
	}
}

// Len returns the number of objects
func (e *Ensemble[F]) Len() int {
	return len(e.boxes)
}

// Init creates and initializes every tracker against the first frame.
// Any initialization failure is fatal for the run.
func (e *Ensemble[F]) Init(frame F, boxes []types.BBox) error {
	if len(boxes) != len(e.boxes) {
		return errors.Wrapf(ErrBoxCount, "got %d boxes for %d droplets", len(boxes), len(e.boxes))
	}
	if e.trackers != nil {
		_ = e.Close()
	}

	e.trackers = make([]Tracker[F], 0, len(boxes))
	for i, box := range boxes {
		tr, err := e.factory()
		if err != nil {
			return errors.Wrapf(err, "can't create tracker for droplet %d", i)
		}
		e.trackers = append(e.trackers, tr)
		if !tr.Init(frame, box) {
			return errors.Wrapf(ErrInitFailed, "droplet %d box %+v", i, box)
		}
		e.boxes[i] = box
		e.states[i] = Ready
	}
	e.ready = true
	return nil
}

// Update advances every tracker by one frame, in object index order.
// A failed update leaves the previous box in place and is reported through Logf.
func (e *Ensemble[F]) Update(frame F, frameIdx int) ([]Result, error) {
	if !e.ready {
		return nil, ErrNotInitialized
	}

	results := make([]Result, len(e.trackers))
	for i, tr := range e.trackers {
		box, ok := tr.Update(frame)
		if ok {
			e.boxes[i] = box
			e.states[i] = Ready
		} else {
			e.states[i] = Failed
			e.failures[i]++
			Logf("tracking failure: droplet %d frame %d", i, frameIdx)
		}
		results[i] = Result{Object: i, Box: e.boxes[i], OK: ok}
	}
	return results, nil
}

// Boxes returns a copy of the current boxes
func (e *Ensemble[F]) Boxes() []types.BBox {
	out := make([]types.BBox, len(e.boxes))
	copy(out, e.boxes)
	return out
}

// States returns a copy of the current states
func (e *Ensemble[F]) States() []State {
	out := make([]State, len(e.states))
	copy(out, e.states)
	return out
}

// Failures returns the number of failed updates per object
func (e *Ensemble[F]) Failures() []int {
	out := make([]int, len(e.failures))
	copy(out, e.failures)
	return out
}

// Close releases every tracker
func (e *Ensemble[F]) Close() error {
	var firstErr error
	for i, tr := range e.trackers {
		if err := tr.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "can't close tracker for droplet %d", i)
		}
	}
	e.trackers = nil
	e.ready = false
	return firstErr
}
