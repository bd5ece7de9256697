package tracking

import "droptracker/types"

// ScriptedTracker is a deterministic Tracker over integer frame indices.
// Every successful update moves the box by (DX, DY) per frame relative to the
// initial box; frames listed in FailAt report failure.
//
// NOTE: intended for tests in this and other packages. It has no use in
// production code.
type ScriptedTracker struct {
	DX, DY   float64
	FailAt   map[int]bool
	FailInit bool

	initBox   types.BBox
	initFrame int
	Closed    bool
}

func (s *ScriptedTracker) Init(frame int, box types.BBox) bool {
	if s.FailInit {
		return false
	}
	s.initBox = box
	s.initFrame = frame
	return true
}

func (s *ScriptedTracker) Update(frame int) (types.BBox, bool) {
	if s.FailAt[frame] {
		return types.BBox{}, false
	}
	steps := float64(frame - s.initFrame)
	box := s.initBox
	box.X += s.DX * steps
	box.Y += s.DY * steps
	return box, true
}

func (s *ScriptedTracker) Close() error {
	s.Closed = true
	return nil
}

// ScriptedFactory hands out the given trackers in order
func ScriptedFactory(trackers ...*ScriptedTracker) Factory[int] {
	next := 0
	return func() (Tracker[int], error) {
		tr := trackers[next%len(trackers)]
		next++
		return tr, nil
	}
}
