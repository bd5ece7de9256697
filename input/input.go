package input

import (
	"context"
	"log"
)

// KeyEscape is the code WaitKey returns for ESC
const KeyEscape = 27

// NoKey is the code WaitKey returns when nothing was pressed
const NoKey = -1

// Action is what a key press asks the visualization to do
type Action int

const (
	None Action = iota
	Quit
	TogglePause
	ToggleDebug
)

// Lookup maps a key code to its action
func Lookup(key int) Action {
	switch key {
	case KeyEscape, 'q':
		return Quit
	case ' ', 'p':
		return TogglePause
	case 'd':
		return ToggleDebug
	default:
		return None
	}
}

// HandleEscapeKey stops the run. Samples not reached yet keep their sentinel.
func HandleEscapeKey(cancel context.CancelFunc) bool {
	log.Println("tracking stopped by user")
	if cancel != nil {
		cancel()
	}
	return true
}

// ProcessInput handles one key press and reports whether the run should stop
func ProcessInput(key int, cancel context.CancelFunc) (Action, bool) {
	action := Lookup(key)
	if action == Quit {
		return action, HandleEscapeKey(cancel)
	}
	return action, false
}
