package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"gocv.io/x/gocv"

	"droptracker/input"
	"droptracker/recording"
	"droptracker/tracking"
	"droptracker/types"
)

var (
	Blue   = color.RGBA{B: 255}
	Red    = color.RGBA{R: 255}
	Green  = color.RGBA{G: 255}
	Yellow = color.RGBA{R: 255, G: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// Window shows each tracked frame with one rectangle per droplet.
// ESC or q cancels the run through cancel.
type Window struct {
	window   *gocv.Window
	canvas   gocv.Mat
	config   types.UIConfig
	cancel   context.CancelFunc
	logger   *types.DebugLogger
	recorder *recording.Recorder
	frames   int
	debug    bool
	paused   bool
}

// NewWindow opens the visualization window. logger and recorder may be nil.
func NewWindow(config types.UIConfig, frames int, cancel context.CancelFunc, logger *types.DebugLogger, recorder *recording.Recorder) *Window {
	return &Window{
		window:   gocv.NewWindow(config.WindowName),
		canvas:   gocv.NewMat(),
		config:   config,
		cancel:   cancel,
		logger:   logger,
		recorder: recorder,
		frames:   frames,
		debug:    logger != nil,
	}
}

// Render draws the boxes on a copy of frame and shows it
func (w *Window) Render(ctx context.Context, frameIdx int, frame gocv.Mat, boxes []types.BBox, states []tracking.State) {
	frame.CopyTo(&w.canvas)
	RenderFrame(&w.canvas, frameIdx, w.frames, boxes, states, w.config)
	if w.debug && w.logger != nil {
		DrawDebugLogs(&w.canvas, w.logger.GetLogs(), w.config)
	}
	if w.recorder != nil {
		DrawRecordingStatus(&w.canvas, w.recorder, w.config)
		if err := w.recorder.WriteFrame(w.canvas); err != nil {
			log.Printf("recording error: %v", err)
			w.recorder = nil
		}
	}

	w.window.IMShow(w.canvas)
	if w.handleKey(w.window.WaitKey(w.config.WaitKeyMillis)) {
		return
	}
	for w.paused && ctx.Err() == nil {
		if w.handleKey(w.window.WaitKey(50)) {
			return
		}
	}
}

func (w *Window) handleKey(key int) bool {
	action, stop := input.ProcessInput(key, w.cancel)
	switch action {
	case input.TogglePause:
		w.paused = !w.paused
		if w.paused {
			log.Println("paused, press SPACE to resume")
		}
	case input.ToggleDebug:
		w.debug = !w.debug
	}
	if stop {
		w.paused = false
	}
	return stop
}

// Close releases the window, the canvas and any active recording
func (w *Window) Close() error {
	if w.recorder != nil {
		w.recorder.Cleanup()
	}
	if err := w.canvas.Close(); err != nil {
		_ = w.window.Close()
		return err
	}
	return w.window.Close()
}

// DrawTrackingRect draws the tracking rectangle on the frame
func DrawTrackingRect(frame *gocv.Mat, rect image.Rectangle, success bool) {
	rectColor := Blue
	if !success {
		rectColor = Red
	}
	_ = gocv.Rectangle(frame, rect, rectColor, 2)
}

// DrawLabel writes the droplet index above its rectangle
func DrawLabel(frame *gocv.Mat, rect image.Rectangle, index int, config types.UIConfig) {
	pt := image.Pt(rect.Min.X, rect.Min.Y-4)
	if err := gocv.PutText(frame, fmt.Sprint(index), pt, gocv.FontHersheyPlain, config.DebugFontSize, Yellow, 1); err != nil {
		log.Printf("Error adding label: %v", err)
	}
}

// StatusText summarizes the frame position and how many droplets are tracked
func StatusText(frameIdx, frames int, states []tracking.State) (string, color.RGBA) {
	ok := 0
	for _, s := range states {
		if s == tracking.Ready {
			ok++
		}
	}
	text := fmt.Sprintf("Frame %d/%d  tracked %d/%d  (ESC/q: stop  SPACE: pause  d: logs)", frameIdx+1, frames, ok, len(states))
	if ok < len(states) {
		return text, Red
	}
	return text, Green
}

// DrawStatusMessage draws the main status message
func DrawStatusMessage(frame *gocv.Mat, frameIdx, frames int, states []tracking.State, config types.UIConfig) {
	statusText, textColor := StatusText(frameIdx, frames, states)
	if err := gocv.PutText(frame, statusText, image.Pt(10, 30), gocv.FontHersheyPlain, config.StatusFontSize, textColor, 2); err != nil {
		log.Printf("Error adding status text: %v", err)
	}
}

// DrawRecordingStatus draws the recording status and timer
func DrawRecordingStatus(frame *gocv.Mat, recorder *recording.Recorder, config types.UIConfig) {
	if !recorder.IsRecording() {
		return
	}

	duration := recorder.Duration()
	recordingText := fmt.Sprintf("REC %02d:%02d", int(duration.Minutes()), int(duration.Seconds())%60)

	if err := gocv.PutText(frame, recordingText, image.Pt(10, 60), gocv.FontHersheyPlain, config.StatusFontSize, Red, 2); err != nil {
		log.Printf("Error adding recording text: %v", err)
	}
}

// TruncateLog shortens a log line so it fits the overlay
func TruncateLog(msg string, max int) string {
	if len(msg) <= max {
		return msg
	}
	return msg[:max-3] + "..."
}

// DrawDebugLogs draws the captured diagnostics on the right side of the frame
func DrawDebugLogs(frame *gocv.Mat, logs []string, config types.UIConfig) {
	if len(logs) == 0 {
		return
	}

	frameWidth := frame.Cols()
	startY := 100
	lineHeight := 20
	maxWidth := 400
	padding := 10

	debugHeight := len(logs)*lineHeight + padding*2
	debugRect := image.Rect(frameWidth-maxWidth-padding, startY-padding, frameWidth-padding, startY+debugHeight-padding)

	if err := gocv.Rectangle(frame, debugRect, Black, -1); err != nil {
		log.Printf("Error drawing debug background: %v", err)
	}

	headerText := fmt.Sprintf("Debug Logs (%d):", len(logs))
	if err := gocv.PutText(frame, headerText, image.Pt(frameWidth-maxWidth, startY), gocv.FontHersheyPlain, config.DebugFontSize, Yellow, 1); err != nil {
		log.Printf("Error adding debug header: %v", err)
	}

	for i, logMsg := range logs {
		y := startY + (i+1)*lineHeight
		if err := gocv.PutText(frame, TruncateLog(logMsg, 50), image.Pt(frameWidth-maxWidth, y), gocv.FontHersheyPlain, config.DebugFontSize, White, 1); err != nil {
			log.Printf("Error adding debug text: %v", err)
		}
	}
}

// RenderFrame draws every droplet rectangle and the status line
func RenderFrame(frame *gocv.Mat, frameIdx, frames int, boxes []types.BBox, states []tracking.State, config types.UIConfig) {
	for i, box := range boxes {
		rect := box.Rect()
		if rect.Empty() {
			continue
		}
		ok := i < len(states) && states[i] != tracking.Failed
		DrawTrackingRect(frame, rect, ok)
		DrawLabel(frame, rect, i, config)
	}
	DrawStatusMessage(frame, frameIdx, frames, states, config)
}
