package recording

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"droptracker/types"
)

var (
	ErrAlreadyRecording = errors.New("recording already active")
	ErrNotRecording     = errors.New("no active recording")
)

// Recorder writes the annotated visualization frames to a video file
type Recorder struct {
	config    types.VideoConfig
	writer    *gocv.VideoWriter
	path      string
	codec     string
	startTime time.Time
	frames    int
}

// NewRecorder returns a recorder that starts on the first written frame
func NewRecorder(config types.VideoConfig) *Recorder {
	return &Recorder{config: config}
}

// DefaultFilename returns the file name used when no path is configured
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("tracking_video_%s.mp4", now.Format("20060102_150405"))
}

// Start opens the video writer sized to frame, trying each configured codec in turn
func (r *Recorder) Start(frame gocv.Mat) error {
	if r.IsRecording() {
		return ErrAlreadyRecording
	}

	path := r.config.Path
	if path == "" {
		path = DefaultFilename(time.Now())
	}
	fps := r.config.FPS
	if fps <= 0 {
		fps = types.DefaultVideoConfig().FPS
	}

	var (
		vw  *gocv.VideoWriter
		err error
	)
	for _, fourcc := range r.config.Codecs {
		vw, err = gocv.VideoWriterFile(path, fourcc, fps, frame.Cols(), frame.Rows(), true)
		if err == nil {
			r.codec = fourcc
			break
		}
	}
	if vw == nil || err != nil {
		if err == nil {
			err = errors.New("no codecs configured")
		}
		return errors.Wrapf(err, "could not create video writer for %s with any codec", path)
	}

	r.writer = vw
	r.path = path
	r.startTime = time.Now()
	r.frames = 0
	log.Printf("recording started: %s (codec: %s)", path, r.codec)
	return nil
}

// Stop closes the video file
func (r *Recorder) Stop() error {
	if !r.IsRecording() {
		return ErrNotRecording
	}
	err := r.writer.Close()
	r.writer = nil
	if err != nil {
		return errors.Wrap(err, "error closing video writer")
	}
	log.Printf("recording stopped: %s (%d frames)", r.path, r.frames)
	return nil
}

// WriteFrame appends frame to the recording, starting it if needed
func (r *Recorder) WriteFrame(frame gocv.Mat) error {
	if !r.IsRecording() {
		if err := r.Start(frame); err != nil {
			return err
		}
	}
	if err := r.writer.Write(frame); err != nil {
		return errors.Wrap(err, "can't write frame")
	}
	r.frames++
	return nil
}

// IsRecording reports whether a video file is open
func (r *Recorder) IsRecording() bool {
	return r.writer != nil
}

// Path returns the file being written, or the last one written
func (r *Recorder) Path() string {
	return r.path
}

// Duration returns the wall-clock time since recording started
func (r *Recorder) Duration() time.Duration {
	if !r.IsRecording() {
		return 0
	}
	return time.Since(r.startTime)
}

// Cleanup stops an active recording, logging any error
func (r *Recorder) Cleanup() {
	if !r.IsRecording() {
		return
	}
	if err := r.Stop(); err != nil {
		log.Printf("recording error: %v", err)
	}
}
