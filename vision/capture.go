// Package vision adapts OpenCV video capture, trackers and region selection
// to the frame-independent interfaces of the tracking driver.
package vision

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrOpenVideo is returned when a video file can't be opened
var ErrOpenVideo = errors.New("could not open video")

// Capture reads frames from a video file into a single reused Mat
type Capture struct {
	vc     *gocv.VideoCapture
	frame  gocv.Mat
	frames int
	fps    float64
}

// OpenCapture opens path and reads its container metadata
func OpenCapture(path string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrOpenVideo, "%s: %v", path, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, errors.Wrap(ErrOpenVideo, path)
	}
	return &Capture{
		vc:     vc,
		frame:  gocv.NewMat(),
		frames: int(vc.Get(gocv.VideoCaptureFrameCount)),
		fps:    vc.Get(gocv.VideoCaptureFPS),
	}, nil
}

// Read decodes the next frame. The returned Mat is overwritten by the next call.
func (c *Capture) Read() (gocv.Mat, bool) {
	if ok := c.vc.Read(&c.frame); !ok || c.frame.Empty() {
		return c.frame, false
	}
	return c.frame, true
}

// FrameCount returns the frame count reported by the container
func (c *Capture) FrameCount() int {
	return c.frames
}

// FPS returns the frame rate reported by the container
func (c *Capture) FPS() float64 {
	return c.fps
}

// Close releases the capture and the frame buffer
func (c *Capture) Close() error {
	if err := c.frame.Close(); err != nil {
		_ = c.vc.Close()
		return errors.Wrap(err, "can't release frame")
	}
	return c.vc.Close()
}
