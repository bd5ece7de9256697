package types

import (
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultDensity is the fluid density used when -rho is not given (kg/m^3)
const DefaultDensity = 1000.0

// Session holds the parameters of one tracking run. It is built once by
// argument parsing and never modified afterwards.
type Session struct {
	Path      string
	Droplets  int
	Pixels    float64
	Distance  float64
	Diameters []float64
	Density   float64
	TimeIt    bool
	Show      bool
}

// OutputPath returns the dataset path for this session: <dir>/<stem>_out.parquet
func (s Session) OutputPath(dir string) string {
	base := filepath.Base(s.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, stem+"_out.parquet")
}

// BBox is an axis-aligned bounding box in pixel space
type BBox struct {
	X, Y, W, H float64
}

// Center returns the center of the box in pixel space
func (b BBox) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Empty reports whether the box has no area
func (b BBox) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Rect converts the box to an integer image.Rectangle
func (b BBox) Rect() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
}

// BBoxFromRect converts an image.Rectangle into a BBox
func BBoxFromRect(r image.Rectangle) BBox {
	return BBox{
		X: float64(r.Min.X),
		Y: float64(r.Min.Y),
		W: float64(r.Dx()),
		H: float64(r.Dy()),
	}
}

// VideoConfig holds annotated video recording configuration
type VideoConfig struct {
	Path   string
	FPS    float64
	Codecs []string
}

// DefaultVideoConfig returns the default video configuration
func DefaultVideoConfig() VideoConfig {
	return VideoConfig{
		FPS:    30.0,
		Codecs: []string{"mp4v", "avc1", "H264", "x264"},
	}
}

// UIConfig holds UI configuration constants
type UIConfig struct {
	WindowName     string
	StatusFontSize float64
	MaxDebugLogs   int
	DebugFontSize  float64
	WaitKeyMillis  int
}

// DefaultUIConfig returns the default UI configuration
func DefaultUIConfig() UIConfig {
	return UIConfig{
		WindowName:     "Tracking",
		StatusFontSize: 1.2,
		MaxDebugLogs:   8,
		DebugFontSize:  0.8,
		WaitKeyMillis:  1,
	}
}

// DebugLogger keeps the most recent log lines so they can be drawn on screen
// while still forwarding everything to the original log output.
type DebugLogger struct {
	mu             sync.Mutex
	logs           []string
	maxLogs        int
	originalOutput io.Writer
}

// NewDebugLogger creates a new debug logger
func NewDebugLogger(maxLogs int) *DebugLogger {
	return &DebugLogger{
		maxLogs:        maxLogs,
		originalOutput: log.Default().Writer(),
	}
}

// Log adds a message to the log buffer
func (d *DebugLogger) Log(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.logs = append(d.logs, message)
	if len(d.logs) > d.maxLogs {
		d.logs = d.logs[len(d.logs)-d.maxLogs:]
	}
}

// GetLogs returns a copy of the current debug logs
func (d *DebugLogger) GetLogs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	logs := make([]string, len(d.logs))
	copy(logs, d.logs)
	return logs
}

// Write implements io.Writer interface to capture log output
func (d *DebugLogger) Write(p []byte) (n int, err error) {
	if d.originalOutput != nil {
		_, _ = d.originalOutput.Write(p)
	}

	message := strings.TrimSpace(string(p))
	// Remove timestamp prefix that log package adds
	if len(message) > 19 && message[4] == '/' && message[7] == '/' && message[10] == ' ' {
		// Format: "2006/01/02 15:04:05 message"
		if spaceIndex := strings.Index(message[11:], " "); spaceIndex != -1 {
			message = message[11+spaceIndex+1:]
		}
	}
	if message != "" {
		d.Log(message)
	}

	return len(p), nil
}

// SetAsLogOutput configures this debug logger to capture standard log output
func (d *DebugLogger) SetAsLogOutput() {
	log.SetOutput(d)
}

// RestoreOriginalLogOutput restores the original log output
func (d *DebugLogger) RestoreOriginalLogOutput() {
	if d.originalOutput != nil {
		log.SetOutput(d.originalOutput)
	}
}
