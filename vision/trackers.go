package vision

import (
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"droptracker/tracking"
	"droptracker/types"
)

// ErrUnknownTracker is returned for a tracker name outside the supported set
var ErrUnknownTracker = errors.New("unknown tracker")

// Supported tracker names
const (
	CSRT = "csrt"
	KCF  = "kcf"
	MIL  = "mil"
)

// cvTracker wraps an OpenCV tracker so it works in box coordinates
type cvTracker struct {
	tracker gocv.Tracker
}

func (c *cvTracker) Init(frame gocv.Mat, box types.BBox) bool {
	return c.tracker.Init(frame, box.Rect())
}

func (c *cvTracker) Update(frame gocv.Mat) (types.BBox, bool) {
	rect, ok := c.tracker.Update(frame)
	if !ok {
		return types.BBox{}, false
	}
	return types.BBoxFromRect(rect), true
}

func (c *cvTracker) Close() error {
	return c.tracker.Close()
}

// ValidTracker reports whether name is a supported tracker
func ValidTracker(name string) error {
	switch strings.ToLower(name) {
	case CSRT, KCF, MIL:
		return nil
	default:
		return errors.Wrapf(ErrUnknownTracker, "%q (want %s, %s or %s)", name, CSRT, KCF, MIL)
	}
}

// NewFactory returns a factory creating one OpenCV tracker of the named kind per droplet
func NewFactory(name string) (tracking.Factory[gocv.Mat], error) {
	if err := ValidTracker(name); err != nil {
		return nil, err
	}
	kind := strings.ToLower(name)
	return func() (tracking.Tracker[gocv.Mat], error) {
		switch kind {
		case KCF:
			return &cvTracker{tracker: contrib.NewTrackerKCF()}, nil
		case MIL:
			return &cvTracker{tracker: gocv.NewTrackerMIL()}, nil
		default:
			return &cvTracker{tracker: contrib.NewTrackerCSRT()}, nil
		}
	}, nil
}
