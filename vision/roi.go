package vision

import (
	"log"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"droptracker/types"
	"droptracker/utils"
)

// ErrNoSelection is returned when a region selection was cancelled
var ErrNoSelection = errors.New("no region selected")

// DefaultMinROISize is the smallest side length accepted for a droplet region
const DefaultMinROISize = 4

// ROISelector asks the user to draw one region per droplet on the first frame
type ROISelector struct {
	WindowName string
	MinSize    int
}

// NewROISelector returns a selector drawing in the named window
func NewROISelector(windowName string) *ROISelector {
	return &ROISelector{WindowName: windowName, MinSize: DefaultMinROISize}
}

// Select shows frame n times and returns the regions in droplet order
func (s *ROISelector) Select(frame gocv.Mat, n int) ([]types.BBox, error) {
	window := gocv.NewWindow(s.WindowName)
	defer window.Close()

	boxes := make([]types.BBox, 0, n)
	for i := 0; i < n; i++ {
		log.Printf("select droplet %d of %d, then press ENTER or SPACE", i, n)
		rect := gocv.SelectROI(s.WindowName, frame)
		rect = utils.ClampToFrame(rect, frame.Cols(), frame.Rows())
		if rect.Empty() {
			return nil, errors.Wrapf(ErrNoSelection, "droplet %d", i)
		}
		rect = utils.ConstrainBoundingBox(rect, s.MinSize, frame.Cols(), frame.Rows())
		boxes = append(boxes, types.BBoxFromRect(rect))
	}
	return boxes, nil
}
