// Package driver runs one tracking session: it pulls frames, advances the
// tracker ensemble, records physical coordinates and exports the dataset.
package driver

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"droptracker/dataset"
	"droptracker/export"
	"droptracker/progress"
	"droptracker/tracking"
	"droptracker/types"
	"droptracker/units"
)

var (
	ErrNoFrames  = errors.New("video has no frames")
	ErrSelection = errors.New("droplet selection failed")
)

// Source yields decoded frames in order
type Source[F any] interface {
	Read() (F, bool)
	FrameCount() int
	FPS() float64
	Close() error
}

// ROISelector returns one initial box per droplet for the first frame
type ROISelector[F any] interface {
	Select(frame F, n int) ([]types.BBox, error)
}

// Visualizer shows the current frame with the tracked boxes. It may cancel
// the run through the context it was created with.
type Visualizer[F any] interface {
	Render(ctx context.Context, frameIdx int, frame F, boxes []types.BBox, states []tracking.State)
}

// Report summarizes a finished run
type Report struct {
	RunID           string
	Output          string
	Frames          int
	FramesProcessed int
	FPS             float64
	Ratio           float64
	Cancelled       bool
	Failures        []int
	Elapsed         time.Duration
}

// TotalFailures returns the number of failed updates over all droplets
func (r *Report) TotalFailures() int {
	total := 0
	for _, f := range r.Failures {
		total += f
	}
	return total
}

// Driver wires the collaborators of one session together
type Driver[F any] struct {
	Session    types.Session
	Source     Source[F]
	Selector   ROISelector[F]
	NewTracker tracking.Factory[F]
	Exporter   export.Writer
	Visualizer Visualizer[F]
	Progress   io.Writer
	OutputDir  string
	RunID      string
	Now        func() time.Time
}

func (d *Driver[F]) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Run executes the session. Cancelling ctx stops the frame loop early; the
// frames not reached keep the sentinel value and the dataset is still exported.
func (d *Driver[F]) Run(ctx context.Context) (*Report, error) {
	out := d.Progress
	if out == nil {
		out = io.Discard
	}
	n := d.Session.Droplets

	report := &Report{RunID: d.RunID}
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}

	conv, err := units.NewConverter(d.Session.Distance, d.Session.Pixels)
	if err != nil {
		return report, &Error{Kind: ConfigError, Err: err}
	}
	report.Ratio = conv.Ratio()
	diameters := conv.Scale(d.Session.Diameters)

	frame, ok := d.Source.Read()
	if !ok {
		return report, &Error{Kind: AcquisitionError, Err: ErrNoFrames}
	}
	frames := d.Source.FrameCount()
	if frames < 1 {
		return report, &Error{Kind: AcquisitionError, Err: errors.Wrapf(ErrNoFrames, "frame count is %d", frames)}
	}
	report.Frames = frames
	report.FPS = d.Source.FPS()
	if len(diameters) > frames {
		err := errors.Wrapf(dataset.ErrTooManyDiameters, "%d diameters for %d frames", len(diameters), frames)
		return report, &Error{Kind: ConfigError, Err: err}
	}

	boxes, err := d.Selector.Select(frame, n)
	if err != nil {
		return report, &Error{Kind: ConfigError, Err: errors.Wrap(err, "can't select droplets")}
	}
	if err := validateBoxes(boxes, n); err != nil {
		return report, &Error{Kind: ConfigError, Err: err}
	}

	ensemble := tracking.NewEnsemble[F](n, d.NewTracker)
	defer func() {
		if err := ensemble.Close(); err != nil {
			log.Printf("error releasing trackers: %v", err)
		}
	}()
	if err := ensemble.Init(frame, boxes); err != nil {
		return report, &Error{Kind: ConfigError, Err: err}
	}

	buf := dataset.NewBuffer(n, frames)
	start := d.now()

	for i, box := range boxes {
		x, y := conv.Center(box)
		if err := buf.Record(i, 0, x, y); err != nil {
			return report, errors.Wrap(err, "can't record first frame")
		}
	}
	report.FramesProcessed = 1

	bar := progress.NewReporter(out, frames)
	bar.Start()
	for j := 1; j < frames; j++ {
		frame, ok = d.Source.Read()
		if !ok {
			log.Printf("video ended after %d of %d frames", j, frames)
			break
		}

		results, err := ensemble.Update(frame, j)
		if err != nil {
			return report, errors.Wrapf(err, "can't update trackers at frame %d", j)
		}
		for _, r := range results {
			if !r.OK {
				continue
			}
			x, y := conv.Center(r.Box)
			if err := buf.Record(r.Object, j, x, y); err != nil {
				return report, errors.Wrapf(err, "can't record frame %d", j)
			}
		}
		report.FramesProcessed++

		if d.Visualizer != nil {
			d.Visualizer.Render(ctx, j, frame, ensemble.Boxes(), ensemble.States())
		}
		if ctx.Err() != nil {
			report.Cancelled = true
			log.Printf("tracking cancelled at frame %d of %d", j, frames)
			break
		}

		bar.Step(j)
	}
	bar.Finish()
	report.Failures = ensemble.Failures()

	cols, err := dataset.Build(buf, dataset.Metadata{
		Diameters: diameters,
		Density:   d.Session.Density,
		FPS:       report.FPS,
	})
	if err != nil {
		return report, &Error{Kind: ExportError, Err: errors.Wrap(err, "can't build dataset")}
	}

	fmt.Fprintln(out, "Storing data...")
	report.Output = d.Session.OutputPath(d.OutputDir)
	if err := d.Exporter.Write(cols, report.Output); err != nil {
		return report, &Error{Kind: ExportError, Err: err}
	}
	fmt.Fprintln(out, "Data Stored!")

	report.Elapsed = d.now().Sub(start)
	if d.Session.TimeIt {
		fmt.Fprintf(out, "Elapsed time: %g s\n", report.Elapsed.Seconds())
	}
	return report, nil
}

func validateBoxes(boxes []types.BBox, n int) error {
	if len(boxes) != n {
		return errors.Wrapf(ErrSelection, "got %d regions for %d droplets", len(boxes), n)
	}
	for i, b := range boxes {
		if b.Empty() {
			return errors.Wrapf(ErrSelection, "empty region for droplet %d", i)
		}
	}
	return nil
}
