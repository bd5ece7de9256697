package analysis

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	xColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	yColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PlotSeries saves one line plot of the valid (t, values) points as a PNG
func PlotSeries(path, title, yLabel string, t, values []float64, valid []bool, c color.Color) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(t))
	for j := range t {
		if valid == nil || valid[j] {
			pts = append(pts, plotter.XY{X: t[j], Y: values[j]})
		}
	}
	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "can't build line for %s", title)
		}
		line.Color = c
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "can't save plot %s", path)
	}
	return nil
}

// PlotAccelerations writes the a_x(t) and a_y(t) plots of one droplet into dir
// and returns the file paths.
func PlotAccelerations(dir string, droplet int, k Kinematics) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output dir %s", dir)
	}
	title := fmt.Sprintf("Droplet %d", droplet)
	ax := filepath.Join(dir, fmt.Sprintf("droplet_%d_a_x.png", droplet))
	ay := filepath.Join(dir, fmt.Sprintf("droplet_%d_a_y.png", droplet))

	if err := PlotSeries(ax, title, "a_x (micron / s^2)", k.T, k.AX, k.AValid, xColor); err != nil {
		return nil, err
	}
	if err := PlotSeries(ay, title, "a_y (micron / s^2)", k.T, k.AY, k.AValid, yColor); err != nil {
		return nil, err
	}
	return []string{ax, ay}, nil
}
