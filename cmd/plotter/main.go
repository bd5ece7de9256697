// Command plotter reads a dataset written by droptracker, plots the
// acceleration of every droplet and prints a terminal velocity fit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"droptracker/analysis"
	"droptracker/dataset"
	"droptracker/export"
)

type options struct {
	path   string
	fps    float64
	outDir string
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("plotter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, name := range []string{"f", "fps"} {
		fs.Float64Var(&opts.fps, name, 0, "frames per second (default: FPS column of the dataset)")
	}
	for _, name := range []string{"o", "out"} {
		fs.StringVar(&opts.outDir, name, "", "directory for the PNG plots (default: next to the dataset)")
	}

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return opts, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		if opts.path != "" {
			return opts, errors.Errorf("unknown argument: %s", rest[0])
		}
		opts.path = rest[0]
		rest = rest[1:]
	}
	if opts.path == "" {
		return opts, errors.New("requires FILEPATH")
	}
	if opts.fps < 0 {
		return opts, errors.New("-f FPS must be positive")
	}
	if opts.outDir == "" {
		base := filepath.Base(opts.path)
		opts.outDir = filepath.Join(filepath.Dir(opts.path), strings.TrimSuffix(base, filepath.Ext(base))+"_plots")
	}
	return opts, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: plotter FILEPATH [-f FPS] [-o DIR]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, " FILEPATH\t\tpath to parquet file")
	fmt.Fprintln(w, " -f FPS, --fps FPS\tframes per second associated with file")
	fmt.Fprintln(w, " -o DIR, --out DIR\tdirectory for the a_x(t) and a_y(t) plots")
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cols, err := export.ReadParquet(ctx, opts.path)
	if err != nil {
		return err
	}
	trajectories, err := analysis.Trajectories(cols)
	if err != nil {
		return errors.Wrap(err, opts.path)
	}
	meta := analysis.ReadMetadata(cols)

	fps := opts.fps
	if fps == 0 {
		fps = meta.FPS
	}
	if !(fps > 0) {
		return errors.Errorf("%s has no FPS column, pass -f FPS", opts.path)
	}
	dt := 1 / fps

	for _, tr := range trajectories {
		k, err := analysis.Compute(tr, dt)
		if err != nil {
			return errors.Wrapf(err, "droplet %d", tr.Index)
		}
		paths, err := analysis.PlotAccelerations(opts.outDir, tr.Index, k)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(out, "wrote %s\n", p)
		}
		reportFit(out, tr, k, meta)
	}
	return nil
}

func reportFit(out io.Writer, tr analysis.Trajectory, k analysis.Kinematics, meta dataset.Metadata) {
	fit, err := analysis.FitTerminalVelocity(k.T, tr.Y, tr.Valid)
	if err != nil {
		log.Printf("droplet %d: can't fit velocity: %v", tr.Index, err)
		return
	}
	fmt.Fprintf(out, "droplet %d: v_y = %.4g micron/s (R^2 %.4f, %d samples)\n", tr.Index, fit.Velocity, fit.RSquared, fit.Samples)

	if tr.Index >= len(meta.Diameters) || !(meta.Density > 0) {
		return
	}
	s, err := analysis.StokesEstimate(meta.Diameters[tr.Index], meta.Density, fit.Velocity)
	if err != nil {
		log.Printf("droplet %d: no drag estimate: %v", tr.Index, err)
		return
	}
	fmt.Fprintf(out, "droplet %d: drag %.4g N, implied viscosity %.4g Pa*s\n", tr.Index, s.DragForce, s.Viscosity)
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(os.Stderr)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		usage(os.Stderr)
		os.Exit(1)
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Printf("plotter: %v", err)
		os.Exit(1)
	}
}
