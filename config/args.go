// Package config builds the session parameters from the command line and the
// runtime settings from the environment.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"droptracker/types"
)

var (
	// ErrHelp is returned when -h or --help was given
	ErrHelp = errors.New("help requested")
	// ErrUsage covers missing, unknown or malformed arguments
	ErrUsage = errors.New("invalid arguments")
	// ErrNotReadable is returned when FILEPATH does not name a readable file
	ErrNotReadable = errors.New("does not exist or is not a file")
)

// diameterList collects whitespace separated values from every -d occurrence
type diameterList []float64

func (d *diameterList) String() string {
	if d == nil {
		return ""
	}
	parts := make([]string, len(*d))
	for i, v := range *d {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func (d *diameterList) Set(s string) error {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return errors.New("requires at least one value")
	}
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return errors.Errorf("bad diameter %q", tok)
		}
		if !positive(v) {
			return errors.Errorf("diameter %q must be positive", tok)
		}
		*d = append(*d, v)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ParseArgs parses the arguments following the program name. FILEPATH may
// appear before, between or after the flags. Every flag is accepted in its
// short form and its long form (-px / --pixels).
func ParseArgs(args []string) (types.Session, error) {
	var (
		s         types.Session
		diameters diameterList
	)
	s.Density = types.DefaultDensity

	fs := flag.NewFlagSet("droptracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	for _, name := range []string{"n", "droplets"} {
		fs.IntVar(&s.Droplets, name, 0, "number of droplets to track")
	}
	for _, name := range []string{"px", "pixels"} {
		fs.Float64Var(&s.Pixels, name, 0, "distance between plates in pixels")
	}
	for _, name := range []string{"pd", "distance"} {
		fs.Float64Var(&s.Distance, name, 0, "distance between plates in microns")
	}
	for _, name := range []string{"d", "diameters"} {
		fs.Var(&diameters, name, "diameter of each droplet in pixels")
	}
	for _, name := range []string{"rho", "density"} {
		fs.Float64Var(&s.Density, name, types.DefaultDensity, "density of droplets in kg/m^3")
	}
	for _, name := range []string{"t", "timeit"} {
		fs.BoolVar(&s.TimeIt, name, false, "prints run-time of tracking algorithm")
	}
	for _, name := range []string{"s", "show"} {
		fs.BoolVar(&s.Show, name, false, "displays video with trackers")
	}

	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return types.Session{}, ErrHelp
			}
			return types.Session{}, errors.Wrap(ErrUsage, err.Error())
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		if s.Path != "" {
			return types.Session{}, errors.Wrapf(ErrUsage, "unknown argument: %s", rest[0])
		}
		if err := checkReadable(rest[0]); err != nil {
			return types.Session{}, err
		}
		s.Path = rest[0]
		rest = rest[1:]
	}

	s.Diameters = []float64(diameters)
	if err := validate(s); err != nil {
		return types.Session{}, err
	}
	return s, nil
}

func validate(s types.Session) error {
	switch {
	case s.Path == "":
		return errors.Wrap(ErrUsage, "requires FILEPATH")
	case s.Droplets < 1:
		return errors.Wrap(ErrUsage, "requires -n DROPLETS")
	case !positive(s.Pixels):
		return errors.Wrap(ErrUsage, "requires -px PIXELS")
	case !positive(s.Distance):
		return errors.Wrap(ErrUsage, "requires -pd DISTANCE")
	case len(s.Diameters) == 0:
		return errors.Wrap(ErrUsage, "requires -d DIAMETERS")
	case !positive(s.Density):
		return errors.Wrap(ErrUsage, "-rho DENSITY must be positive")
	}
	return nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(ErrNotReadable, path)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return errors.Wrap(ErrNotReadable, path)
	}
	return nil
}

// Usage writes the help text for prog to w
func Usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "usage: %s FILEPATH [-h] -n DROPLETS -px PIXELS -pd DISTANCE -d DIAMETERS [-rho DENSITY] [-t] [-s]\n", prog)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "positional arguments:")
	fmt.Fprintln(w, " FILEPATH\t\tpath to video file (e.g. .mov, .mp4, etc.)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "required arguments:")
	fmt.Fprintln(w, " -n DROPLETS, --droplets DROPLETS\n\t\t\tnumber of droplets to track")
	fmt.Fprintln(w, " -px PIXELS, --pixels PIXELS\n\t\t\tdistance between plates in pixels")
	fmt.Fprintln(w, " -pd DISTANCE, --distance DISTANCE\n\t\t\tdistance between plates in microns")
	fmt.Fprintln(w, " -d DIAMETERS, --diameters DIAMETERS\n\t\t\tdiameter of each droplet in pixels (e.g. '20.5 10')")
	fmt.Fprintln(w, "options:")
	fmt.Fprintf(w, " -rho DENSITY, --density DENSITY\n\t\t\tdensity of droplets in kg/m^3 (Default: %g)\n", types.DefaultDensity)
	fmt.Fprintln(w, " -h, --help\t\tshow this help message and exit")
	fmt.Fprintln(w, " -t, --timeit\t\tprints run-time of tracking algorithm")
	fmt.Fprintln(w, " -s, --show\t\tdisplays video with trackers")
}
