package dataset

import (
	"fmt"

	"github.com/pkg/errors"
)

// Metadata column names
const (
	DiametersColumn = "DIAMETERS"
	DensityColumn   = "DENSITY"
	FPSColumn       = "FPS"
)

var (
	ErrNoFrames         = errors.New("dataset needs at least one frame")
	ErrTooManyDiameters = errors.New("more diameters than frames")
	ErrRaggedColumns    = errors.New("columns have different row counts")
)

// Column is a named float64 column. Valid[i] is false for null rows.
type Column struct {
	Name   string
	Values []float64
	Valid  []bool
}

// Len returns the number of rows
func (c Column) Len() int {
	return len(c.Values)
}

// NullCount returns the number of null rows
func (c Column) NullCount() int {
	nulls := 0
	for _, ok := range c.Valid {
		if !ok {
			nulls++
		}
	}
	return nulls
}

// IsNull reports whether row i is null
func (c Column) IsNull(i int) bool {
	return !c.Valid[i]
}

// Metadata is the per-session information stored next to the coordinates.
// Diameters must already be in physical units.
type Metadata struct {
	Diameters []float64
	Density   float64
	FPS       float64
}

// XName and YName return the coordinate column names for object i
func XName(i int) string { return fmt.Sprintf("x_%d", i) }
func YName(i int) string { return fmt.Sprintf("y_%d", i) }

// Build assembles x_0, y_0, ..., x_{N-1}, y_{N-1}, DIAMETERS, DENSITY, FPS.
// Every column has exactly buf.Frames() rows.
func Build(buf *Buffer, meta Metadata) ([]Column, error) {
	frames := buf.Frames()
	if frames < 1 {
		return nil, ErrNoFrames
	}
	if len(meta.Diameters) > frames {
		return nil, errors.Wrapf(ErrTooManyDiameters, "%d diameters for %d frames", len(meta.Diameters), frames)
	}

	cols := make([]Column, 2*buf.Objects()+3)
	fillCoordinates(cols, buf)

	base := 2 * buf.Objects()
	cols[base] = padded(DiametersColumn, frames, meta.Diameters...)
	cols[base+1] = padded(DensityColumn, frames, meta.Density)
	cols[base+2] = padded(FPSColumn, frames, meta.FPS)

	if err := checkRows(cols, frames); err != nil {
		return nil, err
	}
	return cols, nil
}

// BuildCoordinates assembles only the 2N coordinate columns
func BuildCoordinates(buf *Buffer) ([]Column, error) {
	frames := buf.Frames()
	if frames < 1 {
		return nil, ErrNoFrames
	}
	cols := make([]Column, 2*buf.Objects())
	fillCoordinates(cols, buf)
	if err := checkRows(cols, frames); err != nil {
		return nil, err
	}
	return cols, nil
}

func fillCoordinates(cols []Column, buf *Buffer) {
	for i := 0; i < buf.Objects(); i++ {
		cols[2*i] = full(XName(i), buf.X(i))
		cols[2*i+1] = full(YName(i), buf.Y(i))
	}
}

func full(name string, values []float64) Column {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return Column{Name: name, Values: values, Valid: valid}
}

// padded places head in the first rows and nulls in the rest
func padded(name string, rows int, head ...float64) Column {
	c := Column{
		Name:   name,
		Values: make([]float64, rows),
		Valid:  make([]bool, rows),
	}
	copy(c.Values, head)
	for i := 0; i < len(head) && i < rows; i++ {
		c.Valid[i] = true
	}
	return c
}

func checkRows(cols []Column, rows int) error {
	for _, c := range cols {
		if c.Len() != rows || len(c.Valid) != rows {
			return errors.Wrapf(ErrRaggedColumns, "column %s has %d rows, want %d", c.Name, c.Len(), rows)
		}
	}
	return nil
}
