package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferStartsAtSentinel(t *testing.T) {
	b := NewBuffer(2, 4)
	assert.Equal(t, 2, b.Objects())
	assert.Equal(t, 4, b.Frames())
	for i := 0; i < 2; i++ {
		assert.Equal(t, []float64{0, 0, 0, 0}, b.X(i))
		assert.Equal(t, []float64{0, 0, 0, 0}, b.Y(i))
	}
}

func TestBufferRecord(t *testing.T) {
	b := NewBuffer(1, 3)
	require.NoError(t, b.Record(0, 1, 4.5, 6.5))
	assert.Equal(t, []float64{0, 4.5, 0}, b.X(0))
	assert.Equal(t, []float64{0, 6.5, 0}, b.Y(0))

	x := b.X(0)
	x[0] = 99
	assert.Equal(t, Sentinel, b.X(0)[0], "X returns a copy")

	for _, idx := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 3}} {
		err := b.Record(idx[0], idx[1], 1, 1)
		assert.True(t, errors.Is(err, ErrOutOfRange), "Record(%d, %d)", idx[0], idx[1])
	}
}

func TestBuildColumnLayout(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		for _, f := range []int{1, 3, 20} {
			b := NewBuffer(n, f)
			cols, err := Build(b, Metadata{Diameters: []float64{1}, Density: 1000, FPS: 6.66})
			require.NoError(t, err)
			require.Len(t, cols, 2*n+3)
			for _, c := range cols {
				assert.Equal(t, f, c.Len(), "column %s", c.Name)
			}

			coords, err := BuildCoordinates(b)
			require.NoError(t, err)
			assert.Len(t, coords, 2*n)
		}
	}
}

func TestBuildColumnOrderAndPadding(t *testing.T) {
	b := NewBuffer(2, 5)
	for j := 0; j < 5; j++ {
		require.NoError(t, b.Record(0, j, 10+2*float64(j), 10))
		require.NoError(t, b.Record(1, j, 120+2*float64(j), 120))
	}

	cols, err := Build(b, Metadata{Diameters: []float64{20, 40}, Density: 1000, FPS: 30})
	require.NoError(t, err)

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"x_0", "y_0", "x_1", "y_1", "DIAMETERS", "DENSITY", "FPS"}, names)

	want := Column{
		Name:   "x_0",
		Values: []float64{10, 12, 14, 16, 18},
		Valid:  []bool{true, true, true, true, true},
	}
	if diff := cmp.Diff(want, cols[0]); diff != "" {
		t.Errorf("x_0 mismatch (-want +got):\n%s", diff)
	}

	diam := cols[4]
	assert.Equal(t, []float64{20, 40}, diam.Values[:2])
	assert.Equal(t, []bool{true, true, false, false, false}, diam.Valid)
	assert.Equal(t, 3, diam.NullCount())

	density := cols[5]
	assert.Equal(t, 1000.0, density.Values[0])
	assert.Equal(t, []bool{true, false, false, false, false}, density.Valid)

	fps := cols[6]
	assert.Equal(t, 30.0, fps.Values[0])
	assert.True(t, fps.IsNull(1))
	assert.Equal(t, 4, fps.NullCount())
}

func TestBuildNoDiameters(t *testing.T) {
	cols, err := Build(NewBuffer(1, 2), Metadata{Density: 1000, FPS: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, cols[2].NullCount())
}

func TestBuildFailsFast(t *testing.T) {
	_, err := Build(NewBuffer(1, 2), Metadata{Diameters: []float64{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrTooManyDiameters))

	_, err = Build(NewBuffer(1, 0), Metadata{})
	assert.True(t, errors.Is(err, ErrNoFrames))

	_, err = BuildCoordinates(NewBuffer(1, 0))
	assert.True(t, errors.Is(err, ErrNoFrames))
}

func TestCheckRowsDetectsRaggedColumns(t *testing.T) {
	cols := []Column{
		full("a", []float64{1, 2}),
		full("b", []float64{1}),
	}
	err := checkRows(cols, 2)
	assert.True(t, errors.Is(err, ErrRaggedColumns))
}
