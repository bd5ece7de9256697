package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droptracker/dataset"
)

func sampleColumns(t *testing.T) []dataset.Column {
	t.Helper()
	buf := dataset.NewBuffer(2, 5)
	for j := 0; j < 5; j++ {
		require.NoError(t, buf.Record(0, j, 10+2*float64(j), 10))
		if j != 2 {
			require.NoError(t, buf.Record(1, j, 120+2*float64(j), 120))
		}
	}
	cols, err := dataset.Build(buf, dataset.Metadata{Diameters: []float64{20, 40}, Density: 1000, FPS: 6.66})
	require.NoError(t, err)
	return cols
}

func TestParquetRoundTrip(t *testing.T) {
	cols := sampleColumns(t)
	path := filepath.Join(t.TempDir(), "test_out.parquet")

	w := NewParquetWriter(DefaultRowGroupSize)
	w.Metadata["run_id"] = "test-run"
	require.NoError(t, w.Write(cols, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	got, err := ReadParquet(context.Background(), path)
	require.NoError(t, err)
	if diff := cmp.Diff(cols, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 0.0, got[3].Values[2], "failed sample stays at sentinel")
	assert.True(t, got[4].IsNull(2))
}

func TestParquetWriterRejectsBadInput(t *testing.T) {
	w := NewParquetWriter(0)
	assert.Equal(t, int64(DefaultRowGroupSize), w.RowGroupSize)

	path := filepath.Join(t.TempDir(), "bad.parquet")
	err := w.Write(nil, path)
	assert.True(t, errors.Is(err, ErrNoColumns))

	ragged := []dataset.Column{
		{Name: "a", Values: []float64{1, 2}, Valid: []bool{true, true}},
		{Name: "b", Values: []float64{1}, Valid: []bool{true}},
	}
	err = w.Write(ragged, path)
	assert.True(t, errors.Is(err, ErrRowMismatch))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written on invalid input")
}

func TestParquetWriterBadPath(t *testing.T) {
	w := NewParquetWriter(DefaultRowGroupSize)
	err := w.Write(sampleColumns(t), filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}

func TestReadParquetMissingFile(t *testing.T) {
	_, err := ReadParquet(context.Background(), filepath.Join(t.TempDir(), "nope.parquet"))
	assert.Error(t, err)
}
