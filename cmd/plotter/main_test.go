package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droptracker/dataset"
	"droptracker/export"
)

func writeDataset(t *testing.T, dir string, withMeta bool) string {
	t.Helper()
	buf := dataset.NewBuffer(1, 6)
	for j := 0; j < 6; j++ {
		require.NoError(t, buf.Record(0, j, 100, 50+30*float64(j)))
	}
	var cols []dataset.Column
	var err error
	if withMeta {
		cols, err = dataset.Build(buf, dataset.Metadata{Diameters: []float64{10}, Density: 1000, FPS: 100})
	} else {
		cols, err = dataset.BuildCoordinates(buf)
	}
	require.NoError(t, err)

	path := filepath.Join(dir, "drops_out.parquet")
	require.NoError(t, export.NewParquetWriter(export.DefaultRowGroupSize).Write(cols, path))
	return path
}

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-f", "30", "/data/drops_out.parquet"})
	require.NoError(t, err)
	assert.Equal(t, options{path: "/data/drops_out.parquet", fps: 30, outDir: "/data/drops_out_plots"}, opts)

	opts, err = parseArgs([]string{"/data/drops_out.parquet", "--out", "plots"})
	require.NoError(t, err)
	assert.Equal(t, "plots", opts.outDir)

	_, err = parseArgs(nil)
	assert.Error(t, err)
	_, err = parseArgs([]string{"a.parquet", "b.parquet"})
	assert.Error(t, err)
}

func TestRunUsesDatasetFPS(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, true)
	outDir := filepath.Join(dir, "plots")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{path: path, outDir: outDir}, &out))

	// 30 px per frame at 100 fps
	assert.Contains(t, out.String(), "droplet 0: v_y = 3000 micron/s")
	assert.Contains(t, out.String(), "implied viscosity")
	for _, name := range []string{"droplet_0_a_x.png", "droplet_0_a_y.png"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunMinimalDatasetNeedsFPS(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, false)
	outDir := filepath.Join(dir, "plots")

	err := run(context.Background(), options{path: path, outDir: outDir}, &bytes.Buffer{})
	assert.Error(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{path: path, fps: 10, outDir: outDir}, &out))
	assert.Contains(t, out.String(), "droplet 0: v_y = 300 micron/s")
	assert.NotContains(t, out.String(), "drag")
}
