package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droptracker/driver"
	"droptracker/types"
)

func TestLedgerRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	s := types.Session{Path: "/videos/a.mov", Droplets: 2}
	report := &driver.Report{
		RunID:           "run-a",
		Output:          "a_out.parquet",
		Frames:          5,
		FramesProcessed: 5,
		FPS:             6.66,
		Ratio:           2,
		Failures:        []int{0, 1},
		Elapsed:         1500 * time.Millisecond,
	}
	first := NewRun(s, "csrt", report, nil)
	require.NoError(t, l.Record(first))

	cancelled := *report
	cancelled.RunID = "run-b"
	cancelled.Cancelled = true
	cancelled.FramesProcessed = 3
	second := NewRun(s, "kcf", &cancelled, errors.New("export error: disk full"))
	require.NoError(t, l.Record(second))

	other := NewRun(types.Session{Path: "/videos/b.mov", Droplets: 1}, "mil", &driver.Report{RunID: "run-c"}, nil)
	require.NoError(t, l.Record(other))

	runs, err := l.Runs("/videos/a.mov")
	require.NoError(t, err)
	if diff := cmp.Diff([]Run{first, second}, runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, runs[0].Failures)
	assert.Equal(t, 1.5, runs[0].ElapsedSeconds)
	assert.Equal(t, "export error: disk full", runs[1].Error)

	all, err := l.Runs("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLedgerRecordReplaces(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer l.Close()

	run := Run{RunID: "same", InputPath: "x.mov", Droplets: 1, Frames: 10, FramesProcessed: 4}
	require.NoError(t, l.Record(run))
	run.FramesProcessed = 10
	require.NoError(t, l.Record(run))

	runs, err := l.Runs("x.mov")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 10, runs[0].FramesProcessed)
}

func TestOpenReopensExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(Run{RunID: "r", InputPath: "in.mov", Droplets: 1}))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()
	runs, err := l.Runs("")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
