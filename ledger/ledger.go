// Package ledger keeps a SQLite history of tracking runs
package ledger

import (
	"database/sql"
	_ "embed"
	"log"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"droptracker/driver"
	"droptracker/types"
)

// schema.sql creates the runs table if it does not exist yet.
//
//go:embed schema.sql
var schemaSQL string

type Ledger struct {
	*sql.DB
}

// Run is one row of the runs table
type Run struct {
	RunID           string
	InputPath       string
	OutputPath      string
	Droplets        int
	Frames          int
	FramesProcessed int
	FPS             float64
	Ratio           float64
	Tracker         string
	Failures        int
	Cancelled       bool
	ElapsedSeconds  float64
	Error           string
}

func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open run ledger %s", path)
	}
	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to execute %q", pragma)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to initialize run ledger schema")
	}
	log.Printf("run ledger: %s", path)
	return &Ledger{db}, nil
}

// NewRun builds a ledger row from a session and its report. runErr may be nil.
func NewRun(s types.Session, tracker string, r *driver.Report, runErr error) Run {
	run := Run{
		RunID:           r.RunID,
		InputPath:       s.Path,
		OutputPath:      r.Output,
		Droplets:        s.Droplets,
		Frames:          r.Frames,
		FramesProcessed: r.FramesProcessed,
		FPS:             r.FPS,
		Ratio:           r.Ratio,
		Tracker:         tracker,
		Failures:        r.TotalFailures(),
		Cancelled:       r.Cancelled,
		ElapsedSeconds:  r.Elapsed.Seconds(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	return run
}

// Record inserts or replaces the row for run.RunID
func (l *Ledger) Record(run Run) error {
	query := `
		INSERT OR REPLACE INTO runs (
			run_id, input_path, output_path, droplets, frames, frames_processed,
			fps, ratio, tracker, failures, cancelled, elapsed_seconds, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.Exec(query,
		run.RunID, run.InputPath, run.OutputPath, run.Droplets, run.Frames, run.FramesProcessed,
		run.FPS, run.Ratio, run.Tracker, run.Failures, run.Cancelled, run.ElapsedSeconds, run.Error,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to record run %s", run.RunID)
	}
	return nil
}

// Runs returns the recorded runs for inputPath, oldest first. An empty path
// returns every run.
func (l *Ledger) Runs(inputPath string) ([]Run, error) {
	query := `
		SELECT run_id, input_path, COALESCE(output_path, ''), droplets, frames, frames_processed,
			COALESCE(fps, 0), COALESCE(ratio, 0), COALESCE(tracker, ''), failures, cancelled,
			COALESCE(elapsed_seconds, 0), COALESCE(error, '')
		FROM runs
		WHERE ? = '' OR input_path = ?
		ORDER BY created_at, rowid
	`
	rows, err := l.Query(query, inputPath, inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.InputPath, &r.OutputPath, &r.Droplets, &r.Frames, &r.FramesProcessed,
			&r.FPS, &r.Ratio, &r.Tracker, &r.Failures, &r.Cancelled, &r.ElapsedSeconds, &r.Error,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "failed to iterate runs")
}
