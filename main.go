package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"droptracker/config"
	"droptracker/driver"
	"droptracker/export"
	"droptracker/ledger"
	"droptracker/recording"
	"droptracker/types"
	"droptracker/ui"
	"droptracker/vision"
)

const (
	exitOK       = 0
	exitUsage    = 1
	exitNoVideo  = -1
	selectWindow = "Select droplets"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	prog := filepath.Base(args[0])
	session, err := config.ParseArgs(args[1:])
	if code, done := argsExitCode(err); done {
		switch {
		case errors.Is(err, config.ErrHelp):
			config.Usage(os.Stderr, prog)
		case errors.Is(err, config.ErrNotReadable):
			fmt.Fprintln(os.Stderr, err)
		default:
			fmt.Fprintln(os.Stderr, err)
			config.Usage(os.Stderr, prog)
		}
		return code
	}

	env := config.LoadEnv()
	factory, err := vision.NewFactory(env.Tracker)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	capture, err := vision.OpenCapture(session.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitNoVideo
	}
	defer capture.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runID := uuid.NewString()
	writer := export.NewParquetWriter(int64(env.RowGroupSize))
	writer.Metadata["run_id"] = runID
	writer.Metadata["input"] = session.Path
	writer.Metadata["tracker"] = env.Tracker
	writer.Metadata["ratio"] = strconv.FormatFloat(session.Distance/session.Pixels, 'g', -1, 64)

	d := &driver.Driver[gocv.Mat]{
		Session:    session,
		Source:     capture,
		Selector:   vision.NewROISelector(selectWindow),
		NewTracker: factory,
		Exporter:   writer,
		Progress:   os.Stdout,
		OutputDir:  env.OutputDir,
		RunID:      runID,
	}

	if session.Show {
		uiConfig := types.DefaultUIConfig()
		logger := types.NewDebugLogger(uiConfig.MaxDebugLogs)
		logger.SetAsLogOutput()
		defer logger.RestoreOriginalLogOutput()

		var recorder *recording.Recorder
		if env.RecordPath != "" {
			videoConfig := types.DefaultVideoConfig()
			videoConfig.Path = env.RecordPath
			if fps := capture.FPS(); fps > 0 {
				videoConfig.FPS = fps
			}
			recorder = recording.NewRecorder(videoConfig)
		}

		window := ui.NewWindow(uiConfig, capture.FrameCount(), cancel, logger, recorder)
		defer window.Close()
		d.Visualizer = window
	} else if env.RecordPath != "" {
		log.Printf("DROPTRACKER_RECORD is ignored without -s")
	}

	report, runErr := d.Run(ctx)
	if env.RunDB != "" {
		recordRun(env.RunDB, ledger.NewRun(session, env.Tracker, report, runErr))
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return runExitCode(runErr)
	}
	if report.Cancelled {
		log.Printf("run %s cancelled after %d of %d frames", report.RunID, report.FramesProcessed, report.Frames)
	}
	return exitOK
}

func recordRun(path string, r ledger.Run) {
	l, err := ledger.Open(path)
	if err != nil {
		log.Printf("run ledger: %v", err)
		return
	}
	defer l.Close()
	if err := l.Record(r); err != nil {
		log.Printf("run ledger: %v", err)
	}
}

// argsExitCode maps an argument parsing error to the process exit code
func argsExitCode(err error) (int, bool) {
	switch {
	case err == nil:
		return exitOK, false
	case errors.Is(err, config.ErrHelp):
		return exitOK, true
	case errors.Is(err, config.ErrNotReadable):
		return exitNoVideo, true
	default:
		return exitUsage, true
	}
}

// runExitCode maps a failed run to the process exit code
func runExitCode(err error) int {
	var runErr *driver.Error
	if errors.As(err, &runErr) && runErr.Kind == driver.AcquisitionError {
		return exitNoVideo
	}
	return exitUsage
}
