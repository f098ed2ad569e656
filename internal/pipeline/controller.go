package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"subforge/internal/discovery"
	"subforge/internal/logging"
	"subforge/internal/recognizer"
	"subforge/internal/srt"
	"subforge/internal/transcript"
)

// ErrRecognizerPanic wraps a panic raised inside a Recognizer call.
var ErrRecognizerPanic = errors.New("recognizer panicked")

// Config wires a Controller.
type Config struct {
	Recognizer  recognizer.Recognizer
	Recognition recognizer.Options
	Discovery   discovery.Options
	// Extension is the subtitle extension including the dot, e.g. ".srt".
	Extension string
	// Atomic writes subtitles through a temporary file and rename.
	Atomic bool
	// FileTimeout bounds one recognizer call; zero disables it.
	FileTimeout time.Duration
	// RunID is copied into the Summary. Callers attach it to Logger.
	RunID  string
	Logger *slog.Logger
}

// Controller runs batches. It is not safe for concurrent Run calls.
type Controller struct {
	cfg    Config
	logger *slog.Logger
	state  atomic.Int32
	now    func() time.Time
}

// New returns a Controller for cfg.
func New(cfg Config) (*Controller, error) {
	if cfg.Recognizer == nil {
		return nil, errors.New("pipeline: recognizer required")
	}
	if cfg.Extension == "" {
		cfg.Extension = ".srt"
	}
	logger := logging.NewComponentLogger(cfg.Logger, "pipeline")
	return &Controller{cfg: cfg, logger: logger, now: time.Now}, nil
}

// State reports the controller's current state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	c.state.Store(int32(s))
	c.logger.Debug("pipeline state", logging.String("state", s.String()))
}

// RunDir discovers the media files in dir and processes them.
func (c *Controller) RunDir(ctx context.Context, dir string) (Summary, error) {
	c.setState(StateDiscovering)
	files, err := discovery.Discover(dir, c.cfg.Discovery)
	if err != nil {
		c.setState(StateIdle)
		return Summary{RunID: c.cfg.RunID, Dir: dir}, fmt.Errorf("discover media: %w", err)
	}
	summary, err := c.Run(ctx, files)
	summary.Dir = dir
	return summary, err
}

// Run processes files in order and returns the tally. The returned error is
// non-nil only when ctx was cancelled; per-file failures are reported
// through the Summary.
func (c *Controller) Run(ctx context.Context, files []string) (Summary, error) {
	summary := Summary{
		RunID:   c.cfg.RunID,
		Total:   len(files),
		Started: c.now(),
	}
	if len(files) > 0 {
		summary.Dir = filepath.Dir(files[0])
	}

	if len(files) == 0 {
		c.setState(StateNoFiles)
		c.logger.Info("no media files found",
			logging.String(logging.FieldEventType, "no_files"),
		)
		return c.finish(summary), nil
	}

	c.setState(StateProcessing)
	c.logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int(logging.FieldTotal, len(files)),
		logging.String(logging.FieldEngine, c.cfg.Recognizer.Name()),
		logging.String("language", c.cfg.Recognition.Language),
	)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return c.abort(summary, err)
		}
		outcome, err := c.processFile(ctx, i+1, len(files), path)
		if err != nil {
			return c.abort(summary, err)
		}
		summary.record(outcome)
	}

	return c.finish(summary), nil
}

func (c *Controller) finish(summary Summary) Summary {
	c.setState(StateSummarizing)
	summary.Finished = c.now()
	c.logger.Info("batch complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int(logging.FieldTotal, summary.Total),
		logging.Int("successful", summary.Successful),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed()),
	)
	c.setState(StateDone)
	return summary
}

func (c *Controller) abort(summary Summary, err error) (Summary, error) {
	summary.Finished = c.now()
	c.setState(StateAborted)
	logging.WarnWithContext(c.logger, "batch interrupted", "batch_interrupted",
		logging.Int("processed", summary.Processed()),
		logging.Int("remaining", summary.Remaining()),
		logging.String(logging.FieldErrorHint, "rerun the same command to resume; finished files are skipped"),
		logging.String(logging.FieldImpact, "remaining files were not transcribed"),
	)
	return summary, err
}

// processFile handles one file. It returns an error only when ctx was
// cancelled; every other problem becomes a failed Outcome.
func (c *Controller) processFile(ctx context.Context, index, total int, path string) (Outcome, error) {
	start := c.now()
	output := discovery.OutputPath(path, c.cfg.Extension)
	outcome := Outcome{Path: path, Output: output}
	logger := c.logger.With(
		logging.String(logging.FieldFile, filepath.Base(path)),
		logging.Int(logging.FieldIndex, index),
		logging.Int(logging.FieldTotal, total),
	)

	exists, err := outputExists(output)
	if err != nil {
		return c.fail(logger, outcome, start, fmt.Errorf("check existing subtitle: %w", err)), nil
	}
	if exists {
		outcome.Status = StatusSkipped
		logger.Info("subtitle exists, skipping",
			logging.String(logging.FieldEventType, "file_skipped"),
			logging.String(logging.FieldOutput, filepath.Base(output)),
		)
		return outcome, nil
	}

	logger.Info("transcribing",
		logging.String(logging.FieldEventType, "file_started"),
	)

	result, err := c.recognize(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		return c.fail(logger, outcome, start, err), nil
	}

	if result.Empty() {
		logging.WarnWithContext(logger, "no speech recognized", "empty_transcript",
			logging.String(logging.FieldErrorHint, "check the audio track and the configured language"),
			logging.String(logging.FieldImpact, "an empty subtitle file is written"),
		)
	}

	if err := srt.WriteFile(output, result.Segments, c.cfg.Atomic); err != nil {
		return c.fail(logger, outcome, start, fmt.Errorf("write subtitle: %w", err)), nil
	}

	outcome.Status = StatusSucceeded
	outcome.Segments = len(result.Segments)
	outcome.Elapsed = c.now().Sub(start)
	logger.Info("subtitle written",
		logging.String(logging.FieldEventType, "file_completed"),
		logging.String(logging.FieldOutput, filepath.Base(output)),
		logging.Int("segments", outcome.Segments),
		logging.Duration("elapsed", outcome.Elapsed),
	)
	return outcome, nil
}

func (c *Controller) fail(logger *slog.Logger, outcome Outcome, start time.Time, err error) Outcome {
	outcome.Status = StatusFailed
	outcome.Err = err
	outcome.Elapsed = c.now().Sub(start)
	logging.ErrorWithContext(logger, "transcription failed", "file_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "rerun to retry this file; other files are unaffected"),
	)
	return outcome
}

// recognize calls the recognizer under the optional per-file deadline and
// converts panics into errors.
func (c *Controller) recognize(ctx context.Context, path string) (result transcript.Result, err error) {
	callCtx := ctx
	if c.cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.FileTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRecognizerPanic, r)
		}
	}()

	result, err = c.cfg.Recognizer.Recognize(callCtx, path, c.cfg.Recognition)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", c.cfg.FileTimeout, err)
	}
	return result, err
}

func outputExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
