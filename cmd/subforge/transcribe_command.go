package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subforge/internal/discovery"
	"subforge/internal/logging"
	"subforge/internal/pipeline"
	"subforge/internal/preflight"
	"subforge/internal/recognizer"
	"subforge/internal/runlock"
)

// runTranscribe is the root command: transcribe every media file in the
// target directory.
func runTranscribe(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	workDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory %q: %w", dir, err)
	}
	if info, err := os.Stat(workDir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory %q not found", dir)
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	if failed := preflight.Failed(preflight.RunAll(runCtx, cfg, workDir)); len(failed) > 0 {
		return fmt.Errorf("setup checks failed:\n%s", preflight.Summarize(failed))
	}

	lock, err := runlock.Acquire(cfg.LockDir(), workDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	runID := uuid.NewString()

	logger, logCloser, err := ctx.newLogger(out, runID)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Debug("run lock acquired", logging.String("lock", lock.Path()))

	// One recognizer serves the whole batch.
	rec, err := ctx.deps.newRecognizer(cfg)
	if err != nil {
		return fmt.Errorf("create recognizer: %w", err)
	}

	controller, err := pipeline.New(pipeline.Config{
		Recognizer:  rec,
		Recognition: recognizer.DefaultOptions(cfg),
		Discovery: discovery.Options{
			Patterns:        cfg.Discovery.Patterns,
			CaseInsensitive: cfg.Discovery.CaseInsensitive,
		},
		Extension:   cfg.Output.Extension,
		Atomic:      cfg.Output.Atomic,
		FileTimeout: cfg.FileTimeout(),
		RunID:       runID,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	writeLines(out, renderBanner(workDir, cfg, rec.Name(), runID, colorize))

	summary, err := controller.RunDir(runCtx, workDir)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			writeLines(out, renderInterrupted(summary, colorize))
			return err
		}
		logging.ErrorWithContext(logger, "run aborted", "run_failed", logging.Error(err))
		return err
	}

	if summary.Total == 0 {
		writeLines(out, renderNoFiles(cfg.Discovery.Patterns, colorize))
		return nil
	}
	writeLines(out, renderSummary(summary, colorize))
	return nil
}
