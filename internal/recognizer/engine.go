package recognizer

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"subforge/internal/transcript"
)

// engine is the shared run-and-collect flow of the command-line engines.
type engine struct {
	name       string
	binary     string
	scratchDir string
	runner     CommandRunner
	buildArgs  func(source, outputDir string, opts Options) []string
}

func (e *engine) Name() string {
	return e.name
}

func (e *engine) Recognize(ctx context.Context, path string, opts Options) (transcript.Result, error) {
	if err := validateCall(path, opts); err != nil {
		return transcript.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return transcript.Result{}, err
	}
	source, err := filepath.Abs(path)
	if err != nil {
		return transcript.Result{}, Wrap(ErrEngine, e.name, "resolve path", err)
	}

	outputDir, cleanup, err := scratchDir(e.scratchDir)
	if err != nil {
		return transcript.Result{}, Wrap(ErrEngine, e.name, "prepare", err)
	}
	defer cleanup()

	args := e.buildArgs(source, outputDir, opts)
	if err := e.runner(ctx, e.binary, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return transcript.Result{}, ctxErr
		}
		return transcript.Result{}, Wrap(ErrEngine, e.name, "transcribe", err)
	}

	result, err := LoadJSON(transcriptPath(outputDir, source))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return transcript.Result{}, Wrap(ErrOutput, e.name, "no transcript produced", err)
		}
		return transcript.Result{}, Wrap(ErrOutput, e.name, "load transcript", err)
	}
	if result.Language == "" {
		result.Language = opts.Language
	}
	return result, nil
}
