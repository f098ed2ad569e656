package recognizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"subforge/internal/transcript"
)

// Options are the per-call recognition settings.
type Options struct {
	// Language is the ISO 639-1 code of the spoken language. Required.
	Language string
	// Deterministic pins the decoding temperature to zero.
	Deterministic bool
	// CompatibilityMode disables half-precision inference.
	CompatibilityMode bool
}

// Recognizer turns one media file into timed text segments.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, path string, opts Options) (transcript.Result, error)
}

// CommandRunner executes an external program. Implementations must honour
// ctx cancellation.
type CommandRunner func(ctx context.Context, name string, args ...string) error

var (
	// ErrEmptyPath is returned when Recognize is called without a file.
	ErrEmptyPath = errors.New("media path required")
	// ErrNoLanguage is returned when Options.Language is empty.
	ErrNoLanguage = errors.New("language required")
	// ErrEngine marks a non-zero exit or launch failure of the engine.
	ErrEngine = errors.New("engine failure")
	// ErrOutput marks a missing or unreadable engine transcript.
	ErrOutput = errors.New("engine output invalid")
)

// Wrap tags err with marker and prefixes the engine and operation.
func Wrap(marker error, engine, operation string, err error) error {
	detail := buildDetail(engine, operation)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(engine, operation string) string {
	parts := make([]string, 0, 2)
	if engine = strings.TrimSpace(engine); engine != "" {
		parts = append(parts, engine)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "recognizer"
	}
	return strings.Join(parts, ": ")
}

func validateCall(path string, opts Options) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	if strings.TrimSpace(opts.Language) == "" {
		return ErrNoLanguage
	}
	return nil
}

const outputTailLines = 20

// ExecRunner runs commands with os/exec. Combined output is discarded on
// success; on failure its last lines are attached to the error.
func ExecRunner(extraEnv ...string) CommandRunner {
	return func(ctx context.Context, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
		cmd.WaitDelay = 5 * time.Second
		if len(extraEnv) > 0 {
			cmd.Env = append(os.Environ(), extraEnv...)
		}
		output, err := cmd.CombinedOutput()
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if tail := lastLines(string(output), outputTailLines); tail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, tail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
}

func lastLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
